// Package sso 提供基于 OIDC 的单点登录实现
package sso

import (
	"context"
	"fmt"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"foligo-api/internal/config"
)

// Claims OIDC 身份声明（登录所需的最小子集）
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Provider 单个 OIDC 提供商
type Provider struct {
	Name     string
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    oauth2.Config
}

// Registry OIDC 提供商注册表
// 提供商在首次使用时做发现，之后复用。
type Registry struct {
	cfg       *config.SSOConfig
	providers map[string]*Provider
	mu        sync.Mutex
}

// NewRegistry 创建提供商注册表
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		cfg:       &cfg.SSO,
		providers: make(map[string]*Provider),
	}
}

// Names 返回已配置的提供商名称
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cfg.Providers))
	for name := range r.cfg.Providers {
		names = append(names, name)
	}
	return names
}

// Get 获取提供商（惰性发现）
func (r *Registry) Get(ctx context.Context, name string) (*Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.providers[name]; ok {
		return p, nil
	}

	pc, ok := r.cfg.Providers[name]
	if !ok {
		return nil, fmt.Errorf("sso provider %s not configured", name)
	}

	op, err := oidc.NewProvider(ctx, pc.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery failed for %s: %w", name, err)
	}

	scopes := pc.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	p := &Provider{
		Name:     name,
		provider: op,
		verifier: op.Verifier(&oidc.Config{ClientID: pc.ClientID}),
		oauth: oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.RedirectURL,
			Endpoint:     op.Endpoint(),
			Scopes:       scopes,
		},
	}
	r.providers[name] = p
	return p, nil
}

// AuthURL 生成授权跳转地址（授权码 + PKCE + nonce）
func (p *Provider) AuthURL(state, nonce, codeVerifier string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.S256ChallengeOption(codeVerifier),
		oidc.Nonce(nonce),
	)
}

// Exchange 用授权码换取并校验 ID Token，返回身份声明
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier, nonce string) (*Claims, error) {
	token, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("no id_token in token response")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("id token verification failed: %w", err)
	}
	if idToken.Nonce != nonce {
		return nil, fmt.Errorf("nonce mismatch")
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}
	if claims.Subject == "" {
		claims.Subject = idToken.Subject
	}
	return &claims, nil
}
