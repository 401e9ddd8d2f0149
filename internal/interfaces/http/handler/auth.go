package handler

import (
	"github.com/gin-gonic/gin"

	"foligo-api/internal/application/auth"
	"foligo-api/internal/interfaces/http/dto"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	auth *auth.Service
	sso  *auth.SSOService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *auth.Service, ssoService *auth.SSOService) *AuthHandler {
	return &AuthHandler{auth: authService, sso: ssoService}
}

// Register 注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, pair, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, dto.NewAuthResponse(user, pair))
}

// Login 登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewAuthResponse(user, pair))
}

// RefreshToken 刷新令牌
// @Summary 刷新访问令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.NewAuthResponse(nil, pair))
}

// SSOProviders 列出可用 SSO 提供商
// @Summary 列出 SSO 提供商
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.Response[dto.SSOProvidersResponse]
// @Router /v1/auth/sso/providers [get]
func (h *AuthHandler) SSOProviders(c *gin.Context) {
	dto.Success(c, &dto.SSOProvidersResponse{Providers: h.sso.Providers()})
}

// SSOLogin 发起 SSO 登录
// @Summary 发起 OIDC 登录，返回授权跳转地址
// @Tags Auth
// @Produce json
// @Param provider path string true "提供商名称"
// @Param redirect_to query string false "登录完成后的回跳地址"
// @Success 200 {object} dto.Response[dto.SSOLoginResponse]
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/auth/sso/{provider}/login [get]
func (h *AuthHandler) SSOLogin(c *gin.Context) {
	authURL, err := h.sso.BeginLogin(c.Request.Context(), c.Param("provider"), c.Query("redirect_to"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.SSOLoginResponse{AuthURL: authURL})
}

// SSOCallback SSO 回调
// @Summary OIDC 授权码回调，颁发应用令牌
// @Tags Auth
// @Produce json
// @Param state query string true "登录 state"
// @Param code query string true "授权码"
// @Success 200 {object} dto.Response[dto.SSOCallbackResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/sso/callback [get]
func (h *AuthHandler) SSOCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		dto.BadRequest(c, "state and code are required")
		return
	}

	user, pair, redirectTo, err := h.sso.CompleteLogin(c.Request.Context(), state, code)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.SSOCallbackResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		RedirectTo:   redirectTo,
	})
}
