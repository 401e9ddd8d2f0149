// Package entity 定义领域实体
package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserSettings 用户设置
type UserSettings struct {
	Theme    string `json:"theme,omitempty"`
	Language string `json:"language,omitempty"`
}

// User 用户实体
type User struct {
	ID           string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string        `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string        `json:"-" gorm:"type:varchar(255)"`
	Name         string        `json:"name" gorm:"type:varchar(255);not null"`
	AvatarURL    string        `json:"avatar_url,omitempty" gorm:"type:text"`
	Settings     *UserSettings `json:"settings,omitempty" gorm:"type:jsonb;serializer:json"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NewUser 创建新用户
func NewUser(email, name string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Name:      name,
		Settings:  &UserSettings{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetPassword 设置并散列密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Identity SSO 外部身份
// 一个用户可以绑定多个 OIDC 提供商的身份，(provider, subject) 全局唯一。
type Identity struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;not null"`
	Provider  string    `json:"provider" gorm:"type:varchar(64);not null"`
	Subject   string    `json:"subject" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Identity) TableName() string {
	return "identities"
}

// NewIdentity 创建新的外部身份
func NewIdentity(userID, provider, subject, email string) *Identity {
	return &Identity{
		UserID:    userID,
		Provider:  provider,
		Subject:   subject,
		Email:     email,
		CreatedAt: time.Now(),
	}
}
