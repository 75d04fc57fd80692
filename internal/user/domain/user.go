package domain

import (
	"time"

	"social_network_service/pkg/encrypt"
)

// Role 使用者角色, 與 token.RoleType 同值
type Role string

const (
	// RoleUser 一般使用者
	RoleUser Role = "user"
	// RoleAdmin 管理員
	RoleAdmin Role = "admin"
)

// User 已核准的使用者
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Bio       string
	Avatar    string
	Role      Role
	Approved  bool
	CreatedAt time.Time
}

// IsPasswordMatch 密碼驗證
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// Profile 公開資料, 不含 email 與密碼
func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		Role:     u.Role,
	}
}

// Profile GET /users/:id 回傳
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// UserQuery join conditions are used to query users
type UserQuery struct {
	ID       *string `db:"id"`
	Email    *string `db:"email"`
	Username *string `db:"username"`
}

// UserSession login 後存在 redis 的 session
type UserSession struct {
	Token        string    `json:"Token"`
	UserID       string    `json:"UserID"`
	Role         Role      `json:"Role"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired 檢查 Session 是否已過期
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// RegistrationOrder 等待管理員核准的註冊單
type RegistrationOrder struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"not null;index" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// ToUser 核准後建立的使用者
func (o *RegistrationOrder) ToUser() *User {
	return &User{
		ID:       o.ID,
		Username: o.Username,
		Email:    o.Email,
		Password: o.Password,
		Bio:      o.Bio,
		Avatar:   o.Avatar,
		Role:     RoleUser,
		Approved: true,
	}
}

// RegisterRequest POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

// LoginRequest POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse login 成功
type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UpdateProfileRequest PUT /users/me
type UpdateProfileRequest struct {
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}
