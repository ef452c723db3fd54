package dto

// LoginRequest 登录请求 (form-encoded, OAuth2 password风格)
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	AuthType string `form:"auth_type" binding:"omitempty,oneof=ldap local"` // 缺省local
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // bearer
	ExpiresIn   int    `json:"expires_in"` // 秒
}

// UserInfo 用户信息
type UserInfo struct {
	ID                int64    `json:"id"`
	Username          string   `json:"username"`
	FullName          string   `json:"full_name"`
	Team              string   `json:"team"`
	IsSecurityManager bool     `json:"is_security_manager"`
	AuthType          string   `json:"auth_type"`
	EquipmentGroups   []string `json:"equipment_groups"`
}
