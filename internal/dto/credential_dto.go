package dto

import "encoding/json"

// CreateCredentialRequest 创建个人凭据请求
// password 明文仅在请求处理期间存在于内存, 入库前加密
type CreateCredentialRequest struct {
	ServiceName string          `json:"service_name" binding:"required,max=128"`
	Username    string          `json:"username" binding:"required,max=128"`
	Password    string          `json:"password" binding:"required"`
	Meta        json.RawMessage `json:"meta"` // 非敏感展示信息: URL、备注（可选）
}

// UpdateCredentialRequest 更新个人凭据请求, 各字段均可选
type UpdateCredentialRequest struct {
	ServiceName *string         `json:"service_name" binding:"omitempty,max=128"`
	Username    *string         `json:"username" binding:"omitempty,max=128"`
	Password    *string         `json:"password"` // 提供时重新加密, 缺省不触碰既有密文
	Meta        json.RawMessage `json:"meta"`
}

// CredentialResponse 凭据响应, password为解密后的明文
// 仅owner本人可达, 解密失败时为错误占位值
type CredentialResponse struct {
	ID          int64           `json:"id"`
	ServiceName string          `json:"service_name"`
	Username    string          `json:"username"`
	Password    string          `json:"password"`
	Meta        json.RawMessage `json:"meta,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}
