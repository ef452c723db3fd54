package model

import "gorm.io/datatypes"

const CredentialTableName = "credentials"

// Credential 个人服务凭据（密码加密存储）
//
// 说明：
// - encrypted_password: AES-GCM(base64) 密文（nonce 已包含在密文中）
// - meta_json: 非敏感字段（URL、备注等, 用于列表展示）
// - 仅 owner 本人可读写, 无角色豁免
type Credential struct {
	BaseModel

	OwnerID     int64  `gorm:"column:owner_id;not null;index" json:"owner_id"`
	ServiceName string `gorm:"size:128;not null;index" json:"service_name"`
	Username    string `gorm:"size:128;not null" json:"username"`

	EncryptedPassword string         `gorm:"column:encrypted_password;type:text;not null" json:"-"`
	MetaJSON          datatypes.JSON `gorm:"column:meta_json;type:json" json:"meta_json,omitempty"`
}

func (Credential) TableName() string {
	return CredentialTableName
}
