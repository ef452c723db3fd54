package dto

// EmsCredentialSpec 创建EMS系统时的嵌套凭据
type EmsCredentialSpec struct {
	Role       string `json:"role" binding:"required,oneof=system admin viewer"`
	Username   string `json:"username" binding:"max=128"`
	Password   string `json:"password" binding:"required"`
	AutoRotate bool   `json:"auto_rotate"`
}

// CreateEmsSystemRequest 创建EMS系统请求, 系统与全部凭据在同一事务内落库
type CreateEmsSystemRequest struct {
	EquipmentGroup string              `json:"equipment_group" binding:"required,max=50"`
	SystemName     string              `json:"system_name" binding:"required,max=128"`
	Region         string              `json:"region" binding:"max=50"`
	IPURL          string              `json:"ip_url" binding:"max=255"`
	Credentials    []EmsCredentialSpec `json:"credentials" binding:"dive"`
}

// EmsCredentialResponse EMS凭据响应
// password 指针语义: nil → 该viewer无权查看, JSON中整个字段缺失;
// 非nil → 解密后的明文或解密失败占位值
type EmsCredentialResponse struct {
	ID           int64   `json:"id"`
	Role         string  `json:"role"`
	Username     string  `json:"username"`
	Password     *string `json:"password,omitempty"`
	AutoRotate   bool    `json:"auto_rotate"`
	LastModified string  `json:"last_modified"`
}

// EmsSystemResponse EMS系统响应
type EmsSystemResponse struct {
	ID             int64                   `json:"id"`
	EquipmentGroup string                  `json:"equipment_group"`
	SystemName     string                  `json:"system_name"`
	Region         string                  `json:"region"`
	IPURL          string                  `json:"ip_url"`
	Credentials    []EmsCredentialResponse `json:"credentials"`
}
