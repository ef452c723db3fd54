package model

import "gorm.io/datatypes"

// ServerSecurityInfo 服务器安全管理信息
//
// 两个特权账号槽位（1차/root）各有ID与加密口令, 口令列可为空;
// 空槽位表示未登记, 查询口令时直接省略, 不做解密。
type ServerSecurityInfo struct {
	BaseModel
	ManagementID         string `gorm:"column:management_id;size:50;not null;uniqueIndex" json:"management_id"`
	ServerName           string `gorm:"size:128;not null" json:"server_name"`
	Hostname             string `gorm:"size:128" json:"hostname"`
	Region               string `gorm:"size:50" json:"region"`
	IPAddress            string `gorm:"column:ip_address;size:64" json:"ip_address"`
	SgwAccountManagement string `gorm:"column:sgw_account_management;size:50" json:"sgw_account_management"`

	PrimaryAccountID          *string `gorm:"column:primary_account_id;size:64" json:"primary_account_id"`
	EncryptedPrimaryAccountPw *string `gorm:"column:encrypted_primary_account_pw;type:text" json:"-"`
	RootAccountID             *string `gorm:"column:root_account_id;size:64" json:"root_account_id"`
	EncryptedRootAccountPw    *string `gorm:"column:encrypted_root_account_pw;type:text" json:"-"`

	Vendor         string `gorm:"size:64" json:"vendor"`
	OSType         string `gorm:"column:os_type;size:32" json:"os_type"`
	OSVersion      string `gorm:"column:os_version;size:64" json:"os_version"`
	HWModel        string `gorm:"column:hw_model;size:64" json:"hw_model"`
	ManagementTeam string `gorm:"size:100" json:"management_team"`

	// 随服务器一起删除
	ChecklistItems []SecurityChecklistItem `gorm:"foreignKey:ServerID;constraint:OnDelete:CASCADE" json:"checklist_items,omitempty"`
}

func (ServerSecurityInfo) TableName() string {
	return "server_security_infos"
}

// SecurityChecklistItem 服务器合规检查项
type SecurityChecklistItem struct {
	BaseModel
	ServerID    int64          `gorm:"column:server_id;not null;index" json:"server_id"`
	ItemName    string         `gorm:"size:255;not null" json:"item_name"`
	ItemStatus  string         `gorm:"type:text" json:"item_status"`
	LastChecked datatypes.Date `gorm:"column:last_checked" json:"last_checked"`
}

func (SecurityChecklistItem) TableName() string {
	return "security_checklist_items"
}
