package dto

// ServerSecurityResponse 服务器安全信息响应, 不含任何口令
type ServerSecurityResponse struct {
	ID                   int64                   `json:"id"`
	ManagementID         string                  `json:"management_id"`
	ServerName           string                  `json:"server_name"`
	Hostname             string                  `json:"hostname"`
	Region               string                  `json:"region"`
	IPAddress            string                  `json:"ip_address"`
	SgwAccountManagement string                  `json:"sgw_account_management"`
	PrimaryAccountID     *string                 `json:"primary_account_id"`
	RootAccountID        *string                 `json:"root_account_id"`
	Vendor               string                  `json:"vendor"`
	OSType               string                  `json:"os_type"`
	OSVersion            string                  `json:"os_version"`
	HWModel              string                  `json:"hw_model"`
	ManagementTeam       string                  `json:"management_team"`
	ChecklistItems       []ChecklistItemResponse `json:"checklist_items"`
}

// ServerPasswordsResponse 服务器特权账号口令
// 未登记的槽位整个字段缺失, 不做解密
type ServerPasswordsResponse struct {
	ID               int64   `json:"id"`
	ManagementID     string  `json:"management_id"`
	PrimaryAccountID *string `json:"primary_account_id,omitempty"`
	PrimaryPassword  *string `json:"primary_password,omitempty"`
	RootAccountID    *string `json:"root_account_id,omitempty"`
	RootPassword     *string `json:"root_password,omitempty"`
}

// UpdateServerAccountsRequest 服务器账号变更请求
// 仅更新出现的字段; 提供的口令独立重新加密, 缺省字段不触碰既有密文
type UpdateServerAccountsRequest struct {
	PrimaryAccountID *string `json:"primary_account_id" binding:"omitempty,max=64"`
	PrimaryPassword  *string `json:"primary_password"`
	RootAccountID    *string `json:"root_account_id" binding:"omitempty,max=64"`
	RootPassword     *string `json:"root_password"`
}

// CreateChecklistItemRequest 创建检查项请求
type CreateChecklistItemRequest struct {
	ServerID   int64  `json:"server_id" binding:"required"`
	ItemName   string `json:"item_name" binding:"required,max=255"`
	ItemStatus string `json:"item_status"`
}

// UpdateChecklistItemRequest 更新检查项状态请求
type UpdateChecklistItemRequest struct {
	ItemStatus string `json:"item_status" binding:"required"`
}

// ChecklistItemResponse 检查项响应
type ChecklistItemResponse struct {
	ID          int64  `json:"id"`
	ServerID    int64  `json:"server_id"`
	ItemName    string `json:"item_name"`
	ItemStatus  string `json:"item_status"`
	LastChecked string `json:"last_checked"`
}
