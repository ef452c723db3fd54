package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string   `json:"username" binding:"required,len=10"`
	Password        string   `json:"password" binding:"required,min=8"`
	FullName        string   `json:"full_name" binding:"required,max=100"`
	Team            string   `json:"team" binding:"max=100"`
	EquipmentGroups []string `json:"equipment_groups"` // 用户开通时分配的装备组
}
