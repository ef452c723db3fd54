package model

import "time"

// User 本地用户模型
//
// Username 格式固定为3位大写字母+7位数字 (constants.UsernamePattern);
// Password 为bcrypt哈希, 不可逆, 永不返回到前端。
type User struct {
	BaseModel
	Username          string     `gorm:"size:10;not null;uniqueIndex" json:"username"`
	Password          string     `gorm:"size:255;not null" json:"-"`
	FullName          string     `gorm:"size:100" json:"full_name"`
	Team              string     `gorm:"size:100" json:"team"`
	IsSecurityManager bool       `gorm:"not null;default:false" json:"is_security_manager"`
	AuthProvider      string     `gorm:"size:20;not null;default:'local'" json:"auth_provider"`
	LastLoginAt       *time.Time `json:"last_login_at"`

	// 随用户一起删除
	EquipmentAssignments []UserEquipmentAssignment `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"equipment_assignments,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserEquipmentAssignment 用户-装备组分配
// 非管理员只能查看自己被分配装备组下的EMS系统
type UserEquipmentAssignment struct {
	BaseModel
	UserID         int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	EquipmentGroup string `gorm:"size:50;not null" json:"equipment_group"`
}

func (UserEquipmentAssignment) TableName() string {
	return "user_equipment_assignments"
}
