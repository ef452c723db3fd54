package policy

import (
	"github.com/samber/lo"

	"account-manager/internal/model"
)

// 凭据可见性与变更权限的集中判定。
// 所有函数均为纯函数, 只依赖传入的模型值, 不访问数据库和HTTP上下文。
//
// 规则:
//  1. 个人凭据: 仅owner本人可读写删, 安全管理员也无豁免 (仓储层按owner_id过滤)
//  2. EMS系统列表: 安全管理员看全部; 非管理员只看自己装备组下的系统
//  3. EMS凭据密码: 安全管理员全部可见; 非管理员仅viewer角色可见,
//     其余凭据密码字段整体缺失（非空字符串）, 非敏感字段照常返回
//  4. EMS系统创建: 仅安全管理员
//  5. 服务器安全信息列表: 任何已认证用户
//  6. 服务器账号口令查询: 任何已认证用户, 未登记槽位省略
//  7. 服务器账号变更、检查项创建/更新: 仅安全管理员

// CanViewEmsSecret 判断用户是否可见某条EMS凭据的密码
func CanViewEmsSecret(user *model.User, cred *model.EmsCredential) bool {
	if user.IsSecurityManager {
		return true
	}
	return cred.Role == model.EmsCredentialRoleViewer
}

// CanCreateEmsSystem 判断用户是否可创建EMS系统
func CanCreateEmsSystem(user *model.User) bool {
	return user.IsSecurityManager
}

// CanMutateServerSecurity 判断用户是否可变更服务器账号/检查项
func CanMutateServerSecurity(user *model.User) bool {
	return user.IsSecurityManager
}

// EquipmentGroups 返回用户被分配的装备组集合（去重）
func EquipmentGroups(user *model.User) []string {
	return lo.Uniq(lo.Map(user.EquipmentAssignments,
		func(a model.UserEquipmentAssignment, _ int) string { return a.EquipmentGroup }))
}
