package constants

// 认证类型
const (
	AuthTypeLDAP  = "ldap"
	AuthTypeLocal = "local"
)

// JWT 相关
const (
	JWTContextKey = "jwt_user"
	JWTTypeAccess = "access"
)

// HTTP Header
const (
	HeaderAuthorization   = "Authorization"
	HeaderBearerPrefix    = "Bearer "
	HeaderWWWAuthenticate = "WWW-Authenticate"
)

// UsernamePattern 用户名格式: 3位大写字母 + 7位数字 (例如 SKT1234567)
const UsernamePattern = `^[A-Z]{3}[0-9]{7}$`

// EMS 凭据角色
const (
	EmsRoleSystem = "system"
	EmsRoleAdmin  = "admin"
	EmsRoleViewer = "viewer"
)

// DecryptFailedSentinel 单个密文解密失败时的字段占位值, 整体响应不受影响
const DecryptFailedSentinel = "[DECRYPTION ERROR]"

// MonthlyPasswordPrefix 每月自动变更密码的前缀, 完整形式: 암호_YYMM
const MonthlyPasswordPrefix = "암호_"

// AutoRotateMarker 源表中标记每月自动变更的密码单元格内容
const AutoRotateMarker = "월 자동변경"
