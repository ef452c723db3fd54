package strings

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}
