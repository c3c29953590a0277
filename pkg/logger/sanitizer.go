package logger

import (
	"fmt"
	"strings"
)

// 需要脱敏的键名关键字
var sensitiveKeys = []string{
	"token",
	"password",
	"passwd",
	"pwd",
	"secret",
	"api_key",
	"apikey",
	"api-key",
	"authorization",
	"auth",
}

// MaskToken 脱敏token字符串
// 规则:
//   - 空字符串返回空
//   - 长度<8: 返回 "***"
//   - 长度>=8: 保留前4后4,中间用星号替换
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) < 8 {
		return "***"
	}

	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// IsSensitiveKey 判断键名是否为敏感字段
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			return true
		}
	}
	return false
}

// SanitizeValue 根据键名判断是否需要脱敏对应的值
func SanitizeValue(key string, value interface{}) interface{} {
	if !IsSensitiveKey(key) {
		return value
	}
	if strVal, ok := value.(string); ok {
		return MaskToken(strVal)
	}
	return "***MASKED***"
}

// SanitizeArgs 批量脱敏slog键值对参数
// 逐个检查key,敏感字段的value被替换为掩码
func SanitizeArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		result[i+1] = SanitizeValue(key, result[i+1])
	}
	return result
}

// SafeFormat 格式化字符串并对疑似凭证的参数脱敏
// 启发式规则: 长度>=16且不含空格的字符串参数按token处理
func SafeFormat(format string, args ...interface{}) string {
	sanitized := make([]interface{}, len(args))
	for i, arg := range args {
		if strVal, ok := arg.(string); ok && len(strVal) >= 16 && !strings.Contains(strVal, " ") {
			sanitized[i] = MaskToken(strVal)
			continue
		}
		sanitized[i] = arg
	}
	return fmt.Sprintf(format, sanitized...)
}
