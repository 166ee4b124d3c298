package config

import "fmt"

// ConfigurationError 表示配置项非法
//
// 只在构造阶段（加载配置、创建状态机）返回，不会在 tick 过程中出现。
// 调用者可使用 errors.As 取出具体字段：
//
//	var cfgErr *config.ConfigurationError
//	if errors.As(err, &cfgErr) {
//	    log.Printf("bad field: %s", cfgErr.Field)
//	}
type ConfigurationError struct {
	Field  string // 出错的配置键（yaml 路径，如 "collision.fruitRadius"）
	Reason string // 人类可读的原因
}

// Error 实现 error 接口
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
