// Package trace 实现诊断跟踪节点
package trace

// Config 跟踪配置
type Config struct {
	// MaxEvents 单个节点缓存的事件上限（默认 32）
	MaxEvents int
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		MaxEvents: 32,
	}
}
