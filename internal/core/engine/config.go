// Package engine 实现默认执行引擎
package engine

import "github.com/benbjohnson/clock"

// Config 引擎配置
type Config struct {
	// Clock 时钟源（默认真实时钟；测试中注入 clock.NewMock()）
	Clock clock.Clock
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		Clock: clock.New(),
	}
}
