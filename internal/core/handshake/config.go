// Package handshake 实现握手管理器
package handshake

import (
	pkgtrace "github.com/dep2p/go-handshake/pkg/interfaces/trace"
)

// Config 管理器配置
type Config struct {
	// TraceFactory 诊断跟踪节点工厂（默认 Noop，不记录任何事件）
	TraceFactory pkgtrace.Factory
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		TraceFactory: pkgtrace.NoopFactory(),
	}
}
