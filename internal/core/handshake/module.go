// Package handshake 实现握手管理器
package handshake

import (
	pkgengine "github.com/dep2p/go-handshake/pkg/interfaces/engine"
	pkgtrace "github.com/dep2p/go-handshake/pkg/interfaces/trace"
	"go.uber.org/fx"
)

// ============================================================================
//                              Factory
// ============================================================================

// Factory 管理器工厂
//
// 管理器是一次性对象（每条连接一个编排），工厂持有跨连接共享的
// 执行引擎与跟踪工厂，用于批量创建管理器。
type Factory struct {
	eng          pkgengine.Engine
	traceFactory pkgtrace.Factory
}

// NewFactory 创建管理器工厂
func NewFactory(eng pkgengine.Engine, tf pkgtrace.Factory) (*Factory, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	if tf == nil {
		tf = pkgtrace.NoopFactory()
	}
	return &Factory{eng: eng, traceFactory: tf}, nil
}

// NewManager 创建一次性握手管理器
func (f *Factory) NewManager() *Manager {
	m, _ := NewManager(f.eng, Config{TraceFactory: f.traceFactory})
	return m
}

// ============================================================================
//                              Fx 模块
// ============================================================================

// Params Factory 依赖参数
type Params struct {
	fx.In

	Engine       pkgengine.Engine
	TraceFactory pkgtrace.Factory `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("handshake",
		fx.Provide(ProvideFactory),
	)
}

// ProvideFactory 提供管理器工厂（依赖注入）
func ProvideFactory(params Params) (*Factory, error) {
	return NewFactory(params.Engine, params.TraceFactory)
}
