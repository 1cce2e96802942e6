package handshake

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	coreengine "github.com/dep2p/go-handshake/internal/core/engine"
	corehs "github.com/dep2p/go-handshake/internal/core/handshake"
	coretrace "github.com/dep2p/go-handshake/internal/core/trace"
)

// Module 返回聚合 Fx 模块
//
// 提供执行引擎、追踪工厂与握手管理器工厂,可直接嵌入宿主应用:
//
//	app := fx.New(
//		handshake.Module(),
//		fx.Invoke(func(f *handshake.Factory) { ... }),
//	)
func Module() fx.Option {
	return fx.Options(
		coreengine.Module(),
		coretrace.Module(),
		corehs.Module(),
	)
}

// NewApp 构建独立的 Fx 应用,主要用于示例与测试
func NewApp(extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		Module(),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	}
	opts = append(opts, extra...)
	return fx.New(opts...)
}
