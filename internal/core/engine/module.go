// Package engine 实现默认执行引擎
package engine

import (
	"context"

	pkgengine "github.com/dep2p/go-handshake/pkg/interfaces/engine"
	"go.uber.org/fx"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Engine pkgengine.Engine
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(ProvideEngine),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEngine 提供 Engine 实例
func ProvideEngine() Result {
	return Result{
		Engine: New(NewConfig()),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC     fx.Lifecycle
	Engine pkgengine.Engine
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if e, ok := input.Engine.(*Engine); ok {
				return e.Close()
			}
			return nil
		},
	})
}
