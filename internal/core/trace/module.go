// Package trace 实现诊断跟踪节点
package trace

import (
	pkgtrace "github.com/dep2p/go-handshake/pkg/interfaces/trace"
	"go.uber.org/fx"
)

// ============================================================================
//                              Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Factory pkgtrace.Factory
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("trace",
		fx.Provide(ProvideFactory),
	)
}

// ProvideFactory 提供跟踪节点工厂
func ProvideFactory() Result {
	return Result{
		Factory: NewFactory(NewConfig()),
	}
}
