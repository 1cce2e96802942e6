// Package engine 实现默认执行引擎
//
// # 概述
//
// engine 是 pkg/interfaces/engine.Engine 的薄适配实现：
// Run 在新 goroutine 上执行回调，RunAfter 基于可注入的时钟
// （github.com/benbjohnson/clock）注册一次性定时器，Cancel 幂等取消。
//
// 这里不实现任何任务调度策略——调度由 Go 运行时承担，
// 本包只负责把"立即/延迟/取消"三个能力暴露为统一接口。
//
// # 可测试性
//
// 时钟通过 Config 注入。测试中使用 clock.NewMock() 可以
// 确定性地推进时间触发截止定时器。
//
// # 使用示例
//
//	eng := engine.New(engine.NewConfig())
//	h := eng.RunAfter(10*time.Second, func() { … })
//	eng.Cancel(h)
//
// # Fx 集成
//
//	fx.Module("engine",
//	    fx.Provide(engine.ProvideEngine),
//	)
package engine
