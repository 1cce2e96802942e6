// Package handshake 定义握手步骤契约与握手状态
//
// 握手步骤（Handshaker）是连接协商流水线中的一个可插拔工作单元：
// 给定共享的握手状态，执行一步协商动作，异步报告成功或失败，
// 并支持被提前中止。具体协议（TLS、Noise、代理协议探测等）
// 由外部实现；核心只依赖这里定义的统一契约。
package handshake

import (
	"net"
	"time"

	"github.com/dep2p/go-handshake/pkg/interfaces/engine"
	"github.com/dep2p/go-handshake/pkg/interfaces/trace"
	"github.com/dep2p/go-handshake/pkg/lib/slice"
)

// ============================================================================
//                              Handshaker 接口
// ============================================================================

// Handshaker 握手步骤接口
//
// 契约：
//   - DoHandshake 执行本步骤的协商工作，可以在返回前同步完成，
//     也可以稍后从其他执行上下文完成；onDone 必须且只能被调用一次，
//     参数为 nil（成功）或终止性错误。
//     步骤不得在 onDone 生效之后继续持有 args 指针。
//   - Shutdown 尽力、幂等地要求中止进行中的工作；如果存在未完成的
//     onDone，步骤最终仍必须调用它（可以带失败状态）。
//   - 步骤可以设置 args.ExitEarly，使管理器在本步骤成功后
//     停止调度后续步骤。
type Handshaker interface {
	// Name 返回步骤名称（用于诊断）
	Name() string

	// DoHandshake 执行握手步骤，完成时调用 onDone（恰好一次）
	DoHandshake(args *Args, onDone func(error))

	// Shutdown 要求尽快中止进行中的工作（幂等）
	Shutdown(err error)
}

// DoneFunc 终止回调签名
//
// 成功时 args 非 nil 且 err 为 nil；失败时相反。
// 恰好被调用一次，且总是在调用方栈之外执行。
type DoneFunc func(args *Args, err error)

// ============================================================================
//                              Args（握手状态）
// ============================================================================

// Args 握手状态
//
// 每次编排恰好一个实例，按步骤注册顺序依次被原地修改，
// 最终被终止回调消费一次。
//
// Conn 的所有权：编排开始时移入状态；成功时移交给终止回调的调用方；
// 失败或关停时由管理器关闭。
type Args struct {
	// Conn 原始连接句柄
	Conn net.Conn

	// Params 协商配置的只读快照
	Params *Params

	// ReadBuffer 预读缓冲区：步骤读出但未消费的字节
	ReadBuffer *slice.Buffer

	// Deadline 编排截止时间
	Deadline time.Time

	// ExitEarly 提前退出标志：任一步骤可置位以短路后续步骤
	ExitEarly bool

	// Engine 执行引擎
	Engine engine.Engine

	// Trace 诊断跟踪节点
	Trace trace.Node
}

// InvokeOnDone 把步骤完成结果调度到执行引擎上交付
//
// 步骤实现应通过本函数交付 onDone，保证完成回调不在
// 步骤自身的调用栈上同步执行。
func InvokeOnDone(args *Args, onDone func(error), err error) {
	args.Engine.Run(func() {
		onDone(err)
	})
}

// ============================================================================
//                              Acceptor
// ============================================================================

// Acceptor 接受方上下文
//
// 携带监听端在移交连接时已经掌握的信息。
// PendingData 中的字节在编排开始时被整体换入 Args.ReadBuffer。
type Acceptor struct {
	// FromListener 连接是否来自本地监听端
	FromListener bool

	// ExternalConnection 连接是否由外部注入（非本进程 accept）
	ExternalConnection bool

	// PendingData 接受时已经读到的待处理字节
	PendingData *slice.Buffer
}
