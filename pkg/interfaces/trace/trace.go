// Package trace 定义诊断跟踪接口
//
// 握手管理器为每次编排创建一个跟踪节点，沿途记录事件。
// 节点默认是廉价且短暂的：只有在 Finalize 时发生了错误才会 Commit，
// 使事件可供事后检查；成功路径上节点随状态一起被丢弃。
package trace

// ============================================================================
//                              Node 接口
// ============================================================================

// Node 跟踪节点接口
type Node interface {
	// AddEvent 记录一条格式化事件
	AddEvent(format string, args ...any)

	// Commit 提交节点，使已记录的事件可供检查
	//
	// 幂等：重复提交为 no-op。
	Commit()
}

// Factory 跟踪节点工厂接口
type Factory interface {
	// NewNode 创建跟踪节点，desc 描述本次编排
	NewNode(desc string) Node
}

// ============================================================================
//                              Noop 实现
// ============================================================================

// noopNode 丢弃所有事件的节点
type noopNode struct{}

func (noopNode) AddEvent(string, ...any) {}
func (noopNode) Commit()                 {}

// Noop 返回丢弃所有事件的节点
func Noop() Node {
	return noopNode{}
}

// noopFactory 总是返回 Noop 节点的工厂
type noopFactory struct{}

func (noopFactory) NewNode(string) Node {
	return Noop()
}

// NoopFactory 返回总是创建 Noop 节点的工厂
func NoopFactory() Factory {
	return noopFactory{}
}
