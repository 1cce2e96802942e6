// Package engine 定义执行引擎接口
//
// 执行引擎是握手核心消费的调度能力：立即调度回调、延迟调度回调、
// 取消延迟任务。握手管理器不拥有线程模型，所有等待都表达为
// "稍后会有回调被调用"。
package engine

import "time"

// ============================================================================
//                              TaskHandle
// ============================================================================

// TaskHandle 延迟任务句柄
//
// 由 RunAfter 返回，用于取消尚未执行的延迟任务。
// 零值等价于 InvalidTaskHandle。
type TaskHandle struct {
	// Keys 引擎内部标识
	Keys [2]uint64
}

// InvalidTaskHandle 无效任务句柄
var InvalidTaskHandle = TaskHandle{}

// Valid 返回句柄是否有效
func (h TaskHandle) Valid() bool {
	return h != InvalidTaskHandle
}

// ============================================================================
//                              Engine 接口
// ============================================================================

// Engine 执行引擎接口
//
// 实现必须满足：
//   - Run 在任意 goroutine 上尽快执行回调，不得在调用方栈上同步执行
//   - RunAfter 在指定时长之后执行一次回调
//   - Cancel 尽力取消延迟任务，幂等；任务已执行或已取消时返回 false
type Engine interface {
	// Run 立即调度回调
	Run(fn func())

	// RunAfter 延迟调度回调，返回可取消的句柄
	RunAfter(d time.Duration, fn func()) TaskHandle

	// Cancel 取消延迟任务（幂等，尽力而为）
	Cancel(h TaskHandle) bool
}
