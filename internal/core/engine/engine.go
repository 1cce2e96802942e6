// Package engine 实现默认执行引擎
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	pkgengine "github.com/dep2p/go-handshake/pkg/interfaces/engine"
	"github.com/dep2p/go-handshake/pkg/lib/log"
)

var logger = log.Logger("core/engine")

// 确保实现了接口
var _ pkgengine.Engine = (*Engine)(nil)

// engineSeq 进程内引擎序号，用于区分不同引擎实例的句柄
var engineSeq atomic.Uint64

// Engine 默认执行引擎
type Engine struct {
	id  uint64
	clk clock.Clock

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]*clock.Timer
	closed bool
}

// New 创建执行引擎
func New(cfg Config) *Engine {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Engine{
		id:     engineSeq.Add(1),
		clk:    clk,
		timers: make(map[uint64]*clock.Timer),
	}
}

// Run 立即调度回调
//
// 回调在新 goroutine 上执行，永远不在调用方栈上同步执行。
func (e *Engine) Run(fn func()) {
	go fn()
}

// RunAfter 延迟调度回调
//
// 引擎已关闭时返回无效句柄，回调不会执行。
func (e *Engine) RunAfter(d time.Duration, fn func()) pkgengine.TaskHandle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		logger.Warn("RunAfter called on closed engine")
		return pkgengine.InvalidTaskHandle
	}

	e.nextID++
	id := e.nextID
	e.timers[id] = e.clk.AfterFunc(d, func() {
		// 先移除再执行，保证执行中/执行后的 Cancel 返回 false
		e.mu.Lock()
		_, live := e.timers[id]
		delete(e.timers, id)
		e.mu.Unlock()
		if live {
			fn()
		}
	})

	return pkgengine.TaskHandle{Keys: [2]uint64{e.id, id}}
}

// Cancel 取消延迟任务
//
// 幂等：任务已执行、已取消或句柄无效时返回 false。
func (e *Engine) Cancel(h pkgengine.TaskHandle) bool {
	if !h.Valid() || h.Keys[0] != e.id {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.timers[h.Keys[1]]
	if !ok {
		return false
	}
	delete(e.timers, h.Keys[1])
	t.Stop()
	return true
}

// Close 关闭引擎，取消所有尚未触发的延迟任务
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	for id, t := range e.timers {
		t.Stop()
		delete(e.timers, id)
	}
	return nil
}
