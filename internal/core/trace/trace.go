// Package trace 实现诊断跟踪节点
//
// 每次握手编排创建一个节点，沿途缓存事件。节点默认是短暂的：
// 只有 Commit 被调用（管理器仅在出错的 Finalize 路径上调用）
// 才会把事件输出到日志；未提交的节点随状态一起被丢弃，
// 成功路径因此几乎零开销。
package trace

import (
	"fmt"
	"sync"
	"time"

	pkgtrace "github.com/dep2p/go-handshake/pkg/interfaces/trace"
	"github.com/dep2p/go-handshake/pkg/lib/log"
	"github.com/google/uuid"
)

var logger = log.Logger("core/trace")

// 确保实现了接口
var (
	_ pkgtrace.Node    = (*Node)(nil)
	_ pkgtrace.Factory = (*Factory)(nil)
)

// ============================================================================
//                              Node
// ============================================================================

// event 单条跟踪事件
type event struct {
	at  time.Time
	msg string
}

// Node 跟踪节点
type Node struct {
	id   string
	desc string

	mu        sync.Mutex
	events    []event
	dropped   int
	committed bool

	maxEvents int
}

// AddEvent 记录一条格式化事件
//
// 超出容量上限时丢弃最旧的事件并累计丢弃数。
func (n *Node) AddEvent(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.committed {
		return
	}
	if len(n.events) >= n.maxEvents {
		n.events = n.events[1:]
		n.dropped++
	}
	n.events = append(n.events, event{
		at:  time.Now(),
		msg: fmt.Sprintf(format, args...),
	})
}

// Commit 提交节点，把缓存的事件输出到日志
//
// 幂等：重复提交为 no-op。
func (n *Node) Commit() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.committed {
		return
	}
	n.committed = true

	for _, ev := range n.events {
		logger.Info("trace event",
			"trace", n.id,
			"desc", n.desc,
			"at", ev.at,
			"event", ev.msg,
		)
	}
	if n.dropped > 0 {
		logger.Warn("trace events dropped", "trace", n.id, "dropped", n.dropped)
	}
	n.events = nil
}

// Committed 返回节点是否已提交
func (n *Node) Committed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.committed
}

// Events 返回当前缓存的事件文本（测试与诊断用）
func (n *Node) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, len(n.events))
	for i, ev := range n.events {
		out[i] = ev.msg
	}
	return out
}

// ============================================================================
//                              Factory
// ============================================================================

// Factory 跟踪节点工厂
type Factory struct {
	cfg Config
}

// NewFactory 创建工厂
func NewFactory(cfg Config) *Factory {
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = NewConfig().MaxEvents
	}
	return &Factory{cfg: cfg}
}

// NewNode 创建跟踪节点
func (f *Factory) NewNode(desc string) pkgtrace.Node {
	return &Node{
		id:        uuid.NewString(),
		desc:      desc,
		maxEvents: f.cfg.MaxEvents,
	}
}
