// Package handshake 实现握手管理器
package handshake

import (
	"fmt"
	"net"
	"sync"
	"time"

	pkgengine "github.com/dep2p/go-handshake/pkg/interfaces/engine"
	hsif "github.com/dep2p/go-handshake/pkg/interfaces/handshake"
	pkgtrace "github.com/dep2p/go-handshake/pkg/interfaces/trace"
	"github.com/dep2p/go-handshake/pkg/lib/log"
	"github.com/dep2p/go-handshake/pkg/lib/slice"
)

var logger = log.Logger("core/handshake")

// Manager 握手管理器
//
// 持有按注册顺序排列的步骤列表、推进游标、关停标志、
// 截止定时器句柄和只能移出一次的终止回调。
// 所有状态转换在 mu 下线性化。
type Manager struct {
	eng          pkgengine.Engine
	traceFactory pkgtrace.Factory

	mu            sync.Mutex
	handshakers   []hsif.Handshaker
	index         int
	started       bool
	isShutdown    bool
	done          bool
	deadlineTimer pkgengine.TaskHandle
	onDone        hsif.DoneFunc
	args          hsif.Args
}

// NewManager 创建握手管理器
func NewManager(eng pkgengine.Engine, cfg Config) (*Manager, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	tf := cfg.TraceFactory
	if tf == nil {
		tf = pkgtrace.NoopFactory()
	}
	return &Manager{
		eng:          eng,
		traceFactory: tf,
	}, nil
}

// Add 注册握手步骤
//
// 只能在 Start 之前调用；编排开始后列表不可变。
func (m *Manager) Add(h hsif.Handshaker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		panic("handshake: Add called after Start")
	}
	logger.Debug("adding handshaker",
		"manager", fmt.Sprintf("%p", m),
		"name", h.Name(),
		"index", len(m.handshakers),
	)
	m.handshakers = append(m.handshakers, h)
}

// Start 开始编排
//
// 连接所有权移入管理器；onDone 恰好被调用一次，且总是经执行引擎
// 调度，永不在本调用的栈上执行。重复调用是编程错误（panic）。
func (m *Manager) Start(
	conn net.Conn,
	params *hsif.Params,
	deadline time.Time,
	acceptor *hsif.Acceptor,
	onDone hsif.DoneFunc,
) {
	// 在释放锁之前持有本地强引用：终止回调可能在本函数返回前
	// 就在其他 goroutine 上运行并释放对管理器的最后一个外部引用，
	// 异步闭包一律捕获 self 以延长管理器生命周期。
	self := m
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		panic("handshake: Start called twice")
	}
	m.started = true
	m.onDone = onDone

	// 构造握手状态：贯穿所有步骤，最终被终止回调消费
	if params == nil {
		params = hsif.EmptyParams()
	}
	m.args.Conn = conn
	m.args.Params = params
	m.args.ReadBuffer = slice.NewBuffer()
	m.args.Deadline = deadline
	m.args.Engine = m.eng
	m.args.Trace = m.traceFactory.NewNode(fmt.Sprintf("handshake manager %p", m))

	// 接受方已经读到的字节整体换入预读缓冲区
	if acceptor != nil && acceptor.ExternalConnection && acceptor.PendingData != nil {
		m.args.ReadBuffer.Swap(acceptor.PendingData)
	}

	// 武装截止定时器
	m.deadlineTimer = m.eng.RunAfter(time.Until(deadline), func() {
		self.Shutdown(ErrTimeout)
	})

	// 调度第一个步骤
	m.callNextLocked(nil)
}

// Shutdown 关停编排（幂等，可从任意 goroutine 调用）
//
// 只转发给正在执行的步骤：更早的步骤已结束，更晚的步骤永远不会
// 开始。不直接触发终止回调——依赖该步骤的完成回调推进到 Finalize。
func (m *Manager) Shutdown(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isShutdown {
		return
	}
	m.isShutdown = true
	if m.args.Trace != nil {
		m.args.Trace.AddEvent("shutdown called: %v", err)
	}
	if m.index > 0 {
		if m.args.Trace != nil {
			m.args.Trace.AddEvent("shutting down handshaker at index %d", m.index-1)
		}
		m.handshakers[m.index-1].Shutdown(err)
	}
}

// callNextLocked 状态机的唯一推进函数
//
// 三个触发点（Start、步骤完成、以及经由步骤完成间接到达的
// 超时/关停）都汇入这里；调用方必须持有 mu。
func (m *Manager) callNextLocked(err error) {
	// Finalize 之后一切转换都是 no-op
	if m.done {
		return
	}

	logger.Debug("call next handshaker",
		"manager", fmt.Sprintf("%p", m),
		"error", err,
		"shutdown", m.isShutdown,
		"index", m.index,
		"args", m.argsStringLocked(),
	)
	if m.index > len(m.handshakers) {
		panic("handshake: handshaker index out of range")
	}

	// 出错、已关停、提前退出或步骤用尽：进入 Finalize
	if err != nil || m.isShutdown || m.args.ExitEarly || m.index == len(m.handshakers) {
		m.finalizeLocked(err)
		return
	}

	// 调度下一个步骤
	h := m.handshakers[m.index]
	m.args.Trace.AddEvent("calling handshaker %s at index %d", h.Name(), m.index)
	m.index++

	self := m
	h.DoHandshake(&m.args, func(err error) {
		self.mu.Lock()
		defer self.mu.Unlock()
		self.callNextLocked(err)
	})
}

// finalizeLocked 终止转换：恰好进入一次
//
// 取消截止定时器，裁定最终结果，释放连接资源恰好一次，
// 并把终止回调调度到执行引擎上（锁内永不调用回调本身）。
func (m *Manager) finalizeLocked(err error) {
	// 无显式错误但已关停：合成关停错误，连接不再安全移交
	if err == nil && m.isShutdown {
		err = ErrShutdown
	}

	// 连接资源恰好释放一次：失败由管理器销毁，成功移交调用方
	if err != nil && m.args.Conn != nil {
		if cerr := m.args.Conn.Close(); cerr != nil {
			logger.Warn("closing connection after failed handshake", "error", cerr)
		}
		m.args.Conn = nil
	}

	// 出错时提交跟踪节点，使事件可供事后检查；成功路径保持短暂
	if err != nil {
		m.args.Trace.AddEvent("failed with error: %v", err)
		m.args.Trace.Commit()
	}

	// 取消截止定时器（已触发或已取消时为 no-op）
	m.eng.Cancel(m.deadlineTimer)

	m.isShutdown = true
	m.done = true

	// 终止回调移出后调度到引擎上执行，调度后立即丢弃，
	// 使回调捕获的资源尽早释放
	onDone := m.onDone
	m.onDone = nil
	if err != nil {
		m.eng.Run(func() {
			onDone(nil, err)
		})
		return
	}
	args := &m.args
	m.eng.Run(func() {
		onDone(args, nil)
	})
}

// argsStringLocked 格式化握手状态（日志用）；调用方必须持有 mu
func (m *Manager) argsStringLocked() string {
	readLen := 0
	if m.args.ReadBuffer != nil {
		readLen = m.args.ReadBuffer.Len()
	}
	return fmt.Sprintf("{conn=%v, readBuffer.Len()=%d, exitEarly=%v}",
		m.args.Conn != nil, readLen, m.args.ExitEarly)
}
