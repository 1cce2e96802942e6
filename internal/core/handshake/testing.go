// Package handshake 实现握手管理器
package handshake

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	hsif "github.com/dep2p/go-handshake/pkg/interfaces/handshake"
	"github.com/dep2p/go-handshake/pkg/lib/slice"
)

// scriptedHandshaker 脚本化测试握手步骤
//
// 按字段配置完成行为：立即完成、延迟完成、失败、置提前退出标志、
// 产出预读字节、或永不完成（等待 Shutdown 驱动）。
type scriptedHandshaker struct {
	name string

	// err 完成时交付的错误（nil 为成功）
	err error

	// delay 延迟完成时长（0 为立即完成）
	delay time.Duration

	// exitEarly 完成前置位提前退出标志
	exitEarly bool

	// readAhead 完成前追加到预读缓冲区的字节
	readAhead []byte

	// neverComplete 不主动完成，等待 Shutdown 交付
	neverComplete bool

	// record 完成顺序记录器（可选）
	record *stepRecord

	mu            sync.Mutex
	pendingArgs   *hsif.Args
	pendingOnDone func(error)

	started       atomic.Int32
	shutdownCalls atomic.Int32
}

// 确保实现了接口
var _ hsif.Handshaker = (*scriptedHandshaker)(nil)

func (s *scriptedHandshaker) Name() string {
	return s.name
}

func (s *scriptedHandshaker) DoHandshake(args *hsif.Args, onDone func(error)) {
	s.started.Add(1)

	if s.neverComplete {
		s.mu.Lock()
		s.pendingArgs = args
		s.pendingOnDone = onDone
		s.mu.Unlock()
		return
	}

	complete := func() {
		if len(s.readAhead) > 0 {
			args.ReadBuffer.Append(slice.FromCopiedBuffer(s.readAhead))
		}
		if s.exitEarly {
			args.ExitEarly = true
		}
		if s.record != nil {
			s.record.add(s.name)
		}
		onDone(s.err)
	}

	if s.delay > 0 {
		args.Engine.RunAfter(s.delay, complete)
		return
	}
	args.Engine.Run(complete)
}

func (s *scriptedHandshaker) Shutdown(err error) {
	s.shutdownCalls.Add(1)

	s.mu.Lock()
	args, onDone := s.pendingArgs, s.pendingOnDone
	s.pendingArgs, s.pendingOnDone = nil, nil
	s.mu.Unlock()

	// 悬挂的完成回调必须最终交付
	if onDone != nil {
		hsif.InvokeOnDone(args, onDone, err)
	}
}

// Started 返回 DoHandshake 被调用的次数
func (s *scriptedHandshaker) Started() int {
	return int(s.started.Load())
}

// ShutdownCalls 返回 Shutdown 被调用的次数
func (s *scriptedHandshaker) ShutdownCalls() int {
	return int(s.shutdownCalls.Load())
}

// stepRecord 完成顺序记录器
type stepRecord struct {
	mu    sync.Mutex
	names []string
}

func (r *stepRecord) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

func (r *stepRecord) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// closeTrackingConn 记录 Close 调用的连接包装
type closeTrackingConn struct {
	net.Conn
	closed atomic.Int32
}

func (c *closeTrackingConn) Close() error {
	c.closed.Add(1)
	return c.Conn.Close()
}

func (c *closeTrackingConn) Closed() bool {
	return c.closed.Load() > 0
}
