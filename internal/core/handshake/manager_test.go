package handshake

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dep2p/go-handshake/internal/core/engine"
	hsif "github.com/dep2p/go-handshake/pkg/interfaces/handshake"
	"github.com/dep2p/go-handshake/pkg/lib/slice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handshakeResult 终止回调结果
type handshakeResult struct {
	args *hsif.Args
	err  error
}

// startAndWait 启动编排并等待终止回调
func startAndWait(
	t *testing.T,
	m *Manager,
	conn net.Conn,
	deadline time.Time,
	acceptor *hsif.Acceptor,
) handshakeResult {
	t.Helper()

	ch := make(chan handshakeResult, 1)
	m.Start(conn, nil, deadline, acceptor, func(args *hsif.Args, err error) {
		ch <- handshakeResult{args: args, err: err}
	})

	select {
	case res := <-ch:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("terminal callback not invoked")
		return handshakeResult{}
	}
}

// farDeadline 远期截止时间
func farDeadline() time.Time {
	return time.Now().Add(time.Minute)
}

// TestManager_AllSucceed 测试全部步骤成功的顺序与连接移交
func TestManager_AllSucceed(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	record := &stepRecord{}
	a := &scriptedHandshaker{name: "a", delay: time.Millisecond, record: record}
	b := &scriptedHandshaker{name: "b", record: record}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)
	m.Add(b)

	client, server := net.Pipe()
	defer client.Close()

	res := startAndWait(t, m, server, farDeadline(), nil)
	require.NoError(t, res.err)
	require.NotNil(t, res.args)

	// 连接句柄原样移交，不经过任何包装
	assert.Same(t, server, res.args.Conn)

	// 步骤严格按注册顺序执行，终止回调在最后一个步骤之后
	assert.Equal(t, []string{"a", "b"}, record.list())
	assert.Equal(t, 1, a.Started())
	assert.Equal(t, 1, b.Started())

	res.args.Conn.Close()
}

// TestManager_StepFailure 测试步骤失败后停止调度并原样传播错误
func TestManager_StepFailure(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	badCert := errors.New("bad cert")
	a := &scriptedHandshaker{name: "a"}
	b := &scriptedHandshaker{name: "b", err: badCert}
	c := &scriptedHandshaker{name: "c"}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)
	m.Add(b)
	m.Add(c)

	client, server := net.Pipe()
	defer client.Close()
	conn := &closeTrackingConn{Conn: server}

	res := startAndWait(t, m, conn, farDeadline(), nil)

	// 错误原样到达终止回调
	require.ErrorIs(t, res.err, badCert)
	assert.Nil(t, res.args)

	// 失败步骤之后的步骤永远不会启动
	assert.Equal(t, 0, c.Started())

	// 连接由管理器释放，而不是交还调用方
	assert.True(t, conn.Closed())
}

// TestManager_EmptyPipeline 测试空步骤列表直接成功
func TestManager_EmptyPipeline(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)

	client, server := net.Pipe()
	defer client.Close()

	res := startAndWait(t, m, server, farDeadline(), nil)
	require.NoError(t, res.err)
	assert.Same(t, server, res.args.Conn)
	res.args.Conn.Close()
}

// TestManager_ExitEarly 测试提前退出标志短路后续步骤
func TestManager_ExitEarly(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	a := &scriptedHandshaker{name: "a", exitEarly: true}
	b := &scriptedHandshaker{name: "b"}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)
	m.Add(b)

	client, server := net.Pipe()
	defer client.Close()

	res := startAndWait(t, m, server, farDeadline(), nil)
	require.NoError(t, res.err)
	require.NotNil(t, res.args)
	assert.True(t, res.args.ExitEarly)

	// 提前退出：成功结束但 b 从未启动
	assert.Equal(t, 0, b.Started())
	res.args.Conn.Close()
}

// TestManager_Deadline 测试截止时间触发超时错误
func TestManager_Deadline(t *testing.T) {
	mock := clock.NewMock()
	eng := engine.New(engine.Config{Clock: mock})
	defer eng.Close()

	a := &scriptedHandshaker{name: "a", neverComplete: true}
	b := &scriptedHandshaker{name: "b"}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)
	m.Add(b)

	client, server := net.Pipe()
	defer client.Close()
	conn := &closeTrackingConn{Conn: server}

	ch := make(chan handshakeResult, 1)
	m.Start(conn, nil, time.Now().Add(10*time.Millisecond), nil,
		func(args *hsif.Args, err error) {
			ch <- handshakeResult{args: args, err: err}
		})

	// 推进 mock 时钟越过截止时间
	mock.Add(20 * time.Millisecond)

	var res handshakeResult
	select {
	case res = <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("terminal callback not invoked after deadline")
	}

	require.ErrorIs(t, res.err, ErrTimeout)
	assert.Nil(t, res.args)

	// 进行中的步骤收到 Shutdown；关停之后没有步骤再启动
	assert.Equal(t, 1, a.ShutdownCalls())
	assert.Equal(t, 0, b.Started())
	assert.True(t, conn.Closed())
}

// TestManager_ShutdownSynthesizesError 测试关停时合成关停错误
func TestManager_ShutdownSynthesizesError(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	a := &scriptedHandshaker{name: "a", delay: 5 * time.Millisecond}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)

	client, server := net.Pipe()
	defer client.Close()
	conn := &closeTrackingConn{Conn: server}

	ch := make(chan handshakeResult, 1)
	m.Start(conn, nil, farDeadline(), nil, func(args *hsif.Args, err error) {
		ch <- handshakeResult{args: args, err: err}
	})
	m.Shutdown(errors.New("caller cancelled"))

	var res handshakeResult
	select {
	case res = <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("terminal callback not invoked after shutdown")
	}

	// 步骤本身成功完成，但管理器已关停：合成关停错误并销毁连接
	require.ErrorIs(t, res.err, ErrShutdown)
	assert.Nil(t, res.args)
	assert.True(t, conn.Closed())
}

// TestManager_ShutdownIdempotent 测试重复关停没有额外效果
func TestManager_ShutdownIdempotent(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	a := &scriptedHandshaker{name: "a", neverComplete: true}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)

	client, server := net.Pipe()
	defer client.Close()

	ch := make(chan handshakeResult, 1)
	m.Start(server, nil, farDeadline(), nil, func(args *hsif.Args, err error) {
		ch <- handshakeResult{args: args, err: err}
	})

	cancelled := errors.New("cancelled")
	m.Shutdown(cancelled)
	m.Shutdown(errors.New("second"))
	m.Shutdown(errors.New("third"))

	var res handshakeResult
	select {
	case res = <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("terminal callback not invoked")
	}
	require.ErrorIs(t, res.err, cancelled)

	// 第一次关停之后的调用（包括 Finalize 之后）都是 no-op
	assert.Equal(t, 1, a.ShutdownCalls())
	m.Shutdown(errors.New("after done"))
	assert.Equal(t, 1, a.ShutdownCalls())

	// 终止回调没有第二次交付
	select {
	case <-ch:
		t.Fatal("terminal callback invoked twice")
	case <-time.After(20 * time.Millisecond):
	}
}

// TestManager_ShutdownBeforeStart 测试先关停后启动
func TestManager_ShutdownBeforeStart(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	a := &scriptedHandshaker{name: "a"}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)

	m.Shutdown(errors.New("early cancel"))

	client, server := net.Pipe()
	defer client.Close()
	conn := &closeTrackingConn{Conn: server}

	res := startAndWait(t, m, conn, farDeadline(), nil)

	// 管道被踢动后立即走关停分支
	require.ErrorIs(t, res.err, ErrShutdown)
	assert.Equal(t, 0, a.Started())
	assert.True(t, conn.Closed())
}

// TestManager_PendingData 测试接受方待处理字节换入预读缓冲区
func TestManager_PendingData(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)

	pending := slice.NewBuffer()
	pending.Append(slice.FromCopiedString("GET / HTTP/1.1"))
	acceptor := &hsif.Acceptor{
		FromListener:       true,
		ExternalConnection: true,
		PendingData:        pending,
	}

	client, server := net.Pipe()
	defer client.Close()

	res := startAndWait(t, m, server, farDeadline(), acceptor)
	require.NoError(t, res.err)

	assert.Equal(t, []byte("GET / HTTP/1.1"), res.args.ReadBuffer.TakeBytes())
	assert.True(t, pending.Empty())
	res.args.Conn.Close()
}

// TestManager_ReadAheadAccumulates 测试步骤产出的预读字节到达终止回调
func TestManager_ReadAheadAccumulates(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	a := &scriptedHandshaker{name: "a", readAhead: []byte("tls-rest")}
	b := &scriptedHandshaker{name: "b", readAhead: []byte("alpn-rest")}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)
	m.Add(b)

	client, server := net.Pipe()
	defer client.Close()

	res := startAndWait(t, m, server, farDeadline(), nil)
	require.NoError(t, res.err)
	assert.Equal(t, []byte("tls-restalpn-rest"), res.args.ReadBuffer.TakeBytes())
	res.args.Conn.Close()
}

// TestManager_Params 测试配置快照贯穿所有步骤
func TestManager_Params(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)

	client, server := net.Pipe()
	defer client.Close()

	params := hsif.NewParams(map[string]any{
		"server.name": "example.com",
		"timeout":     3 * time.Second,
	})

	ch := make(chan handshakeResult, 1)
	m.Start(server, params, farDeadline(), nil, func(args *hsif.Args, err error) {
		ch <- handshakeResult{args: args, err: err}
	})

	res := <-ch
	require.NoError(t, res.err)

	name, ok := res.args.Params.GetString("server.name")
	require.True(t, ok)
	assert.Equal(t, "example.com", name)

	d, ok := res.args.Params.GetDuration("timeout")
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, d)
	res.args.Conn.Close()
}

// TestManager_StartTwicePanics 测试重入 Start 是编程错误
func TestManager_StartTwicePanics(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)

	client, server := net.Pipe()
	defer client.Close()

	res := startAndWait(t, m, server, farDeadline(), nil)
	require.NoError(t, res.err)
	res.args.Conn.Close()

	assert.Panics(t, func() {
		m.Start(server, nil, farDeadline(), nil, func(*hsif.Args, error) {})
	})
}

// TestManager_AddAfterStartPanics 测试启动后注册步骤是编程错误
func TestManager_AddAfterStartPanics(t *testing.T) {
	eng := engine.New(engine.NewConfig())
	defer eng.Close()

	a := &scriptedHandshaker{name: "a", neverComplete: true}

	m, err := NewManager(eng, NewConfig())
	require.NoError(t, err)
	m.Add(a)

	client, server := net.Pipe()
	defer client.Close()
	m.Start(server, nil, farDeadline(), nil, func(*hsif.Args, error) {})

	assert.Panics(t, func() {
		m.Add(&scriptedHandshaker{name: "late"})
	})

	m.Shutdown(ErrShutdown)
}

// TestManager_NilEngine 测试空引擎被拒绝
func TestManager_NilEngine(t *testing.T) {
	_, err := NewManager(nil, NewConfig())
	assert.ErrorIs(t, err, ErrNilEngine)
}
