package handshake

import (
	corehs "github.com/dep2p/go-handshake/internal/core/handshake"
)

// 根包重新导出核心错误,便于调用方用 errors.Is 判别终止原因
var (
	// ErrTimeout 截止时间到达,流水线被超时关闭
	ErrTimeout = corehs.ErrTimeout

	// ErrShutdown 流水线被外部 Shutdown 且无更具体的错误
	ErrShutdown = corehs.ErrShutdown

	// ErrNilEngine 创建管理器时未提供执行引擎
	ErrNilEngine = corehs.ErrNilEngine
)
