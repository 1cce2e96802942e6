// Package handshake 实现握手管理器
package handshake

import "errors"

var (
	// ErrNilEngine 执行引擎为空
	ErrNilEngine = errors.New("handshake: engine is nil")

	// ErrTimeout 握手在截止时间前未完成
	ErrTimeout = errors.New("handshake: timed out")

	// ErrShutdown 握手被关停（无更具体的错误时合成）
	ErrShutdown = errors.New("handshake: handshaker shutdown")
)
