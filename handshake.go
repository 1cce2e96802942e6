package handshake

import (
	coreengine "github.com/dep2p/go-handshake/internal/core/engine"
	corehs "github.com/dep2p/go-handshake/internal/core/handshake"
	coretrace "github.com/dep2p/go-handshake/internal/core/trace"
	pkgengine "github.com/dep2p/go-handshake/pkg/interfaces/engine"
	hsif "github.com/dep2p/go-handshake/pkg/interfaces/handshake"
	pkgtrace "github.com/dep2p/go-handshake/pkg/interfaces/trace"
)

// Version 是当前库版本
const Version = "v0.1.0"

// ============================================================================
// 类型别名:调用方只需导入根包即可使用完整 API
// ============================================================================

type (
	// Manager 按顺序驱动握手步骤的编排器
	Manager = corehs.Manager

	// Factory 创建共享同一执行引擎与追踪工厂的管理器
	Factory = corehs.Factory

	// Config 管理器配置
	Config = corehs.Config

	// Handshaker 单个握手步骤
	Handshaker = hsif.Handshaker

	// Args 贯穿流水线的握手状态
	Args = hsif.Args

	// DoneFunc 流水线终止回调
	DoneFunc = hsif.DoneFunc

	// Acceptor 服务端接受路径的元信息
	Acceptor = hsif.Acceptor

	// Params 不可变的握手参数快照
	Params = hsif.Params

	// Engine 异步任务执行引擎
	Engine = pkgengine.Engine

	// TaskHandle 定时任务句柄
	TaskHandle = pkgengine.TaskHandle

	// DefaultEngine 基于 goroutine 与真实时钟的默认引擎实现
	DefaultEngine = coreengine.Engine

	// TraceNode 单条握手的追踪节点
	TraceNode = pkgtrace.Node

	// TraceFactory 追踪节点工厂
	TraceFactory = pkgtrace.Factory
)

// InvalidTaskHandle 表示未调度的定时任务
var InvalidTaskHandle = pkgengine.InvalidTaskHandle

// ============================================================================
// 构造函数
// ============================================================================

// NewManager 创建握手管理器
//
// eng 不可为 nil;cfg 通常来自 NewConfig()。
func NewManager(eng Engine, cfg Config) (*Manager, error) {
	return corehs.NewManager(eng, cfg)
}

// NewConfig 返回默认管理器配置(无操作追踪)
func NewConfig() Config {
	return corehs.NewConfig()
}

// NewDefaultEngine 创建默认执行引擎
//
// 使用完毕后应调用 Close 释放未触发的定时器。
func NewDefaultEngine() *DefaultEngine {
	return coreengine.New(coreengine.NewConfig())
}

// NewTraceFactory 创建把已提交节点写入日志的追踪工厂
func NewTraceFactory() TraceFactory {
	return coretrace.NewFactory(coretrace.NewConfig())
}

// NewParams 创建参数快照;传入的映射会被复制
func NewParams(values map[string]any) *Params {
	return hsif.NewParams(values)
}

// EmptyParams 返回空参数快照
func EmptyParams() *Params {
	return hsif.EmptyParams()
}

// InvokeOnDone 经执行引擎调度步骤完成回调
//
// Handshaker 实现应通过本函数交付结果,保证回调不在调用方栈上执行。
func InvokeOnDone(args *Args, onDone func(error), err error) {
	hsif.InvokeOnDone(args, onDone, err)
}

// NoopTraceFactory 返回丢弃所有事件的追踪工厂
func NoopTraceFactory() TraceFactory {
	return pkgtrace.NoopFactory()
}
