// Package handshake 提供一个通用的连接握手流水线。
//
// 核心是 Manager:它按添加顺序依次驱动一组 Handshaker 步骤,
// 对同一条底层连接逐步完成协商,并在流水线结束时通过一次性的
// 完成回调把结果(或错误)交还给调用方。所有状态转移都在互斥锁
// 下线性化,因此步骤完成、超时与外部 Shutdown 可以安全并发。
//
// 步骤之间通过 Args 传递连接与协商状态:net.Conn 可以被步骤替换
// (例如套上一层加密传输),ReadBuffer 累积步骤多读到的字节,
// Params 携带不可变的配置快照。
//
// 基本用法:
//
//	eng := handshake.NewDefaultEngine()
//	defer eng.Close()
//
//	mgr, err := handshake.NewManager(eng, handshake.NewConfig())
//	if err != nil {
//		// ...
//	}
//	mgr.Add(first)
//	mgr.Add(second)
//	mgr.Start(conn, params, deadline, nil, func(args *handshake.Args, err error) {
//		// 恰好被调用一次
//	})
//
// 依赖注入场景下,Module 返回可嵌入 Fx 应用的聚合模块。
package handshake
