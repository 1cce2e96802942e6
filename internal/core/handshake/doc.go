// Package handshake 实现握手管理器
//
// # 概述
//
// 握手管理器驱动一条新建连接按序通过一组可插拔的协商步骤
// （安全协商、代理协议探测、能力交换等），然后把连接移交给上层。
// 它拥有三方竞争的裁决权：步骤完成、截止定时器、外部关停，
// 三者可能从不同 goroutine 并发到达，但终止回调恰好交付一次。
//
// # 状态机
//
//	Idle ──Start──▶ Running[i] ──完成/出错/超时/关停──▶ Done
//
// 转换规则：
//
//  1. Start：移入连接、冻结配置快照、武装截止定时器，
//     随后以 ok 状态调度第 0 个步骤。重入是编程错误（panic）。
//  2. 步骤完成：出错、已关停、提前退出标志置位、或步骤用尽时
//     进入 Finalize；否则推进游标调度下一个步骤。
//  3. 外部关停：标记关停并只转发给正在执行的步骤
//     （更早的步骤已结束，更晚的步骤永远不会开始）；
//     不直接触发终止回调，依赖该步骤的完成回调走规则 2。
//  4. Finalize（恰好进入一次）：取消截止定时器；无显式错误但已
//     关停时合成关停错误并销毁连接；出错时提交跟踪节点并关闭连接；
//     把终止回调调度到执行引擎上（永不内联），随后丢弃回调。
//     此后一切转换都是 no-op。
//
// # 并发模型
//
// 所有转换在单个互斥锁下线性化；锁内永不调用终止回调
// （经执行引擎调度到锁外），避免回调同步重入造成死锁。
// 异步闭包（定时器、步骤完成）持有对管理器的强引用，
// 管理器的生命周期由此延长到最后一个闭包执行完毕。
//
// # 失败语义
//
// 管理器从不重试步骤（重试是步骤自身的策略）。它的契约是：
// 恰好交付一个终止结果；连接资源恰好释放一次（成功移交给调用方，
// 失败由管理器关闭）；终止回调永不在 Start 的调用栈上执行。
//
// # 使用示例
//
//	mgr, _ := handshake.NewManager(eng, handshake.NewConfig())
//	mgr.Add(securityStep)
//	mgr.Add(capabilityStep)
//	mgr.Start(conn, params, time.Now().Add(30*time.Second), nil,
//	    func(args *hsif.Args, err error) {
//	        if err != nil {
//	            // 连接已被管理器关闭
//	            return
//	        }
//	        serve(args.Conn, args.ReadBuffer)
//	    })
//
// # Fx 集成
//
//	fx.Module("handshake",
//	    fx.Provide(handshake.ProvideFactory),
//	)
package handshake
