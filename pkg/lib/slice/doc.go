// Package slice 实现零拷贝字节切片族
//
// # 概述
//
// slice 提供三种所有权语义明确的字节范围封装，
// 用于握手步骤之间零拷贝传递字节数据：
//
//   - Slice        - 不可变共享切片。所有权标记为借用（不跟踪）、
//     静态（永不释放）或引用计数（共享时计数递增）。
//   - StaticSlice  - 静态切片。永不拥有、复制廉价，
//     用于编译期常量数据。
//   - MutableSlice - 唯一所有权切片。保证底层字节只有一个持有者，
//     因此可以安全地原地修改。
//
// # 所有权转换
//
// 三种切片之间的转换都是显式的，复制成本由函数契约说明：
//
//   - TakeOwned         - 可能消耗源切片以避免复制
//   - AsOwned           - 不修改源切片，可能增加引用或复制
//   - TakeUniquelyOwned - 保证结果不共享，检测到共享时复制
//   - TakeMutable       - 仅在检测到共享时才复制
//
// 唯一性判断（引用计数是否恰好为 1）是天然的运行时检查，
// 被隔离在上述转换原语内部，不对外暴露。
//
// # 使用示例
//
//	s := slice.FromCopiedString("hello")
//	shared := s.Ref()            // 共享，计数 +1
//	m := s.TakeMutable()         // 检测到共享，强制复制
//	m.Bytes()[0] = 'H'           // 修改不影响 shared
//
// # 并发安全
//
// 引用计数使用原子操作，Ref/Unref 可跨 goroutine 调用；
// 单个 Slice 值本身不是并发安全的，不应跨 goroutine 共享同一个句柄。
package slice
