// Package slice 实现零拷贝字节切片族
package slice

import "sync/atomic"

// ============================================================================
//                              引用计数
// ============================================================================

// refCount 共享切片的引用计数
type refCount struct {
	n atomic.Int32
}

// newRefCount 创建计数为 1 的引用计数
func newRefCount() *refCount {
	rc := &refCount{}
	rc.n.Store(1)
	return rc
}

// noopRef 静态切片的哨兵计数：永不递增、永不释放
var noopRef = &refCount{}

// ============================================================================
//                              Slice
// ============================================================================

// Slice 不可变共享切片
//
// 所有权标记由内部引用计数指针表达：
//   - nil     借用视图，不跟踪所有权（调用方保证生命周期）
//   - noopRef 静态数据，永不释放，复制廉价
//   - 其他    引用计数共享，Ref 递增、Unref 递减
//
// 构造之后，字节内容不会通过本句柄被修改。
type Slice struct {
	data []byte
	ref  *refCount
}

// FromCopiedBuffer 复制字节构造切片（总是分配并复制）
func FromCopiedBuffer(b []byte) Slice {
	data := make([]byte, len(b))
	copy(data, b)
	return Slice{data: data, ref: newRefCount()}
}

// FromCopiedString 复制字符串构造切片
func FromCopiedString(s string) Slice {
	return FromCopiedBuffer([]byte(s))
}

// FromStaticBuffer 从静态生命周期的字节构造切片（不跟踪所有权，永不释放）
func FromStaticBuffer(b []byte) Slice {
	return Slice{data: b, ref: noopRef}
}

// FromStaticString 从静态字符串构造切片
func FromStaticString(s string) Slice {
	return Slice{data: []byte(s), ref: noopRef}
}

// FromBorrowed 借用外部字节构造视图
//
// 调用方保证字节在操作期间存活；本切片不参与任何所有权跟踪。
func FromBorrowed(b []byte) Slice {
	return Slice{data: b}
}

// Bytes 返回只读字节视图
//
// 调用方不得修改返回的字节。
func (s Slice) Bytes() []byte {
	return s.data
}

// String 返回字节的字符串复制
func (s Slice) String() string {
	return string(s.data)
}

// Len 返回切片长度
func (s Slice) Len() int {
	return len(s.data)
}

// Empty 返回切片是否为空
func (s Slice) Empty() bool {
	return len(s.data) == 0
}

// Equal 比较两个切片的字节内容
func (s Slice) Equal(o Slice) bool {
	if len(s.data) != len(o.data) {
		return false
	}
	for i := range s.data {
		if s.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// counted 返回切片是否为引用计数共享
func (s Slice) counted() bool {
	return s.ref != nil && s.ref != noopRef
}

// isUnique 返回计数切片当前是否唯一持有
//
// 这是一个即时快照；调用方必须保证没有并发的 Ref。
func (s Slice) isUnique() bool {
	return s.counted() && s.ref.n.Load() == 1
}

// Ref 共享复制：返回共享同一底层字节的新句柄
//
// 计数切片递增引用；借用与静态切片直接复用。
func (s Slice) Ref() Slice {
	if s.counted() {
		s.ref.n.Add(1)
	}
	return s
}

// Unref 释放本句柄持有的引用
//
// 仅对计数切片有效果；借用与静态切片为 no-op。
func (s *Slice) Unref() {
	if s.counted() {
		s.ref.n.Add(-1)
	}
	*s = Slice{}
}

// Copy 总是复制字节，返回独立的计数切片
func (s Slice) Copy() Slice {
	return FromCopiedBuffer(s.data)
}

// TakeOwned 返回拥有所有权的切片，可能消耗接收者以避免复制
//
// 借用视图与静态切片复制；计数切片直接移交（接收者被清空）。
func (s *Slice) TakeOwned() Slice {
	if !s.counted() {
		out := FromCopiedBuffer(s.data)
		*s = Slice{}
		return out
	}
	out := *s
	*s = Slice{}
	return out
}

// AsOwned 返回拥有所有权的切片，不修改接收者
//
// 借用视图与静态切片复制；计数切片增加一个引用。
func (s Slice) AsOwned() Slice {
	if !s.counted() {
		return FromCopiedBuffer(s.data)
	}
	return s.Ref()
}

// TakeUniquelyOwned 返回拥有且不共享的切片
//
// 与 TakeOwned 相同，但当计数切片存在其他引用时复制而非移交，
// 保证返回的切片不与任何其他句柄共享。
func (s *Slice) TakeUniquelyOwned() Slice {
	if !s.counted() {
		out := FromCopiedBuffer(s.data)
		*s = Slice{}
		return out
	}
	if s.isUnique() {
		out := *s
		*s = Slice{}
		return out
	}
	out := FromCopiedBuffer(s.data)
	s.Unref()
	return out
}

// TakeMutable 转换为唯一可变切片，接收者被清空
//
// 唯一可变切片要求底层字节只有一个引用。
// 计数切片唯一持有时直接移交；检测到共享时复制。
func (s *Slice) TakeMutable() MutableSlice {
	if s.counted() && s.isUnique() {
		out := MutableSlice{data: s.data}
		*s = Slice{}
		return out
	}
	data := make([]byte, len(s.data))
	copy(data, s.data)
	if s.counted() {
		s.Unref()
	} else {
		*s = Slice{}
	}
	return MutableSlice{data: data}
}

// Split 在 split 处切分，返回 [split:end) 的尾部，接收者保留 [0:split)
//
// 两个切片独立持有；计数切片共享底层字节（计数 +1），不复制。
func (s *Slice) Split(split int) Slice {
	tail := Slice{data: s.data[split:], ref: s.ref}
	if s.counted() {
		s.ref.n.Add(1)
	}
	s.data = s.data[:split]
	return tail
}

// TakeFirst 返回前 n 个字节，接收者保留其余部分
func (s *Slice) TakeFirst(n int) Slice {
	head := Slice{data: s.data[:n], ref: s.ref}
	if s.counted() {
		s.ref.n.Add(1)
	}
	s.data = s.data[n:]
	return head
}

// RefSubSlice 返回 [pos, pos+n) 子范围，增加一个底层引用
func (s Slice) RefSubSlice(pos, n int) Slice {
	out := Slice{data: s.data[pos : pos+n], ref: s.ref}
	if s.counted() {
		s.ref.n.Add(1)
	}
	return out
}
