// Package slice 实现零拷贝字节切片族
package slice

// ============================================================================
//                              Buffer
// ============================================================================

// Buffer 切片缓冲区
//
// 有序的切片序列，用于累积握手步骤产出但尚未消费的预读字节。
// 追加与弹出都不复制字节，只移动所有权。
//
// 注意：Buffer 不是并发安全的。
type Buffer struct {
	slices []Slice
	length int
}

// NewBuffer 创建空缓冲区
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append 追加切片（所有权移入缓冲区）
func (b *Buffer) Append(s Slice) {
	b.length += s.Len()
	b.slices = append(b.slices, s)
}

// AppendCopied 复制字节后追加
func (b *Buffer) AppendCopied(bs []byte) {
	b.Append(FromCopiedBuffer(bs))
}

// Len 返回缓冲区内的字节总数
func (b *Buffer) Len() int {
	return b.length
}

// Count 返回缓冲区内的切片数量
func (b *Buffer) Count() int {
	return len(b.slices)
}

// Empty 返回缓冲区是否为空
func (b *Buffer) Empty() bool {
	return b.length == 0
}

// TakeFirst 弹出第一个切片（所有权移出缓冲区）
//
// 缓冲区为空时返回空切片。
func (b *Buffer) TakeFirst() Slice {
	if len(b.slices) == 0 {
		return Slice{}
	}
	out := b.slices[0]
	b.slices = b.slices[1:]
	b.length -= out.Len()
	return out
}

// Swap 交换两个缓冲区的内容
//
// 用于把 acceptor 携带的待处理数据整体移入握手状态的预读缓冲区。
func (b *Buffer) Swap(o *Buffer) {
	b.slices, o.slices = o.slices, b.slices
	b.length, o.length = o.length, b.length
}

// Reset 清空缓冲区，释放所有持有的引用
func (b *Buffer) Reset() {
	for i := range b.slices {
		b.slices[i].Unref()
	}
	b.slices = b.slices[:0]
	b.length = 0
}

// JoinInto 把本缓冲区的全部切片按序移入 dst，本缓冲区清空
//
// 只移动所有权，不复制字节。
func (b *Buffer) JoinInto(dst *Buffer) {
	dst.slices = append(dst.slices, b.slices...)
	dst.length += b.length
	b.slices = b.slices[:0]
	b.length = 0
}

// Concat 连接所有切片为一个新的计数切片（复制）
//
// 缓冲区内容保持不变。
func (b *Buffer) Concat() Slice {
	m := CreateUninitialized(b.length)
	off := 0
	for _, s := range b.slices {
		off += copy(m.Bytes()[off:], s.Bytes())
	}
	return m.IntoSlice()
}

// TakeBytes 取出全部字节为一个连续副本并清空缓冲区
func (b *Buffer) TakeBytes() []byte {
	out := make([]byte, 0, b.length)
	for i := range b.slices {
		out = append(out, b.slices[i].Bytes()...)
		b.slices[i].Unref()
	}
	b.slices = b.slices[:0]
	b.length = 0
	return out
}
