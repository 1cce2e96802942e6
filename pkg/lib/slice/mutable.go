// Package slice 实现零拷贝字节切片族
package slice

// ============================================================================
//                              MutableSlice
// ============================================================================

// MutableSlice 唯一所有权的可变切片
//
// 不变量：任何时刻都不存在两个可变句柄引用同一段底层字节。
// 构造路径保证这一点（构造即复制，或从唯一持有的 Slice 移交），
// 因此 Bytes 返回的字节可以安全地原地修改。
type MutableSlice struct {
	data []byte
}

// CreateUninitialized 分配 n 字节的可变切片（内容未初始化）
func CreateUninitialized(n int) MutableSlice {
	return MutableSlice{data: make([]byte, n)}
}

// MutableFromCopiedBuffer 复制字节构造可变切片
func MutableFromCopiedBuffer(b []byte) MutableSlice {
	data := make([]byte, len(b))
	copy(data, b)
	return MutableSlice{data: data}
}

// MutableFromCopiedString 复制字符串构造可变切片
func MutableFromCopiedString(s string) MutableSlice {
	return MutableSlice{data: []byte(s)}
}

// Bytes 返回可变字节
func (m MutableSlice) Bytes() []byte {
	return m.data
}

// Len 返回切片长度
func (m MutableSlice) Len() int {
	return len(m.data)
}

// Empty 返回切片是否为空
func (m MutableSlice) Empty() bool {
	return len(m.data) == 0
}

// String 返回字节的字符串复制
func (m MutableSlice) String() string {
	return string(m.data)
}

// TakeFirst 切出前 n 个字节，接收者保留其余部分
//
// 两个可变切片覆盖不相交的字节范围，唯一性不变量保持成立。
func (m *MutableSlice) TakeFirst(n int) MutableSlice {
	head := MutableSlice{data: m.data[:n]}
	m.data = m.data[n:]
	return head
}

// TakeSubSlice 切出 [pos, pos+n) 子范围，接收者被清空
func (m *MutableSlice) TakeSubSlice(pos, n int) MutableSlice {
	out := MutableSlice{data: m.data[pos : pos+n]}
	m.data = nil
	return out
}

// IntoSlice 冻结为不可变共享切片，接收者被清空
//
// 不复制：唯一所有权直接转为计数 1 的共享所有权。
func (m *MutableSlice) IntoSlice() Slice {
	out := Slice{data: m.data, ref: newRefCount()}
	m.data = nil
	return out
}
