// Package slice 实现零拷贝字节切片族
package slice

// ============================================================================
//                              StaticSlice
// ============================================================================

// StaticSlice 静态切片
//
// 封装生命周期为整个进程的常量字节：永不拥有、永不释放，
// 复制只是结构体赋值，没有任何计数开销。
type StaticSlice struct {
	data []byte
}

// StaticFromBuffer 从静态字节构造（不分配）
func StaticFromBuffer(b []byte) StaticSlice {
	return StaticSlice{data: b}
}

// StaticFromString 从静态字符串构造
func StaticFromString(s string) StaticSlice {
	return StaticSlice{data: []byte(s)}
}

// Bytes 返回只读字节视图
func (s StaticSlice) Bytes() []byte {
	return s.data
}

// Len 返回切片长度
func (s StaticSlice) Len() int {
	return len(s.data)
}

// Empty 返回切片是否为空
func (s StaticSlice) Empty() bool {
	return len(s.data) == 0
}

// String 返回字节的字符串复制
func (s StaticSlice) String() string {
	return string(s.data)
}

// AsSlice 视为不可变共享切片（静态所有权标记，复制廉价）
func (s StaticSlice) AsSlice() Slice {
	return Slice{data: s.data, ref: noopRef}
}
