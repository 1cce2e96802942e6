// Package handshake 定义握手步骤契约与握手状态
package handshake

import "time"

// ============================================================================
//                              Params
// ============================================================================

// Params 协商配置的只读快照
//
// 在编排开始时冻结，之后只读。这不是通用配置系统：
// 只提供步骤在握手期间需要的少量带类型取值。
type Params struct {
	values map[string]any
}

// NewParams 创建配置快照（复制传入的键值）
func NewParams(values map[string]any) *Params {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Params{values: copied}
}

// EmptyParams 返回空快照
func EmptyParams() *Params {
	return &Params{values: map[string]any{}}
}

// Len 返回键值数量
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.values)
}

// GetString 取字符串值
func (p *Params) GetString(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key].(string)
	return v, ok
}

// GetInt 取整数值
func (p *Params) GetInt(key string) (int, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.values[key].(int)
	return v, ok
}

// GetBool 取布尔值
func (p *Params) GetBool(key string) (bool, bool) {
	if p == nil {
		return false, false
	}
	v, ok := p.values[key].(bool)
	return v, ok
}

// GetDuration 取时长值
func (p *Params) GetDuration(key string) (time.Duration, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.values[key].(time.Duration)
	return v, ok
}

// GetObject 取任意对象
func (p *Params) GetObject(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}
