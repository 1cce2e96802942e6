// Package engine 实现默认执行引擎
package engine

import (
	"context"
	"time"
)

// contextWithTestTimeout 创建测试用的超时上下文
func contextWithTestTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
