package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给单个后台服务的生命周期控制器。
type Handle struct {
	ctx context.Context
	// Close 通知Manager该服务已经退出。
	// 服务Goroutine应当在退出前通过defer调用它。
	Close func()
}

// Ctx 返回Handle关联的上下文。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，管理器广播停机信号时它会被关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()关闭后返回上下文被取消的原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 休眠指定时长；若期间收到停机信号则提前返回上下文错误。
// 后台循环中的所有休眠都应该用它，而不是time.Sleep。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
