package anim

// Stepper 是可以被时间推进的对象。*Animation 实现了它。
type Stepper interface {
	Step(dt float64)
}

// Scheduler 是外部步进调度器的契约。
// Animation 在 Start 时订阅、运行结束（完成或停止）时立即退订；
// 订阅关系只在 running 期间存在，反复 Start/Stop 不会累积监听器。
//
// 本包不提供进程级默认实例：调度器是显式注入的依赖，
// 由调用方创建并持有，避免跨测试泄漏。
type Scheduler interface {
	Subscribe(s Stepper)
	Unsubscribe(s Stepper)
}

// Clock 是 Scheduler 的具体实现：一个扇出式时钟。
// 渲染循环每帧调用一次 Advance(dt)，把 dt 广播给全部订阅者。
// 测试里也用它手动推进时间。
//
// Clock 不是并发安全的，与引擎一样假定单线程步进。
type Clock struct {
	steppers []Stepper
}

// NewClock 创建一个空时钟
func NewClock() *Clock {
	return &Clock{}
}

// Subscribe 订阅步进广播。重复订阅同一对象为空操作。
func (c *Clock) Subscribe(s Stepper) {
	for _, existing := range c.steppers {
		if existing == s {
			return
		}
	}
	c.steppers = append(c.steppers, s)
}

// Unsubscribe 取消订阅。未订阅的对象为空操作。
func (c *Clock) Unsubscribe(s Stepper) {
	for i, existing := range c.steppers {
		if existing == s {
			c.steppers = append(c.steppers[:i], c.steppers[i+1:]...)
			return
		}
	}
}

// Advance 把 dt 秒广播给全部订阅者。
// 遍历基于快照：订阅者在 Step 里完成并退订（或链式启动新订阅者）
// 不影响本次广播。
func (c *Clock) Advance(dt float64) {
	snapshot := make([]Stepper, len(c.steppers))
	copy(snapshot, c.steppers)
	for _, s := range snapshot {
		s.Step(dt)
	}
}

// Len 返回当前订阅者数量，用于测试断言退订行为
func (c *Clock) Len() int {
	return len(c.steppers)
}
