package anim

// Chain 把一串 Then 链接的动画当作一个整体驱动和取消。
// 链接语义不变：前一环自然完成时，后一环带溢出时间起跑。
type Chain struct {
	links []*Animation

	endedListeners []func()
	endedFired     bool
}

// NewChain 用 Then 串联若干动画并返回链。至少需要一环。
func NewChain(first *Animation, rest ...*Animation) *Chain {
	if first == nil {
		panic("anim: NewChain requires at least one link")
	}
	c := &Chain{links: append([]*Animation{first}, rest...)}
	for i := 0; i+1 < len(c.links); i++ {
		c.links[i].Then(c.links[i+1])
	}
	// 尾环结束即整条链结束（自然完成，或尾环被 Stop）
	c.tail().OnEnd(c.fireEnded)
	return c
}

// Head 返回链首
func (c *Chain) Head() *Animation { return c.links[0] }

func (c *Chain) tail() *Animation { return c.links[len(c.links)-1] }

// Start 从链首开始运行
func (c *Chain) Start() {
	c.endedFired = false
	c.Head().Start()
}

// Stop 停止当前正在运行的那一环；整条链空闲时为空操作。
// 停掉中间环时后继不会起跑，此时链也视为结束。
func (c *Chain) Stop() {
	for _, link := range c.links {
		if link.Running() {
			link.Stop()
			// 停的是中间环时到不了尾环的 Ended，这里补上（幂等）
			c.fireEnded()
			return
		}
	}
}

// Step 推进当前正在运行的那一环；空闲时为空操作。
// Chain 因此也实现 Stepper，可整体订阅到 Clock。
func (c *Chain) Step(dt float64) {
	for _, link := range c.links {
		if link.Running() {
			link.Step(dt)
			return
		}
	}
}

// Running 报告链上是否有任何一环在运行
func (c *Chain) Running() bool {
	for _, link := range c.links {
		if link.Running() {
			return true
		}
	}
	return false
}

// OnEnd 注册整条链结束的监听器：
// 尾环结束（自然完成或被停）、或 Stop 停掉任意一环时触发，
// 每次运行恰好一次。
func (c *Chain) OnEnd(fn func()) {
	c.endedListeners = append(c.endedListeners, fn)
}

func (c *Chain) fireEnded() {
	if c.endedFired {
		return
	}
	c.endedFired = true
	for _, fn := range c.endedListeners {
		fn()
	}
}
