package transition

import (
	"fmt"
	"log"

	"github.com/decker502/motion/pkg/anim"
)

// Factory 过渡工厂函数类型
// 给定退场与入场内容构造一个过渡，避免 Stage 依赖具体预设
type Factory func(from, to anim.Attributable) (*Transition, error)

// Stage 管理当前内容，并通过过渡编排内容之间的切换。
// 任何时刻至多一个过渡在进行：请求新的切换会先停止旧过渡
// （其属性复位仍然执行）。
//
// Stage 实现 anim.Stepper：把它订阅到 Clock，或在渲染循环里直接调 Step。
type Stage struct {
	current anim.Attributable
	active  *Transition
}

// NewStage 创建舞台，initial 是初始内容，可以为 nil（空舞台）
func NewStage(initial anim.Attributable) *Stage {
	return &Stage{current: initial}
}

// Current 返回当前内容；过渡进行中返回过渡发起时的旧内容
func (s *Stage) Current() anim.Attributable { return s.current }

// Transitioning 报告是否有过渡在进行
func (s *Stage) Transitioning() bool { return s.active != nil }

// TransitionTo 用 factory 构造的过渡把当前内容切换为 content。
// 已有过渡在进行时先停止它（触发其属性复位，并把它的入场内容提交为当前内容），
// 再从新的当前内容出发过渡。
func (s *Stage) TransitionTo(content anim.Attributable, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("transition: Stage requires a transition factory")
	}
	if s.active != nil {
		log.Printf("[Stage] 打断进行中的过渡")
		s.active.Stop()
	}

	tr, err := factory(s.current, content)
	if err != nil {
		return fmt.Errorf("transition: failed to build transition: %w", err)
	}

	log.Printf("[Stage] 开始过渡: %T -> %T", s.current, content)
	s.active = tr
	tr.OnEnd(func() {
		s.current = content
		s.active = nil
		log.Printf("[Stage] 过渡结束，当前内容: %T", content)
	})
	tr.Start()
	return nil
}

// Step 推进进行中的过渡；空闲时为空操作。实现 anim.Stepper。
func (s *Stage) Step(dt float64) {
	if s.active != nil {
		s.active.Step(dt)
	}
}

// Stop 停止进行中的过渡（触发其属性复位并提交内容切换）；空闲时为空操作
func (s *Stage) Stop() {
	if s.active != nil {
		s.active.Stop()
	}
}

// Contents 按绘制顺序返回可见内容：过渡进行中是 [退场, 入场]
// （入场画在上层），空闲时只有当前内容。nil 内容被跳过。
func (s *Stage) Contents() []anim.Attributable {
	if s.active == nil {
		if s.current == nil {
			return nil
		}
		return []anim.Attributable{s.current}
	}
	var contents []anim.Attributable
	if from := s.active.From(); from != nil {
		contents = append(contents, from)
	}
	if to := s.active.To(); to != nil {
		contents = append(contents, to)
	}
	return contents
}
