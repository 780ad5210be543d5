package transition

import (
	"testing"

	"github.com/decker502/motion/pkg/anim"
	"github.com/decker502/motion/pkg/easing"
)

// dissolveFactory 返回测试用的 1 秒线性溶解工厂
func dissolveFactory() Factory {
	return func(from, to anim.Attributable) (*Transition, error) {
		return Dissolve(from, to, WithDuration(1), WithEasing(easing.Linear))
	}
}

// TestStageSwap 验证舞台的基本切换：过渡期间两块内容按绘制顺序可见，
// 完成后提交新内容
func TestStageSwap(t *testing.T) {
	first, second := newPane(), newPane()
	stage := NewStage(first)

	if stage.Current() != first {
		t.Fatalf("初始内容应为 first")
	}
	if got := stage.Contents(); len(got) != 1 || got[0] != anim.Attributable(first) {
		t.Fatalf("空闲时应只有当前内容，得到 %v", got)
	}

	if err := stage.TransitionTo(second, dissolveFactory()); err != nil {
		t.Fatalf("TransitionTo 失败: %v", err)
	}
	if !stage.Transitioning() {
		t.Fatalf("应有过渡在进行")
	}

	contents := stage.Contents()
	if len(contents) != 2 {
		t.Fatalf("过渡期间应有两块内容，得到 %d", len(contents))
	}
	if contents[0] != anim.Attributable(first) || contents[1] != anim.Attributable(second) {
		t.Errorf("绘制顺序应为 [退场, 入场]")
	}

	stage.Step(0.5)
	if stage.Current() != first {
		t.Errorf("过渡未完成前当前内容不应变化")
	}

	stage.Step(0.5)
	if stage.Transitioning() {
		t.Errorf("过渡应已完成")
	}
	if stage.Current() != second {
		t.Errorf("完成后当前内容应为 second")
	}
	if first.opacity != 1 || second.opacity != 1 {
		t.Errorf("完成后双方不透明度应复位为 1")
	}
}

// TestStageInterrupt 验证打断切换：新的 TransitionTo 先停旧过渡
// （复位其属性、提交其内容），再从新的当前内容出发
func TestStageInterrupt(t *testing.T) {
	a, b, c := newPane(), newPane(), newPane()
	stage := NewStage(a)

	if err := stage.TransitionTo(b, dissolveFactory()); err != nil {
		t.Fatalf("TransitionTo 失败: %v", err)
	}
	stage.Step(0.3)

	if err := stage.TransitionTo(c, dissolveFactory()); err != nil {
		t.Fatalf("TransitionTo 失败: %v", err)
	}
	// 旧过渡被停：b 已提交为当前内容并复位
	if a.opacity != 1 || b.opacity != 1 {
		t.Errorf("打断后旧过渡双方应复位为 1，得到 %v / %v", a.opacity, b.opacity)
	}

	contents := stage.Contents()
	if len(contents) != 2 || contents[0] != anim.Attributable(b) || contents[1] != anim.Attributable(c) {
		t.Errorf("新过渡应从 b 出发到 c")
	}

	stage.Step(1.0)
	if stage.Current() != c {
		t.Errorf("完成后当前内容应为 c")
	}
}

// TestStageStop 验证显式 Stop：复位并提交入场内容
func TestStageStop(t *testing.T) {
	a, b := newPane(), newPane()
	stage := NewStage(a)

	if err := stage.TransitionTo(b, dissolveFactory()); err != nil {
		t.Fatalf("TransitionTo 失败: %v", err)
	}
	stage.Step(0.4)
	stage.Stop()

	if stage.Transitioning() {
		t.Errorf("Stop 后不应有过渡在进行")
	}
	if stage.Current() != b {
		t.Errorf("Stop 提交入场内容为当前内容")
	}
	if a.opacity != 1 || b.opacity != 1 {
		t.Errorf("Stop 后双方应复位为 1")
	}

	// 空闲时 Stop / Step 是空操作
	stage.Stop()
	stage.Step(1.0)
}

// TestStageClockDriven 验证舞台经由时钟驱动
func TestStageClockDriven(t *testing.T) {
	a, b := newPane(), newPane()
	stage := NewStage(a)
	clock := anim.NewClock()
	clock.Subscribe(stage)

	if err := stage.TransitionTo(b, dissolveFactory()); err != nil {
		t.Fatalf("TransitionTo 失败: %v", err)
	}
	for i := 0; i < 60; i++ {
		clock.Advance(1.0 / 60.0)
	}
	// 60 帧 × 1/60 秒可能差一个浮点尾数，补一帧
	clock.Advance(1.0 / 60.0)

	if stage.Transitioning() {
		t.Errorf("时钟推进 1 秒后过渡应完成")
	}
	if stage.Current() != b {
		t.Errorf("当前内容应为 b")
	}
}
