package anim

import (
	"math"
	"testing"

	"github.com/decker502/motion/pkg/easing"
)

const testEpsilon = 1e-9

// floatHolder 是测试用的 Attributable 实现：一组命名的 float64 属性
type floatHolder struct {
	attrs map[string]float64
}

func newFloatHolder() *floatHolder {
	return &floatHolder{attrs: make(map[string]float64)}
}

func (h *floatHolder) AttributeValue(name string) (any, error) {
	return h.attrs[name], nil
}

func (h *floatHolder) SetAttributeValue(name string, value any) error {
	h.attrs[name] = value.(float64)
	return nil
}

// mustTarget 构造失败直接终止测试
func mustTarget[V any](t *testing.T, cfg TargetConfig[V]) *Target[V] {
	t.Helper()
	target, err := NewTarget(cfg)
	if err != nil {
		t.Fatalf("NewTarget 失败: %v", err)
	}
	return target
}

func floatPtr(v float64) *float64 { return &v }

// linearAnimation 构造一个 0→to、线性缓动、显式时长的数值动画
func linearAnimation(t *testing.T, value *float64, to, duration float64) *Animation {
	t.Helper()
	target := mustTarget(t, TargetConfig[float64]{
		Get:       func() float64 { return *value },
		Set:       func(v float64) { *value = v },
		FromValue: floatPtr(0),
		ToValue:   floatPtr(to),
		Easing:    easing.Linear,
	})
	a, err := New(Config{
		Targets:  []AttributeTarget{target},
		Duration: floatPtr(duration),
	})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}
	return a
}

// TestLinearInterpolation 验证基准场景：
// 0→7、时长2秒、线性缓动，步进1秒后值为3.5，再步进1秒后值为7且插值结束
func TestLinearInterpolation(t *testing.T) {
	value := -1.0
	a := linearAnimation(t, &value, 7, 2)

	a.Start()
	if value != 0 {
		t.Errorf("Start 后应写入起始值 0，得到 %v", value)
	}
	if !a.Running() || !a.Animating() {
		t.Errorf("Start 后（无延迟）应 running=true animating=true")
	}

	a.Step(1.0)
	if math.Abs(value-3.5) > testEpsilon {
		t.Errorf("步进1秒后值应为 3.5，得到 %v", value)
	}

	a.Step(1.0)
	if math.Abs(value-7.0) > testEpsilon {
		t.Errorf("步进2秒后值应为 7.0，得到 %v", value)
	}
	if a.Animating() || a.Running() {
		t.Errorf("自然完成后应 running=false animating=false")
	}
}

// TestDelayPhase 验证延迟阶段：延迟期间不动值，越过边界的时间带入插值阶段
func TestDelayPhase(t *testing.T) {
	value := 0.0
	target := mustTarget(t, TargetConfig[float64]{
		Get:       func() float64 { return value },
		Set:       func(v float64) { value = v },
		FromValue: floatPtr(0),
		ToValue:   floatPtr(10),
		Easing:    easing.Linear,
	})
	a, err := New(Config{
		Targets:  []AttributeTarget{target},
		Duration: floatPtr(1),
		Delay:    0.5,
	})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}

	began := 0
	a.OnBegin(func() { began++ })

	a.Start()
	if a.Animating() {
		t.Errorf("延迟阶段应 animating=false")
	}
	if began != 0 {
		t.Errorf("延迟未耗尽不应触发 Began")
	}

	a.Step(0.25)
	if value != 0 {
		t.Errorf("延迟阶段不应改变属性值，得到 %v", value)
	}

	// 0.25 耗尽剩余延迟，多出的 0.5 带入插值阶段
	a.Step(0.75)
	if began != 1 {
		t.Errorf("应恰好触发一次 Began，得到 %d", began)
	}
	if !a.Animating() {
		t.Errorf("延迟耗尽后应 animating=true")
	}
	if math.Abs(value-5.0) > testEpsilon {
		t.Errorf("越界时间应带入插值阶段：期望 5.0，得到 %v", value)
	}
}

// TestNotificationOrder 验证通知的触发次序与次数
func TestNotificationOrder(t *testing.T) {
	value := 0.0
	a := linearAnimation(t, &value, 1, 1)

	var order []string
	a.OnStart(func() { order = append(order, "started") })
	a.OnBegin(func() { order = append(order, "began") })
	a.OnUpdate(func() { order = append(order, "updated") })
	a.OnFinish(func(overflow float64) { order = append(order, "finished") })
	a.OnStop(func() { order = append(order, "stopped") })
	a.OnEnd(func() { order = append(order, "ended") })

	a.Start()
	a.Step(1.0)

	expected := []string{"started", "began", "updated", "updated", "finished", "ended"}
	if len(order) != len(expected) {
		t.Fatalf("通知序列长度不符：期望 %v，得到 %v", expected, order)
	}
	for i, name := range expected {
		if order[i] != name {
			t.Errorf("第 %d 个通知应为 %s，得到 %s（完整序列 %v）", i, name, order[i], order)
		}
	}
}

// TestStop 验证 Stop 的语义：running/animating 立即为 false，
// Stopped 恰好一次、Finished 永不触发、Ended 恰好一次
func TestStop(t *testing.T) {
	tests := []struct {
		name     string
		delay    float64
		preSteps []float64 // Stop 之前的步进序列
	}{
		{"延迟阶段停止", 1.0, []float64{0.3}},
		{"插值阶段停止", 0, []float64{0.5}},
		{"刚启动即停止", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := 0.0
			target := mustTarget(t, TargetConfig[float64]{
				Get:       func() float64 { return value },
				Set:       func(v float64) { value = v },
				FromValue: floatPtr(0),
				ToValue:   floatPtr(1),
			})
			a, err := New(Config{
				Targets:  []AttributeTarget{target},
				Duration: floatPtr(1),
				Delay:    tt.delay,
			})
			if err != nil {
				t.Fatalf("New 失败: %v", err)
			}

			stopped, finished, ended := 0, 0, 0
			a.OnStop(func() { stopped++ })
			a.OnFinish(func(float64) { finished++ })
			a.OnEnd(func() { ended++ })

			a.Start()
			for _, dt := range tt.preSteps {
				a.Step(dt)
			}
			a.Stop()

			if a.Running() || a.Animating() {
				t.Errorf("Stop 后应 running=false animating=false")
			}
			if stopped != 1 {
				t.Errorf("Stopped 应恰好触发一次，得到 %d", stopped)
			}
			if finished != 0 {
				t.Errorf("被停止的运行不应触发 Finished，得到 %d", finished)
			}
			if ended != 1 {
				t.Errorf("Ended 应恰好触发一次，得到 %d", ended)
			}

			// 再次 Stop 是空操作
			a.Stop()
			if stopped != 1 || ended != 1 {
				t.Errorf("空闲时 Stop 应为空操作：stopped=%d ended=%d", stopped, ended)
			}
		})
	}
}

// TestStopFromUpdateListener 验证监听器重入：Updated 监听器在终点那一步里
// 调用 Stop() 时，本次运行按停止处理——Finished 不触发，Ended 仍恰好一次
func TestStopFromUpdateListener(t *testing.T) {
	value := 0.0
	a := linearAnimation(t, &value, 1, 1)

	stopped, finished, ended := 0, 0, 0
	a.OnStop(func() { stopped++ })
	a.OnFinish(func(float64) { finished++ })
	a.OnEnd(func() { ended++ })
	a.OnUpdate(func() {
		if value >= 1 {
			a.Stop()
		}
	})

	a.Start()
	a.Step(1.0)

	if a.Running() || a.Animating() {
		t.Errorf("Stop 后应 running=false animating=false")
	}
	if stopped != 1 {
		t.Errorf("Stopped 应恰好触发一次，得到 %d", stopped)
	}
	if finished != 0 {
		t.Errorf("被停止的运行不应触发 Finished，得到 %d", finished)
	}
	if ended != 1 {
		t.Errorf("Ended 应恰好触发一次，得到 %d", ended)
	}
}

// TestOverflowAndChaining 验证溢出时间的计算与链式起跑：
// 超出终点的 dt 部分以溢出报告，后继动画带着它起跑即已前进同样的量
func TestOverflowAndChaining(t *testing.T) {
	first := 0.0
	second := 0.0

	a := linearAnimation(t, &first, 1, 1)
	b := linearAnimation(t, &second, 10, 2)

	var reportedOverflow float64
	a.OnFinish(func(overflow float64) { reportedOverflow = overflow })
	a.Then(b)

	a.Start()
	a.Step(0.75)
	// 剩余 0.25，步进 0.65 → 溢出 0.4
	a.Step(0.65)

	if math.Abs(reportedOverflow-0.4) > testEpsilon {
		t.Errorf("溢出应为 0.65-0.25=0.4，得到 %v", reportedOverflow)
	}
	if !b.Running() {
		t.Errorf("链式后继应已起跑")
	}
	// b 起跑即前进 0.4 秒：10 * 0.4/2 = 2.0
	if math.Abs(second-2.0) > testEpsilon {
		t.Errorf("后继应已前进溢出量：期望 2.0，得到 %v", second)
	}
}

// TestStopDoesNotChain 验证被 Stop 打断的运行不会启动 Then 后继
func TestStopDoesNotChain(t *testing.T) {
	first, second := 0.0, 0.0
	a := linearAnimation(t, &first, 1, 1)
	b := linearAnimation(t, &second, 1, 1)
	a.Then(b)

	a.Start()
	a.Step(0.5)
	a.Stop()

	if b.Running() {
		t.Errorf("Stop 打断的运行不应启动后继")
	}
}

// TestZeroLengthAnimation 验证零长动画在第一步完成且无除零
func TestZeroLengthAnimation(t *testing.T) {
	value := 0.0
	a := linearAnimation(t, &value, 5, 0)

	var overflow float64 = -1
	finished := 0
	a.OnFinish(func(o float64) { overflow = o; finished++ })

	a.Start()
	if finished != 1 {
		t.Fatalf("零长动画应在 Start 的首步完成，finished=%d", finished)
	}
	if value != 5 {
		t.Errorf("零长动画应直接写入结束值 5，得到 %v", value)
	}
	if overflow != 0 {
		t.Errorf("Start() 无 dt 时溢出应为 0，得到 %v", overflow)
	}

	// 带 dt 起跑：全部 dt 都是溢出
	value = 0
	b := linearAnimation(t, &value, 5, 0)
	b.OnFinish(func(o float64) { overflow = o })
	b.Start(0.3)
	if math.Abs(overflow-0.3) > testEpsilon {
		t.Errorf("零长动画的溢出应等于全部 dt=0.3，得到 %v", overflow)
	}
}

// TestSpeedDerivedLength 验证速度推导时长：距离/速度，且在延迟耗尽时刻才解析
func TestSpeedDerivedLength(t *testing.T) {
	value := 0.0
	target := mustTarget(t, TargetConfig[float64]{
		Get:     func() float64 { return value },
		Set:     func(v float64) { value = v },
		ToValue: floatPtr(6), // From 省略 = 从当前值开始
		Speed:   3,           // 距离 6 → 时长 2 秒
		Easing:  easing.Linear,
	})
	a, err := New(Config{Targets: []AttributeTarget{target}})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}

	a.Start()
	a.Step(1.0)
	if math.Abs(value-3.0) > testEpsilon {
		t.Errorf("速度推导时长 2 秒，步进 1 秒应到 3.0，得到 %v", value)
	}
	a.Step(1.0)
	if math.Abs(value-6.0) > testEpsilon {
		t.Errorf("到达终点应为 6.0，得到 %v", value)
	}
}

// TestLazyFromResolvedAtBegin 验证惰性 from 在延迟耗尽时刻求值，而非构造或 Start 时
func TestLazyFromResolvedAtBegin(t *testing.T) {
	value := 0.0
	source := 0.0
	target := mustTarget(t, TargetConfig[float64]{
		Get:      func() float64 { return value },
		Set:      func(v float64) { value = v },
		FromFunc: func() float64 { return source },
		ToValue:  floatPtr(10),
		Easing:   easing.Linear,
	})
	a, err := New(Config{
		Targets:  []AttributeTarget{target},
		Duration: floatPtr(1),
		Delay:    1,
	})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}

	a.Start()
	source = 4 // 延迟期间变化，应被采纳
	a.Step(1.0)
	if math.Abs(value-4.0) > testEpsilon {
		t.Errorf("惰性 from 应在延迟耗尽时求值为 4，得到 %v", value)
	}
}

// TestConstructionInvariants 验证构造期不变量校验
func TestConstructionInvariants(t *testing.T) {
	makeTarget := func(speed float64) AttributeTarget {
		v := 0.0
		target, err := NewTarget(TargetConfig[float64]{
			Get:     func() float64 { return v },
			Set:     func(nv float64) { v = nv },
			ToValue: floatPtr(1),
			Speed:   speed,
		})
		if err != nil {
			t.Fatalf("NewTarget 失败: %v", err)
		}
		return target
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"无目标", Config{Duration: floatPtr(1)}},
		{"负延迟", Config{Targets: []AttributeTarget{makeTarget(0)}, Duration: floatPtr(1), Delay: -0.1}},
		{"无时长来源", Config{Targets: []AttributeTarget{makeTarget(0)}}},
		{"双重时长来源", Config{Targets: []AttributeTarget{makeTarget(2)}, Duration: floatPtr(1)}},
		{"两个速度目标", Config{Targets: []AttributeTarget{makeTarget(2), makeTarget(3)}}},
		{"负时长", Config{Targets: []AttributeTarget{makeTarget(0)}, Duration: floatPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Errorf("期望构造错误，却成功了")
			}
		})
	}
}

// TestRestart 验证同一实例可跨多次运行复用
func TestRestart(t *testing.T) {
	value := 0.0
	a := linearAnimation(t, &value, 1, 1)

	ended := 0
	a.OnEnd(func() { ended++ })

	a.Start()
	a.Step(2.0) // 第一轮完成
	value = 0
	a.Start()
	a.Step(0.5)
	if math.Abs(value-0.5) > testEpsilon {
		t.Errorf("第二轮步进 0.5 秒应到 0.5，得到 %v", value)
	}
	a.Step(1.0) // 第二轮完成
	if ended != 2 {
		t.Errorf("两轮运行应各触发一次 Ended，得到 %d", ended)
	}

	// 运行中重复 Start 是空操作
	a.Start()
	started := 0
	a.OnStart(func() { started++ })
	a.Start()
	if started != 0 {
		t.Errorf("运行中重复 Start 不应触发 Started")
	}
}

// TestAttributableRoute 验证按名字读写属性的能力路
func TestAttributableRoute(t *testing.T) {
	holder := newFloatHolder()
	holder.attrs["x"] = 2.0

	target := mustTarget(t, TargetConfig[float64]{
		Object:    holder,
		Attribute: "x",
		ToValue:   floatPtr(12),
		Easing:    easing.Linear,
	})
	a, err := New(Config{
		Targets:  []AttributeTarget{target},
		Duration: floatPtr(1),
	})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}

	a.Start()
	a.Step(0.5)
	if math.Abs(holder.attrs["x"]-7.0) > testEpsilon {
		t.Errorf("从当前值 2 到 12 的中点应为 7，得到 %v", holder.attrs["x"])
	}
}

// TestUpdateOrderAndSingleNotification 验证目标按注册顺序更新，
// 且每步只触发一次 Updated（全部目标更新完之后）
func TestUpdateOrderAndSingleNotification(t *testing.T) {
	var writes []string
	newNamed := func(name string) AttributeTarget {
		target, err := NewTarget(TargetConfig[float64]{
			Setter:    func(float64) { writes = append(writes, name) },
			FromValue: floatPtr(0),
			ToValue:   floatPtr(1),
		})
		if err != nil {
			t.Fatalf("NewTarget 失败: %v", err)
		}
		return target
	}

	a, err := New(Config{
		Targets:  []AttributeTarget{newNamed("a"), newNamed("b"), newNamed("c")},
		Duration: floatPtr(1),
	})
	if err != nil {
		t.Fatalf("New 失败: %v", err)
	}

	updates := 0
	a.OnUpdate(func() {
		updates++
		if len(writes)%3 != 0 {
			t.Errorf("Updated 触发时应已更新全部目标，已写 %d 个", len(writes))
		}
	})

	a.Start()
	a.Step(0.5)

	if updates != 2 { // Start 的首步 + 显式步进
		t.Errorf("应触发两次 Updated，得到 %d", updates)
	}
	expected := []string{"a", "b", "c", "a", "b", "c"}
	for i, name := range expected {
		if writes[i] != name {
			t.Fatalf("更新顺序应为注册顺序，得到 %v", writes)
		}
	}
}

// TestStepContractViolations 验证非法 dt 直接 panic
func TestStepContractViolations(t *testing.T) {
	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		value := 0.0
		a := linearAnimation(t, &value, 1, 1)
		a.Start()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Step(%v) 应 panic", dt)
				}
			}()
			a.Step(dt)
		}()
	}
}
