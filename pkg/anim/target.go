package anim

import (
	"fmt"
	"math"

	"github.com/decker502/motion/pkg/easing"
)

// Attributable 是渲染层需要满足的协作者契约：
// 能按名字读写属性。属性值以 any 传递，具体类型由目标声明的 V 决定。
type Attributable interface {
	// AttributeValue 读取名为 name 的属性当前值
	AttributeValue(name string) (any, error)
	// SetAttributeValue 写入名为 name 的属性
	SetAttributeValue(name string, value any) error
}

// AttributeTarget 是类型擦除后的属性目标，由 Animation 持有。
// 只能通过 NewTarget 构造（接口方法不导出，包外无法实现）。
type AttributeTarget interface {
	// hasSpeed 报告该目标是否携带速度（即是否参与时长推导）
	hasSpeed() bool
	// resolve 在延迟耗尽时刻求值惰性的 from/to
	resolve()
	// derivedLength 返回 distance(from, to) / speed，仅对携带速度的目标有意义
	derivedLength() float64
	// apply 写入 blend(from, to, eased(ratio))，曲线未指定时用 fallback
	apply(ratio float64, fallback easing.Easing)
}

// TargetConfig 描述一个属性目标：在哪个对象上动哪个量、从哪到哪、怎么插值。
//
// 读写能力三选一（恰好一路）：
//   - Object + Attribute：按名字读写 Attributable 对象的属性
//   - Setter（可选配 Getter）：直接调用 setter 函数
//   - Get + Set：显式访问器对
//
// From/To 各自三选一：显式值（FromValue/ToValue）、惰性函数
// （FromFunc/ToFunc，延迟耗尽时求值）、或省略。省略 From 表示
// "从当前值开始"（要求该路能读）；To 不允许省略。
type TargetConfig[V any] struct {
	// Object 目标对象，与 Attribute 配合使用
	Object Attributable
	// Attribute 属性名
	Attribute string

	// Setter 写入函数
	Setter func(V)
	// Getter 读取函数，Setter 路的可选配套（省略 From 时必需）
	Getter func() V

	// Get / Set 显式访问器对
	Get func() V
	Set func(V)

	// FromValue 显式起始值
	FromValue *V
	// FromFunc 惰性起始值，延迟耗尽时求值
	FromFunc func() V
	// ToValue 显式结束值
	ToValue *V
	// ToFunc 惰性结束值
	ToFunc func() V

	// Blend 插值函数 blend(from, to, ratio)。
	// V 为 float64 时可省略（默认线性插值），其他类型必须提供
	Blend func(a, b V, ratio float64) V

	// Easing 本目标的缓动曲线，零值回退到 Animation 的默认曲线
	Easing easing.Easing

	// Speed 变化速率（值单位/秒）。指定后本目标参与时长推导：
	// length = Distance(from, to) / Speed
	Speed float64
	// Distance 距离函数，V 为 float64 时默认 |a-b|；
	// 指定 Speed 且 V 不是 float64 时必须提供
	Distance func(a, b V) float64
}

// valueSource 是 from/to 的统一来源：构造时解析成单一读取路径，
// 不在每一步重复分支判断。
type valueSource[V any] struct {
	explicit *V
	lazy     func() V
	// sampleCurrent 为 true 表示"取当前值"（仅 from 允许）
	sampleCurrent bool
}

// Target 是一个具体类型的属性目标。V 是被插值的值类型，
// 可以是 float64，也可以是矩形区域、复合形状等任意可插值类型。
type Target[V any] struct {
	read  func() V // 可为 nil（该路不可读且不需要读）
	write func(V)

	fromSrc valueSource[V]
	toSrc   valueSource[V]

	// 延迟耗尽时 resolve 出的实际端点
	from V
	to   V

	blend    func(a, b V, ratio float64) V
	easing   easing.Easing
	speed    float64
	distance func(a, b V) float64
}

// NewTarget 构造一个属性目标并把配置的"多选一"分支解析成
// 单一的读/写能力。配置矛盾（零路或多路读写、缺 To、
// 非 float64 类型缺 Blend 等）返回构造错误。
func NewTarget[V any](cfg TargetConfig[V]) (*Target[V], error) {
	t := &Target[V]{
		easing:   cfg.Easing,
		speed:    cfg.Speed,
		blend:    cfg.Blend,
		distance: cfg.Distance,
	}

	if err := t.resolveCapability(cfg); err != nil {
		return nil, err
	}
	if err := t.resolveEndpoints(cfg); err != nil {
		return nil, err
	}

	// float64 目标默认线性插值和绝对值距离，其他类型必须显式提供
	if t.blend == nil {
		if blend, ok := any(lerpFloat64).(func(a, b V, ratio float64) V); ok {
			t.blend = blend
		} else {
			return nil, fmt.Errorf("anim: type %T has no default interpolation, Blend is required", *new(V))
		}
	}
	if cfg.Speed != 0 {
		if math.IsNaN(cfg.Speed) || math.IsInf(cfg.Speed, 0) || cfg.Speed < 0 {
			return nil, fmt.Errorf("anim: Speed must be finite and positive, got %v", cfg.Speed)
		}
		if t.distance == nil {
			if dist, ok := any(absDistFloat64).(func(a, b V) float64); ok {
				t.distance = dist
			} else {
				return nil, fmt.Errorf("anim: type %T has no default distance, Distance is required with Speed", *new(V))
			}
		}
	}

	return t, nil
}

// resolveCapability 把三选一的读写配置解析成单一 read/write 函数对
func (t *Target[V]) resolveCapability(cfg TargetConfig[V]) error {
	routes := 0
	if cfg.Object != nil || cfg.Attribute != "" {
		routes++
	}
	if cfg.Setter != nil {
		routes++
	}
	if cfg.Get != nil || cfg.Set != nil {
		routes++
	}
	if routes != 1 {
		return fmt.Errorf("anim: exactly one access route is required (Object+Attribute / Setter / Get+Set), got %d", routes)
	}

	switch {
	case cfg.Object != nil || cfg.Attribute != "":
		if cfg.Object == nil || cfg.Attribute == "" {
			return fmt.Errorf("anim: Object and Attribute must be provided together")
		}
		obj, attr := cfg.Object, cfg.Attribute
		t.read = func() V {
			raw, err := obj.AttributeValue(attr)
			if err != nil {
				panic(fmt.Sprintf("anim: failed to read attribute %q: %v", attr, err))
			}
			v, ok := raw.(V)
			if !ok {
				panic(fmt.Sprintf("anim: attribute %q value %T is not the expected %T", attr, raw, *new(V)))
			}
			return v
		}
		t.write = func(v V) {
			if err := obj.SetAttributeValue(attr, v); err != nil {
				panic(fmt.Sprintf("anim: failed to write attribute %q: %v", attr, err))
			}
		}

	case cfg.Setter != nil:
		t.write = cfg.Setter
		if cfg.Getter != nil {
			t.read = cfg.Getter
		}

	default:
		if cfg.Get == nil || cfg.Set == nil {
			return fmt.Errorf("anim: Get and Set accessors must be provided together")
		}
		t.read = cfg.Get
		t.write = cfg.Set
	}
	return nil
}

// resolveEndpoints 把 from/to 的"多选一"配置解析成 valueSource
func (t *Target[V]) resolveEndpoints(cfg TargetConfig[V]) error {
	if cfg.FromValue != nil && cfg.FromFunc != nil {
		return fmt.Errorf("anim: FromValue and FromFunc are mutually exclusive")
	}
	if cfg.ToValue != nil && cfg.ToFunc != nil {
		return fmt.Errorf("anim: ToValue and ToFunc are mutually exclusive")
	}
	if cfg.ToValue == nil && cfg.ToFunc == nil {
		return fmt.Errorf("anim: an end value is required (ToValue or ToFunc)")
	}

	switch {
	case cfg.FromValue != nil:
		t.fromSrc = valueSource[V]{explicit: cfg.FromValue}
	case cfg.FromFunc != nil:
		t.fromSrc = valueSource[V]{lazy: cfg.FromFunc}
	default:
		// 省略 From = 从当前值开始，要求该路能读
		if t.read == nil {
			return fmt.Errorf("anim: omitting From requires read access (pair Setter with Getter)")
		}
		t.fromSrc = valueSource[V]{sampleCurrent: true}
	}

	if cfg.ToValue != nil {
		t.toSrc = valueSource[V]{explicit: cfg.ToValue}
	} else {
		t.toSrc = valueSource[V]{lazy: cfg.ToFunc}
	}
	return nil
}

func (t *Target[V]) hasSpeed() bool { return t.speed != 0 }

// resolve 在延迟耗尽时刻确定实际端点：
// 显式值直接取、惰性函数此刻求值、sampleCurrent 读当前属性值。
func (t *Target[V]) resolve() {
	t.from = t.resolveSource(t.fromSrc)
	t.to = t.resolveSource(t.toSrc)
}

func (t *Target[V]) resolveSource(src valueSource[V]) V {
	switch {
	case src.explicit != nil:
		return *src.explicit
	case src.lazy != nil:
		return src.lazy()
	default:
		return t.read()
	}
}

func (t *Target[V]) derivedLength() float64 {
	return t.distance(t.from, t.to) / t.speed
}

func (t *Target[V]) apply(ratio float64, fallback easing.Easing) {
	e := t.easing
	if e.IsZero() {
		e = fallback
	}
	t.write(t.blend(t.from, t.to, e.Value(ratio)))
}

// lerpFloat64 是 float64 的默认插值
func lerpFloat64(a, b, ratio float64) float64 {
	return a + (b-a)*ratio
}

// absDistFloat64 是 float64 的默认距离
func absDistFloat64(a, b float64) float64 {
	return math.Abs(b - a)
}
