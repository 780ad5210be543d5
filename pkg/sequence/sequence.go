// Package sequence 从 YAML 脚本构建串联动画
//
// 脚本把一串属性动画步骤描述成数据，按名字引用缓动曲线，
// 加载时快速失败校验，Build 时对指定对象编译成 Then 串联的动画链。
// 每一步要么指定 duration 要么指定 speed（恰好一个——与引擎的
// 时长来源不变量一致）；省略 from 表示从当前属性值开始。
//
// 示例脚本：
//
//	name: card-entrance
//	steps:
//	  - attribute: y
//	    from: -120
//	    to: 40
//	    duration: 0.6
//	    easing: cubicOut
//	  - attribute: opacity
//	    to: 1
//	    duration: 0.3
//	    delay: 0.1
//	    easing: linear
package sequence

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/motion/pkg/anim"
	"github.com/decker502/motion/pkg/easing"
)

// Step 脚本中的一个动画步骤
type Step struct {
	Attribute string   `yaml:"attribute"`          // 要驱动的属性名（必填）
	From      *float64 `yaml:"from,omitempty"`     // 起始值，省略表示从当前值开始
	To        *float64 `yaml:"to"`                 // 结束值（必填）
	Duration  *float64 `yaml:"duration,omitempty"` // 时长（秒），与 speed 二选一
	Speed     *float64 `yaml:"speed,omitempty"`    // 速度（值单位/秒），与 duration 二选一
	Delay     float64  `yaml:"delay,omitempty"`    // 开始前延迟（秒），默认 0
	Easing    string   `yaml:"easing,omitempty"`   // 缓动曲线名，默认 cubicInOut
}

// Script 一个完整的动画脚本
type Script struct {
	Name  string `yaml:"name"`  // 脚本名，用于日志和错误信息
	Steps []Step `yaml:"steps"` // 按顺序串联执行的步骤
}

// Load 从 YAML 文件加载脚本并校验
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file %s: %w", path, err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid sequence in %s: %w", path, err)
	}
	return script, nil
}

// Parse 解析 YAML 数据并校验。
// 校验是快速失败的：未知曲线名、时长来源缺失或冲突、
// 负延迟、缺属性名、非正时长都是加载错误。
func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse sequence YAML: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("script %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st *Step) validate() error {
	if st.Attribute == "" {
		return fmt.Errorf("missing attribute name")
	}
	if st.To == nil {
		return fmt.Errorf("missing end value to")
	}
	if st.Duration != nil && st.Speed != nil {
		return fmt.Errorf("duration and speed are mutually exclusive")
	}
	if st.Duration == nil && st.Speed == nil {
		return fmt.Errorf("either duration or speed is required")
	}
	if st.Duration != nil && *st.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", *st.Duration)
	}
	if st.Speed != nil && *st.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", *st.Speed)
	}
	if st.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %v", st.Delay)
	}
	if st.Easing != "" {
		if _, ok := easing.ByName(st.Easing); !ok {
			return fmt.Errorf("unknown easing curve %q (available: %s)", st.Easing, strings.Join(easing.Names(), ", "))
		}
	}
	return nil
}

// buildOptions 汇总 Build 的可选配置
type buildOptions struct {
	scheduler anim.Scheduler
}

// BuildOption 配置 Build 的可选项
type BuildOption func(*buildOptions)

// WithScheduler 让链上每一环在运行期间订阅调度器
func WithScheduler(s anim.Scheduler) BuildOption {
	return func(o *buildOptions) { o.scheduler = s }
}

// Build 对 obj 编译脚本：把每一步变成一个驱动命名属性的动画，
// 按脚本顺序 Then 串联成链。脚本已在加载时校验，
// 这里的错误只剩目标构造类（例如对象属性不可读）。
func (s *Script) Build(obj anim.Attributable, opts ...BuildOption) (*anim.Chain, error) {
	if obj == nil {
		return nil, fmt.Errorf("sequence: a target object is required")
	}
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	anims := make([]*anim.Animation, 0, len(s.Steps))
	for i, step := range s.Steps {
		a, err := step.build(obj, o)
		if err != nil {
			return nil, fmt.Errorf("sequence: script %q step %d: %w", s.Name, i+1, err)
		}
		anims = append(anims, a)
	}
	return anim.NewChain(anims[0], anims[1:]...), nil
}

func (st *Step) build(obj anim.Attributable, o buildOptions) (*anim.Animation, error) {
	curve := easing.Easing{}
	if st.Easing != "" {
		curve, _ = easing.ByName(st.Easing) // 存在性已在校验时确认
	}

	targetCfg := anim.TargetConfig[float64]{
		Object:    obj,
		Attribute: st.Attribute,
		FromValue: st.From,
		ToValue:   st.To,
		Easing:    curve,
	}
	if st.Speed != nil {
		targetCfg.Speed = *st.Speed
	}
	target, err := anim.NewTarget(targetCfg)
	if err != nil {
		return nil, err
	}

	return anim.New(anim.Config{
		Targets:   []anim.AttributeTarget{target},
		Duration:  st.Duration,
		Delay:     st.Delay,
		Scheduler: o.scheduler,
	})
}
