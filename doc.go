// Package motion 是一个按时间步进的属性动画与过渡引擎。
//
// 核心是渲染器无关的纯插值：动画在任意目标对象的命名属性上插值
// 任意数值或几何量，由外部的每帧调度推进。各子包：
//
//   - pkg/easing: 缓动曲线族（值 + 一阶/二阶导数）与名称注册表
//   - pkg/anim: 核心引擎——Animation 状态机、属性目标、时钟调度、串联链
//   - pkg/transition: slide/wipe/dissolve 过渡预设与舞台编排（Stage）
//   - pkg/damped: 闭式阻尼谐振子动画
//   - pkg/sequence: YAML 动画脚本 → 串联动画链
//
// cmd/ 下是基于 Ebitengine 的演示程序；引擎本身不依赖任何渲染库。
package motion
