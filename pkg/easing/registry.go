package easing

import "sort"

// 名称注册表：把配置文件里的曲线名解析成 Easing 实例。
// 供 sequence 等按名字引用曲线的调用方使用。

// byName 是全部命名曲线。键使用驼峰小写，与 YAML 配置里的写法一致。
var byName = map[string]Easing{
	"linear": Linear,

	"quadIn":    QuadraticIn,
	"quadOut":   QuadraticOut,
	"quadInOut": QuadraticInOut,

	"cubicIn":    CubicIn,
	"cubicOut":   CubicOut,
	"cubicInOut": CubicInOut,

	"quartIn":    QuarticIn,
	"quartOut":   QuarticOut,
	"quartInOut": QuarticInOut,

	"quintIn":    QuinticIn,
	"quintOut":   QuinticOut,
	"quintInOut": QuinticInOut,

	"sineIn":    SineIn,
	"sineOut":   SineOut,
	"sineInOut": SineInOut,

	"expoOut":   ExpoOut,
	"backOut":   BackOut(backDefaultOvershoot),
	"bounceOut": BounceOut,
}

// ByName 按名字查找命名曲线。
// 找不到时返回零值 Easing 和 false，由调用方决定如何报错。
func ByName(name string) (Easing, bool) {
	e, ok := byName[name]
	return e, ok
}

// Names 返回全部已注册的曲线名（字典序），用于报错提示和文档。
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
