// tools/validate_sequences.go 校验 data/sequences 下的全部动画脚本
//
// 用法：
//
//	go run tools/validate_sequences.go [目录]
//
// 逐个文件报告 OK / 错误，有任何失败则以非零退出。
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/decker502/motion/pkg/sequence"
)

func main() {
	dir := "data/sequences"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ 枚举 %s 失败: %v\n", dir, err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Printf("❌ %s 下没有任何 .yaml 脚本\n", dir)
		os.Exit(1)
	}
	sort.Strings(paths)

	failures := 0
	for _, path := range paths {
		script, err := sequence.Load(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failures++
			continue
		}
		fmt.Printf("✅ %s: %q，%d 步\n", path, script.Name, len(script.Steps))
	}

	if failures > 0 {
		fmt.Printf("❌ %d 个脚本校验失败\n", failures)
		os.Exit(1)
	}
	fmt.Printf("✅ 全部 %d 个脚本校验通过\n", len(paths))
}
