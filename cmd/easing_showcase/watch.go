// cmd/easing_showcase/watch.go
// --watch 模式：监视 data/sequences 目录，脚本变化时热重载

package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher 把 fsnotify 事件去抖后转成脚本路径通道
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
}

// NewWatcher 监视 dir 下的 YAML 脚本变化
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
	}
	go w.run()
	return w, nil
}

// Close 停止监视
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) run() {
	// 编辑器保存常触发连续多个事件，100ms 内的重复事件只保留一次
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				close(w.Events)
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if strings.ToLower(filepath.Ext(event.Name)) != ".yaml" {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watch] 监视错误: %v", err)
		}
	}
}
