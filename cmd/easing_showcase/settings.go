// cmd/easing_showcase/settings.go
// 展示程序的设置持久化：当前页码、帮助面板开关

package main

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ShowcaseSettings 展示程序的持久化设置
type ShowcaseSettings struct {
	Page     int  `yaml:"page"`     // 上次浏览的页码（从 0 开始）
	ShowHelp bool `yaml:"showHelp"` // 帮助面板是否展开
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ShowcaseSettings {
	return &ShowcaseSettings{
		Page:     0,
		ShowHelp: true,
	}
}

// 存储路径常量
const (
	settingsObject   = "easing_showcase"
	settingsProperty = "settings"
)

// SettingsStore 设置存储器
// gdataManager 可为 nil（降级模式：仅内存设置，不持久化）
type SettingsStore struct {
	gdataManager *gdata.Manager
	settings     *ShowcaseSettings
}

// NewSettingsStore 创建设置存储器并尝试加载已保存的设置。
// 加载失败不是致命错误，回落到默认设置。
func NewSettingsStore(gdataManager *gdata.Manager) *SettingsStore {
	s := &SettingsStore{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := s.Load(); err != nil {
		log.Printf("[Settings] Warning: 加载设置失败: %v（使用默认设置）", err)
	}
	return s
}

// Settings 返回当前设置（可直接修改后 Save）
func (s *SettingsStore) Settings() *ShowcaseSettings {
	return s.settings
}

// Load 从 gdata 加载设置；降级模式或文件不存在时使用默认设置
func (s *SettingsStore) Load() error {
	if s.gdataManager == nil {
		s.settings = DefaultSettings()
		return nil
	}
	if !s.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		s.settings = DefaultSettings()
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		s.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ShowcaseSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		s.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.settings = &loaded
	log.Printf("[Settings] 设置加载成功")
	return nil
}

// Save 把设置保存到 gdata；降级模式下不报错
func (s *SettingsStore) Save() error {
	if s.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
