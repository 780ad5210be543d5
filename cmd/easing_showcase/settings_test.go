package main

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// TestSettingsStoreNilGdata 测试 gdata 为 nil 的降级模式
func TestSettingsStoreNilGdata(t *testing.T) {
	store := NewSettingsStore(nil)
	if store == nil {
		t.Fatal("NewSettingsStore(nil) returned nil")
	}

	settings := store.Settings()
	if settings.Page != 0 || !settings.ShowHelp {
		t.Errorf("降级模式应使用默认设置，得到 %+v", settings)
	}

	// 降级模式 Save 不报错
	if err := store.Save(); err != nil {
		t.Errorf("降级模式 Save 不应报错: %v", err)
	}
}

// TestSettingsStoreRoundTrip 测试设置的保存与重新加载
func TestSettingsStoreRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	manager, err := gdata.Open(gdata.Config{
		AppName: "test_easing_showcase",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	store1 := NewSettingsStore(manager)
	store1.Settings().Page = 2
	store1.Settings().ShowHelp = false
	if err := store1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 新存储器应读回保存的设置
	store2 := NewSettingsStore(manager)
	if store2.Settings().Page != 2 {
		t.Errorf("Page: got %v, want 2", store2.Settings().Page)
	}
	if store2.Settings().ShowHelp {
		t.Errorf("ShowHelp: got true, want false")
	}
}
