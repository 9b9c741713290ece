package test

import (
	"path/filepath"
	"testing"

	"github.com/nerdneilsfield/go-ooodev/internal/config"
)

// CreateTestConfig 创建用于测试的配置，统计数据库放在临时目录
func CreateTestConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.StatsFile = filepath.Join(t.TempDir(), "build_stats.json")
	cfg.ManifestDirs = []string{t.TempDir()}
	return cfg
}
