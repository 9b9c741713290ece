package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config 保存构建器和命令行的所有配置
type Config struct {
	AdapterPrefix    string   `mapstructure:"adapter_prefix"`    // 推导适配器名时使用的模块前缀
	ExcludedSuffixes []string `mapstructure:"excluded_suffixes"` // 不追加 _partial 的模块后缀
	StrictImports    bool     `mapstructure:"strict_imports"`    // 非可选混入解析失败时中止构建
	ManifestDirs     []string `mapstructure:"manifest_dirs"`     // 查找清单文件的目录
	Debug            bool     `mapstructure:"debug"`
	Verbose          bool     `mapstructure:"verbose"`
	LogLevel         string   `mapstructure:"log_level"`
	RecordStats      bool     `mapstructure:"record_stats"` // 是否记录构建统计
	StatsFile        string   `mapstructure:"stats_file"`   // 统计数据库路径
}

// EnvPrefix 环境变量前缀
const EnvPrefix = "OOODEV"

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".ooodev")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 找不到配置文件时使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.StatsFile == "" {
		config.StatsFile = defaultStatsFile()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig 将配置保存到文件
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(home, ".ooodev.yaml")
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.MergeConfigMap(structToMap(config)); err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return v.WriteConfig()
}

// NewDefaultConfig 创建一个新的默认配置
func NewDefaultConfig() *Config {
	return &Config{
		AdapterPrefix:    builder.DefaultAdapterPrefix,
		ExcludedSuffixes: append([]string(nil), builder.DefaultExcludedSuffixes...),
		StrictImports:    false,
		ManifestDirs:     []string{"."},
		LogLevel:         "info",
		RecordStats:      true,
		StatsFile:        defaultStatsFile(),
	}
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AdapterPrefix) == "" {
		return fmt.Errorf("adapter_prefix must not be empty")
	}
	if strings.HasSuffix(c.AdapterPrefix, ".") {
		return fmt.Errorf("adapter_prefix %q must not end with a dot", c.AdapterPrefix)
	}
	for _, s := range c.ExcludedSuffixes {
		if s == "" {
			return fmt.Errorf("excluded_suffixes must not contain empty entries")
		}
	}
	return nil
}

// NameRules 返回配置对应的名称推导规则
func (c *Config) NameRules() builder.NameRules {
	rules := builder.DefaultNameRules()
	rules.Prefix = c.AdapterPrefix
	if len(c.ExcludedSuffixes) > 0 {
		rules.ExcludedSuffixes = append([]string(nil), c.ExcludedSuffixes...)
	}
	return rules
}

// BuilderOptions 返回配置对应的构建器选项
func (c *Config) BuilderOptions(logger *zap.Logger) []builder.Option {
	return []builder.Option{
		builder.WithLogger(logger),
		builder.WithNameRules(c.NameRules()),
		builder.WithStrictImports(c.StrictImports),
	}
}

// defaultStatsFile 获取默认统计数据库路径
func defaultStatsFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ooodev", "build_stats.json")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".ooodev", "build_stats.json")
	}
	return "./ooodev-build-stats.json"
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("adapter_prefix", builder.DefaultAdapterPrefix)
	v.SetDefault("excluded_suffixes", builder.DefaultExcludedSuffixes)
	v.SetDefault("strict_imports", false)
	v.SetDefault("manifest_dirs", []string{"."})
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("record_stats", true)
	v.SetDefault("stats_file", "")
}

// structToMap 将结构体转换为map
func structToMap(config *Config) map[string]interface{} {
	return map[string]interface{}{
		"adapter_prefix":    config.AdapterPrefix,
		"excluded_suffixes": config.ExcludedSuffixes,
		"strict_imports":    config.StrictImports,
		"manifest_dirs":     config.ManifestDirs,
		"debug":             config.Debug,
		"verbose":           config.Verbose,
		"log_level":         config.LogLevel,
		"record_stats":      config.RecordStats,
		"stats_file":        config.StatsFile,
	}
}
