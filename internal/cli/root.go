package cli

import (
	"fmt"

	"github.com/nerdneilsfield/go-ooodev/internal/config"
	"github.com/nerdneilsfield/go-ooodev/internal/logger"
	"github.com/nerdneilsfield/go-ooodev/internal/manifest"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/comp"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// 命令行标志变量
	cfgFile     string
	debugMode   bool
	verboseMode bool // 显示详细日志
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ooobuild",
		Short: "按组件声明的能力动态组合适配器类",
		Long: `ooobuild 读取组件清单，按组件支持的 UNO 接口和服务选择适配器，
计算方法解析顺序，合成组合类并实例化。

清单支持 YAML、TOML 和 JSON 格式。`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		NewDeriveCommand(),
		NewPlanCommand(),
		NewBuildCommand(),
		NewCatalogCommand(),
		NewStatsCommand(),
		NewConfigCommand(),
	)

	return rootCmd
}

// addGlobalFlags 添加全局标志
func addGlobalFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试模式")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "显示详细日志")
}

// environment 一次命令执行共享的配置和日志
type environment struct {
	cfg *config.Config
	log *zap.Logger
}

// loadEnvironment 加载配置并按配置创建日志
func loadEnvironment() (*environment, error) {
	// 初始化临时日志（用于加载配置）
	tempLog := logger.NewLoggerWithVerbose(debugMode, verboseMode)

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		tempLog.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = config.NewDefaultConfig()
	}
	_ = tempLog.Sync()

	log, err := logger.New(logger.Options{
		Debug:   cfg.Debug || debugMode,
		Verbose: cfg.Verbose || verboseMode,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	return &environment{cfg: cfg, log: log}, nil
}

// builderOptions 返回带共享目录的构建器选项
func (e *environment) builderOptions(extra ...builder.Option) []builder.Option {
	opts := append([]builder.Option{builder.WithCatalog(comp.Catalog())}, e.cfg.BuilderOptions(e.log)...)
	return append(opts, extra...)
}

// loadManifest 按路径或名称加载清单
func (e *environment) loadManifest(name string) (*manifest.Manifest, error) {
	path, err := manifest.Find(name, e.cfg.ManifestDirs)
	if err != nil {
		return nil, err
	}
	e.log.Debug("loading manifest", zap.String("path", path))
	return manifest.Load(path)
}
