package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nerdneilsfield/go-ooodev/internal/config"
	"github.com/spf13/cobra"
)

var forceInit bool

// NewConfigCommand 创建 config 命令
func NewConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "查看或初始化配置",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "显示当前生效的配置",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "写出默认配置文件，默认路径为 ~/.ooodev.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&forceInit, "force", false, "覆盖已存在的配置文件")

	configCmd.AddCommand(showCmd, initCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = env.log.Sync()
	}()

	cfg := env.cfg
	tw := newTable(cmd.OutOrStdout(), "Key", "Value")
	tw.AppendRow([]any{"adapter_prefix", cfg.AdapterPrefix})
	tw.AppendRow([]any{"excluded_suffixes", joinOrDash(cfg.ExcludedSuffixes)})
	tw.AppendRow([]any{"strict_imports", cfg.StrictImports})
	tw.AppendRow([]any{"manifest_dirs", joinOrDash(cfg.ManifestDirs)})
	tw.AppendRow([]any{"debug", cfg.Debug || debugMode})
	tw.AppendRow([]any{"verbose", cfg.Verbose || verboseMode})
	tw.AppendRow([]any{"log_level", cfg.LogLevel})
	tw.AppendRow([]any{"record_stats", cfg.RecordStats})
	tw.AppendRow([]any{"stats_file", cfg.StatsFile})
	tw.Render()
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".ooodev.yaml")
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.SaveConfig(config.NewDefaultConfig(), path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Config written to: %s\n", path)
	return nil
}
