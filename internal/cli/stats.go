package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/go-ooodev/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// stats 命令的标志
	statsFormat  string
	recentLimit  int
	adapterLimit int
	exportPath   string
	resetStats   bool
	assumeYes    bool
)

// NewStatsCommand 创建 stats 命令
func NewStatsCommand() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "View build statistics",
		Long: `View statistics about synthesized classes, including:
- Overall build statistics
- Per-target statistics
- Adapter usage (included, skipped, omitted)
- Recent build history

Examples:
  # Show overview and recent builds
  ooobuild stats

  # Show the last 20 builds
  ooobuild stats --recent 20

  # Show per-target statistics
  ooobuild stats --targets

  # Show the 5 most used adapters
  ooobuild stats --adapters --top 5

  # Export statistics
  ooobuild stats --export stats.yaml --format yaml

  # Reset all statistics
  ooobuild stats --reset`,
		Args: cobra.NoArgs,
		RunE: runStatsCommand,
	}

	// 添加标志
	statsCmd.Flags().StringVar(&statsFormat, "format", "json", "Export format (json, yaml)")
	statsCmd.Flags().IntVar(&recentLimit, "recent", 10, "Number of recent builds to show")
	statsCmd.Flags().IntVar(&adapterLimit, "top", 0, "Number of adapters to show with --adapters (0 for all)")
	statsCmd.Flags().StringVar(&exportPath, "export", "", "Export statistics to file")
	statsCmd.Flags().BoolVar(&resetStats, "reset", false, "Reset all statistics (requires confirmation)")
	statsCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	statsCmd.Flags().Bool("targets", false, "Show only target statistics")
	statsCmd.Flags().Bool("adapters", false, "Show only adapter statistics")

	return statsCmd
}

// runStatsCommand 执行 stats 命令
func runStatsCommand(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = env.log.Sync()
	}()

	db, err := stats.NewDatabase(env.cfg.StatsFile, env.log)
	if err != nil {
		return fmt.Errorf("failed to initialize statistics database: %w", err)
	}

	// 处理重置选项
	if resetStats {
		return handleStatsReset(cmd, db, env.log)
	}

	// 处理导出选项
	if exportPath != "" {
		return handleStatsExport(cmd, db, exportPath)
	}

	visualizer := stats.NewVisualizer(db, cmd.OutOrStdout())

	showTargets, _ := cmd.Flags().GetBool("targets")
	showAdapters, _ := cmd.Flags().GetBool("adapters")

	if showTargets {
		visualizer.ShowTargets()
		return nil
	}

	if showAdapters {
		visualizer.ShowAdapters(adapterLimit)
		return nil
	}

	// 默认显示概览和最近构建
	visualizer.ShowOverview()

	fmt.Fprintln(cmd.OutOrStdout())
	visualizer.ShowRecentBuilds(recentLimit)

	return nil
}

// handleStatsReset 处理统计重置
func handleStatsReset(cmd *cobra.Command, db *stats.Database, log *zap.Logger) error {
	out := cmd.OutOrStdout()

	if !assumeYes {
		fmt.Fprint(out, "Are you sure you want to reset all statistics? This cannot be undone. (y/N): ")

		confirmation, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		confirmation = strings.ToLower(strings.TrimSpace(confirmation))
		if confirmation != "y" && confirmation != "yes" {
			fmt.Fprintln(out, "Statistics reset cancelled.")
			return nil
		}
	}

	if err := db.Reset(); err != nil {
		return fmt.Errorf("failed to reset statistics: %w", err)
	}

	fmt.Fprintln(out, "✅ Statistics have been reset.")
	log.Info("statistics reset", zap.String("path", db.Path()))

	return nil
}

// handleStatsExport 处理统计导出
func handleStatsExport(cmd *cobra.Command, db *stats.Database, exportPath string) error {
	if statsFormat != "json" && statsFormat != "yaml" {
		return fmt.Errorf("unsupported export format %q", statsFormat)
	}

	// 确保目录存在
	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := encode(f, statsFormat, db.GetStats()); err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Statistics exported to: %s\n", exportPath)
	return nil
}
