package cli

import (
	"fmt"
	"sort"

	"github.com/nerdneilsfield/go-ooodev/internal/stats"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var noStats bool

// NewBuildCommand 创建 build 命令
func NewBuildCommand() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build MANIFEST",
		Short: "按清单构建组合实例并显示其部件",
		Example: `  ooobuild build writer.yaml
  ooobuild build writer --no-stats`,
		Args: cobra.ExactArgs(1),
		RunE: runBuildCommand,
	}

	buildCmd.Flags().BoolVar(&noStats, "no-stats", false, "本次构建不记录统计")

	return buildCmd
}

func runBuildCommand(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = env.log.Sync()
	}()

	m, err := env.loadManifest(args[0])
	if err != nil {
		return err
	}

	var extra []builder.Option
	if env.cfg.RecordStats && !noStats {
		db, err := stats.NewDatabase(env.cfg.StatsFile, env.log)
		if err != nil {
			// 统计失败不影响构建
			env.log.Warn("statistics disabled", zap.Error(err))
		} else {
			extra = append(extra, builder.WithRecorder(db))
		}
	}

	b, err := m.Builder(m.NewComponent(), env.builderOptions(extra...)...)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", m.Name, err)
	}
	inst, err := b.Build(m.Recipe.Base)
	if err != nil {
		return fmt.Errorf("build %s: %w", m.Name, err)
	}

	env.log.Info("built composite",
		zap.String("manifest", m.Name),
		zap.String("class", inst.Class().Name()),
		zap.String("id", inst.ID()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", inst.Class().Name(), inst.ID())

	parts := newTable(out, "#", "Part", "Type")
	for i, p := range inst.Parts() {
		parts.AppendRow([]any{i + 1, shorten(p.Name), fmt.Sprintf("%T", p.Value)})
	}
	parts.Render()

	props := inst.Class().Properties()
	if len(props) > 0 {
		sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
		pt := newTable(out, "Property", "Value")
		for _, p := range props {
			pt.AppendRow([]any{p.Name, fmt.Sprint(p.Value)})
		}
		pt.Render()
	}
	return nil
}
