package cli

import (
	"fmt"
	"io"

	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var planFormat string

// NewPlanCommand 创建 plan 命令
func NewPlanCommand() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan MANIFEST",
		Short: "解析清单并显示将要合成的类，不实例化",
		Long: `plan 完成解析和合成两个阶段，输出类名、基类、方法解析顺序、
被跳过和被省略的适配器。MANIFEST 可以是文件路径，也可以是
manifest_dirs 中的清单名。`,
		Example: `  ooobuild plan writer.yaml
  ooobuild plan writer --format tree
  ooobuild plan writer --format toml`,
		Args: cobra.ExactArgs(1),
		RunE: runPlanCommand,
	}

	planCmd.Flags().StringVarP(&planFormat, "format", "f", "table", "输出格式 (table, tree, json, yaml, toml)")

	return planCmd
}

func runPlanCommand(cmd *cobra.Command, args []string) error {
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

	b, err := m.Builder(m.NewComponent(), env.builderOptions()...)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", m.Name, err)
	}
	class, err := b.BuildClass(m.Recipe.Base)
	if err != nil {
		return fmt.Errorf("plan %s: %w", m.Name, err)
	}

	info := class.Describe()
	env.log.Debug("planned class",
		zap.String("manifest", m.Name),
		zap.String("class", info.Name),
		zap.Int("mixins", len(info.Mixins)))

	return renderClassInfo(cmd.OutOrStdout(), planFormat, info)
}

// renderClassInfo 按格式输出类摘要
func renderClassInfo(w io.Writer, format string, info builder.ClassInfo) error {
	switch format {
	case "table":
		renderClassTable(w, info)
		return nil
	case "tree":
		return renderClassTree(w, info)
	default:
		return encode(w, format, info)
	}
}

func renderClassTable(w io.Writer, info builder.ClassInfo) {
	summary := newTable(w)
	summary.AppendRow([]any{"Class", info.Name})
	summary.AppendRow([]any{"Synthesized", info.Synthesized})
	summary.AppendRow([]any{"Base", shorten(info.Base)})
	summary.AppendRow([]any{"Omitted", joinOrDash(info.Omitted)})
	summary.Render()

	mixins := newTable(w, "#", "Adapter", "Group", "Init", "Capabilities")
	for i, m := range info.Mixins {
		mixins.AppendRow([]any{i + 1, shorten(m.Name), m.Group, m.Init, joinOrDash(m.Capabilities)})
	}
	mixins.Render()

	mro := newTable(w, "MRO")
	for _, name := range info.MRO {
		mro.AppendRow([]any{shorten(name)})
	}
	mro.Render()

	if len(info.Skipped) > 0 {
		skipped := newTable(w, "Skipped", "Reason")
		for _, s := range info.Skipped {
			skipped.AppendRow([]any{shorten(s.Name), s.Reason})
		}
		skipped.Render()
	}
}

// renderClassTree 以树的形式显示方法解析顺序，混入下列出其能力
func renderClassTree(w io.Writer, info builder.ClassInfo) error {
	caps := make(map[string][]string, len(info.Mixins))
	for _, m := range info.Mixins {
		caps[m.Name] = m.Capabilities
	}

	list := pterm.LeveledList{{Level: 0, Text: info.Name}}
	for _, name := range info.MRO {
		list = append(list, pterm.LeveledListItem{Level: 1, Text: name})
		for _, c := range caps[name] {
			list = append(list, pterm.LeveledListItem{Level: 2, Text: c})
		}
	}
	for _, s := range info.Skipped {
		list = append(list, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("(skipped) %s: %s", s.Name, s.Reason)})
	}

	out, err := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(list)).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
