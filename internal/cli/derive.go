package cli

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/comp"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/spf13/cobra"
)

// NewDeriveCommand 创建 derive 命令
func NewDeriveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "derive NAME...",
		Short: "显示 UNO 能力名推导出的适配器名",
		Example: `  ooobuild derive com.sun.star.container.XNameAccess
  ooobuild derive com.sun.star.lang.XEventListener com.sun.star.beans.XPropertySet`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDeriveCommand,
	}
}

func runDeriveCommand(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() {
		_ = env.log.Sync()
	}()

	rules := env.cfg.NameRules()
	catalog := comp.Catalog()

	tw := newTable(cmd.OutOrStdout(), "Name", "Module", "Class", "Registered")
	for _, name := range args {
		var module, class string
		if builder.IsUnoName(name) {
			module, class = rules.Derive(name)
		} else {
			module, class = builder.SplitAdapterName(name)
		}

		registered := "no"
		if catalog.Has(rules.Normalize(name)) {
			registered = "yes"
		}
		tw.AppendRow([]any{shorten(name), shorten(module), class, registered})
	}
	tw.Render()
	return nil
}
