package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Kunde21/markdownfmt/v3"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/comp"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var catalogFormat string

// NewCatalogCommand 创建 catalog 命令
func NewCatalogCommand() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "列出目录中注册的适配器",
		Example: `  ooobuild catalog
  ooobuild catalog --format markdown > ADAPTERS.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderCatalog(cmd.OutOrStdout(), catalogFormat, comp.Catalog().List())
		},
	}

	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", "table", "输出格式 (table, markdown, html)")

	return catalogCmd
}

// renderCatalog 按格式输出适配器列表
func renderCatalog(w io.Writer, format string, adapters []builder.Adapter) error {
	switch format {
	case "table":
		tw := newTable(w, "Adapter", "Kind", "Parents", "Description")
		for _, a := range adapters {
			tw.AppendRow([]any{shorten(a.Name), adapterKind(a), joinOrDash(a.Parents), a.Description})
		}
		tw.Render()
		return nil
	case "markdown":
		md, err := catalogMarkdown(adapters)
		if err != nil {
			return err
		}
		_, err = w.Write(md)
		return err
	case "html":
		md, err := catalogMarkdown(adapters)
		if err != nil {
			return err
		}
		return goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert(md, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// catalogMarkdown 生成按模块分组的 Markdown 文档
func catalogMarkdown(adapters []builder.Adapter) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Adapter catalog\n\n")

	module := ""
	for _, a := range adapters {
		m, class := builder.SplitAdapterName(a.Name)
		if m != module {
			module = m
			fmt.Fprintf(&buf, "\n## `%s`\n\n", module)
		}
		fmt.Fprintf(&buf, "* **%s** (%s)", class, adapterKind(a))
		if a.Description != "" {
			fmt.Fprintf(&buf, ": %s", a.Description)
		}
		buf.WriteString("\n")
		for _, p := range a.Parents {
			fmt.Fprintf(&buf, "  * parent `%s`\n", p)
		}
	}

	return markdownfmt.Process("", buf.Bytes())
}

func adapterKind(a builder.Adapter) string {
	if a.IsEvents() {
		return "events"
	}
	return "partial"
}
