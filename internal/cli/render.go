package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// 表格单元格的最大显示宽度
const maxCellWidth = 72

// newTable 创建写到 w 的表格
func newTable(w io.Writer, header ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if len(header) > 0 {
		tw.AppendHeader(table.Row(header))
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

// shorten 按显示宽度截断过长的名称，保留结尾的类名
func shorten(s string) string {
	if runewidth.StringWidth(s) <= maxCellWidth {
		return s
	}
	runes := []rune(s)
	width := 0
	i := len(runes)
	for i > 0 && width+runewidth.RuneWidth(runes[i-1]) <= maxCellWidth-3 {
		i--
		width += runewidth.RuneWidth(runes[i])
	}
	return "..." + string(runes[i:])
}

// joinOrDash 连接字符串，空列表显示为 -
func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// encode 按格式序列化 v
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
