package stats

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const titleWidth = 60

// Visualizer 统计数据可视化器
type Visualizer struct {
	db  *Database
	out io.Writer
}

// NewVisualizer 创建可视化器，out 为 nil 时写到标准输出
func NewVisualizer(db *Database, out io.Writer) *Visualizer {
	if out == nil {
		out = os.Stdout
	}
	return &Visualizer{db: db, out: out}
}

// ShowOverview 显示总览
func (v *Visualizer) ShowOverview() {
	stats := v.db.GetStats()

	v.printTitle(color.New(color.FgCyan, color.Bold), "📊 Build Statistics Overview")

	synthRate := 0.0
	if stats.TotalBuilds > 0 {
		synthRate = float64(stats.SynthesizedBuilds) / float64(stats.TotalBuilds) * 100
	}

	fmt.Fprintln(v.out)
	v.printSection("🎯 Overall Statistics", [][]string{
		{"Total Builds", formatNumber(stats.TotalBuilds)},
		{"Synthesized", fmt.Sprintf("%s (%.1f%%)", formatNumber(stats.SynthesizedBuilds), synthRate)},
		{"Total Errors", formatNumber(stats.TotalErrors)},
		{"Total Duration", formatDuration(stats.TotalDuration)},
		{"Targets", formatNumber(int64(len(stats.Targets)))},
		{"Adapters Seen", formatNumber(int64(len(stats.Adapters)))},
		{"Database Created", formatTime(stats.CreatedAt)},
		{"Last Updated", formatTime(stats.LastUpdated)},
	})

	fmt.Fprintln(v.out)
	v.printSection("⚡ Performance Statistics", [][]string{
		{"Avg Mixins/Class", fmt.Sprintf("%.2f", stats.PerformanceStats.AverageMixins)},
		{"Fastest Build", formatDuration(stats.PerformanceStats.FastestBuild)},
		{"Slowest Build", formatDuration(stats.PerformanceStats.SlowestBuild)},
	})
}

// ShowTargets 显示目标组件统计
func (v *Visualizer) ShowTargets() {
	stats := v.db.GetStats()

	v.printTitle(color.New(color.FgMagenta, color.Bold), "🧩 Target Statistics")

	if len(stats.Targets) == 0 {
		fmt.Fprintln(v.out, "No target data available.")
		return
	}

	// 按构建次数排序
	targets := make([]*TargetStats, 0, len(stats.Targets))
	for _, t := range stats.Targets {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].BuildCount != targets[j].BuildCount {
			return targets[i].BuildCount > targets[j].BuildCount
		}
		return targets[i].Target < targets[j].Target
	})

	fmt.Fprintln(v.out)
	for i, t := range targets {
		if i > 0 {
			fmt.Fprintln(v.out)
		}

		successRate := float64(t.BuildCount-t.ErrorCount) / float64(t.BuildCount) * 100

		v.printSection(truncate("🔧 "+t.Target, titleWidth), [][]string{
			{"Builds", formatNumber(t.BuildCount)},
			{"Errors", formatNumber(t.ErrorCount)},
			{"Success Rate", fmt.Sprintf("%.1f%%", successRate)},
			{"Last Class", t.LastClass},
			{"Avg Duration", formatDuration(t.AverageDuration)},
			{"Last Used", formatTime(t.LastUsed)},
		})
	}
}

// ShowAdapters 显示适配器统计
func (v *Visualizer) ShowAdapters(limit int) {
	adapters := v.db.TopAdapters(limit)

	v.printTitle(color.New(color.FgGreen, color.Bold), "🧱 Adapter Statistics")

	if len(adapters) == 0 {
		fmt.Fprintln(v.out, "No adapter data available.")
		return
	}

	fmt.Fprintln(v.out)
	for i, a := range adapters {
		if i > 0 {
			fmt.Fprintln(v.out)
		}
		v.printSection(truncate("📦 "+a.Name, titleWidth), [][]string{
			{"Included", formatNumber(a.Included)},
			{"Skipped", formatNumber(a.Skipped)},
			{"Omitted", formatNumber(a.Omitted)},
			{"Last Used", formatTime(a.LastUsed)},
		})
	}
}

// ShowRecentBuilds 显示最近的构建
func (v *Visualizer) ShowRecentBuilds(limit int) {
	records := v.db.GetRecentBuilds(limit)

	v.printTitle(color.New(color.FgBlue, color.Bold), fmt.Sprintf("🕒 Recent Builds (Last %d)", len(records)))

	if len(records) == 0 {
		fmt.Fprintln(v.out, "No recent builds found.")
		return
	}

	for i, record := range records {
		if i > 0 {
			fmt.Fprintln(v.out)
		}

		icon := "✅"
		switch record.Status {
		case StatusFailed:
			icon = "❌"
		case StatusBase:
			icon = "➖"
		}

		data := [][]string{
			{"Timestamp", formatTime(record.Timestamp)},
			{"Status", statusLabel(record.Status)},
			{"Class", record.Class},
			{"Mixins", strconv.Itoa(len(record.Mixins))},
			{"Duration", formatDuration(record.Duration)},
		}
		if len(record.Skipped) > 0 {
			data = append(data, []string{"Skipped", strconv.Itoa(len(record.Skipped))})
		}
		if len(record.Omitted) > 0 {
			data = append(data, []string{"Omitted", strconv.Itoa(len(record.Omitted))})
		}

		v.printSection(truncate(fmt.Sprintf("%s %s", icon, record.Target), titleWidth), data)

		if record.ErrorMessage != "" {
			color.New(color.FgRed).Fprintf(v.out, "  ❌ Error: %s\n", record.ErrorMessage)
		}
	}
}

func (v *Visualizer) printTitle(c *color.Color, title string) {
	c.Fprintln(v.out, title)
	c.Fprintln(v.out, strings.Repeat("=", 50))
}

// printSection 打印一个统计部分
func (v *Visualizer) printSection(title string, data [][]string) {
	sectionColor := color.New(color.FgYellow, color.Bold)
	sectionColor.Fprintf(v.out, "%s\n", title)

	// 计算最大标签长度
	maxLabelLen := 0
	for _, row := range data {
		if len(row[0]) > maxLabelLen {
			maxLabelLen = len(row[0])
		}
	}

	labelColor := color.New(color.FgCyan)
	valueColor := color.New(color.FgWhite, color.Bold)
	for _, row := range data {
		label := fmt.Sprintf("  %-*s", maxLabelLen, row[0])
		labelColor.Fprintf(v.out, "%s: ", label)
		valueColor.Fprintln(v.out, row[1])
	}
}

// 辅助函数

var titleCaser = cases.Title(language.English)

// statusLabel 状态名的显示形式
func statusLabel(status string) string {
	if status == "" {
		return "N/A"
	}
	return titleCaser.String(status)
}

// truncate 按显示宽度截断
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// formatNumber 格式化数字（添加千位分隔符）
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(char)
	}
	return result.String()
}

// formatDuration 格式化持续时间
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}

	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
	}

	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}

	return fmt.Sprintf("%.1fh", d.Hours())
}

// formatTime 格式化时间
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}

	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
		return t.Format("15:04:05")
	}

	if t.Year() == now.Year() {
		return t.Format("Jan 02 15:04")
	}

	return t.Format("2006-01-02 15:04")
}
