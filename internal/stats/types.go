package stats

import (
	"time"

	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
)

// 构建状态
const (
	StatusSynthesized = "synthesized"
	StatusBase        = "base"
	StatusFailed      = "failed"
)

// StatisticsDB 统计数据库结构
type StatisticsDB struct {
	Version     string    `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`

	// 总体统计
	TotalBuilds       int64         `json:"total_builds"`
	SynthesizedBuilds int64         `json:"synthesized_builds"`
	TotalErrors       int64         `json:"total_errors"`
	TotalDuration     time.Duration `json:"total_duration"`

	// 按目标组件统计
	Targets map[string]*TargetStats `json:"targets"`

	// 按适配器统计
	Adapters map[string]*AdapterStats `json:"adapters"`

	// 最近的构建记录
	RecentBuilds []*BuildRecord `json:"recent_builds"`

	// 性能统计
	PerformanceStats PerformanceStatistics `json:"performance_stats"`
}

// TargetStats 目标组件统计
type TargetStats struct {
	Target          string        `json:"target"`
	BuildCount      int64         `json:"build_count"`
	ErrorCount      int64         `json:"error_count"`
	AverageDuration time.Duration `json:"average_duration"`
	LastClass       string        `json:"last_class"`
	LastUsed        time.Time     `json:"last_used"`
}

// AdapterStats 适配器统计
type AdapterStats struct {
	Name     string    `json:"name"`
	Included int64     `json:"included"`
	Skipped  int64     `json:"skipped"`
	Omitted  int64     `json:"omitted"`
	LastUsed time.Time `json:"last_used"`
}

// BuildRecord 构建记录
type BuildRecord struct {
	ID           string            `json:"id"`
	Timestamp    time.Time         `json:"timestamp"`
	Target       string            `json:"target"`
	Class        string            `json:"class"`
	Status       string            `json:"status"`
	Mixins       []string          `json:"mixins"`
	Skipped      []builder.Skipped `json:"skipped,omitempty"`
	Omitted      []string          `json:"omitted,omitempty"`
	Duration     time.Duration     `json:"duration"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// PerformanceStatistics 性能统计
type PerformanceStatistics struct {
	FastestBuild  time.Duration `json:"fastest_build"`
	SlowestBuild  time.Duration `json:"slowest_build"`
	AverageMixins float64       `json:"average_mixins"`
}

// NewBuildRecord 把构建报告转换为记录
func NewBuildRecord(report builder.BuildReport) *BuildRecord {
	status := StatusBase
	switch {
	case report.Error != "":
		status = StatusFailed
	case report.Synthesized:
		status = StatusSynthesized
	}
	return &BuildRecord{
		ID:           report.ID,
		Timestamp:    report.Timestamp,
		Target:       report.Target,
		Class:        report.Class,
		Status:       status,
		Mixins:       append([]string(nil), report.Mixins...),
		Skipped:      append([]builder.Skipped(nil), report.Skipped...),
		Omitted:      append([]string(nil), report.Omitted...),
		Duration:     report.Duration,
		ErrorMessage: report.Error,
	}
}
