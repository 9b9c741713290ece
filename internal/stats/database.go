package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"go.uber.org/zap"
)

const (
	StatsDBVersion   = "1.0.0"
	MaxRecentRecords = 100
)

// Database 统计数据库，同时实现 builder.Recorder
type Database struct {
	filePath string
	data     *StatisticsDB
	mutex    sync.RWMutex
	logger   *zap.Logger
}

var _ builder.Recorder = (*Database)(nil)

// NewDatabase 创建统计数据库
func NewDatabase(filePath string, logger *zap.Logger) (*Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db := &Database{
		filePath: filePath,
		logger:   logger,
	}

	// 确保目录存在
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	if err := db.load(); err != nil {
		return nil, fmt.Errorf("failed to load stats database: %w", err)
	}

	return db, nil
}

func newStatisticsDB() *StatisticsDB {
	now := time.Now()
	return &StatisticsDB{
		Version:      StatsDBVersion,
		CreatedAt:    now,
		LastUpdated:  now,
		Targets:      make(map[string]*TargetStats),
		Adapters:     make(map[string]*AdapterStats),
		RecentBuilds: make([]*BuildRecord, 0),
	}
}

// load 加载统计数据
func (db *Database) load() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, err := os.Stat(db.filePath); os.IsNotExist(err) {
		db.data = newStatisticsDB()
		return db.saveUnsafe()
	}

	data, err := os.ReadFile(db.filePath)
	if err != nil {
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var statsDB StatisticsDB
	if err := json.Unmarshal(data, &statsDB); err != nil {
		return fmt.Errorf("failed to parse stats file: %w", err)
	}

	// 初始化可能为 nil 的字段
	if statsDB.Targets == nil {
		statsDB.Targets = make(map[string]*TargetStats)
	}
	if statsDB.Adapters == nil {
		statsDB.Adapters = make(map[string]*AdapterStats)
	}
	if statsDB.RecentBuilds == nil {
		statsDB.RecentBuilds = make([]*BuildRecord, 0)
	}

	db.data = &statsDB
	db.logger.Debug("loaded statistics database",
		zap.String("version", statsDB.Version),
		zap.Time("created_at", statsDB.CreatedAt),
		zap.Int64("total_builds", statsDB.TotalBuilds))

	return nil
}

// Path 返回数据库文件路径
func (db *Database) Path() string {
	return db.filePath
}

// Save 保存统计数据
func (db *Database) Save() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	return db.saveUnsafe()
}

// saveUnsafe 不安全的保存（需要已持有锁）
func (db *Database) saveUnsafe() error {
	db.data.LastUpdated = time.Now()

	data, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats data: %w", err)
	}

	// 原子写入
	tempFile := db.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp stats file: %w", err)
	}

	if err := os.Rename(tempFile, db.filePath); err != nil {
		return fmt.Errorf("failed to rename stats file: %w", err)
	}

	return nil
}

// RecordBuild 实现 builder.Recorder；写入失败只记录日志
func (db *Database) RecordBuild(report builder.BuildReport) {
	if err := db.AddBuildRecord(NewBuildRecord(report)); err != nil {
		db.logger.Warn("failed to record build", zap.String("target", report.Target), zap.Error(err))
	}
}

// AddBuildRecord 添加构建记录
func (db *Database) AddBuildRecord(record *BuildRecord) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	d := db.data
	d.TotalBuilds++
	d.TotalDuration += record.Duration
	switch record.Status {
	case StatusFailed:
		d.TotalErrors++
	case StatusSynthesized:
		d.SynthesizedBuilds++
	}

	// 更新目标统计
	target, exists := d.Targets[record.Target]
	if !exists {
		target = &TargetStats{Target: record.Target}
		d.Targets[record.Target] = target
	}
	target.BuildCount++
	if record.Status == StatusFailed {
		target.ErrorCount++
	}
	if record.Class != "" {
		target.LastClass = record.Class
	}
	target.LastUsed = record.Timestamp

	// 计算平均持续时间
	totalDuration := time.Duration(int64(target.AverageDuration) * (target.BuildCount - 1))
	target.AverageDuration = (totalDuration + record.Duration) / time.Duration(target.BuildCount)

	// 更新适配器统计
	for _, name := range record.Mixins {
		db.adapterUnsafe(name, record.Timestamp).Included++
	}
	for _, s := range record.Skipped {
		db.adapterUnsafe(s.Name, record.Timestamp).Skipped++
	}
	for _, name := range record.Omitted {
		db.adapterUnsafe(name, record.Timestamp).Omitted++
	}

	d.RecentBuilds = append(d.RecentBuilds, record)

	// 保持最近记录数量限制
	if len(d.RecentBuilds) > MaxRecentRecords {
		sort.Slice(d.RecentBuilds, func(i, j int) bool {
			return d.RecentBuilds[i].Timestamp.After(d.RecentBuilds[j].Timestamp)
		})
		d.RecentBuilds = d.RecentBuilds[:MaxRecentRecords]
	}

	db.updatePerformanceStats(record)

	return db.saveUnsafe()
}

func (db *Database) adapterUnsafe(name string, ts time.Time) *AdapterStats {
	a, exists := db.data.Adapters[name]
	if !exists {
		a = &AdapterStats{Name: name}
		db.data.Adapters[name] = a
	}
	a.LastUsed = ts
	return a
}

// updatePerformanceStats 更新性能统计
func (db *Database) updatePerformanceStats(record *BuildRecord) {
	perf := &db.data.PerformanceStats
	n := db.data.TotalBuilds

	total := perf.AverageMixins * float64(n-1)
	perf.AverageMixins = (total + float64(len(record.Mixins))) / float64(n)

	if record.Duration <= 0 {
		return
	}
	if perf.FastestBuild == 0 || record.Duration < perf.FastestBuild {
		perf.FastestBuild = record.Duration
	}
	if record.Duration > perf.SlowestBuild {
		perf.SlowestBuild = record.Duration
	}
}

// GetStats 获取统计数据（只读副本）
func (db *Database) GetStats() *StatisticsDB {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	data, err := json.Marshal(db.data)
	if err != nil {
		db.logger.Warn("failed to copy stats", zap.Error(err))
		return newStatisticsDB()
	}
	var copied StatisticsDB
	if err := json.Unmarshal(data, &copied); err != nil {
		db.logger.Warn("failed to copy stats", zap.Error(err))
		return newStatisticsDB()
	}
	return &copied
}

// GetRecentBuilds 获取最近的构建记录，最新的在前
func (db *Database) GetRecentBuilds(limit int) []*BuildRecord {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if limit <= 0 || limit > len(db.data.RecentBuilds) {
		limit = len(db.data.RecentBuilds)
	}

	sorted := make([]*BuildRecord, len(db.data.RecentBuilds))
	copy(sorted, db.data.RecentBuilds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	return sorted[:limit]
}

// TopAdapters 返回被组合次数最多的适配器
func (db *Database) TopAdapters(limit int) []*AdapterStats {
	stats := db.GetStats()

	out := make([]*AdapterStats, 0, len(stats.Adapters))
	for _, a := range stats.Adapters {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Included != out[j].Included {
			return out[i].Included > out[j].Included
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Reset 清空统计数据
func (db *Database) Reset() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.data = newStatisticsDB()
	return db.saveUnsafe()
}
