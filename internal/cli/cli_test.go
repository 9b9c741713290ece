package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerdneilsfield/go-ooodev/internal/cli"
	"github.com/nerdneilsfield/go-ooodev/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const manifestDir = "../manifest/testdata"

// writeTestConfig 写出把统计放在临时目录的配置
func writeTestConfig(t *testing.T) (cfgPath, statsPath string) {
	t.Helper()
	dir := t.TempDir()
	statsPath = filepath.Join(dir, "build_stats.json")
	cfgPath = filepath.Join(dir, "ooodev.yaml")

	abs, err := filepath.Abs(manifestDir)
	require.NoError(t, err)

	content := "stats_file: " + statsPath + "\n" +
		"record_stats: true\n" +
		"log_level: error\n" +
		"manifest_dirs: [" + abs + "]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath, statsPath
}

// run 执行一次命令并返回输出
func run(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand("1.2.3", "abc", "today")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// TestCLIHelp 测试帮助信息
func TestCLIHelp(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := run(t, cfgPath, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "ooobuild")
	for _, sub := range []string{"derive", "plan", "build", "catalog", "stats", "config"} {
		assert.Contains(t, out, sub)
	}
}

// TestCLIVersion 测试版本信息
func TestCLIVersion(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := run(t, cfgPath, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "commit abc")
	assert.Contains(t, out, "built today")
}

func TestDerive(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := run(t, cfgPath, "", "derive",
		"com.sun.star.container.XNameAccess",
		"com.sun.star.lang.XEventListener",
		"com.sun.star.frame.XModel")
	require.NoError(t, err)

	assert.Contains(t, out, "ooodev.adapter.container.name_access_partial")
	assert.Contains(t, out, "NameAccessPartial")
	assert.Contains(t, out, "ooodev.adapter.lang.event_listener")
	assert.Contains(t, out, "EventListener")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestDeriveRequiresArgs(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := run(t, cfgPath, "", "derive")
	assert.Error(t, err)
}

func TestPlanFormats(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "plan", "document")
		require.NoError(t, err)
		assert.Contains(t, out, "WriterDoc")
		assert.Contains(t, out, "PropertySetPartial")
		assert.Contains(t, out, "IndexAccessPartial")
	})

	t.Run("tree", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "plan", "document", "--format", "tree")
		require.NoError(t, err)
		assert.Contains(t, out, "WriterDoc")
		assert.Contains(t, out, "com.sun.star.beans.XPropertySet")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "plan", "document", "--format", "json")
		require.NoError(t, err)

		var info map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "WriterDoc", info["name"])
		assert.Equal(t, true, info["synthesized"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "plan", filepath.Join(manifestDir, "document.toml"), "--format", "yaml")
		require.NoError(t, err)

		var info map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &info))
		assert.Equal(t, "WriterDoc", info["name"])
	})

	t.Run("toml", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "plan", "document", "--format", "toml")
		require.NoError(t, err)
		assert.Contains(t, out, `name = "WriterDoc"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, cfgPath, "", "plan", "document", "--format", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := run(t, cfgPath, "", "plan", "nope")
		assert.ErrorContains(t, err, "not found")
	})
}

func TestBuildRecordsStats(t *testing.T) {
	cfgPath, statsPath := writeTestConfig(t)

	out, err := run(t, cfgPath, "", "build", "document")
	require.NoError(t, err)
	assert.Contains(t, out, "WriterDoc")
	assert.Contains(t, out, "NameAccessPartial")
	assert.Contains(t, out, "Kind")

	db, err := stats.NewDatabase(statsPath, nil)
	require.NoError(t, err)
	data := db.GetStats()
	assert.Equal(t, int64(1), data.TotalBuilds)
	assert.Equal(t, int64(1), data.SynthesizedBuilds)
	require.Contains(t, data.Targets, "SwXTextDocument")
	assert.Equal(t, "WriterDoc", data.Targets["SwXTextDocument"].LastClass)
}

func TestBuildWithoutStats(t *testing.T) {
	cfgPath, statsPath := writeTestConfig(t)

	_, err := run(t, cfgPath, "", "build", "document", "--no-stats")
	require.NoError(t, err)

	_, err = os.Stat(statsPath)
	assert.True(t, os.IsNotExist(err))
}

func TestCatalog(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "catalog")
		require.NoError(t, err)
		assert.Contains(t, out, "NameAccessPartial")
		assert.Contains(t, out, "events")
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "catalog", "--format", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "# Adapter catalog")
		assert.Contains(t, out, "`ooodev.adapter.container.name_access_partial`")
		assert.Contains(t, out, "NameAccessPartial")
		assert.Contains(t, out, "parent `ooodev.adapter.container.element_access_partial.ElementAccessPartial`")
	})

	t.Run("html", func(t *testing.T) {
		out, err := run(t, cfgPath, "", "catalog", "--format", "html")
		require.NoError(t, err)
		assert.Contains(t, out, "<h1>Adapter catalog</h1>")
		assert.Contains(t, out, "<strong>NameAccessPartial</strong>")
	})
}

func TestStatsCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := run(t, cfgPath, "", "build", "document")
	require.NoError(t, err)

	out, err := run(t, cfgPath, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Build Statistics Overview")
	assert.Contains(t, out, "SwXTextDocument")

	out, err = run(t, cfgPath, "", "stats", "--adapters", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Adapter Statistics")

	exportFile := filepath.Join(t.TempDir(), "out", "stats.yaml")
	_, err = run(t, cfgPath, "", "stats", "--export", exportFile, "--format", "yaml")
	require.NoError(t, err)
	data, err := os.ReadFile(exportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_builds: 1")
}

func TestStatsReset(t *testing.T) {
	cfgPath, statsPath := writeTestConfig(t)

	_, err := run(t, cfgPath, "", "build", "document")
	require.NoError(t, err)

	out, err := run(t, cfgPath, "n\n", "stats", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	out, err = run(t, cfgPath, "y\n", "stats", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "reset")

	db, err := stats.NewDatabase(statsPath, nil)
	require.NoError(t, err)
	assert.Zero(t, db.GetStats().TotalBuilds)
}

func TestConfigCommands(t *testing.T) {
	cfgPath, statsPath := writeTestConfig(t)

	out, err := run(t, cfgPath, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, statsPath)
	assert.Contains(t, out, "ooodev.adapter")

	target := filepath.Join(t.TempDir(), "new.yaml")
	_, err = run(t, cfgPath, "", "config", "init", target)
	require.NoError(t, err)
	assert.FileExists(t, target)

	_, err = run(t, cfgPath, "", "config", "init", target)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, cfgPath, "", "config", "init", target, "--force")
	require.NoError(t, err)
}
