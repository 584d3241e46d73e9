package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "xlgrid.yaml")
	content := "verbose: true\n" +
		"read:\n  sheet: 社員リスト\n  format: csv\n  pretty: true\n" +
		"write:\n  verify: true\n" +
		"sheets:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t,
		map[string]string{"verbose": "true", "sheet": "社員リスト", "format": "csv", "pretty": "true"},
		cfg.values("read"))
	assert.Equal(t, map[string]string{"verbose": "true", "verify": "true"}, cfg.values("write"))
	assert.Equal(t, map[string]string{"verbose": "true", "format": "json"}, cfg.values("sheets"))
	assert.Equal(t, map[string]string{"verbose": "true"}, cfg.values("demo"))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	cfg, err = loadConfig(empty)
	require.NoError(t, err)
	assert.Empty(t, cfg.values("read"))

	for name, body := range map[string]string{
		"unknown.yaml":    "colour: red\n",
		"toplevel.yaml":   "format: csv\n",
		"badsection.yaml": "read:\n  colour: red\n",
	} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		_, err = loadConfig(p)
		assert.Error(t, err, name)
	}

	_, err = loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyConfig(t *testing.T) {
	flags := pflag.NewFlagSet("read", pflag.ContinueOnError)
	sheet := flags.String("sheet", "", "")
	format := flags.String("format", "json", "")
	pretty := flags.Bool("pretty", false, "")
	require.NoError(t, flags.Parse([]string{"--format", "table"}))

	name, csv, yes, no := "Data", "csv", true, false
	cfg := config{Read: commandConfig{Sheet: &name, Format: &csv, Pretty: &yes, Verify: &no}}
	require.NoError(t, applyConfig(flags, cfg.values("read")))

	assert.Equal(t, "Data", *sheet)
	assert.Equal(t, "table", *format, "flags set on the command line win")
	assert.True(t, *pretty)
	assert.Nil(t, flags.Lookup("verify"))

	bad := pflag.NewFlagSet("write", pflag.ContinueOnError)
	bad.Bool("verify", false, "")
	assert.Error(t, applyConfig(bad, map[string]string{"verify": "maybe"}))
}

func TestConfigFlagSeedsCommand(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "in.xlsx")
	require.NoError(t, xlgrid.WriteSheets(xlsx, []models.Sheet{
		{Name: "First", Rows: models.Grid{{"1"}}},
		{Name: "Second", Rows: models.Grid{{"2", "3"}}},
	}, xlgrid.DefaultWriteOptions()))

	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("read:\n  sheet: Second\n  format: csv\n"), 0644))

	out, err := execute(t, "", "read", xlsx, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "2,3\n", out)

	out, err = execute(t, "", "read", xlsx, "--config", cfgPath, "--sheet", "First")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	// The read format must not leak into sheets, which has no csv output.
	out, err = execute(t, "", "sheets", xlsx, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Second")
	assert.NotContains(t, out, `"name"`)
}

func TestConfigFormatPerCommand(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "in.xlsx")
	require.NoError(t, xlgrid.WriteSheet(xlsx, models.Grid{{"a"}}, "Only", xlgrid.DefaultWriteOptions()))

	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("read:\n  format: csv\nsheets:\n  format: json\n"), 0644))

	out, err := execute(t, "", "read", xlsx, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)

	out, err = execute(t, "", "sheets", xlsx, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"Only"`)
}
