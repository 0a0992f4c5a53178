package underwrite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propintel/underwrite/pdf"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "underwrite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, pdf.Letter, opts.Page)
	assert.Equal(t, "PropIntel AI – Underwriting Report", opts.Info.Title)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
page_size: a4
layout:
  theme:
    header: "text-xs bg-green-700 text-white font-bold"
branding:
  tagline: Acme Underwriting
server:
  addr: ":8080"
  shutdown_timeout: 3s
store:
  db_path: /tmp/history.db
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10, cfg.Server.HistoryLimit, "unset fields keep their defaults")
	assert.Equal(t, "Acme Underwriting", cfg.Branding.Tagline)
	assert.Equal(t, "PropIntel AI – Underwriting Report", cfg.Branding.Title)
	assert.Equal(t, "/tmp/history.db", cfg.Store.DBPath)
	assert.Equal(t, pdf.DefaultTheme().Title, cfg.Layout.Theme.Title)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, pdf.A4, opts.Page)
	assert.Equal(t, pdf.RGB{R: 0x15, G: 0x80, B: 0x3d}, opts.Theme.Resolve().HeaderFill.FillColor)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "page_size: tabloid\n"))
	assert.ErrorContains(t, err, "tabloid")

	_, err = LoadConfig(writeConfig(t, "branding:\n  columns:\n    widths: [400, 400]\n    row_height: 24\n"))
	assert.ErrorIs(t, err, pdf.ErrTooWide)

	_, err = LoadConfig(writeConfig(t, "layout: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestBindAllFlags(t *testing.T) {
	flags := pflagSet()
	BindAllFlags(flags)
	require.NoError(t, flags.Parse([]string{"-vv", "--config", "cfg.yaml", "--no-color", "--json-logs"}))

	assert.Equal(t, 2, Flags.LevelCount)
	assert.Equal(t, "cfg.yaml", Flags.ConfigFile)
	assert.True(t, Flags.NoColor)
	assert.True(t, Flags.JsonLogs)
	assert.Contains(t, Flags.String(), "cfg.yaml")
}
