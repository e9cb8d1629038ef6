package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, used, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, used)
	assert.Equal(t, DefaultContentDir, cfg.ContentDir)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
	assert.Equal(t, DefaultWordsPerMinute, cfg.WordsPerMinute)
	assert.Equal(t, DefaultRelatedLimit, cfg.RelatedLimit)
	assert.Equal(t, 4, cfg.Build.Workers)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Server.Watch)
	assert.True(t, cfg.Index.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "contentDir: articles\n" +
		"siteTitle: Comfort Guide\n" +
		"relatedLimit: 6\n" +
		"server:\n  port: 9000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hvacguide.yaml"), []byte(yaml), 0644))

	t.Setenv("HVACGUIDE_SITETITLE", "From Env")
	t.Setenv("HVACGUIDE_BUILD_WORKERS", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("content", "", "")
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse([]string{"--content", "override"}))

	cfg, used, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "hvacguide.yaml", filepath.Base(used))
	assert.Equal(t, "override", cfg.ContentDir, "explicit flag wins")
	assert.Equal(t, "From Env", cfg.SiteTitle, "env beats file")
	assert.Equal(t, 8, cfg.Build.Workers)
	assert.Equal(t, 6, cfg.RelatedLimit)
	assert.Equal(t, 9000, cfg.Server.Port, "unset flag does not shadow file value")
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := Load("does-not-exist.yaml", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ContentDir:     "content",
		WordsPerMinute: 200,
		RelatedLimit:   4,
		Build:          BuildConfig{Workers: 2},
		Server:         ServerConfig{Port: 8080},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty content dir", func(c *Config) { c.ContentDir = " " }},
		{"zero words per minute", func(c *Config) { c.WordsPerMinute = 0 }},
		{"negative related limit", func(c *Config) { c.RelatedLimit = -1 }},
		{"no workers", func(c *Config) { c.Build.Workers = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestPermalink(t *testing.T) {
	c := Config{BaseURL: "https://example.com/"}
	assert.Equal(t, "https://example.com/heat-pumps/", c.Permalink("/heat-pumps/"))

	c.BaseURL = ""
	assert.Equal(t, "/heat-pumps/", c.Permalink("/heat-pumps/"))
}
