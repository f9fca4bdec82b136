package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/floataudit/pkg/errors"
)

// isolate keeps config discovery away from the developer's home directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"FLOATAUDIT_ROOT", "FLOATAUDIT_REPORT", "FLOATAUDIT_THRESHOLD",
		"FLOATAUDIT_LIMIT", "FLOATAUDIT_PREFIXES", "FLOATAUDIT_ENCODING", "FLOATAUDIT_STRATEGY",
		"FLOATAUDIT_FORMAT", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "thesis-audit.aux", config.Root)
	assert.Equal(t, "tmp/float_audit_report.tsv", config.Report)
	assert.Equal(t, 2, config.Threshold)
	assert.Equal(t, 80, config.Limit)
	assert.Equal(t, []string{"fig:", "tab:"}, config.Prefixes)
	assert.Equal(t, "utf-8", config.Encoding)
	assert.Equal(t, "last", config.Strategy)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigPrecedence(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "floataudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`root: build/main.aux
threshold: 3
limit: 10
prefixes:
  - fig:
  - alg:
strategy: first
`), 0o644))

	t.Run("config file", func(t *testing.T) {
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, path, config.ConfigFile)
		assert.Equal(t, "build/main.aux", config.Root)
		assert.Equal(t, 3, config.Threshold)
		assert.Equal(t, 10, config.Limit)
		assert.Equal(t, []string{"fig:", "alg:"}, config.Prefixes)
		assert.Equal(t, "first", config.Strategy)
	})

	t.Run("environment beats config file", func(t *testing.T) {
		t.Setenv("FLOATAUDIT_THRESHOLD", "4")
		t.Setenv("FLOATAUDIT_PREFIXES", "sec:,tab:")
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 4, config.Threshold)
		assert.Equal(t, []string{"sec:", "tab:"}, config.Prefixes)
		assert.Equal(t, 10, config.Limit)
	})
}

func TestLoadConfigDiscoversHomeFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".floataudit.yaml"), []byte("report: out/floats.tsv\n"), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "out/floats.tsv", config.Report)
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("root: [unclosed\n"), 0o644))

		_, err := LoadConfig(path)
		require.Error(t, err)
		var parseErr *errors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, path, parseErr.File)
	})

	t.Run("negative threshold", func(t *testing.T) {
		t.Setenv("FLOATAUDIT_THRESHOLD", "-1")
		_, err := LoadConfig("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "threshold")
	})
}

func TestLoadConfigPrefixForms(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "block list", body: "prefixes:\n  - fig:\n  - alg:\n", want: []string{"fig:", "alg:"}},
		{name: "quoted block list", body: "prefixes:\n  - \"fig:\"\n  - \"alg:\"\n", want: []string{"fig:", "alg:"}},
		{name: "flow list", body: "prefixes: [fig:, alg:]\n", want: []string{"fig:", "alg:"}},
		{name: "comma string", body: "prefixes: \"fig:,alg:\"\n", want: []string{"fig:", "alg:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "floataudit.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			config, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, config.Prefixes)
		})
	}

	t.Run("mapping with a value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "floataudit.yaml")
		require.NoError(t, os.WriteFile(path, []byte("prefixes:\n  - fig: figure\n"), 0o644))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "quote prefixes")
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"fig:", "tab:", "alg:"}, splitList([]string{"fig:,tab:", " alg: "}))
	assert.Nil(t, splitList([]string{",", ""}))
}
