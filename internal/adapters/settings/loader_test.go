package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsmeta/internal/adapters/settings"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *settings.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return settings.NewLoader(mockLogger)
}

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := newLoader(t).Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.Settings{
		Node:   domain.DefaultNodeBinary,
		Outdir: domain.DefaultOutdir,
	}, s)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSettings(t, dir, `
tsconfig: tsconfig.build.json
force: true
src_dir: "lib/**/*.ts"
on_compile_error: fail
entry_points:
  - lib/main.ts
  - lib/worker.ts
outdir: out
bundle: true
report: tsmeta-report.yaml
`)

	s, err := newLoader(t).Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "tsconfig.build.json", s.TSConfig)
	assert.True(t, s.Force)
	assert.Equal(t, "lib/**/*.ts", s.SrcDir)
	assert.Equal(t, "fail", s.OnCompileError)
	assert.Equal(t, []string{"lib/main.ts", "lib/worker.ts"}, s.EntryPoints)
	assert.Equal(t, "out", s.Outdir)
	assert.True(t, s.Bundle)
	assert.Equal(t, "tsmeta-report.yaml", s.Report)
	assert.Equal(t, domain.DefaultNodeBinary, s.Node)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "src_dir: from-file\nnode: file-node\noutdir: file-out\n")

	t.Setenv("TSMETA_SRC_DIR", "from-env")
	t.Setenv("TSMETA_NODE", "env-node")
	t.Setenv("TSMETA_FORCE", "true")
	t.Setenv("TSMETA_ENTRY_POINTS", "a.ts,b.ts")

	s, err := newLoader(t).Load(path, map[string]any{
		domain.KeySrcDir: "from-flag",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", s.SrcDir)
	assert.Equal(t, "env-node", s.Node)
	assert.Equal(t, "file-out", s.Outdir)
	assert.True(t, s.Force)
	assert.Equal(t, []string{"a.ts", "b.ts"}, s.EntryPoints)
}

func TestLoad_EnvEntryPoints(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "single entry", value: "src/main.ts", want: []string{"src/main.ts"}},
		{name: "comma separated", value: "a.ts,b.ts", want: []string{"a.ts", "b.ts"}},
		{name: "spaces and trailing comma", value: " a.ts , b.ts ,", want: []string{"a.ts", "b.ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeSettings(t, dir, "entry_points:\n  - from-file.ts\n")
			t.Setenv("TSMETA_ENTRY_POINTS", tt.value)
			t.Setenv("TSMETA_REPORT", "a,b.yaml")

			s, err := newLoader(t).Load(path, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.want, s.EntryPoints)
			assert.Equal(t, "a,b.yaml", s.Report)
		})
	}
}

func TestLoad_PluginOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "tsconfig: tsconfig.app.json\ncwd: /srv/app\n")

	s, err := newLoader(t).Load(path, map[string]any{domain.KeyOnCompileError: "fail"})
	require.NoError(t, err)

	assert.Equal(t, domain.PluginOptions{
		TSConfig:       "tsconfig.app.json",
		Cwd:            "/srv/app",
		OnCompileError: "fail",
	}, s.PluginOptions())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
	}{
		{
			name: "explicit file missing",
			setup: func(_ *testing.T, dir string) string {
				return filepath.Join(dir, "missing.yaml")
			},
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T, dir string) string {
				return writeSettings(t, dir, "src_dir: [unterminated\n")
			},
		},
		{
			name: "default file malformed",
			setup: func(t *testing.T, dir string) string {
				t.Chdir(dir)
				writeSettings(t, dir, "force: {\n")
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t, t.TempDir())

			_, err := newLoader(t).Load(path, nil)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrSettingsLoadFailed.Error())
		})
	}
}
