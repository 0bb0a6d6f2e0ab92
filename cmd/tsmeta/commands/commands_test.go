package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsmeta/cmd/tsmeta/commands"
	"go.trai.ch/tsmeta/internal/app"
	"go.trai.ch/tsmeta/internal/build"
	"go.trai.ch/tsmeta/internal/core/domain"
)

type call struct {
	name  string
	req   app.Request
	check app.CheckOptions
	file  string
}

type mockApp struct {
	calls   []call
	verbose bool
	json    bool
	err     error
}

func (m *mockApp) ConfigureLogging(verbose, json bool) {
	m.verbose = verbose
	m.json = json
}

func (m *mockApp) Build(_ context.Context, req app.Request) error {
	m.calls = append(m.calls, call{name: "build", req: req})
	return m.err
}

func (m *mockApp) Watch(_ context.Context, req app.Request) error {
	m.calls = append(m.calls, call{name: "watch", req: req})
	return m.err
}

func (m *mockApp) Check(_ context.Context, req app.Request, opts app.CheckOptions) error {
	m.calls = append(m.calls, call{name: "check", req: req, check: opts})
	return m.err
}

func (m *mockApp) Transform(_ context.Context, req app.Request, file string) error {
	m.calls = append(m.calls, call{name: "transform", req: req, file: file})
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires entries and changed flags", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "src/main.ts", "src/worker.ts",
			"--outdir", "out", "--bundle", "--force", "--src-dir", "lib/**/*.ts", "-c", "custom.yaml")
		require.NoError(t, err)

		require.Len(t, m.calls, 1)
		assert.Equal(t, "build", m.calls[0].name)
		assert.Equal(t, app.Request{
			ConfigFile: "custom.yaml",
			Overrides: map[string]any{
				domain.KeyEntryPoints: []string{"src/main.ts", "src/worker.ts"},
				domain.KeyOutdir:      "out",
				domain.KeyBundle:      true,
				domain.KeyForce:       true,
				domain.KeySrcDir:      "lib/**/*.ts",
			},
		}, m.calls[0].req)
	})

	t.Run("leaves unset flags to the settings file", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build")
		require.NoError(t, err)

		require.Len(t, m.calls, 1)
		assert.Empty(t, m.calls[0].req.Overrides)
		assert.Empty(t, m.calls[0].req.ConfigFile)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "build", "src/main.ts")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "watch", "src/main.ts", "--on-compile-error", "fail")
	require.NoError(t, err)

	require.Len(t, m.calls, 1)
	assert.Equal(t, "watch", m.calls[0].name)
	assert.Equal(t, map[string]any{
		domain.KeyEntryPoints:    []string{"src/main.ts"},
		domain.KeyOnCompileError: "fail",
	}, m.calls[0].req.Overrides)
}

func TestCommands_Check(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "check", "--compile", "--tsconfig", "tsconfig.build.json", "--report", "out.yaml")
	require.NoError(t, err)

	require.Len(t, m.calls, 1)
	assert.Equal(t, "check", m.calls[0].name)
	assert.True(t, m.calls[0].check.Compile)
	assert.Equal(t, map[string]any{
		domain.KeyTSConfig: "tsconfig.build.json",
		domain.KeyReport:   "out.yaml",
	}, m.calls[0].req.Overrides)
}

func TestCommands_Check_RejectsArgs(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "check", "src/a.ts")
	require.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestCommands_Transform(t *testing.T) {
	t.Run("passes the file through", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "transform", "src/a.ts", "--node", "/opt/node/bin/node")
		require.NoError(t, err)

		require.Len(t, m.calls, 1)
		assert.Equal(t, "src/a.ts", m.calls[0].file)
		assert.Equal(t, map[string]any{domain.KeyNode: "/opt/node/bin/node"}, m.calls[0].req.Overrides)
	})

	t.Run("requires exactly one file", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "transform")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})
}

func TestCommands_ConfigureLogging(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantVerbose bool
		wantJSON    bool
	}{
		{name: "defaults", args: []string{"check"}},
		{name: "shorthand", args: []string{"check", "-v", "--json"}, wantVerbose: true, wantJSON: true},
		{name: "long flag before command", args: []string{"--verbose", "check"}, wantVerbose: true},
		{name: "on build", args: []string{"build", "src/a.ts", "-v"}, wantVerbose: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.wantVerbose, m.verbose)
			assert.Equal(t, tt.wantJSON, m.json)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "version")
	require.NoError(t, err)
	assert.Equal(t, "tsmeta version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_VersionFlag(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tsmeta version "+build.Version)
	assert.Empty(t, m.calls)
}
