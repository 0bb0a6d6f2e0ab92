package pathmatch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/engine/pathmatch"
)

func TestMatches_DefaultPattern(t *testing.T) {
	root := filepath.FromSlash("/proj")
	pattern := domain.DefaultSrcDir

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "tsx in nested dir", candidate: "/proj/src/a/b.tsx", want: true},
		{name: "ts directly in src", candidate: "/proj/src/a.ts", want: true},
		{name: "test file still ts", candidate: "/proj/src/a/b.test.ts", want: true},
		{name: "outside src", candidate: "/proj/lib/a.ts", want: false},
		{name: "javascript", candidate: "/proj/src/a.js", want: false},
		{name: "double suffix", candidate: "/proj/src/a.tsxx", want: false},
		{name: "declaration file", candidate: "/proj/src/types.d.ts", want: true},
		{name: "other root", candidate: "/other/src/a.ts", want: false},
		{name: "escaping root", candidate: "/proj/../src/a.ts", want: false},
		{name: "relative candidate", candidate: "src/x.ts", want: true},
		{name: "inside dot directory", candidate: "/proj/src/.cache/a.ts", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathmatch.Matches(filepath.FromSlash(tt.candidate), root, pattern)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_PatternSyntax(t *testing.T) {
	root := filepath.FromSlash("/proj")

	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "single star stays in segment", pattern: "src/*.ts", candidate: "/proj/src/a/b.ts", want: false},
		{name: "single star", pattern: "src/*.ts", candidate: "/proj/src/b.ts", want: true},
		{name: "leading dot slash", pattern: "./src/**/*.ts", candidate: "/proj/src/a/b.ts", want: true},
		{name: "at group requires one", pattern: "src/**/*.@(ts|mts)", candidate: "/proj/src/a.mts", want: true},
		{name: "at group rejects none", pattern: "src/**/*.@(ts|mts)", candidate: "/proj/src/a.", want: false},
		{name: "optional group with alternatives", pattern: "src/**/*.ts?(x|y)", candidate: "/proj/src/a.tsy", want: true},
		{name: "braces", pattern: "{src,lib}/**/*.ts", candidate: "/proj/lib/a.ts", want: true},
		{name: "nested groups", pattern: "src/*.?(spec.)ts?(x)", candidate: "/proj/src/a.spec.tsx", want: true},
		{name: "absolute pattern", pattern: "/proj/app/**/*.ts", candidate: "/proj/app/x/y.ts", want: true},
		{name: "dot directory skipped by globstar", pattern: "src/**/*.ts", candidate: "/proj/src/.cache/x.ts", want: false},
		{name: "dotfile skipped by star", pattern: "src/*.ts", candidate: "/proj/src/.hidden.ts", want: false},
		{name: "explicit dot directory", pattern: "src/.cache/*.ts", candidate: "/proj/src/.cache/x.ts", want: true},
		{name: "explicit dotfile pattern", pattern: "src/**/.*.ts", candidate: "/proj/src/a/.b.ts", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if filepath.Separator != '/' {
				t.Skip("patterns are written with forward slashes")
			}
			m, err := pathmatch.New(root, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.candidate))
		})
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	for _, pattern := range []string{"src/[", "src/?(ts"} {
		_, err := pathmatch.New("/proj", pattern)
		require.Error(t, err, pattern)
		assert.ErrorContains(t, err, domain.ErrInvalidPattern.Error())
	}

	assert.False(t, pathmatch.Matches("/proj/src/a.ts", "/proj", "src/["))
}

// A file created after the matcher was built must match: nothing is precomputed.
func TestMatcher_FileCreatedLater(t *testing.T) {
	root := t.TempDir()
	m, err := pathmatch.New(root, domain.DefaultSrcDir)
	require.NoError(t, err)

	later := filepath.Join(root, "src", "late", "new.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(later), domain.DirPerm))
	require.NoError(t, os.WriteFile(later, []byte("export {}"), domain.FilePerm))

	assert.True(t, m.Match(later))
}
