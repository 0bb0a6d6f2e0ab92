package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tsmeta/internal/core/domain"
)

func TestProjectConfig_EmitDecoratorMetadata(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]any
		want    bool
	}{
		{name: "enabled", options: map[string]any{domain.OptEmitDecoratorMetadata: true}, want: true},
		{name: "disabled", options: map[string]any{domain.OptEmitDecoratorMetadata: false}},
		{name: "missing", options: map[string]any{}},
		{name: "wrong type", options: map[string]any{domain.OptEmitDecoratorMetadata: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.ProjectConfig{Options: tt.options}
			assert.Equal(t, tt.want, p.EmitDecoratorMetadata())
		})
	}

	var nilConfig *domain.ProjectConfig
	assert.False(t, nilConfig.EmitDecoratorMetadata())
}

func TestProjectConfig_InlineSourceMaps(t *testing.T) {
	t.Run("sourceMap enabled", func(t *testing.T) {
		p := &domain.ProjectConfig{Options: map[string]any{domain.OptSourceMap: true}}
		p.InlineSourceMaps()

		assert.Equal(t, false, p.Options[domain.OptSourceMap])
		assert.Equal(t, true, p.Options[domain.OptInlineSourceMap])
		assert.Equal(t, true, p.Options[domain.OptInlineSources])
	})

	t.Run("sourceMap disabled", func(t *testing.T) {
		p := &domain.ProjectConfig{Options: map[string]any{"target": "ES2020"}}
		p.InlineSourceMaps()

		assert.Equal(t, map[string]any{"target": "ES2020"}, p.Options)
	})
}

func TestProjectConfig_CompilerOptions(t *testing.T) {
	p := &domain.ProjectConfig{Options: map[string]any{domain.OptEmitDecoratorMetadata: true}}

	opts := p.CompilerOptions()
	opts["target"] = "ES5"

	assert.NotContains(t, p.Options, "target")

	var nilConfig *domain.ProjectConfig
	assert.Empty(t, nilConfig.CompilerOptions())
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		diag domain.Diagnostic
		want string
	}{
		{
			name: "file and code",
			diag: domain.Diagnostic{Category: domain.CategoryError, Code: 6053, File: "/p/tsconfig.json", Message: "File not found."},
			want: "/p/tsconfig.json: error TS6053: File not found.",
		},
		{
			name: "no file",
			diag: domain.Diagnostic{Category: domain.CategoryWarning, Code: 5101, Message: "Deprecated."},
			want: "warning TS5101: Deprecated.",
		},
		{
			name: "no code",
			diag: domain.Diagnostic{Category: domain.CategoryMessage, Message: "note"},
			want: "message: note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}
