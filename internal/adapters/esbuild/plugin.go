// Package esbuild hooks the transform pipeline into esbuild builds.
package esbuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

// PluginName is the name reported by esbuild for messages from the plugin.
const PluginName = "tsmeta"

// loadFilter selects the files offered to the pipeline.
const loadFilter = `\.tsx?$`

// Transformer rewrites one source file. A nil output leaves the file to esbuild.
type Transformer interface {
	Transform(ctx context.Context, src, id string) (*domain.TransformOutput, domain.Decision, error)
}

// Plugin returns an esbuild plugin that loads TypeScript files through t.
// Declined files get an empty result so esbuild falls back to its own loader.
func Plugin(ctx context.Context, t Transformer) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: loadFilter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					return load(ctx, t, args.Path)
				})
		},
	}
}

func load(ctx context.Context, t Transformer, path string) (api.OnLoadResult, error) {
	//nolint:gosec // path is supplied by esbuild's resolver
	src, err := os.ReadFile(path)
	if err != nil {
		return api.OnLoadResult{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}

	out, _, err := t.Transform(ctx, string(src), path)
	if err != nil {
		return api.OnLoadResult{}, err
	}
	if out == nil {
		return api.OnLoadResult{}, nil
	}

	// Emitted JS may still contain JSX when the project preserves it.
	loader := api.LoaderJS
	if strings.HasSuffix(path, ".tsx") {
		loader = api.LoaderJSX
	}

	code := out.Code
	return api.OnLoadResult{
		Contents:   &code,
		Loader:     loader,
		ResolveDir: filepath.Dir(path),
	}, nil
}
