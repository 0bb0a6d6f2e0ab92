// Package tsconfig locates, parses and expands TypeScript project configuration files.
package tsconfig

import (
	"bytes"
	"encoding/json"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tailscale/hujson"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// Diagnostic codes reported while expanding a configuration.
const (
	CodeWrongType   = 5024
	CodeFileMissing = 6053
	CodeCircularity = 18000
)

// defaultExcludes are excluded when a configuration declares no exclude list.
var defaultExcludes = []string{"node_modules", "bower_components", "jspm_packages"}

// pathOptions are the compilerOptions holding a single path relative to the declaring file.
var pathOptions = []string{
	"baseUrl",
	"declarationDir",
	"outDir",
	"outFile",
	"rootDir",
	"tsBuildInfoFile",
}

// pathListOptions are the compilerOptions holding a list of paths relative to the declaring file.
var pathListOptions = []string{
	"rootDirs",
	"typeRoots",
}

// Resolver implements ports.ProjectConfigResolver.
type Resolver struct {
	logger ports.Logger
	fs     FileSystem
}

// NewResolver creates a Resolver reading from the local filesystem.
func NewResolver(logger ports.Logger) *Resolver {
	return NewResolverWithFS(logger, NewOSFS())
}

// NewResolverWithFS creates a Resolver reading from fsys.
func NewResolverWithFS(logger ports.Logger, fsys FileSystem) *Resolver {
	return &Resolver{logger: logger, fs: fsys}
}

// Resolve locates the configuration for cwd and expands it into the effective project configuration.
func (r *Resolver) Resolve(explicitPath, cwd string) (*domain.ProjectConfig, error) {
	configFile, err := r.locate(explicitPath, cwd)
	if err != nil {
		return nil, err
	}
	if configFile == "" {
		return defaultConfig(cwd), nil
	}

	content, err := r.fs.ReadFile(configFile)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configFile)
	}

	raw, err := parse(content)
	if err != nil {
		r.logger.Warn(domain.Diagnostic{
			Category: domain.CategoryError,
			File:     configFile,
			Message:  err.Error(),
		}.String())
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configFile)
	}

	e := &expander{fs: r.fs}
	l := e.expand(configFile, raw, []string{configFile})
	return l.project(configFile, e.diagnostics), nil
}

// locate returns the configuration file to read, or "" when defaults apply.
func (r *Resolver) locate(explicitPath, cwd string) (string, error) {
	if explicitPath == "" {
		return r.findUp(cwd, domain.TSConfigFileName), nil
	}

	var found string
	if filepath.IsAbs(explicitPath) {
		found = r.configFileAt(explicitPath)
	} else {
		found = r.findUp(cwd, explicitPath)
	}
	if found == "" {
		err := zerr.With(domain.ErrConfigNotFound, "path", explicitPath)
		return "", zerr.With(err, "cwd", cwd)
	}
	return found, nil
}

// findUp searches cwd and its ancestors for name.
func (r *Resolver) findUp(cwd, name string) string {
	currentDir := filepath.Clean(cwd)
	for {
		if found := r.configFileAt(filepath.Join(currentDir, name)); found != "" {
			return found
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// configFileAt returns path if it is a file, or the tsconfig.json inside it if it is a directory.
func (r *Resolver) configFileAt(path string) string {
	info, err := r.fs.Stat(path)
	if err != nil {
		return ""
	}
	if !info.IsDir() {
		return path
	}
	inner := filepath.Join(path, domain.TSConfigFileName)
	if info, err := r.fs.Stat(inner); err == nil && !info.IsDir() {
		return inner
	}
	return ""
}

// utf8BOM is the byte order mark some editors put at the start of the file.
var utf8BOM = []byte("\xef\xbb\xbf")

// parse reads JSONC text into a JSON object. Blank text is an empty object.
func parse(content []byte) (map[string]any, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if strings.TrimSpace(string(content)) == "" {
		return map[string]any{}, nil
	}

	standard, err := hujson.Standardize(content)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(standard, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func defaultConfig(cwd string) *domain.ProjectConfig {
	baseDir := filepath.Clean(cwd)
	l := layer{dir: baseDir, options: map[string]any{}}
	return l.project("", nil)
}

// layer is one configuration file merged with everything it extends.
type layer struct {
	dir     string
	options map[string]any
	files   []string
	include []string
	exclude []string

	hasFiles, hasInclude, hasExclude bool
}

// project converts the merged layer into the effective configuration, applying defaults.
func (l layer) project(configFile string, diagnostics []domain.Diagnostic) *domain.ProjectConfig {
	include := l.include
	if !l.hasFiles && !l.hasInclude {
		include = []string{filepath.Join(l.dir, "**", "*")}
	}

	exclude := l.exclude
	if !l.hasExclude {
		exclude = make([]string, 0, len(defaultExcludes)+1)
		for _, name := range defaultExcludes {
			exclude = append(exclude, filepath.Join(l.dir, name))
		}
		if outDir, ok := l.options["outDir"].(string); ok && outDir != "" {
			exclude = append(exclude, outDir)
		}
	}

	return &domain.ProjectConfig{
		ConfigFile:  configFile,
		BaseDir:     l.dir,
		Options:     l.options,
		Files:       slices.Clone(l.files),
		Include:     slices.Clone(include),
		Exclude:     exclude,
		Diagnostics: diagnostics,
	}
}

// expander walks an extends chain and collects non-fatal diagnostics.
type expander struct {
	fs          FileSystem
	diagnostics []domain.Diagnostic
}

func (e *expander) report(code int, file, message string) {
	e.diagnostics = append(e.diagnostics, domain.Diagnostic{
		Category: domain.CategoryError,
		Code:     code,
		File:     file,
		Message:  message,
	})
}

// expand merges raw, declared in file, over the layers it extends. chain holds
// the files currently being expanded, outermost first.
func (e *expander) expand(file string, raw map[string]any, chain []string) layer {
	dir := filepath.Dir(file)
	merged := layer{dir: dir, options: map[string]any{}}

	for _, name := range e.extendsList(file, raw["extends"]) {
		target := e.resolveExtends(dir, name)
		if target == "" {
			e.report(CodeFileMissing, file, "File '"+name+"' not found.")
			continue
		}
		if slices.Contains(chain, target) {
			e.report(CodeCircularity, file,
				"Circularity detected while resolving configuration: "+strings.Join(append(slices.Clone(chain), target), " -> "))
			continue
		}

		base, ok := e.load(target)
		if !ok {
			continue
		}
		merged = merged.overlay(e.expand(target, base, append(slices.Clone(chain), target)))
	}

	// The root directory is always the directory of the outermost file.
	own := e.own(file, dir, raw)
	merged = merged.overlay(own)
	merged.dir = dir
	return merged
}

// load reads and parses an extended configuration; failures become diagnostics.
func (e *expander) load(file string) (map[string]any, bool) {
	content, err := e.fs.ReadFile(file)
	if err != nil {
		e.report(CodeFileMissing, file, "Cannot read file '"+file+"'.")
		return nil, false
	}
	raw, err := parse(content)
	if err != nil {
		e.diagnostics = append(e.diagnostics, domain.Diagnostic{
			Category: domain.CategoryError,
			File:     file,
			Message:  err.Error(),
		})
		return nil, false
	}
	return raw, true
}

func (e *expander) extendsList(file string, v any) []string {
	switch ext := v.(type) {
	case nil:
		return nil
	case string:
		return []string{ext}
	case []any:
		out := make([]string, 0, len(ext))
		for _, item := range ext {
			s, ok := item.(string)
			if !ok {
				e.report(CodeWrongType, file, "Compiler option 'extends' requires a value of type string.")
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		e.report(CodeWrongType, file, "Compiler option 'extends' requires a value of type string or Array.")
		return nil
	}
}

// resolveExtends maps an extends entry to a file, or "" when nothing matches.
func (e *expander) resolveExtends(dir, name string) string {
	if isRelativeOrRooted(name) {
		target := name
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, filepath.FromSlash(name))
		}
		return e.firstFile(withJSONSuffix(target)...)
	}

	// Package reference: look in node_modules of dir and its ancestors.
	currentDir := dir
	for {
		pkg := filepath.Join(currentDir, "node_modules", filepath.FromSlash(name))
		candidates := append(withJSONSuffix(pkg), filepath.Join(pkg, domain.TSConfigFileName))
		if found := e.firstFile(candidates...); found != "" {
			return found
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

func (e *expander) firstFile(candidates ...string) string {
	for _, c := range candidates {
		if info, err := e.fs.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// own extracts the settings declared directly in file.
func (e *expander) own(file, dir string, raw map[string]any) layer {
	l := layer{dir: dir, options: map[string]any{}}

	if v, ok := raw["compilerOptions"]; ok && v != nil {
		opts, isObject := v.(map[string]any)
		if !isObject {
			e.report(CodeWrongType, file, "Compiler option 'compilerOptions' requires a value of type object.")
		} else {
			l.options = absoluteOptions(dir, opts)
		}
	}

	l.files, l.hasFiles = e.pathList(file, dir, raw, "files")
	l.include, l.hasInclude = e.pathList(file, dir, raw, "include")
	l.exclude, l.hasExclude = e.pathList(file, dir, raw, "exclude")
	return l
}

// pathList reads a list of path specs and makes them absolute against dir.
func (e *expander) pathList(file, dir string, raw map[string]any, key string) ([]string, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	items, isList := v.([]any)
	if !isList {
		e.report(CodeWrongType, file, "Compiler option '"+key+"' requires a value of type Array.")
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			e.report(CodeWrongType, file, "Compiler option '"+key+"' requires a value of type string.")
			continue
		}
		out = append(out, absolute(dir, s))
	}
	return out, true
}

// overlay returns base with the settings present in top taking precedence.
func (l layer) overlay(top layer) layer {
	out := layer{
		dir:     top.dir,
		options: maps.Clone(l.options),
		files:   l.files,
		include: l.include,
		exclude: l.exclude,

		hasFiles:   l.hasFiles,
		hasInclude: l.hasInclude,
		hasExclude: l.hasExclude,
	}
	maps.Copy(out.options, top.options)

	if top.hasFiles {
		out.files, out.hasFiles = top.files, true
	}
	if top.hasInclude {
		out.include, out.hasInclude = top.include, true
	}
	if top.hasExclude {
		out.exclude, out.hasExclude = top.exclude, true
	}
	return out
}

func absoluteOptions(dir string, opts map[string]any) map[string]any {
	out := maps.Clone(opts)
	for _, key := range pathOptions {
		if s, ok := out[key].(string); ok && s != "" {
			out[key] = absolute(dir, s)
		}
	}
	for _, key := range pathListOptions {
		list, ok := out[key].([]any)
		if !ok {
			continue
		}
		resolved := make([]any, len(list))
		for i, item := range list {
			if s, isString := item.(string); isString {
				resolved[i] = absolute(dir, s)
			} else {
				resolved[i] = item
			}
		}
		out[key] = resolved
	}
	return out
}

func absolute(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

func isRelativeOrRooted(name string) bool {
	return filepath.IsAbs(name) ||
		strings.HasPrefix(name, "./") ||
		strings.HasPrefix(name, "../") ||
		name == "." || name == ".."
}

func withJSONSuffix(p string) []string {
	if strings.HasSuffix(p, ".json") {
		return []string{p}
	}
	return []string{p, p + ".json"}
}
