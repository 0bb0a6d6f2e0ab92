package domain

// Settings are the command line settings after merging the settings file,
// the environment and the flags.
type Settings struct {
	TSConfig       string
	Cwd            string
	Force          bool
	SrcDir         string
	OnCompileError string
	Node           string
	EntryPoints    []string
	Outdir         string
	Bundle         bool
	Report         string
}

// Settings keys. Environment variables use the upper-case key after the TSMETA_ prefix.
const (
	KeyTSConfig       = "tsconfig"
	KeyCwd            = "cwd"
	KeyForce          = "force"
	KeySrcDir         = "src_dir"
	KeyOnCompileError = "on_compile_error"
	KeyNode           = "node"
	KeyEntryPoints    = "entry_points"
	KeyOutdir         = "outdir"
	KeyBundle         = "bundle"
	KeyReport         = "report"
)

// DefaultOutdir is the build output directory used when none is configured.
const DefaultOutdir = "dist"

// PluginOptions extracts the options understood by the transform pipeline.
func (s Settings) PluginOptions() PluginOptions {
	return PluginOptions{
		TSConfig:       s.TSConfig,
		Cwd:            s.Cwd,
		Force:          s.Force,
		SrcDir:         s.SrcDir,
		OnCompileError: s.OnCompileError,
	}
}
