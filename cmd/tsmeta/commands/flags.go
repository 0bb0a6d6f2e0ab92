package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tsmeta/internal/app"
	"go.trai.ch/tsmeta/internal/core/domain"
)

// settingFlag binds a command line flag to a settings key.
type settingFlag struct {
	name string
	key  string
}

var pipelineFlags = []settingFlag{
	{name: "tsconfig", key: domain.KeyTSConfig},
	{name: "cwd", key: domain.KeyCwd},
	{name: "force", key: domain.KeyForce},
	{name: "src-dir", key: domain.KeySrcDir},
	{name: "on-compile-error", key: domain.KeyOnCompileError},
	{name: "node", key: domain.KeyNode},
	{name: "report", key: domain.KeyReport},
}

var buildFlags = []settingFlag{
	{name: "outdir", key: domain.KeyOutdir},
	{name: "bundle", key: domain.KeyBundle},
}

func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("tsconfig", "", "Path of the tsconfig.json to use instead of searching upward")
	f.String("cwd", "", "Project root (default: current directory)")
	f.Bool("force", false, "Compile decorated files even when emitDecoratorMetadata is off")
	f.String("src-dir", domain.DefaultSrcDir, "Glob of the files eligible for compilation, relative to the project root")
	f.String("on-compile-error", string(domain.CompileErrorSkip), "What to do when a file fails to compile: skip or fail")
	f.String("node", domain.DefaultNodeBinary, "Node.js executable running the TypeScript compiler")
	f.String("report", "", "Write the list of rewritten files to this YAML file")
}

func addBuildFlags(cmd *cobra.Command) {
	addPipelineFlags(cmd)
	f := cmd.Flags()
	f.StringP("outdir", "o", domain.DefaultOutdir, "Output directory")
	f.Bool("bundle", false, "Bundle imported files into the entry points")
}

// request collects the settings sources of cmd. Only flags set explicitly
// override the settings file and the environment.
func (c *CLI) request(cmd *cobra.Command, entryPoints []string, groups ...[]settingFlag) app.Request {
	overrides := make(map[string]any)
	for _, group := range groups {
		for _, sf := range group {
			flag := cmd.Flags().Lookup(sf.name)
			if flag == nil || !flag.Changed {
				continue
			}
			switch flag.Value.Type() {
			case "bool":
				v, _ := cmd.Flags().GetBool(sf.name)
				overrides[sf.key] = v
			default:
				overrides[sf.key] = flag.Value.String()
			}
		}
	}
	if len(entryPoints) > 0 {
		overrides[domain.KeyEntryPoints] = entryPoints
	}

	return app.Request{ConfigFile: c.configFile, Overrides: overrides}
}
