package domain

const (
	// TSConfigFileName is the name searched for when no explicit tsconfig is given.
	TSConfigFileName = "tsconfig.json"

	// SettingsFileName is the name of the optional tsmeta settings file.
	SettingsFileName = "tsmeta.yaml"

	// EnvPrefix is the prefix of environment variables read into the settings.
	EnvPrefix = "TSMETA_"

	// DefaultSrcDir is the default source pattern, relative to the working directory.
	DefaultSrcDir = "src/**/*.ts?(x)"

	// DefaultNodeBinary is the executable used to run the compiler service.
	DefaultNodeBinary = "node"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
