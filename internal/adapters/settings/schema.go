package settings

import "go.trai.ch/tsmeta/internal/core/domain"

// File represents the structure of the tsmeta.yaml settings file.
type File struct {
	TSConfig       string   `koanf:"tsconfig"`
	Cwd            string   `koanf:"cwd"`
	Force          bool     `koanf:"force"`
	SrcDir         string   `koanf:"src_dir"`
	OnCompileError string   `koanf:"on_compile_error"`
	Node           string   `koanf:"node"`
	EntryPoints    []string `koanf:"entry_points"`
	Outdir         string   `koanf:"outdir"`
	Bundle         bool     `koanf:"bundle"`
	Report         string   `koanf:"report"`
}

func (f *File) toDomain() domain.Settings {
	outdir := f.Outdir
	if outdir == "" {
		outdir = domain.DefaultOutdir
	}
	node := f.Node
	if node == "" {
		node = domain.DefaultNodeBinary
	}

	return domain.Settings{
		TSConfig:       f.TSConfig,
		Cwd:            f.Cwd,
		Force:          f.Force,
		SrcDir:         f.SrcDir,
		OnCompileError: f.OnCompileError,
		Node:           node,
		EntryPoints:    f.EntryPoints,
		Outdir:         outdir,
		Bundle:         f.Bundle,
		Report:         f.Report,
	}
}
