package config

import "embed"

//go:embed defaults/templates.yaml
var defaultsFS embed.FS

// Defaults returns the built-in template-alias file. It always parses; a
// failure here means the embedded asset was broken at build time.
func Defaults() *File {
	file, err := LoadFS(defaultsFS, "defaults/templates.yaml")
	if err != nil {
		panic(err)
	}
	return file
}
