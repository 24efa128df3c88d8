// Package config loads named log templates from YAML documents: a layout
// string plus property-expression bindings per template, with defaults for
// the template and renderer a host should use when the caller names none.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-revtpl/pkg/render"
)

// Template mirrors render.Template for YAML decoding.
type Template struct {
	Layout   string            `yaml:"layout"`
	Bindings map[string]string `yaml:"bindings"`
}

// File is a parsed template-alias document.
type File struct {
	DefaultTemplate string              `yaml:"default_template"`
	DefaultRenderer string              `yaml:"default_renderer"`
	Templates       map[string]Template `yaml:"templates"`
}

// Load reads and validates a template-alias file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(data, path)
}

// LoadFS reads and validates a template-alias file from an fs.FS.
func LoadFS(fsys fs.FS, path string) (*File, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := file.validate(path); err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *File) validate(path string) error {
	if len(f.Templates) == 0 {
		return fmt.Errorf("config: file %s defines no templates", path)
	}
	for name, tpl := range f.Templates {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("config: file %s defines a template with an empty name", path)
		}
		if strings.TrimSpace(tpl.Layout) == "" {
			return fmt.Errorf("config: template %q has no layout (file %s)", name, path)
		}
	}
	if f.DefaultTemplate != "" {
		if _, ok := f.Templates[f.DefaultTemplate]; !ok {
			return fmt.Errorf("config: default template %q not defined (file %s)", f.DefaultTemplate, path)
		}
	}
	return nil
}

// Template returns the named template converted for the render pipeline.
// An empty name selects the file's default.
func (f *File) Template(name string) (render.Template, bool) {
	target := name
	if target == "" {
		target = f.DefaultTemplate
	}
	tpl, ok := f.Templates[target]
	if !ok {
		return render.Template{}, false
	}
	return render.Template{Layout: tpl.Layout, Bindings: tpl.Bindings}, true
}

// Names returns the defined template names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Templates))
	for name := range f.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
