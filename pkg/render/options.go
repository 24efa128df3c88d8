package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carries per-request instructions renderers can surface.
// The zero value is valid.
type RenderOptions struct {
	// Title labels document-style output (the html renderer's page title).
	Title string

	// Theme optionally carries a resolved go-theme selection; renderers that
	// emit documents translate its manifest tokens into CSS variables.
	Theme *theme.Selection
}

// themeCSSVars derives CSS custom properties from a theme selection's
// manifest tokens. Missing pieces yield an empty map.
func themeCSSVars(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil || len(selection.Manifest.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		vars["--"+key] = value
	}
	return vars
}
