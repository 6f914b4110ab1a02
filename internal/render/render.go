// Package render writes computed results as JSON, YAML or styled text.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tartampluch/go-insight/internal/config"
	"gopkg.in/yaml.v3"
)

// Labeler resolves translation keys for text output.
type Labeler interface {
	T(key string, data map[string]any) string
}

// Renderer writes values to Out in Format.
type Renderer struct {
	Format string
	Out    io.Writer
	// Labels localizes text headings. When nil the keys are printed.
	Labels Labeler
}

// New validates format and returns a Renderer.
func New(format string, out io.Writer, labels Labeler) (*Renderer, error) {
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrFormatUnsupport, format)
	}
	return &Renderer{Format: format, Out: out, Labels: labels}, nil
}

// Render writes v. Text output knows the result types of the insight
// packages; any other value is written as YAML.
func (r *Renderer) Render(v any) error {
	var err error
	switch r.Format {
	case config.FormatJSON:
		err = r.json(v)
	case config.FormatYAML:
		err = r.yaml(v)
	default:
		err = r.text(v)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	return nil
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.Out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func (r *Renderer) label(key string) string {
	if r.Labels == nil {
		return key
	}
	return r.Labels.T(key, nil)
}
