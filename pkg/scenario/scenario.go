// Package scenario loads complete offset computations from TOML, YAML, or
// JSON files and turns them into pipeline configurations.
//
// A scenario names the placement, the reference and floating rectangles, the
// text direction, and the offset:
//
//	name      = "tooltip above button"
//	placement = "top-start"
//	rtl       = false
//	offset    = { main_axis = 8, alignment_offset = 4 }
//
//	[reference]
//	x = 100
//	y = 100
//	width = 80
//	height = 32
//
//	[floating]
//	width = 160
//	height = 48
package scenario

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/offset"
	"github.com/matzehuels/floatplace/pkg/pipeline"
	"github.com/matzehuels/floatplace/pkg/platform"
	"github.com/matzehuels/floatplace/pkg/script"
)

// Format names a scenario file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Scenario is one offset computation.
type Scenario struct {
	Name      string         `json:"name,omitempty" toml:"name" yaml:"name"`
	Placement geom.Placement `json:"placement" toml:"placement" yaml:"placement"`
	Reference geom.Rect      `json:"reference" toml:"reference" yaml:"reference"`
	Floating  geom.Rect      `json:"floating" toml:"floating" yaml:"floating"`
	RTL       bool           `json:"rtl,omitempty" toml:"rtl" yaml:"rtl"`
	Offset    Offset         `json:"offset" toml:"offset" yaml:"offset"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported scenario file %q (want .toml, .yaml, .yml, or .json)", filepath.Base(path))
	}
}

// Load reads, decodes, and validates a scenario file.
func Load(path string) (*Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file %s", path)
	}
	if err != nil {
		return nil, err
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses and validates a scenario in the given format.
func Decode(data []byte, format Format) (*Scenario, error) {
	var s Scenario
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scenario format %q", format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode %s scenario", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario and normalizes its placement. Placement
// defaults to pipeline.DefaultPlacement when empty.
func (s *Scenario) Validate() error {
	if s.Placement == "" {
		s.Placement = pipeline.DefaultPlacement
	}
	p, err := errors.ValidatePlacement(string(s.Placement))
	if err != nil {
		return err
	}
	s.Placement = p

	if err := errors.ValidateRect("reference", s.Reference); err != nil {
		return err
	}
	if err := errors.ValidateRect("floating", s.Floating); err != nil {
		return err
	}

	if s.Offset.Kind == "" {
		s.Offset.Kind = KindNumber
	}
	switch s.Offset.Kind {
	case KindNumber:
		return errors.ValidateOffsetValue("offset", s.Offset.Number)
	case KindRecord:
		r := s.Offset.Record
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"main_axis", r.MainAxis},
			{"cross_axis", r.CrossAxis},
			{"alignment_offset", r.AlignmentOffset},
		} {
			if err := errors.ValidateOffsetValue(f.name, f.value); err != nil {
				return err
			}
		}
	case KindScript:
		if strings.TrimSpace(s.Offset.Script) == "" {
			return errors.New(errors.ErrCodeInvalidOffset, "offset script must not be empty")
		}
	default:
		return errors.New(errors.ErrCodeInvalidOffset, "unknown offset kind %q", s.Offset.Kind)
	}
	return nil
}

// Rects returns the scenario's element rects.
func (s *Scenario) Rects() geom.ElementRects {
	return geom.ElementRects{Reference: s.Reference, Floating: s.Floating}
}

// Dynamic reports whether the scenario's result may differ between runs.
func (s *Scenario) Dynamic() bool { return s.Offset.IsDynamic() }

// Spec compiles the scenario's offset. Script failures at evaluation time are
// logged to logger.
func (s *Scenario) Spec(logger *log.Logger) (offset.Spec, error) {
	return s.Offset.spec(func(src string) (offset.Spec, error) {
		f, err := script.Compile(src, script.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return f.Offset(), nil
	})
}

// Config builds the pipeline configuration: a static-direction platform and
// the offset middleware.
func (s *Scenario) Config(logger *log.Logger) (pipeline.Config, error) {
	spec, err := s.Spec(logger)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		Placement:  s.Placement,
		Rects:      s.Rects(),
		Platform:   platform.Static{RTL: s.RTL},
		Elements:   pipeline.Elements{Reference: "reference", Floating: "floating"},
		Middleware: []pipeline.Middleware{offset.New(spec)},
		Logger:     logger,
	}, nil
}

// MarshalCanonical returns the JSON form used for hashing. The name is
// excluded so renamed copies of a scenario share cache entries.
func (s *Scenario) MarshalCanonical() ([]byte, error) {
	c := *s
	c.Name = ""
	return json.Marshal(c)
}
