package scenario

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/offset"
)

// OffsetKind discriminates the Offset union.
type OffsetKind string

// Offset kinds.
const (
	KindNumber OffsetKind = "number"
	KindRecord OffsetKind = "record"
	KindScript OffsetKind = "script"
)

// Offset is the serializable form of an offset.Spec. In files it is written
// as a number, a table of axis values, or a table with a single script key:
//
//	offset = 8
//	offset = { main_axis = 8, alignment_offset = 4 }
//	offset = { script = "({floating}) => floating.height / 2" }
type Offset struct {
	Kind   OffsetKind
	Number float64
	Record offset.Record
	Script string
}

// NumberOffset returns a main-axis-only offset.
func NumberOffset(n float64) Offset { return Offset{Kind: KindNumber, Number: n} }

// RecordOffset returns a per-axis offset.
func RecordOffset(r offset.Record) Offset { return Offset{Kind: KindRecord, Record: r} }

// ScriptOffset returns a scripted offset.
func ScriptOffset(src string) Offset { return Offset{Kind: KindScript, Script: src} }

// IsDynamic reports whether the offset is evaluated per pass.
func (o Offset) IsDynamic() bool { return o.Kind == KindScript }

var axisKeys = map[string]string{
	"main_axis":        "mainAxis",
	"mainAxis":         "mainAxis",
	"cross_axis":       "crossAxis",
	"crossAxis":        "crossAxis",
	"alignment_offset": "alignmentOffset",
	"alignmentOffset":  "alignmentOffset",
}

// parseOffset interprets a decoded number or table.
func parseOffset(raw any) (Offset, error) {
	switch v := raw.(type) {
	case nil:
		return NumberOffset(0), nil
	case map[string]any:
		return parseOffsetTable(v)
	default:
		n, ok := number(v)
		if !ok {
			return Offset{}, errors.New(errors.ErrCodeInvalidOffset, "offset must be a number or a table, got %T", raw)
		}
		return NumberOffset(n), nil
	}
}

func parseOffsetTable(table map[string]any) (Offset, error) {
	if src, ok := table["script"]; ok {
		if len(table) != 1 {
			return Offset{}, errors.New(errors.ErrCodeInvalidOffset, "script offset cannot be combined with axis values")
		}
		s, ok := src.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return Offset{}, errors.New(errors.ErrCodeInvalidOffset, "offset script must be a non-empty string")
		}
		return ScriptOffset(s), nil
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rec offset.Record
	for _, k := range keys {
		field, ok := axisKeys[k]
		if !ok {
			return Offset{}, errors.New(errors.ErrCodeInvalidOffset, "unknown offset field %q", k)
		}
		n, ok := number(table[k])
		if !ok {
			return Offset{}, errors.New(errors.ErrCodeInvalidOffset, "offset field %q must be a number", k)
		}
		switch field {
		case "mainAxis":
			rec.MainAxis = n
		case "crossAxis":
			rec.CrossAxis = n
		case "alignmentOffset":
			rec.AlignmentOffset = n
		}
	}
	return RecordOffset(rec), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// spec converts o into an offset.Spec, compiling scripts with compile.
func (o Offset) spec(compile func(string) (offset.Spec, error)) (offset.Spec, error) {
	switch o.Kind {
	case "", KindNumber:
		return offset.Number(o.Number), nil
	case KindRecord:
		return o.Record, nil
	case KindScript:
		return compile(o.Script)
	default:
		return nil, errors.New(errors.ErrCodeInvalidOffset, "unknown offset kind %q", o.Kind)
	}
}

// MarshalJSON writes the file form of o.
func (o Offset) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case KindRecord:
		return json.Marshal(o.Record)
	case KindScript:
		return json.Marshal(map[string]string{"script": o.Script})
	default:
		return json.Marshal(o.Number)
	}
}

// UnmarshalJSON reads a number or table.
func (o *Offset) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseOffset(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (o *Offset) UnmarshalTOML(raw any) error {
	parsed, err := parseOffset(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Offset) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := parseOffset(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// String renders o for humans.
func (o Offset) String() string {
	switch o.Kind {
	case KindRecord:
		return fmt.Sprintf("main=%g cross=%g align=%g", o.Record.MainAxis, o.Record.CrossAxis, o.Record.AlignmentOffset)
	case KindScript:
		return "script"
	default:
		return fmt.Sprintf("%g", o.Number)
	}
}
