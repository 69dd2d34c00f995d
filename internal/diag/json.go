package diag

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fltc/internal/source"
)

// pointJSON is one position record as written by gcc -fdiagnostics-format=json.
// gcc 9 only writes "column" (bytes); later releases add "byte-column" and
// "display-column".
type pointJSON struct {
	File          string `json:"file,omitempty"`
	Line          uint32 `json:"line"`
	Column        uint32 `json:"column,omitempty"`
	ByteColumn    uint32 `json:"byte-column,omitempty"`
	DisplayColumn uint32 `json:"display-column,omitempty"`
}

type locationJSON struct {
	Caret  *pointJSON `json:"caret,omitempty"`
	Start  *pointJSON `json:"start,omitempty"`
	Finish *pointJSON `json:"finish,omitempty"`
	Label  string     `json:"label,omitempty"`
}

type diagnosticJSON struct {
	Kind      string           `json:"kind"`
	Message   string           `json:"message"`
	Option    string           `json:"option,omitempty"`
	Locations []locationJSON   `json:"locations"`
	Children  []diagnosticJSON `json:"children,omitempty"`
}

// DecodeJSON parses the compiler's JSON diagnostic stream. Empty input means
// the compiler had nothing to say.
func DecodeJSON(data []byte) ([]Diagnostic, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var raw []diagnosticJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode diagnostics: %w", err)
	}
	out := make([]Diagnostic, 0, len(raw))
	for i := range raw {
		d, err := convert(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// EncodeJSON writes diagnostics back in the compiler's schema, used for
// per-pass artifacts and scripted tests.
func EncodeJSON(diags []Diagnostic) ([]byte, error) {
	raw := make([]diagnosticJSON, 0, len(diags))
	for i := range diags {
		raw = append(raw, toJSON(&diags[i]))
	}
	return json.MarshalIndent(raw, "", "  ")
}

func convert(r *diagnosticJSON) (Diagnostic, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return Diagnostic{}, err
	}
	d := Diagnostic{
		Kind:      kind,
		Message:   r.Message,
		Option:    r.Option,
		Locations: make([]source.Location, 0, len(r.Locations)),
	}
	for _, l := range r.Locations {
		d.Locations = append(d.Locations, source.Location{
			Caret:  l.Caret.point(),
			Start:  l.Start.point(),
			Finish: l.Finish.point(),
		})
	}
	for i := range r.Children {
		child, err := convert(&r.Children[i])
		if err != nil {
			return Diagnostic{}, fmt.Errorf("child %d: %w", i, err)
		}
		d.Children = append(d.Children, child)
	}
	return d, nil
}

func (p *pointJSON) point() *source.Point {
	if p == nil {
		return nil
	}
	col := p.ByteColumn
	if col == 0 {
		col = p.Column
	}
	return &source.Point{Line: p.Line, ByteColumn: col}
}

func toJSON(d *Diagnostic) diagnosticJSON {
	r := diagnosticJSON{
		Kind:      d.Kind.String(),
		Message:   d.Message,
		Option:    d.Option,
		Locations: make([]locationJSON, 0, len(d.Locations)),
	}
	for _, l := range d.Locations {
		r.Locations = append(r.Locations, locationJSON{
			Caret:  fromPoint(l.Caret),
			Start:  fromPoint(l.Start),
			Finish: fromPoint(l.Finish),
		})
	}
	for i := range d.Children {
		r.Children = append(r.Children, toJSON(&d.Children[i]))
	}
	return r
}

func fromPoint(p *source.Point) *pointJSON {
	if p == nil {
		return nil
	}
	return &pointJSON{Line: p.Line, Column: p.ByteColumn, ByteColumn: p.ByteColumn}
}
