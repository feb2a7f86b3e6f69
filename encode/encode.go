package encode

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/modelpeek/go-modelpeek/format"
	"github.com/modelpeek/go-modelpeek/sanitize"
)

type EncState struct {
	indent int

	format format.Format

	Color func(sanitize.Kind, ColorAttr, string) string
}

// Encode writes a rendering of v to w.
func Encode(v *sanitize.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch {
	case es.format.IsJSON():
		return encodeJSON(v, w)
	case es.format.IsYAML():
		return encodeYAML(v, w)
	default:
		lines := textLines(v, es)
		return writeString(w, strings.Join(lines, "\n")+"\n")
	}
}

func encodeJSON(v *sanitize.Value, w io.Writer) error {
	d, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func encodeYAML(v *sanitize.Value, w io.Writer) error {
	d, err := yaml.Marshal(yamlValue(v))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// yamlValue exports a sanitized value in a shape goccy/go-yaml renders
// with mapping order preserved.
func yamlValue(v *sanitize.Value) any {
	switch v.Kind {
	case sanitize.NullKind:
		return nil
	case sanitize.BoolKind:
		return v.Bool
	case sanitize.StringKind:
		return v.String
	case sanitize.NumberKind:
		if v.Int64 != nil {
			return *v.Int64
		}
		if v.Float64 != nil {
			return *v.Float64
		}
		return v.Number
	case sanitize.SequenceKind, sanitize.TupleKind:
		res := make([]any, len(v.Values))
		for i, vv := range v.Values {
			res[i] = yamlValue(vv)
		}
		return res
	case sanitize.MappingKind:
		res := make(yaml.MapSlice, len(v.Fields))
		for i := range v.Fields {
			res[i] = yaml.MapItem{
				Key:   v.Fields[i].KeyString(),
				Value: yamlValue(v.Values[i]),
			}
		}
		return res
	}
	return nil
}

// textLines renders v as unindented lines; nesting is expressed by
// indenting child lines.
func textLines(v *sanitize.Value, es *EncState) []string {
	switch v.Kind {
	case sanitize.MappingKind:
		return mappingLines(v, es)
	case sanitize.SequenceKind:
		if len(v.Values) == 0 {
			return []string{es.color(v.Kind, SepColor, "[]")}
		}
		return itemLines(v, es)
	case sanitize.TupleKind:
		tag := es.color(v.Kind, TagColor, "!tuple")
		if len(v.Values) == 0 {
			return []string{tag + " " + es.color(v.Kind, SepColor, "[]")}
		}
		return append([]string{tag}, itemLines(v, es)...)
	default:
		return []string{es.color(v.Kind, ValueColor, scalarText(v))}
	}
}

func mappingLines(v *sanitize.Value, es *EncState) []string {
	if len(v.Fields) == 0 {
		return []string{es.color(v.Kind, SepColor, "{}")}
	}
	res := []string{}
	for i := range v.Fields {
		key := es.color(v.Kind, FieldColor, v.Fields[i].KeyString()) +
			es.color(v.Kind, SepColor, ":")
		val := v.Values[i]
		vlines := textLines(val, es)
		if len(vlines) == 1 && (isLeaf(val) || val.Len() == 0) {
			res = append(res, key+" "+vlines[0])
			continue
		}
		if val.Kind == sanitize.TupleKind {
			// keep the tag on the key line
			res = append(res, key+" "+vlines[0])
			vlines = vlines[1:]
		} else {
			res = append(res, key)
		}
		res = append(res, es.indentLines(vlines)...)
	}
	return res
}

func itemLines(v *sanitize.Value, es *EncState) []string {
	dash := es.color(v.Kind, SepColor, "- ")
	res := []string{}
	for _, vv := range v.Values {
		vlines := textLines(vv, es)
		res = append(res, dash+vlines[0])
		for _, ln := range vlines[1:] {
			res = append(res, strings.Repeat(" ", es.indent)+ln)
		}
	}
	return res
}

func (es *EncState) indentLines(lines []string) []string {
	pad := strings.Repeat(" ", es.indent)
	res := make([]string, len(lines))
	for i, ln := range lines {
		res[i] = pad + ln
	}
	return res
}

func isLeaf(v *sanitize.Value) bool {
	switch v.Kind {
	case sanitize.MappingKind, sanitize.SequenceKind, sanitize.TupleKind:
		return false
	}
	return true
}

func scalarText(v *sanitize.Value) string {
	if v.Kind == sanitize.NullKind {
		return "null"
	}
	return v.KeyString()
}

func (es *EncState) color(k sanitize.Kind, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, attr, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
