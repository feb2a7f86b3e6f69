package encode

import (
	"github.com/fatih/color"

	"github.com/modelpeek/go-modelpeek/sanitize"
)

type Colorable struct {
	Kind sanitize.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	kinds := []sanitize.Kind{
		sanitize.NullKind,
		sanitize.NumberKind,
		sanitize.StringKind,
		sanitize.BoolKind,
		sanitize.SequenceKind,
		sanitize.TupleKind,
		sanitize.MappingKind,
	}
	for _, k := range kinds {
		able := Colorable{
			Kind: k,
			Attr: TagColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = sanitize.NumberKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = sanitize.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = sanitize.BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = sanitize.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = sanitize.MappingKind
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	return colors
}

func colorDefault(s string, args ...any) string {
	return color.WhiteString(s, args...)
}

func (c *Colors) Color(k sanitize.Kind, attr ColorAttr, s string) string {
	f, ok := c.Map[Colorable{Kind: k, Attr: attr}]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}
