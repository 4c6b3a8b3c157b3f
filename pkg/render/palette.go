package render

import (
	"github.com/fatih/color"

	"github.com/walteh/semco/pkg/semtok"
)

// Palette names the building blocks of the colorful scheme in one output
// format.
type Palette[T any] struct {
	Red       T
	Green     T
	LightBlue T
	DarkBlue  T
	Grey      T
	Indigo    T
	Orange    T
	Pink      T
	Purple    T
	Italic    T
	Bold      T
}

// Colorful lays the palette out over the category vocabulary. join combines a
// font style with a color.
func Colorful[T any](p Palette[T], join func(a, b T) T) map[semtok.Category]T {
	return map[semtok.Category]T{
		semtok.CategoryAttribute:        p.LightBlue,
		semtok.CategoryBuiltinVariable:  p.Orange,
		semtok.CategoryClass:            p.Purple,
		semtok.CategoryComment:          p.Grey,
		semtok.CategoryConcept:          p.Indigo,
		semtok.CategoryDecorator:        p.LightBlue,
		semtok.CategoryEnum:             p.Purple,
		semtok.CategoryEnumMember:       p.DarkBlue,
		semtok.CategoryFunction:         p.Green,
		semtok.CategoryKeyword:          p.Red,
		semtok.CategoryKeywordFun:       p.Green,
		semtok.CategoryKeywordType:      p.Purple,
		semtok.CategoryKeywordValue:     p.DarkBlue,
		semtok.CategoryLabel:            p.LightBlue,
		semtok.CategoryLiteralAffix:     p.Red,
		semtok.CategoryLiteralCharacter: p.DarkBlue,
		semtok.CategoryLiteralFloat:     p.DarkBlue,
		semtok.CategoryLiteralInclude:   p.DarkBlue,
		semtok.CategoryLiteralInt:       p.DarkBlue,
		semtok.CategoryLiteralString:    p.DarkBlue,
		semtok.CategoryMacro:            p.LightBlue,
		semtok.CategoryMethod:           join(p.Italic, p.Green),
		semtok.CategoryNamespace:        p.Pink,
		semtok.CategoryParameter:        join(p.Bold, p.Orange),
		semtok.CategoryPreprocessor:     p.Red,
		semtok.CategoryProperty:         join(p.Italic, p.Orange),
		semtok.CategoryType:             p.Purple,
		semtok.CategoryTypeParameter:    join(p.Bold, p.Purple),
		semtok.CategoryVariable:         p.Orange,
	}
}

// HTMLPalette holds inline CSS declarations.
var HTMLPalette = Palette[string]{
	Red:       "color:#EA4335;",
	Green:     "color:#319243;",
	LightBlue: "color:#1976D2;",
	DarkBlue:  "color:#0D47A1;",
	Grey:      "color:#757575;",
	Indigo:    "color:#3F51B5;",
	Orange:    "color:#EF6C00;",
	Pink:      "color:#E91E63;",
	Purple:    "color:#673AB7;",
	Italic:    "font-style:italic;",
	Bold:      "font-weight:bold;",
}

// TerminalPalette approximates [HTMLPalette] with the basic ANSI colors.
var TerminalPalette = Palette[[]color.Attribute]{
	Red:       []color.Attribute{color.FgRed},
	Green:     []color.Attribute{color.FgGreen},
	LightBlue: []color.Attribute{color.FgCyan},
	DarkBlue:  []color.Attribute{color.FgBlue},
	Grey:      []color.Attribute{color.FgHiBlack},
	Indigo:    []color.Attribute{color.FgHiBlue},
	Orange:    []color.Attribute{color.FgYellow},
	Pink:      []color.Attribute{color.FgHiMagenta},
	Purple:    []color.Attribute{color.FgMagenta},
	Italic:    []color.Attribute{color.Italic},
	Bold:      []color.Attribute{color.Bold},
}

// HTMLColorful is the colorful scheme as CSS.
func HTMLColorful() map[semtok.Category]string {
	return Colorful(HTMLPalette, func(a, b string) string { return a + b })
}

// TerminalColorful is the colorful scheme as terminal attributes.
func TerminalColorful() map[semtok.Category][]color.Attribute {
	return Colorful(TerminalPalette, func(a, b []color.Attribute) []color.Attribute {
		return append(append([]color.Attribute(nil), a...), b...)
	})
}
