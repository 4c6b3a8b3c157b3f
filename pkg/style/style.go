// Package style loads the category → style tables used by the renderers.
//
// A style file starts from a base scheme and overrides single categories:
//
//	# semco.yaml
//	base: colorful
//	html:
//	  keyword: "color:#B00020;font-weight:bold;"
//	terminal:
//	  keyword: [red, bold]
//
// The same document can be written as TOML or HCL. HCL files may refer to the
// colorful palettes through the html_palette and terminal_palette variables:
//
//	html = {
//	  keyword = "${html_palette.red}${html_palette.bold}"
//	}
package style

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/walteh/semco/pkg/render"
	"github.com/walteh/semco/pkg/semtok"
)

var (
	ErrUnknownAttribute = errors.Base("unknown terminal attribute")
	ErrUnknownBase      = errors.Base("unknown base scheme")
	ErrUnknownFormat    = errors.Base("unknown style file format")
)

const (
	BaseColorful = "colorful"
	BaseNone     = "none"
)

// File is the on-disk shape of a style table.
type File struct {
	Base     string              `yaml:"base,omitempty" toml:"base" hcl:"base,optional"`
	HTML     map[string]string   `yaml:"html,omitempty" toml:"html" hcl:"html,optional"`
	Terminal map[string][]string `yaml:"terminal,omitempty" toml:"terminal" hcl:"terminal,optional"`
}

// Table holds the resolved styles for both styled output formats.
type Table struct {
	HTML     map[semtok.Category]string
	Terminal map[semtok.Category][]color.Attribute
}

// Colorful is the default table.
func Colorful() *Table {
	return &Table{
		HTML:     render.HTMLColorful(),
		Terminal: render.TerminalColorful(),
	}
}

var attributes = map[string]color.Attribute{
	"bold":       color.Bold,
	"faint":      color.Faint,
	"italic":     color.Italic,
	"underline":  color.Underline,
	"black":      color.FgBlack,
	"red":        color.FgRed,
	"green":      color.FgGreen,
	"yellow":     color.FgYellow,
	"blue":       color.FgBlue,
	"magenta":    color.FgMagenta,
	"cyan":       color.FgCyan,
	"white":      color.FgWhite,
	"hi-black":   color.FgHiBlack,
	"hi-red":     color.FgHiRed,
	"hi-green":   color.FgHiGreen,
	"hi-yellow":  color.FgHiYellow,
	"hi-blue":    color.FgHiBlue,
	"hi-magenta": color.FgHiMagenta,
	"hi-cyan":    color.FgHiCyan,
	"hi-white":   color.FgHiWhite,
}

// Load reads and resolves the style file at path. The format is chosen by
// extension: .yaml/.yml, .toml or .hcl.
func Load(fs afero.Fs, path string) (*Table, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading style file: %w", err)
	}
	f, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return f.Table()
}

// Parse decodes data according to the extension of path.
func Parse(path string, data []byte) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".toml":
		return parseTOML(data)
	case ".hcl":
		return parseHCL(path, data)
	}
	return nil, errors.Errorf("%q: %w", path, ErrUnknownFormat)
}

func parseYAML(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &f, nil
}

func parseTOML(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Errorf("parsing TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("parsing TOML: unknown keys %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

func parseHCL(path string, data []byte) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &f)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return &f, nil
}

func evalContext() *hcl.EvalContext {
	p := render.HTMLPalette
	htmlPalette := map[string]cty.Value{
		"red":        cty.StringVal(p.Red),
		"green":      cty.StringVal(p.Green),
		"light_blue": cty.StringVal(p.LightBlue),
		"dark_blue":  cty.StringVal(p.DarkBlue),
		"grey":       cty.StringVal(p.Grey),
		"indigo":     cty.StringVal(p.Indigo),
		"orange":     cty.StringVal(p.Orange),
		"pink":       cty.StringVal(p.Pink),
		"purple":     cty.StringVal(p.Purple),
		"italic":     cty.StringVal(p.Italic),
		"bold":       cty.StringVal(p.Bold),
	}
	terminalPalette := map[string]cty.Value{
		"red":        cty.StringVal("red"),
		"green":      cty.StringVal("green"),
		"light_blue": cty.StringVal("cyan"),
		"dark_blue":  cty.StringVal("blue"),
		"grey":       cty.StringVal("hi-black"),
		"indigo":     cty.StringVal("hi-blue"),
		"orange":     cty.StringVal("yellow"),
		"pink":       cty.StringVal("hi-magenta"),
		"purple":     cty.StringVal("magenta"),
		"italic":     cty.StringVal("italic"),
		"bold":       cty.StringVal("bold"),
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"html_palette":     cty.ObjectVal(htmlPalette),
			"terminal_palette": cty.ObjectVal(terminalPalette),
		},
	}
}

// Table resolves f on top of its base scheme. Every unknown category or
// attribute is reported, not only the first.
func (f *File) Table() (*Table, error) {
	var table *Table
	switch f.Base {
	case "", BaseColorful:
		table = Colorful()
	case BaseNone:
		table = &Table{
			HTML:     map[semtok.Category]string{},
			Terminal: map[semtok.Category][]color.Attribute{},
		}
	default:
		return nil, errors.Errorf("%q: %w", f.Base, ErrUnknownBase)
	}

	var errs error
	for _, name := range sortedKeys(f.HTML) {
		c, err := semtok.ParseCategory(name)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("html: %w", err))
			continue
		}
		table.HTML[c] = f.HTML[name]
	}
	for _, name := range sortedKeys(f.Terminal) {
		c, err := semtok.ParseCategory(name)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("terminal: %w", err))
			continue
		}
		attrs, err := parseAttributes(f.Terminal[name])
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("terminal %s: %w", name, err))
			continue
		}
		table.Terminal[c] = attrs
	}
	if errs != nil {
		return nil, errs
	}
	return table, nil
}

func parseAttributes(names []string) ([]color.Attribute, error) {
	attrs := make([]color.Attribute, 0, len(names))
	var errs error
	for _, n := range names {
		a, ok := attributes[strings.ToLower(n)]
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("%q: %w", n, ErrUnknownAttribute))
			continue
		}
		attrs = append(attrs, a)
	}
	return attrs, errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
