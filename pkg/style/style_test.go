package style_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/render"
	"github.com/walteh/semco/pkg/semtok"
	"github.com/walteh/semco/pkg/style"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		html     map[semtok.Category]string
		terminal map[semtok.Category][]color.Attribute
	}{
		{
			name: "yaml override on colorful",
			path: "semco.yaml",
			content: `
base: colorful
html:
  keyword: "color:#B00020;"
terminal:
  keyword: [red, bold]
`,
			html: map[semtok.Category]string{
				semtok.CategoryKeyword: "color:#B00020;",
				semtok.CategoryComment: "color:#757575;",
			},
			terminal: map[semtok.Category][]color.Attribute{
				semtok.CategoryKeyword: {color.FgRed, color.Bold},
				semtok.CategoryComment: {color.FgHiBlack},
			},
		},
		{
			name: "toml without base",
			path: "semco.toml",
			content: `
base = "none"

[html]
comment = "color:gray;"

[terminal]
comment = ["faint", "Italic"]
`,
			html: map[semtok.Category]string{
				semtok.CategoryComment: "color:gray;",
			},
			terminal: map[semtok.Category][]color.Attribute{
				semtok.CategoryComment: {color.Faint, color.Italic},
			},
		},
		{
			name: "hcl with palette variables",
			path: "semco.hcl",
			content: `
base = "none"
html = {
  keyword = "${html_palette.red}${html_palette.bold}"
}
terminal = {
  keyword = [terminal_palette.red, terminal_palette.bold]
}
`,
			html: map[semtok.Category]string{
				semtok.CategoryKeyword: "color:#EA4335;font-weight:bold;",
			},
			terminal: map[semtok.Category][]color.Attribute{
				semtok.CategoryKeyword: {color.FgRed, color.Bold},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			table, err := style.Load(fs, tt.path)
			require.NoError(t, err, "loading style file")

			for c, want := range tt.html {
				assert.Equal(t, want, table.HTML[c], "html %s", c)
			}
			for c, want := range tt.terminal {
				assert.Equal(t, want, table.Terminal[c], "terminal %s", c)
			}
			if len(tt.html) < 2 {
				assert.Len(t, table.HTML, len(tt.html))
				assert.Len(t, table.Terminal, len(tt.terminal))
			}
		})
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yml", []byte(`
html:
  sparkle: "color:pink;"
  keyword: "color:red;"
terminal:
  glitter: [red]
  comment: [plaid, bold, tartan]
`), 0o644))

	_, err := style.Load(fs, "bad.yml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, semtok.ErrUnknownCategory))
	assert.True(t, errors.Is(err, style.ErrUnknownAttribute))
	assert.Contains(t, err.Error(), "sparkle")
	assert.Contains(t, err.Error(), "glitter")
	assert.Contains(t, err.Error(), "plaid")
	assert.Contains(t, err.Error(), "tartan")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		target  error
	}{
		{name: "unknown yaml field", path: "a.yaml", content: "colours: {}\n"},
		{name: "unknown toml key", path: "a.toml", content: "colours = 1\n"},
		{name: "unknown hcl attribute", path: "a.hcl", content: "colours = 1\n"},
		{name: "unknown extension", path: "a.json", content: "{}", target: style.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := style.Parse(tt.path, []byte(tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target))
			}
		})
	}
}

func TestUnknownBase(t *testing.T) {
	_, err := (&style.File{Base: "monokai"}).Table()
	require.Error(t, err)
	assert.True(t, errors.Is(err, style.ErrUnknownBase))
}

func TestColorfulMatchesRenderer(t *testing.T) {
	table := style.Colorful()
	assert.Equal(t, render.HTMLColorful(), table.HTML)
	assert.Equal(t, render.TerminalColorful(), table.Terminal)
}
