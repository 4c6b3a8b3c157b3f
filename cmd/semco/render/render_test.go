package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/semtok"
	"github.com/walteh/semco/pkg/store"
)

const testStyle = `
base: none
html:
  literal-int: "color:blue;"
  comment: "color:gray;"
terminal:
  literal-int: [red]
`

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "style.yaml", []byte(testStyle), 0o644))
	require.NoError(t, afero.WriteFile(fs, "src/a.py", []byte("x = 1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "src/pkg/b.py", []byte("# c\n"), 0o644))
	require.NoError(t, store.New(fs).Save("src/c.json", semtok.NewStream("y", []semtok.Token{
		semtok.NewToken(0, 0, 1, semtok.CategoryLiteralInt),
	})))
	return fs
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		handler  Handler
		expected string
	}{
		{
			name:     "ansi to stdout",
			handler:  Handler{pattern: "src/*.py", format: FormatANSI, stylePath: "style.yaml", jobs: 2},
			expected: "x = \x1b[31m1\x1b[0m\n",
		},
		{
			name:    "html for several files in order",
			handler: Handler{pattern: "src/**/*.{py,json}", format: FormatHTML, stylePath: "style.yaml", jobs: 1},
			expected: "==> src/a.py <==\n" +
				`<div style="font-family:monospace;white-space: pre;">x = <span style="color:blue;">1</span></div>` + "\n" +
				"==> src/c.json <==\n" +
				`<div style="font-family:monospace;white-space: pre;"><span style="color:blue;">y</span></div>` + "\n" +
				"==> src/pkg/b.py <==\n" +
				`<div style="font-family:monospace;white-space: pre;"><span style="color:gray;"># c</span></div>` + "\n",
		},
		{
			name:     "stored analyses ignore the language flag",
			handler:  Handler{pattern: "src/c.json", format: FormatANSI, stylePath: "style.yaml", language: "python", jobs: 1},
			expected: "\x1b[31my\x1b[0m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			me := tt.handler
			me.fs = testFs(t)
			me.stdout = &buf
			require.NoError(t, me.Run(context.Background()))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestRenderToDirectory(t *testing.T) {
	fs := testFs(t)
	var buf bytes.Buffer

	me := &Handler{fs: fs, stdout: &buf, pattern: "src/**/*.py", format: FormatHTML, outDir: "site", jobs: 4}
	require.NoError(t, me.Run(context.Background()))
	assert.Empty(t, buf.String())

	for _, p := range []string{"site/src_a.py.html", "site/src_pkg_b.py.html"} {
		data, err := afero.ReadFile(fs, p)
		require.NoError(t, err, p)
		assert.Contains(t, string(data), `<div style="font-family:monospace;white-space: pre;">`, p)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler Handler
		target  error
	}{
		{
			name:    "unknown format",
			handler: Handler{pattern: "src/*.py", format: "pdf", jobs: 1},
			target:  ErrUnknownFormat,
		},
		{
			name:    "unknown language",
			handler: Handler{pattern: "src/*.py", format: FormatANSI, language: "no-such-language", jobs: 1},
		},
		{
			name:    "missing style file",
			handler: Handler{pattern: "src/*.py", format: FormatANSI, stylePath: "missing.yaml", jobs: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			me := tt.handler
			me.fs = testFs(t)
			me.stdout = &bytes.Buffer{}
			err := me.Run(context.Background())
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target))
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "src_a.py.html", outputName("src/a.py", FormatHTML))
	assert.Equal(t, "a.py.ansi", outputName("./a.py", FormatANSI))
	assert.Equal(t, "abs_a.py.ansi", outputName("/abs/a.py", FormatANSI))
}
