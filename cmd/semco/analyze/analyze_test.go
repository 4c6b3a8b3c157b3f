package analyze

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/semco/pkg/semtok"
	"github.com/walteh/semco/pkg/store"
)

func TestAnalyze(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/main.py", []byte("x = 1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "src/main.tokens.json", []byte(`{
		"legend": {"tokenTypes": ["variable"], "tokenModifiers": ["declaration"]},
		"data": [0, 0, 1, 0, 1]
	}`), 0o644))

	me := &Handler{
		fs:       fs,
		language: "python",
		inPath:   "src/main.py",
		outPath:  "build/main.json",
		primary:  "src/main.tokens.json",
	}
	require.NoError(t, me.Run(context.Background()))

	stream, err := store.New(fs).Load("build/main.json")
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", stream.Text)
	assert.Equal(t, []semtok.Token{
		semtok.NewToken(0, 0, 1, semtok.CategoryVariable, "declaration"),
		semtok.NewToken(0, 4, 5, semtok.CategoryLiteralInt),
	}, stream.Tokens)
}

func TestAnalyzeReusesFreshResult(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "main.py", []byte("x = 1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "build/listing.tex", []byte("old"), 0o644))

	stored := semtok.NewStream("x = 1\n", []semtok.Token{semtok.NewToken(0, 0, 1, semtok.CategoryConcept)})
	require.NoError(t, store.New(fs).Save("build/main.json", stored))

	me := &Handler{fs: fs, language: "python", inPath: "main.py", outPath: "build/main.json", clearCache: true}
	require.NoError(t, me.Run(context.Background()))

	got, err := store.New(fs).Load("build/main.json")
	require.NoError(t, err)
	assert.Equal(t, stored, got, "fresh analysis must not be recomputed")

	ok, err := afero.Exists(fs, "build/listing.tex")
	require.NoError(t, err)
	assert.True(t, ok, "cache is only cleared when the analysis is redone")
}

func TestAnalyzeClearsCacheWhenStale(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "main.py", []byte("y = 2\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "build/listing.tex", []byte("old"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "build/.cache/state", []byte("old"), 0o644))
	require.NoError(t, store.New(fs).Save("build/main.json", semtok.NewStream("x = 1\n", nil)))

	me := &Handler{fs: fs, language: "python", inPath: "main.py", outPath: "build/main.json", clearCache: true}
	require.NoError(t, me.Run(context.Background()))

	got, err := store.New(fs).Load("build/main.json")
	require.NoError(t, err)
	assert.Equal(t, "y = 2\n", got.Text)
	assert.Equal(t, []semtok.Token{semtok.NewToken(0, 4, 5, semtok.CategoryLiteralInt)}, got.Tokens)

	for _, p := range []string{"build/listing.tex", "build/.cache"} {
		ok, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, ok, p)
	}
}
