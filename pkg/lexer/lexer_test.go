package lexer_test

import (
	"context"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/diff"
	"github.com/walteh/semco/pkg/lexer"
	"github.com/walteh/semco/pkg/semtok"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		typ      chroma.TokenType
		expected semtok.Category
		skipped  bool
		wantErr  bool
	}{
		{name: "attribute", typ: chroma.NameAttribute, expected: semtok.CategoryAttribute},
		{name: "function", typ: chroma.NameFunction, expected: semtok.CategoryFunction},
		{name: "magic function", typ: chroma.NameFunctionMagic, expected: semtok.CategoryFunction},
		{name: "variable", typ: chroma.NameVariable, expected: semtok.CategoryVariable},
		{name: "instance variable", typ: chroma.NameVariableInstance, expected: semtok.CategoryVariable},
		{name: "label", typ: chroma.NameLabel, expected: semtok.CategoryLabel},
		{name: "include file", typ: chroma.CommentPreprocFile, expected: semtok.CategoryLiteralInclude},
		{name: "preprocessor", typ: chroma.CommentPreproc, expected: semtok.CategoryPreprocessor},
		{name: "single comment", typ: chroma.CommentSingle, expected: semtok.CategoryComment},
		{name: "hashbang", typ: chroma.CommentHashbang, expected: semtok.CategoryComment},
		{name: "keyword type", typ: chroma.KeywordType, expected: semtok.CategoryKeywordType},
		{name: "keyword constant", typ: chroma.KeywordConstant, expected: semtok.CategoryKeywordValue},
		{name: "keyword", typ: chroma.Keyword, expected: semtok.CategoryKeyword},
		{name: "keyword namespace", typ: chroma.KeywordNamespace, expected: semtok.CategoryKeyword},
		{name: "namespace", typ: chroma.NameNamespace, expected: semtok.CategoryNamespace},
		{name: "decorator", typ: chroma.NameDecorator, expected: semtok.CategoryDecorator},
		{name: "integer", typ: chroma.LiteralNumberInteger, expected: semtok.CategoryLiteralInt},
		{name: "hex", typ: chroma.LiteralNumberHex, expected: semtok.CategoryLiteralInt},
		{name: "binary", typ: chroma.LiteralNumberBin, expected: semtok.CategoryLiteralInt},
		{name: "float", typ: chroma.LiteralNumberFloat, expected: semtok.CategoryLiteralFloat},
		{name: "affix", typ: chroma.LiteralStringAffix, expected: semtok.CategoryLiteralAffix},
		{name: "double string", typ: chroma.LiteralStringDouble, expected: semtok.CategoryLiteralString},
		{name: "char", typ: chroma.LiteralStringChar, expected: semtok.CategoryLiteralString},
		{name: "interpolation", typ: chroma.LiteralStringInterpol, skipped: true},
		{name: "text", typ: chroma.Text, skipped: true},
		{name: "whitespace", typ: chroma.TextWhitespace, skipped: true},
		{name: "punctuation", typ: chroma.Punctuation, skipped: true},
		{name: "operator", typ: chroma.Operator, skipped: true},
		{name: "operator word", typ: chroma.OperatorWord, skipped: true},
		{name: "plain name", typ: chroma.Name, skipped: true},
		{name: "builtin", typ: chroma.NameBuiltin, skipped: true},
		{name: "other", typ: chroma.Other, skipped: true},
		{name: "error", typ: chroma.Error, wantErr: true},
		{name: "generic", typ: chroma.GenericDeleted, wantErr: true},
		{name: "date", typ: chroma.LiteralDate, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := lexer.Classify(tt.typ)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, lexer.ErrUnsupportedCategory))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, !tt.skipped, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		text     string
		expected []semtok.Token
	}{
		{
			name: "python function",
			lang: "python",
			text: "# hi\ndef f(x):\n    return 1\n",
			expected: []semtok.Token{
				semtok.NewToken(0, 0, 4, semtok.CategoryComment),
				semtok.NewToken(1, 0, 3, semtok.CategoryKeyword),
				semtok.NewToken(1, 4, 5, semtok.CategoryFunction),
				semtok.NewToken(2, 4, 10, semtok.CategoryKeyword),
				semtok.NewToken(2, 11, 12, semtok.CategoryLiteralInt),
			},
		},
		{
			name: "docstring spanning lines is split",
			lang: "python",
			text: "\"\"\"a\nbc\"\"\"\n",
			expected: []semtok.Token{
				semtok.NewToken(0, 0, 4, semtok.CategoryLiteralString),
				semtok.NewToken(1, 0, 5, semtok.CategoryLiteralString),
			},
		},
		{
			name: "c++ keywords are retyped",
			lang: "cpp",
			text: "auto p = nullptr;\n",
			expected: []semtok.Token{
				semtok.NewToken(0, 0, 4, semtok.CategoryKeywordType),
				semtok.NewToken(0, 9, 16, semtok.CategoryKeywordValue),
			},
		},
		{
			name:     "empty source",
			lang:     "python",
			text:     "",
			expected: []semtok.Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lexer.Tokens(context.Background(), tt.lang, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got, diff.Tokens(tt.expected, got))
			assert.NoError(t, semtok.Validate(got))
		})
	}
}

func TestNew(t *testing.T) {
	l, err := lexer.New("cpp")
	require.NoError(t, err)
	assert.Equal(t, "C++", l.Name())

	l, err = lexer.New("demo.py")
	require.NoError(t, err)
	assert.Equal(t, "Python", l.Name())

	_, err = lexer.New("definitely-not-a-language")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lexer.ErrUnknownLanguage))
}
