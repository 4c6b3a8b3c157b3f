/*
Package lexer produces the secondary token stream from a Chroma lexer.

Mapping:
-------
Chroma token types are folded into the shared category vocabulary.

	chroma type               category
	-----------------------   ----------------
	NameAttribute             attribute
	NameFunction*             function
	NameVariable*             variable
	NameLabel                 label
	CommentPreprocFile        literal-include
	CommentPreproc            preprocessor
	Comment*                  comment
	KeywordType               keyword-type
	KeywordConstant           keyword-value
	Keyword*                  keyword
	NameNamespace             namespace
	NameDecorator             decorator
	LiteralNumber (integers)  literal-int
	LiteralNumberFloat        literal-float
	LiteralStringAffix        literal-affix
	LiteralString*            literal-string

Interpolation markers, text, punctuation, operators, other names and Other are
skipped. Anything else fails with [ErrUnsupportedCategory].
*/
package lexer

import (
	"context"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/semco/pkg/position"
	"github.com/walteh/semco/pkg/semtok"
)

var (
	ErrUnsupportedCategory = errors.Base("unsupported lexer token type")
	ErrUnknownLanguage     = errors.Base("no lexer for language")
)

// retypes replaces the category of keywords (and builtin names) by their text
// for the languages whose Chroma lexer is too coarse.
var retypes = map[string]map[string]semtok.Category{
	"C++": {
		"auto":     semtok.CategoryKeywordType,
		"bool":     semtok.CategoryKeywordType,
		"char":     semtok.CategoryKeywordType,
		"char8_t":  semtok.CategoryKeywordType,
		"char16_t": semtok.CategoryKeywordType,
		"char32_t": semtok.CategoryKeywordType,
		"double":   semtok.CategoryKeywordType,
		"float":    semtok.CategoryKeywordType,
		"int":      semtok.CategoryKeywordType,
		"long":     semtok.CategoryKeywordType,
		"short":    semtok.CategoryKeywordType,
		"signed":   semtok.CategoryKeywordType,
		"unsigned": semtok.CategoryKeywordType,
		"void":     semtok.CategoryKeywordType,
		"wchar_t":  semtok.CategoryKeywordType,
		"false":    semtok.CategoryKeywordValue,
		"true":     semtok.CategoryKeywordValue,
		"nullptr":  semtok.CategoryKeywordValue,
		"this":     semtok.CategoryKeywordValue,
		"operator": semtok.CategoryKeywordFun,
	},
}

// Lexer turns source text of one language into semantic tokens.
type Lexer struct {
	lexer  chroma.Lexer
	retype map[string]semtok.Category
}

// New looks up the Chroma lexer for lang, by name or alias first and by file
// name pattern second, so both "cpp" and "main.cpp" work.
func New(lang string) (*Lexer, error) {
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Match(lang)
	}
	if l == nil {
		return nil, errors.Errorf("language %q: %w", lang, ErrUnknownLanguage)
	}
	return &Lexer{
		lexer:  chroma.Coalesce(l),
		retype: retypes[l.Config().Name],
	}, nil
}

// Name is the canonical Chroma name of the language.
func (me *Lexer) Name() string {
	return me.lexer.Config().Name
}

// Tokens lexes text and returns the compacted token stream. Tokens whose text
// spans several lines are split into one token per line.
func (me *Lexer) Tokens(ctx context.Context, text string) ([]semtok.Token, error) {
	it, err := me.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, errors.Errorf("tokenising %s source: %w", me.Name(), err)
	}

	var (
		toks   []semtok.Token
		cursor position.Cursor
	)
	for _, ct := range it.Tokens() {
		pieces := cursor.Advance(ct.Value)

		category, ok, err := Classify(ct.Type)
		if err != nil {
			return nil, errors.Errorf("token %q at %s: %w", ct.Value, cursor.Place, err)
		}
		if c, hit := me.retype[strings.TrimSpace(ct.Value)]; hit && retypable(ct.Type) {
			category, ok = c, true
		}
		if !ok {
			continue
		}

		for _, p := range pieces {
			toks = append(toks, semtok.Token{
				Line:     p.Line,
				Start:    p.Character,
				Length:   p.Length,
				Category: category,
			})
		}
	}

	out := semtok.Compact(toks)

	zerolog.Ctx(ctx).Debug().
		Str("language", me.Name()).
		Int("raw_count", len(toks)).
		Int("token_count", len(out)).
		Msg("lexed source")

	return out, nil
}

// Tokens is a shortcut for [New] followed by [Lexer.Tokens].
func Tokens(ctx context.Context, lang, text string) ([]semtok.Token, error) {
	l, err := New(lang)
	if err != nil {
		return nil, err
	}
	return l.Tokens(ctx, text)
}

func retypable(t chroma.TokenType) bool {
	return t.InCategory(chroma.Keyword) || t == chroma.NameBuiltin
}

// Classify maps a Chroma token type to a category. ok is false for token
// types that are deliberately left unclassified.
func Classify(t chroma.TokenType) (category semtok.Category, ok bool, err error) {
	switch {
	case t == chroma.NameAttribute:
		return semtok.CategoryAttribute, true, nil
	case t == chroma.NameFunction, t == chroma.NameFunctionMagic:
		return semtok.CategoryFunction, true, nil
	case t >= chroma.NameVariable && t <= chroma.NameVariableMagic:
		return semtok.CategoryVariable, true, nil
	case t == chroma.NameLabel:
		return semtok.CategoryLabel, true, nil
	case t == chroma.CommentPreprocFile: // the file named by an include
		return semtok.CategoryLiteralInclude, true, nil
	case t.InSubCategory(chroma.CommentPreproc):
		return semtok.CategoryPreprocessor, true, nil
	case t.InCategory(chroma.Comment):
		return semtok.CategoryComment, true, nil
	case t == chroma.KeywordType:
		return semtok.CategoryKeywordType, true, nil
	case t == chroma.KeywordConstant:
		return semtok.CategoryKeywordValue, true, nil
	case t.InCategory(chroma.Keyword):
		return semtok.CategoryKeyword, true, nil
	case t == chroma.NameNamespace:
		return semtok.CategoryNamespace, true, nil
	case t == chroma.NameDecorator:
		return semtok.CategoryDecorator, true, nil
	case t == chroma.LiteralNumberFloat:
		return semtok.CategoryLiteralFloat, true, nil
	case t.InSubCategory(chroma.LiteralNumber):
		return semtok.CategoryLiteralInt, true, nil
	case t == chroma.LiteralStringAffix:
		return semtok.CategoryLiteralAffix, true, nil
	case t == chroma.LiteralStringInterpol:
		return "", false, nil
	case t.InSubCategory(chroma.LiteralString):
		return semtok.CategoryLiteralString, true, nil
	case t == chroma.Other,
		t.InCategory(chroma.Text),
		t.InCategory(chroma.Punctuation),
		t.InCategory(chroma.Operator),
		t.InCategory(chroma.Name):
		return "", false, nil
	}
	return "", false, errors.Errorf("chroma type %s: %w", t, ErrUnsupportedCategory)
}
