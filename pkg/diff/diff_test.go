package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/semco/pkg/semtok"
)

func TestTokens(t *testing.T) {
	a := []semtok.Token{
		semtok.NewToken(0, 0, 3, semtok.CategoryKeyword),
		semtok.NewToken(0, 4, 7, semtok.CategoryVariable),
	}
	b := []semtok.Token{
		semtok.NewToken(0, 0, 3, semtok.CategoryKeyword),
		semtok.NewToken(0, 4, 7, semtok.CategoryParameter),
	}

	assert.Empty(t, Tokens(a, a))

	got := Tokens(a, b)
	assert.Contains(t, got, "➖"+b[1].String())
	assert.Contains(t, got, "➕"+a[1].String())
	assert.NotContains(t, got, "➕"+a[0].String())
}

func TestValues(t *testing.T) {
	assert.Empty(t, Values(map[string]int{"a": 1}, map[string]int{"a": 1}))
	assert.NotEmpty(t, Values(map[string]int{"a": 1}, map[string]int{"a": 2}))
}
