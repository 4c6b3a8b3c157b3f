/*
Categories and Modifiers:
------------------------
This file defines the shared vocabulary both token producers must honor.

	+-------------+     +-------------+
	|  Category   |     |  Modifiers  |
	+-------------+     +-------------+
	      |                    |
	      v                    v
	[keyword,            sorted, unique
	 function,           modifier names
	 literal-string,
	 etc.]

The LSP standard names come first, then the extensions used by clangd and
pyright, then the finer-grained names only the lexer produces.
*/
package semtok

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Category is the semantic class of a token. The set of valid categories is
// closed: see [ParseCategory] and [Categories].
type Category string

const (
	// LSP standard token types
	CategoryNamespace     Category = "namespace"
	CategoryType          Category = "type"
	CategoryClass         Category = "class"
	CategoryEnum          Category = "enum"
	CategoryInterface     Category = "interface"
	CategoryStruct        Category = "struct"
	CategoryTypeParameter Category = "typeParameter"
	CategoryParameter     Category = "parameter"
	CategoryVariable      Category = "variable"
	CategoryProperty      Category = "property"
	CategoryEnumMember    Category = "enumMember"
	CategoryEvent         Category = "event"
	CategoryFunction      Category = "function"
	CategoryMethod        Category = "method"
	CategoryMacro         Category = "macro"
	CategoryKeyword       Category = "keyword"
	CategoryModifier      Category = "modifier"
	CategoryComment       Category = "comment"
	CategoryString        Category = "string"
	CategoryNumber        Category = "number"
	CategoryRegexp        Category = "regexp"
	CategoryOperator      Category = "operator"
	CategoryDecorator     Category = "decorator"
	CategoryLabel         Category = "label"

	// server extensions (clangd, pyright)
	CategoryConcept         Category = "concept"
	CategoryUnknown         Category = "unknown"
	CategoryBracket         Category = "bracket"
	CategorySelfParameter   Category = "selfParameter"
	CategoryClsParameter    Category = "clsParameter"
	CategoryBuiltinVariable Category = "builtin-variable"

	// lexer categories
	CategoryAttribute        Category = "attribute"
	CategoryKeywordFun       Category = "keyword-fun"
	CategoryKeywordType      Category = "keyword-type"
	CategoryKeywordValue     Category = "keyword-value"
	CategoryLiteralAffix     Category = "literal-affix"
	CategoryLiteralCharacter Category = "literal-character"
	CategoryLiteralFloat     Category = "literal-float"
	CategoryLiteralInclude   Category = "literal-include"
	CategoryLiteralInt       Category = "literal-int"
	CategoryLiteralString    Category = "literal-string"
	CategoryPreprocessor     Category = "preprocessor"
)

var vocabulary = []Category{
	CategoryNamespace,
	CategoryType,
	CategoryClass,
	CategoryEnum,
	CategoryInterface,
	CategoryStruct,
	CategoryTypeParameter,
	CategoryParameter,
	CategoryVariable,
	CategoryProperty,
	CategoryEnumMember,
	CategoryEvent,
	CategoryFunction,
	CategoryMethod,
	CategoryMacro,
	CategoryKeyword,
	CategoryModifier,
	CategoryComment,
	CategoryString,
	CategoryNumber,
	CategoryRegexp,
	CategoryOperator,
	CategoryDecorator,
	CategoryLabel,
	CategoryConcept,
	CategoryUnknown,
	CategoryBracket,
	CategorySelfParameter,
	CategoryClsParameter,
	CategoryBuiltinVariable,
	CategoryAttribute,
	CategoryKeywordFun,
	CategoryKeywordType,
	CategoryKeywordValue,
	CategoryLiteralAffix,
	CategoryLiteralCharacter,
	CategoryLiteralFloat,
	CategoryLiteralInclude,
	CategoryLiteralInt,
	CategoryLiteralString,
	CategoryPreprocessor,
}

var known = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(vocabulary))
	for _, c := range vocabulary {
		m[c] = struct{}{}
	}
	return m
}()

// Categories returns the full vocabulary in declaration order.
func Categories() []Category {
	return slices.Clone(vocabulary)
}

// ParseCategory validates name against the vocabulary.
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Known() {
		return "", errors.Errorf("category %q: %w", name, ErrUnknownCategory)
	}
	return c, nil
}

// Known reports whether c belongs to the vocabulary.
func (c Category) Known() bool {
	_, ok := known[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

// Modifiers is a set of modifier names kept sorted and free of duplicates so
// that two sets compare equal exactly when they hold the same names. The empty
// set is nil. A Modifiers value is never mutated after construction.
type Modifiers []string

// NewModifiers builds the canonical set from names in any order.
func NewModifiers(names ...string) Modifiers {
	if len(names) == 0 {
		return nil
	}
	out := slices.Clone(names)
	sort.Strings(out)
	out = slices.Compact(out)
	return Modifiers(out)
}

// Equal reports set equality.
func (m Modifiers) Equal(other Modifiers) bool {
	return slices.Equal(m, other)
}

// Has reports whether name is in the set.
func (m Modifiers) Has(name string) bool {
	_, ok := slices.BinarySearch(m, name)
	return ok
}

func (m Modifiers) String() string {
	return strings.Join(m, ",")
}

func (m Modifiers) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(m))
}

func (m *Modifiers) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errors.Errorf("decoding modifiers: %w", err)
	}
	*m = NewModifiers(names...)
	return nil
}
