// Package diff renders readable differences between expected and actual
// values for test failure messages.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"

	"github.com/walteh/semco/pkg/semtok"
)

// Values pretty-prints both values and diffs the result. It returns "" when
// the printed forms agree.
func Values[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	return decorate(diff.Diff(printer.Sprint(got), printer.Sprint(want)))
}

// Tokens diffs two token lists, one token per line.
func Tokens(want, got []semtok.Token) string {
	return decorate(diff.Diff(tokenLines(got), tokenLines(want)))
}

func tokenLines(toks []semtok.Token) string {
	lines := make([]string, len(toks))
	for i, tok := range toks {
		lines[i] = tok.String()
	}
	return strings.Join(lines, "\n")
}

func decorate(d string) string {
	if d == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll("\n"+d, "\n-", "\n➖"), "\n+", "\n➕")
	return str
}
