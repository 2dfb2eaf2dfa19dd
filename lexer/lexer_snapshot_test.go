package lexer

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// dumpTokens renders a token stream as one "KIND(literal)" line per token,
// the golden shape a lexer regression test freezes.
func dumpTokens(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.Kind == EOF {
			continue
		}
		sb.WriteString(string(t.Kind))
		sb.WriteByte('(')
		sb.WriteString(t.Literal)
		sb.WriteString(")\n")
	}
	return sb.String()
}

// TestLexerTokenStreamSnapshot freezes the token-kind/literal shape of a
// source sample touching keywords, operators, literals, and a template
// string, grounded on CWBudde-go-dws's snapshot-tested fixture suite
// (internal/interp/fixture_test.go), generalized from whole-program output
// snapshots to a lexer-level token dump.
func TestLexerTokenStreamSnapshot(t *testing.T) {
	src := "let x = 1 + 2 * 3;\n" +
		"const name = \"ivan\";\n" +
		"func greet(who) { return `hello ${who}!`; }\n" +
		"if (x >= 2) { x = x - 1; } else { x = 0; }\n"
	toks := New(src, "snapshot.slv").All()
	snaps.MatchSnapshot(t, "ascii-keyword-program", dumpTokens(toks))
}

// TestLexerCyrillicKeywordsSnapshotMatchesAscii asserts the Cyrillic
// spelling of the same program lexes to the identical token-kind stream as
// its ASCII spelling (spec.md §4.2's dual-keyword requirement), then
// freezes that shared kind stream as the golden artifact.
func TestLexerCyrillicKeywordsSnapshotMatchesAscii(t *testing.T) {
	asciiSrc := "let x = 1; if (x >= 2) { x = x - 1; } else { x = 0; }"
	cyrillicSrc := "пусть x = 1; если (x >= 2) { x = x - 1; } иначе { x = 0; }"

	asciiKinds := kindsOnly(New(asciiSrc, "snapshot.slv").All())
	cyrillicKinds := kindsOnly(New(cyrillicSrc, "snapshot.slv").All())
	require.Equal(t, asciiKinds, cyrillicKinds)

	snaps.MatchSnapshot(t, "dual-keyword-kind-stream", asciiKinds)
}

func kindsOnly(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.Kind == EOF {
			continue
		}
		sb.WriteString(string(t.Kind))
		sb.WriteByte('\n')
	}
	return sb.String()
}
