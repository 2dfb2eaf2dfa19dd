package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, 0, len(toks))
	for _, t := range toks {
		if t.Kind == EOF {
			continue
		}
		out = append(out, t.Kind)
	}
	return out
}

func TestLexerAsciiKeywords(t *testing.T) {
	toks := New(`let x = 1 + 2`, "t.slv").All()
	require.Equal(t, []TokenKind{LET, IDENT, ASSIGN, NUMBER, PLUS, NUMBER}, kinds(toks))
}

func TestLexerCyrillicKeywordsMatchAsciiKind(t *testing.T) {
	ascii := New(`if (x) { } else { }`, "t.slv").All()
	cyr := New(`если (x) { } иначе { }`, "t.slv").All()
	require.Equal(t, kinds(ascii), kinds(cyr))
	require.Equal(t, IF, ascii[0].Kind)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := New(`"a\nb\tc\"d"`, "t.slv").All()
	require.Equal(t, STRING, toks[0].Kind)
	require.Equal(t, "a\nb\tc\"d", toks[0].Value.Str)
}

func TestLexerNumberLiteral(t *testing.T) {
	toks := New(`3.14`, "t.slv").All()
	require.Equal(t, NUMBER, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].Value.Number, 1e-9)
}

func TestLexerTemplateLiteral(t *testing.T) {
	toks := New("`hi ${name}!`", "t.slv").All()
	require.Equal(t, TEMPLATE, toks[0].Kind)
	require.Equal(t, "hi ${name}!", toks[0].Value.Str)
}

func TestLexerDivisionVsRegex(t *testing.T) {
	div := New(`a / b`, "t.slv").All()
	require.Equal(t, []TokenKind{IDENT, SLASH, IDENT}, kinds(div))

	re := New(`= /ab+c/g`, "t.slv").All()
	require.Equal(t, []TokenKind{ASSIGN, REGEX}, kinds(re))
}

func TestLexerCommentsAreSkipped(t *testing.T) {
	toks := New("let x = 1 // trailing\n/* block */let y = 2", "t.slv").All()
	require.Equal(t, []TokenKind{LET, IDENT, ASSIGN, NUMBER, LET, IDENT, ASSIGN, NUMBER}, kinds(toks))
}

func TestLexerUnterminatedStringIsInvalid(t *testing.T) {
	toks := New(`"abc`, "t.slv").All()
	require.Equal(t, INVALID, toks[0].Kind)
}
