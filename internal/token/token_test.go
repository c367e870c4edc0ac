package token_test

import (
	"testing"

	"exprnorm/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"param": token.KwParam,
		"new":   token.KwNew,
		"true":  token.KwTrue,
		"false": token.KwFalse,
		"null":  token.KwNull,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"Param", "NULL", "Widget", "get_Item"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Errorf("%q must not be a keyword", s)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	tok := func(k token.Kind) token.Token { return token.Token{Kind: k} }
	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwNull} {
		if !tok(k).IsLiteral() {
			t.Errorf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwParam, token.Plus, token.LParen} {
		if tok(k).IsLiteral() {
			t.Errorf("%v must NOT be literal", k)
		}
	}
	if !tok(token.KwNew).IsKeyword() || tok(token.Ident).IsKeyword() {
		t.Error("IsKeyword mismatch")
	}
	if got := token.FatArrow.String(); got != "=>" {
		t.Errorf("FatArrow.String() = %q", got)
	}
}
