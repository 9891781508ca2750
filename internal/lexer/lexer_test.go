package lexer

import "testing"

// drain runs l to completion and collects every token it emits.
func drain(l *Lexer) []Token {
	go l.Run()
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == EOF || tok.Kind == Error {
			break
		}
	}
	return out
}

func kindsOf(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func sameKinds(t *testing.T, got []Kind, want []Kind) {
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}

func TestLexLetAssignment(t *testing.T) {
	toks := drain(New(`let x = 3 | 0 |`))
	want := []Kind{Let, Identifier, Assign, Number, Pipe, Number, Pipe, EOF}
	sameKinds(t, kindsOf(toks), want)

	if toks[1].Val != "x" {
		t.Errorf("identifier lexeme = %q, want %q", toks[1].Val, "x")
	}
	if toks[3].Val != "3" {
		t.Errorf("number lexeme = %q, want %q", toks[3].Val, "3")
	}
}

func TestLexFloatLiteral(t *testing.T) {
	toks := drain(New(`3.14`))
	want := []Kind{Number, EOF}
	sameKinds(t, kindsOf(toks), want)
	if toks[0].Val != "3.14" {
		t.Errorf("number lexeme = %q, want %q", toks[0].Val, "3.14")
	}
}

func TestLexMultiCharOperators(t *testing.T) {
	toks := drain(New(`== != <= >= < >`))
	want := []Kind{Eq, Ne, Le, Ge, Lt, Gt, EOF}
	sameKinds(t, kindsOf(toks), want)
}

func TestLexIfElseWhile(t *testing.T) {
	toks := drain(New(`if (x < 1) { print(x) } else { while (x) { x } }`))
	want := []Kind{
		If, LParen, Identifier, Lt, Number, RParen, LBrace,
		Print, LParen, Identifier, RParen, RBrace,
		Else, LBrace,
		While, LParen, Identifier, RParen, LBrace,
		Identifier,
		RBrace, RBrace,
		EOF,
	}
	sameKinds(t, kindsOf(toks), want)
}

func TestLexNewlineIsToken(t *testing.T) {
	toks := drain(New("let x = 1\nlet y = 2"))
	want := []Kind{Let, Identifier, Assign, Number, Newline, Let, Identifier, Assign, Number, EOF}
	sameKinds(t, kindsOf(toks), want)
}

func TestLexStringLiteralForms(t *testing.T) {
	toks := drain(New(`'a' "b" """c"""`))
	want := []Kind{String, String, String, EOF}
	sameKinds(t, kindsOf(toks), want)
	if toks[0].Val != "a" || toks[1].Val != "b" || toks[2].Val != "c" {
		t.Errorf("string contents = %q, %q, %q", toks[0].Val, toks[1].Val, toks[2].Val)
	}
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	toks := drain(New(`"unterminated`))
	if toks[len(toks)-1].Kind != Error {
		t.Fatalf("last token = %v, want Error", toks[len(toks)-1])
	}
}

func TestLexUnknownCharacterIsError(t *testing.T) {
	toks := drain(New(`@`))
	if toks[len(toks)-1].Kind != Error {
		t.Fatalf("last token = %v, want Error", toks[len(toks)-1])
	}
}

func TestLexLineColumnTracking(t *testing.T) {
	toks := drain(New("let x = 1\nlet y = 2"))
	// y is on line 2, 5th column.
	for _, tok := range toks {
		if tok.Val == "y" {
			if tok.Line != 2 {
				t.Errorf("line = %d, want 2", tok.Line)
			}
			if tok.Col != 5 {
				t.Errorf("col = %d, want 5", tok.Col)
			}
			return
		}
	}
	t.Fatal("token 'y' not found")
}
