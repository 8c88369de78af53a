package lexer

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := New(src).TokenizeToSlice()
	if err != nil {
		t.Fatalf("TokenizeToSlice(%q): unexpected error: %v", src, err)
	}
	return toks
}

func TestKeywordsAndPunctuation(t *testing.T) {
	toks := tokenize(t, `law M: end_law target T: end_target Event: GROUP: start_date: period: key: dictionnary: at : ^ - ( ) [ ]`)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	wantKeywords := 11
	gotKeywords := 0
	for _, k := range kinds {
		if k == KEYWORD {
			gotKeywords++
		}
	}
	if gotKeywords != wantKeywords {
		t.Errorf("got %d keyword tokens, want %d", gotKeywords, wantKeywords)
	}
	if kinds[len(kinds)-1] != EOF {
		t.Errorf("last token kind = %v, want EOF", kinds[len(kinds)-1])
	}
}

func TestLiteralKinds(t *testing.T) {
	cases := []struct {
		src    string
		kind   Kind
		lexeme string
	}{
		{`"hello"`, STRING, "hello"},
		{"2025-01-01", DATE, "2025-01-01"},
		{"00:00", TIME, "00:00"},
		{"00:00:30", TIME, "00:00:30"},
		{"30", NUMBER, "30"},
		{"1.0", DOTTED_NUMBER, "1.0"},
		{"0.1.30", DOTTED_NUMBER, "0.1.30"},
		{"name", IDENTIFIER, "name"},
	}
	for _, c := range cases {
		toks := tokenize(t, c.src)
		if len(toks) < 1 || toks[0].Kind != c.kind {
			t.Errorf("tokenize(%q): first token kind = %v, want %v", c.src, toks[0].Kind, c.kind)
		}
		if toks[0].Lexeme != c.lexeme {
			t.Errorf("tokenize(%q): lexeme = %q, want %q", c.src, toks[0].Lexeme, c.lexeme)
		}
	}
}

func TestNegativeDottedNumberIsMinusThenDotted(t *testing.T) {
	toks := tokenize(t, "-1.30")
	if toks[0].Kind != MINUS {
		t.Fatalf("first token = %v, want MINUS", toks[0].Kind)
	}
	if toks[1].Kind != DOTTED_NUMBER || toks[1].Lexeme != "1.30" {
		t.Fatalf("second token = %v %q, want DOTTED_NUMBER 1.30", toks[1].Kind, toks[1].Lexeme)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "law # trailing comment\nM")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (KEYWORD, IDENTIFIER, EOF)", len(toks))
	}
	if toks[0].Kind != KEYWORD || toks[1].Kind != IDENTIFIER || toks[1].Lexeme != "M" {
		t.Fatalf("unexpected token stream: %v", toks)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`"abc`).TokenizeToSlice()
	if err == nil {
		t.Fatal("expected UnterminatedString error, got none")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
}

func TestUnexpectedChar(t *testing.T) {
	_, err := New("@").TokenizeToSlice()
	if err == nil {
		t.Fatal("expected UnexpectedChar error, got none")
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := tokenize(t, "law M\n: end_law")
	// "law" on line 1 col 1; "M" on line 1 col 5; ":" on line 2 col 1
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("law token position = %d:%d, want 1:1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 1 || toks[1].Column != 5 {
		t.Errorf("M token position = %d:%d, want 1:5", toks[1].Line, toks[1].Column)
	}
	if toks[2].Line != 2 || toks[2].Column != 1 {
		t.Errorf(": token position = %d:%d, want 2:1", toks[2].Line, toks[2].Column)
	}
}
