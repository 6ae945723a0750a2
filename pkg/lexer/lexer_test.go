package lexer

import (
	"testing"
)

// helper to tokenize and fail on error
func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, diags := Tokenize(source)
	if len(diags) > 0 {
		t.Fatalf("unexpected lex errors: %v", diags)
	}
	return tokens
}

// helper that strips the trailing EOF for easier assertions
func mustTokenizeNoEOF(t *testing.T, source string) []Token {
	t.Helper()
	tokens := mustTokenize(t, source)
	if len(tokens) == 0 {
		t.Fatal("expected at least one token (EOF)")
	}
	if tokens[len(tokens)-1].Type != TokEOF {
		t.Fatal("last token is not EOF")
	}
	return tokens[:len(tokens)-1]
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func expectTypes(t *testing.T, got []Token, want ...TokenType) {
	t.Helper()
	gotTypes := types(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(gotTypes), gotTypes, len(want), want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, gotTypes[i], want[i])
		}
	}
}

func TestEmptyInput(t *testing.T) {
	tokens := mustTokenize(t, "")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token (EOF), got %d", len(tokens))
	}
	if tokens[0].Type != TokEOF {
		t.Errorf("expected TokEOF, got %v", tokens[0].Type)
	}
	if tokens[0].Line != 1 {
		t.Errorf("EOF line = %d, want 1", tokens[0].Line)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		keyword  string
		expected TokenType
	}{
		{"and", TokAnd},
		{"break", TokBreak},
		{"class", TokClass},
		{"else", TokElse},
		{"false", TokFalse},
		{"for", TokFor},
		{"fun", TokFun},
		{"if", TokIf},
		{"nil", TokNil},
		{"or", TokOr},
		{"print", TokPrint},
		{"return", TokReturn},
		{"super", TokSuper},
		{"this", TokThis},
		{"true", TokTrue},
		{"var", TokVar},
		{"while", TokWhile},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.keyword)
			if len(tokens) != 1 {
				t.Fatalf("expected 1 token, got %d", len(tokens))
			}
			if tokens[0].Type != tt.expected {
				t.Errorf("expected token type %s, got %s", tt.expected, tokens[0].Type)
			}
			if !tokens[0].Type.IsKeyword() {
				t.Errorf("%s should be a keyword", tokens[0].Type)
			}
			if tokens[0].Lexeme != tt.keyword {
				t.Errorf("expected lexeme %q, got %q", tt.keyword, tokens[0].Lexeme)
			}
		})
	}
}

func TestKeywordVsIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"var", TokVar},
		{"variable", TokIdentifier},
		{"or", TokOr},
		{"orchid", TokIdentifier},
		{"nil", TokNil},
		{"nihil", TokIdentifier},
		{"_under", TokIdentifier},
		{"x1", TokIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 || tokens[0].Type != tt.expected {
				t.Fatalf("got %v, want single %s", types(tokens), tt.expected)
			}
		})
	}
}

func TestOperators(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "( ) { } , . - + ; / * ? : ! != = == > >= < <=")
	expectTypes(t, tokens,
		TokLeftParen, TokRightParen, TokLeftBrace, TokRightBrace,
		TokComma, TokDot, TokMinus, TokPlus, TokSemicolon, TokSlash, TokStar,
		TokQuestion, TokColon,
		TokBang, TokBangEqual, TokEqual, TokEqualEqual,
		TokGreater, TokGreaterEqual, TokLess, TokLessEqual,
	)
}

func TestTwoCharOperatorsWithoutSpaces(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "a>=b==!c")
	expectTypes(t, tokens,
		TokIdentifier, TokGreaterEqual, TokIdentifier, TokEqualEqual, TokBang, TokIdentifier)
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{"100.5", 100.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenizeNoEOF(t, tt.input)
			if len(tokens) != 1 || tokens[0].Type != TokNumber {
				t.Fatalf("got %v, want single NUMBER", types(tokens))
			}
			if got := tokens[0].Literal.(float64); got != tt.want {
				t.Errorf("literal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberTrailingDot(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "12.")
	expectTypes(t, tokens, TokNumber, TokDot)
}

func TestStringLiteral(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, `"hello world"`)
	if len(tokens) != 1 || tokens[0].Type != TokString {
		t.Fatalf("got %v, want single STRING", types(tokens))
	}
	if tokens[0].Literal != "hello world" {
		t.Errorf("literal = %q, want %q", tokens[0].Literal, "hello world")
	}
	if tokens[0].Lexeme != `"hello world"` {
		t.Errorf("lexeme = %q", tokens[0].Lexeme)
	}
}

func TestMultilineStringAdvancesLine(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "\"a\nb\" x")
	if tokens[0].Line != 2 {
		t.Errorf("string token line = %d, want 2", tokens[0].Line)
	}
	if tokens[1].Line != 2 {
		t.Errorf("identifier line = %d, want 2", tokens[1].Line)
	}
}

func TestComments(t *testing.T) {
	tokens := mustTokenizeNoEOF(t, "a // line comment\n/* block\n /* nested */ */ b")
	expectTypes(t, tokens, TokIdentifier, TokIdentifier)
	if tokens[1].Line != 3 {
		t.Errorf("b line = %d, want 3", tokens[1].Line)
	}
}

func TestLineNumbers(t *testing.T) {
	tokens := mustTokenize(t, "var a;\n\nprint a;")
	if tokens[0].Line != 1 {
		t.Errorf("var line = %d, want 1", tokens[0].Line)
	}
	if tokens[3].Line != 3 {
		t.Errorf("print line = %d, want 3", tokens[3].Line)
	}
}

func TestLexErrorsContinue(t *testing.T) {
	tokens, diags := Tokenize("var @ x = \"open")
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
	if diags[0].Message != "Unexpected character." {
		t.Errorf("first diag = %q", diags[0].Message)
	}
	if diags[1].Message != "Unterminated string." {
		t.Errorf("second diag = %q", diags[1].Message)
	}
	expectTypes(t, tokens, TokVar, TokIdentifier, TokEqual, TokEOF)
}

func TestTokenTypeString(t *testing.T) {
	if TokEqualEqual.String() != "EQUAL_EQUAL" {
		t.Errorf("got %s", TokEqualEqual.String())
	}
	if TokenType(999).String() != "token(999)" {
		t.Errorf("got %s", TokenType(999).String())
	}
}
