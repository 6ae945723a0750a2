// Package lexer implements the Lox tokenizer.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/longkhanh1987/CS-4080-HW/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Single-character tokens
	TokLeftParen  TokenType = iota // (
	TokRightParen                  // )
	TokLeftBrace                   // {
	TokRightBrace                  // }
	TokComma                       // ,
	TokDot                         // .
	TokMinus                       // -
	TokPlus                        // +
	TokSemicolon                   // ;
	TokSlash                       // /
	TokStar                        // *
	TokQuestion                    // ?
	TokColon                       // :

	// One or two character tokens
	TokBang         // !
	TokBangEqual    // !=
	TokEqual        // =
	TokEqualEqual   // ==
	TokGreater      // >
	TokGreaterEqual // >=
	TokLess         // <
	TokLessEqual    // <=

	// Literals
	TokIdentifier
	TokString
	TokNumber

	// Keywords
	TokAnd
	TokBreak
	TokClass
	TokElse
	TokFalse
	TokFor
	TokFun
	TokIf
	TokNil
	TokOr
	TokPrint
	TokReturn
	TokSuper
	TokThis
	TokTrue
	TokVar
	TokWhile

	// Special
	TokEOF
)

var tokenNames = [...]string{
	TokLeftParen: "LEFT_PAREN", TokRightParen: "RIGHT_PAREN",
	TokLeftBrace: "LEFT_BRACE", TokRightBrace: "RIGHT_BRACE",
	TokComma: "COMMA", TokDot: "DOT", TokMinus: "MINUS", TokPlus: "PLUS",
	TokSemicolon: "SEMICOLON", TokSlash: "SLASH", TokStar: "STAR",
	TokQuestion: "QUESTION", TokColon: "COLON",
	TokBang: "BANG", TokBangEqual: "BANG_EQUAL", TokEqual: "EQUAL",
	TokEqualEqual: "EQUAL_EQUAL", TokGreater: "GREATER",
	TokGreaterEqual: "GREATER_EQUAL", TokLess: "LESS", TokLessEqual: "LESS_EQUAL",
	TokIdentifier: "IDENTIFIER", TokString: "STRING", TokNumber: "NUMBER",
	TokAnd: "AND", TokBreak: "BREAK", TokClass: "CLASS", TokElse: "ELSE",
	TokFalse: "FALSE", TokFor: "FOR", TokFun: "FUN", TokIf: "IF", TokNil: "NIL",
	TokOr: "OR", TokPrint: "PRINT", TokReturn: "RETURN", TokSuper: "SUPER",
	TokThis: "THIS", TokTrue: "TRUE", TokVar: "VAR", TokWhile: "WHILE",
	TokEOF: "EOF",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsKeyword reports whether t is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t >= TokAnd && t <= TokWhile
}

// Token represents a single lexer token. Literal holds the parsed value of
// NUMBER (float64) and STRING (string) tokens and is nil otherwise.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

// NewToken builds a token without a literal value.
func NewToken(typ TokenType, lexeme string, line int) Token {
	return Token{Type: typ, Lexeme: lexeme, Line: line}
}

var keywords = map[string]TokenType{
	"and":    TokAnd,
	"break":  TokBreak,
	"class":  TokClass,
	"else":   TokElse,
	"false":  TokFalse,
	"for":    TokFor,
	"fun":    TokFun,
	"if":     TokIf,
	"nil":    TokNil,
	"or":     TokOr,
	"print":  TokPrint,
	"return": TokReturn,
	"super":  TokSuper,
	"this":   TokThis,
	"true":   TokTrue,
	"var":    TokVar,
	"while":  TokWhile,
}

type scanner struct {
	source string
	tokens []Token
	diags  []diagnostics.Diagnostic
	start  int
	pos    int
	line   int
}

func newScanner(source string) *scanner {
	return &scanner{
		source: source,
		line:   1,
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) peekNext() byte {
	if s.pos+1 >= len(s.source) {
		return 0
	}
	return s.source[s.pos+1]
}

func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	return ch
}

func (s *scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.pos] != expected {
		return false
	}
	s.pos++
	return true
}

func (s *scanner) addToken(typ TokenType, literal any) {
	s.tokens = append(s.tokens, Token{
		Type:    typ,
		Lexeme:  s.source[s.start:s.pos],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *scanner) lexError(msg string) {
	s.diags = append(s.diags, diagnostics.MakeDiag(diagnostics.ELex, msg, s.line, ""))
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

// pick appends two if the next byte is '=', one otherwise.
func (s *scanner) pick(two, one TokenType) {
	if s.match('=') {
		s.addToken(two, nil)
		return
	}
	s.addToken(one, nil)
}

func (s *scanner) scanToken() {
	ch := s.advance()
	switch ch {
	case '(':
		s.addToken(TokLeftParen, nil)
	case ')':
		s.addToken(TokRightParen, nil)
	case '{':
		s.addToken(TokLeftBrace, nil)
	case '}':
		s.addToken(TokRightBrace, nil)
	case ',':
		s.addToken(TokComma, nil)
	case '.':
		s.addToken(TokDot, nil)
	case '-':
		s.addToken(TokMinus, nil)
	case '+':
		s.addToken(TokPlus, nil)
	case ';':
		s.addToken(TokSemicolon, nil)
	case '*':
		s.addToken(TokStar, nil)
	case '?':
		s.addToken(TokQuestion, nil)
	case ':':
		s.addToken(TokColon, nil)
	case '!':
		s.pick(TokBangEqual, TokBang)
	case '=':
		s.pick(TokEqualEqual, TokEqual)
	case '<':
		s.pick(TokLessEqual, TokLess)
	case '>':
		s.pick(TokGreaterEqual, TokGreater)
	case '/':
		switch {
		case s.match('/'):
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(TokSlash, nil)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentOrKeyword()
		default:
			s.lexError("Unexpected character.")
		}
	}
}

// blockComment skips a /* ... */ comment. Nested comments are supported.
func (s *scanner) blockComment() {
	depth := 1
	for !s.atEnd() && depth > 0 {
		switch {
		case s.peek() == '/' && s.peekNext() == '*':
			s.pos += 2
			depth++
		case s.peek() == '*' && s.peekNext() == '/':
			s.pos += 2
			depth--
		default:
			if s.advance() == '\n' {
				s.line++
			}
		}
	}
	if depth > 0 {
		s.lexError("Unterminated block comment.")
	}
}

func (s *scanner) scanString() {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.lexError("Unterminated string.")
		return
	}

	s.advance() // closing "
	s.addToken(TokString, s.source[s.start+1:s.pos-1])
}

func (s *scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// A trailing '.' without digits is not part of the number.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	value, err := strconv.ParseFloat(s.source[s.start:s.pos], 64)
	if err != nil {
		s.lexError(fmt.Sprintf("Invalid number '%s'.", s.source[s.start:s.pos]))
		return
	}
	s.addToken(TokNumber, value)
}

func (s *scanner) scanIdentOrKeyword() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.pos]
	if typ, ok := keywords[text]; ok {
		s.addToken(typ, nil)
		return
	}
	s.addToken(TokIdentifier, nil)
}

// Tokenize breaks source code into tokens terminated by a single EOF token.
// Lexical errors are collected and scanning continues after each one.
func Tokenize(source string) ([]Token, []diagnostics.Diagnostic) {
	s := newScanner(source)
	for !s.atEnd() {
		s.start = s.pos
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: TokEOF, Lexeme: "", Line: s.line})
	return s.tokens, s.diags
}
