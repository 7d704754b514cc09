package lexer

import "testing"

func TestBasicTokens(t *testing.T) {
	input := `function main(a: u32) -> u32 {
	let x: u32 = a + 1u32; // trailing comment
	return x;
}`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{TokenFunction, "function"},
		{TokenIdentifier, "main"},
		{TokenLParen, "("},
		{TokenIdentifier, "a"},
		{TokenColon, ":"},
		{TokenU32, "u32"},
		{TokenRParen, ")"},
		{TokenArrow, "->"},
		{TokenU32, "u32"},
		{TokenLBrace, "{"},
		{TokenLet, "let"},
		{TokenIdentifier, "x"},
		{TokenColon, ":"},
		{TokenU32, "u32"},
		{TokenAssign, "="},
		{TokenIdentifier, "a"},
		{TokenPlus, "+"},
		{TokenInteger, "1"},
		{TokenU32, "u32"},
		{TokenSemicolon, ";"},
		{TokenReturn, "return"},
		{TokenIdentifier, "x"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestOperatorsAndRanges(t *testing.T) {
	input := `0..10 ** != == <= >= && || ! < > . ? /* block */ -`

	expected := []TokenType{
		TokenInteger, TokenDotDot, TokenInteger, TokenPow, TokenNe, TokenEq,
		TokenLe, TokenGe, TokenAnd, TokenOr, TokenNot, TokenLt, TokenGt,
		TokenDot, TokenQuestion, TokenMinus, TokenEOF,
	}

	tokens := Tokenize(input, "ops.leo")
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, tt := range expected {
		if tokens[i].Type != tt {
			t.Errorf("tokens[%d] = %s, want %s", i, tokens[i].Type, tt)
		}
	}
}

func TestLiterals(t *testing.T) {
	address := "aleo1qnr4dkkvkgfqph0vzc3y6z2eu975wnpz2925ntjccd5cfqxtyu8sta57j8"
	tests := []struct {
		input   string
		typ     TokenType
		literal string
	}{
		{`"hello {}"`, TokenString, "hello {}"},
		{`"tab\tquote\""`, TokenString, "tab\tquote\""},
		{`"\u{1F600}"`, TokenString, "\U0001F600"},
		{`'a'`, TokenChar, "a"},
		{`'\n'`, TokenChar, "\n"},
		{address, TokenAddress, address},
		{"aleo1short", TokenIdentifier, "aleo1short"},
		{`"open`, TokenError, "unterminated string literal"},
		{`''`, TokenError, "empty or unterminated char literal"},
		{`#`, TokenError, `unexpected character '#'`},
		{`/* never closed`, TokenError, "unterminated block comment"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != tt.typ {
				t.Fatalf("type = %s, want %s (%v)", tok.Type, tt.typ, tok)
			}
			if tok.Literal != tt.literal {
				t.Fatalf("literal = %q, want %q", tok.Literal, tt.literal)
			}
		})
	}
}

func TestTokenSpans(t *testing.T) {
	tokens := Tokenize("let x\n  = 42;", "span.leo")

	tests := []struct {
		idx                  int
		line, col, from, end int
	}{
		{0, 1, 1, 0, 3},
		{1, 1, 5, 4, 5},
		{2, 2, 3, 8, 9},
		{3, 2, 5, 10, 12},
		{4, 2, 7, 12, 13},
	}

	for _, tt := range tests {
		s := tokens[tt.idx].Span
		if s.Start.Line != tt.line || s.Start.Column != tt.col {
			t.Errorf("token %d starts at %d:%d, want %d:%d", tt.idx, s.Start.Line, s.Start.Column, tt.line, tt.col)
		}
		if s.Start.Offset != tt.from || s.End.Offset != tt.end {
			t.Errorf("token %d covers %d..%d, want %d..%d", tt.idx, s.Start.Offset, s.End.Offset, tt.from, tt.end)
		}
		if s.Start.Filename != "span.leo" {
			t.Errorf("token %d filename = %q", tt.idx, s.Start.Filename)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: TokenIdentifier, Literal: "foo"}, "foo"},
		{Token{Type: TokenLBrace, Literal: "{"}, "{"},
		{Token{Type: TokenString, Literal: "x"}, `"x"`},
		{Token{Type: TokenEOF}, "<eof>"},
		{Token{Type: TokenU8, Literal: "u8"}, "u8"},
	}
	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}
