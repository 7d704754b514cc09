package parser

import (
	"testing"

	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/lexer"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Type
	}{
		{"i8", ast.I8},
		{"i16", ast.I16},
		{"i32", ast.I32},
		{"i64", ast.I64},
		{"i128", ast.I128},
		{"u8", ast.U8},
		{"u16", ast.U16},
		{"u32", ast.U32},
		{"u64", ast.U64},
		{"u128", ast.U128},
		{"field", ast.TypeField},
		{"group", ast.TypeGroup},
		{"address", ast.TypeAddress},
		{"bool", ast.TypeBoolean},
		{"char", ast.TypeChar},
	}

	for i, tt := range tests {
		p := NewFromSource(tt.input, "type.leo")
		typ, err := p.ParseType()
		if err != nil {
			t.Fatalf("tests[%d] - ParseType(%q) error: %v", i, tt.input, err)
		}
		if typ != tt.expected {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, tt.expected, typ)
		}
		if typ.String() != tt.input {
			t.Fatalf("tests[%d] - type spelling wrong. expected=%q, got=%q", i, tt.input, typ.String())
		}
	}
}

func TestParseUserDefinedType(t *testing.T) {
	p := NewFromSource("Point", "type.leo")
	typ, span, err := p.parseAllTypes()
	if err != nil {
		t.Fatalf("parseAllTypes() error: %v", err)
	}
	it, ok := typ.(*ast.IdentifierType)
	if !ok {
		t.Fatalf("type is not *ast.IdentifierType. got=%T", typ)
	}
	if it.Identifier.Name != "Point" {
		t.Fatalf("identifier = %q", it.Identifier.Name)
	}
	if span.Length() != len("Point") {
		t.Fatalf("span length = %d", span.Length())
	}
}

func TestParseTypeRejectsNonTypes(t *testing.T) {
	for i, input := range []string{"1", "->", "{", "let"} {
		p := NewFromSource(input, "type.leo")
		if _, err := p.ParseType(); err == nil {
			t.Fatalf("tests[%d] - expected error for %q", i, input)
		} else if perr := err.(*Error); perr.Kind != KindUnexpectedToken {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, KindUnexpectedToken, perr.Kind)
		}
	}
}

func TestTokenToIntType(t *testing.T) {
	for tt := lexer.TokenI8; tt <= lexer.TokenCharType; tt++ {
		it, ok := tokenToIntType(tt)
		wantInt := tt <= lexer.TokenU128
		if ok != wantInt {
			t.Fatalf("tokenToIntType(%s) ok=%v, want %v", tt, ok, wantInt)
		}
		if ok && it.String() != tt.String() {
			t.Fatalf("tokenToIntType(%s) = %s", tt, it)
		}
	}
}

func TestCursor(t *testing.T) {
	p := NewFromSource("let x", "cursor.leo")

	if !p.check(lexer.TokenLet) {
		t.Fatalf("lookahead = %s, want let", p.token.Type)
	}
	if p.eat(lexer.TokenConst) {
		t.Fatal("eat(const) consumed let")
	}
	if !p.eatAny(lexer.TokenConst, lexer.TokenLet) {
		t.Fatal("eatAny(const, let) did not consume let")
	}
	if p.prevToken.Type != lexer.TokenLet {
		t.Fatalf("prevToken = %s, want let", p.prevToken.Type)
	}
	if id := p.eatIdentifier(); id == nil || id.Name != "x" {
		t.Fatalf("eatIdentifier() = %v", id)
	}
	if !p.AtEOF() {
		t.Fatal("expected EOF")
	}

	// bump at EOF stays at EOF.
	p.bump()
	p.bump()
	if !p.AtEOF() {
		t.Fatal("bump moved past EOF")
	}
}

func TestNewAppendsEOF(t *testing.T) {
	toks := lexer.Tokenize("x", "eof.leo")
	toks = toks[:len(toks)-1]

	p := New(toks)
	if _, err := p.expectIdent(); err != nil {
		t.Fatalf("expectIdent() error: %v", err)
	}
	if !p.AtEOF() {
		t.Fatal("parser over a slice without EOF should still reach EOF")
	}
	if len(toks) != 1 {
		t.Fatal("New must not modify the caller's slice")
	}

	if !New(nil).AtEOF() {
		t.Fatal("empty input should be at EOF")
	}
}

func TestSharedHandler(t *testing.T) {
	h := diagnostics.NewHandler()
	for _, src := range []string{"a;", "b;"} {
		p := NewFromSource(src, "h.leo", WithHandler(h))
		if _, err := p.ParseStatement(); err != nil {
			t.Fatalf("ParseStatement(%q) error: %v", src, err)
		}
	}
	if h.Len() != 2 {
		t.Fatalf("handler has %d diagnostics, want 2", h.Len())
	}
}

func TestParseProgram(t *testing.T) {
	src := `// sums a range
function main(const n: u32, p: Point) -> u32 {
    let total: u32 = 0u32;
    for i: u32 in 0..n {
        total = total + i;
    }
    console.log("total {}", total);
    return total;
}

function helper() {
    return ();
}
`
	p := NewFromSource(src, "main.leo")
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	if program.Name != "main.leo" {
		t.Errorf("program name = %q", program.Name)
	}
	if len(program.Functions) != 2 {
		t.Fatalf("functions = %d, want 2", len(program.Functions))
	}

	main := program.Functions[0]
	if main.Identifier.Name != "main" || len(main.Inputs) != 2 {
		t.Fatalf("main signature = %s", main.Identifier)
	}
	if !main.Inputs[0].Const || main.Inputs[1].Const {
		t.Errorf("const flags = %v, %v", main.Inputs[0].Const, main.Inputs[1].Const)
	}
	if got := spanText(src, main.Inputs[0].Span); got != "const n: u32" {
		t.Errorf("input span = %q", got)
	}
	if main.Output != ast.U32 {
		t.Errorf("output = %v", main.Output)
	}
	if len(main.Block.Statements) != 4 {
		t.Errorf("main statements = %d, want 4", len(main.Block.Statements))
	}
	if program.Functions[1].Output != nil {
		t.Errorf("helper output = %v, want none", program.Functions[1].Output)
	}
	// Function bodies and the loop body count as block statements.
	if got := ast.CountStatements(program); got != 9 {
		t.Errorf("CountStatements() = %d, want 9", got)
	}
	if len(p.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", p.Diagnostics())
	}
}

func TestParseProgramErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"let x: u8 = 1u8;", "expected 'function' -- got 'let'"},
		{"function () {}", "expected 'identifier' -- got '('"},
		{"function f(a) {}", "expected ':' -- got ')'"},
		{"function f() -> {}", "expected 'i8', 'i16', 'i32', 'i64', 'i128', 'u8', 'u16', 'u32', 'u64', 'u128', 'field', 'group', 'address', 'bool', 'char' -- got '{'"},
	}

	for i, tt := range tests {
		p := NewFromSource(tt.input, "bad.leo")
		_, err := p.ParseProgram()
		if err == nil {
			t.Fatalf("tests[%d] - expected error", i)
		}
		if msg := err.(*Error).Message; msg != tt.message {
			t.Fatalf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.message, msg)
		}
	}
}

func TestParseStatements(t *testing.T) {
	p := NewFromSource("let a: u8 = 1u8; a = a * 2u8; a;", "repl")
	stmts, err := p.ParseStatements()
	if err != nil {
		t.Fatalf("ParseStatements() error: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("statements = %d, want 3", len(stmts))
	}
	if _, ok := stmts[2].(*ast.DummyStatement); !ok {
		t.Fatalf("last statement = %T, want dummy", stmts[2])
	}
	if len(p.Diagnostics()) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(p.Diagnostics()))
	}
}
