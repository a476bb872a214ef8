package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/cool-lang/coolc/internal/ast"
)

// Lexer scans one ast.Source into a flat token stream. It keeps no
// lookahead state between calls to Next beyond byte offset and line/column
// bookkeeping — an offset-driven scanner rather than a buffered channel
// of tokens.
type Lexer struct {
	source *ast.Source
	pos    int
	line   int
	col    int
}

func New(source *ast.Source) *Lexer {
	return &Lexer{source: source, pos: 0, line: 1, col: 1}
}

// ScanAll tokenizes the entire source and returns every token including a
// trailing EOF. Scanning never stops early: lexical errors are reported as
// ERROR tokens so the parser can recover and keep going, the same
// graceful-degradation policy the semantic passes use for ErrorType.
func (l *Lexer) ScanAll() []Token {
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens
		}
	}
}

func (l *Lexer) here() ast.Location { return ast.Location{Line: l.line, Column: l.col} }

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.source.Contents) {
		return 0
	}
	return l.source.Contents[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.source.Contents) {
		return 0
	}
	return l.source.Contents[l.pos+offset]
}

func (l *Lexer) advance() byte {
	c := l.source.Contents[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) span(start ast.Location) ast.Span {
	return ast.NewSpan(start, l.here(), l.source.ID)
}

// Next scans and returns the next token, skipping whitespace and comments.
func (l *Lexer) Next() Token {
	for {
		l.skipWhitespace()
		if l.peekByte() == '-' && l.peekByteAt(1) == '-' {
			l.skipLineComment()
			continue
		}
		if l.peekByte() == '(' && l.peekByteAt(1) == '*' {
			if tok, ok := l.skipBlockComment(); !ok {
				return tok
			}
			continue
		}
		break
	}

	if l.pos >= len(l.source.Contents) {
		start := l.here()
		return Token{Kind: EOF, Span: l.span(start)}
	}

	start := l.here()
	c := l.peekByte()

	switch {
	case c == '"':
		return l.scanString(start)
	case c >= '0' && c <= '9':
		return l.scanInt(start)
	case isUpper(c):
		return l.scanIdent(start, TypeID)
	case isLower(c) || c == '_':
		return l.scanIdent(start, ObjectID)
	case c >= 128:
		return l.scanUnicodeIdent(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source.Contents) {
		c := l.peekByte()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v' {
			l.advance()
			continue
		}
		return
	}
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.source.Contents) && l.peekByte() != '\n' {
		l.advance()
	}
}

// skipBlockComment consumes a nested `(* ... *)` comment. COOL allows
// nesting, unlike C; an unterminated comment produces an "EOF in comment"
// ERROR token spanning from the comment's opening.
func (l *Lexer) skipBlockComment() (Token, bool) {
	start := l.here()
	l.advance() // (
	l.advance() // *
	depth := 1
	for depth > 0 {
		if l.pos >= len(l.source.Contents) {
			return Token{Kind: ERROR, Error: "EOF in comment", Span: l.span(start)}, false
		}
		if l.peekByte() == '(' && l.peekByteAt(1) == '*' {
			l.advance()
			l.advance()
			depth++
			continue
		}
		if l.peekByte() == '*' && l.peekByteAt(1) == ')' {
			l.advance()
			l.advance()
			depth--
			continue
		}
		l.advance()
	}
	return Token{}, true
}

func (l *Lexer) scanString(start ast.Location) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.source.Contents) {
			return Token{Kind: ERROR, Error: "EOF in string constant", Span: l.span(start)}
		}
		c := l.peekByte()
		if c == '"' {
			l.advance()
			return Token{Kind: StrConst, Text: sb.String(), Span: l.span(start)}
		}
		if c == 0 {
			return Token{Kind: ERROR, Error: "string contains null character", Span: l.span(start)}
		}
		if c == '\n' {
			return Token{Kind: ERROR, Error: "unterminated string constant", Span: l.span(start)}
		}
		if c == '\\' {
			l.advance()
			if l.pos >= len(l.source.Contents) {
				return Token{Kind: ERROR, Error: "EOF in string constant", Span: l.span(start)}
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case '\n':
				sb.WriteByte('\n')
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(l.advance())
	}
}

func (l *Lexer) scanInt(start ast.Location) Token {
	s := l.pos
	for l.pos < len(l.source.Contents) && isDigit(l.peekByte()) {
		l.advance()
	}
	text := l.source.Contents[s:l.pos]
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Token{Kind: ERROR, Error: "integer constant too large", Span: l.span(start)}
	}
	return Token{Kind: IntConst, Int: int32(n), Span: l.span(start)}
}

// scanIdent scans an ASCII-starting identifier and classifies it as a
// keyword, TYPEID, or OBJECTID. `true`/`false` are lexed as BoolConst
// when their first letter is lowercase (the rest may be any case), matching
// the reference grammar's special-casing of boolean literals; `True` is a
// TYPEID.
func (l *Lexer) scanIdent(start ast.Location, defaultKind Kind) Token {
	s := l.pos
	for l.pos < len(l.source.Contents) && isIdentContinueASCII(l.peekByte()) {
		l.advance()
	}
	text := l.source.Contents[s:l.pos]
	lower := strings.ToLower(text)

	if lower == "true" && text[0] == 't' {
		return Token{Kind: BoolConst, Bool: true, Span: l.span(start)}
	}
	if lower == "false" && text[0] == 'f' {
		return Token{Kind: BoolConst, Bool: false, Span: l.span(start)}
	}
	if kind, ok := keywords[lower]; ok {
		return Token{Kind: kind, Text: text, Span: l.span(start)}
	}
	return Token{Kind: defaultKind, Text: text, Span: l.span(start)}
}

// scanUnicodeIdent handles identifiers beginning with a non-ASCII rune,
// normalizing to NFC so two differently-composed but canonically equal
// names collide as one identifier instead of silently aliasing to
// different class members.
func (l *Lexer) scanUnicodeIdent(start ast.Location) Token {
	s := l.pos
	r, width := utf8.DecodeRuneInString(l.source.Contents[l.pos:])
	if !isIdentStartUnicode(r) {
		return l.scanOperator(start)
	}
	for w := 0; w < width; w++ {
		l.advance()
	}
	for l.pos < len(l.source.Contents) {
		r, width := utf8.DecodeRuneInString(l.source.Contents[l.pos:])
		if !isIdentContinueUnicode(r) {
			break
		}
		for w := 0; w < width; w++ {
			l.advance()
		}
	}
	text := string(norm.NFC.Bytes([]byte(l.source.Contents[s:l.pos])))
	kind := ObjectID
	if unicode.IsUpper([]rune(text)[0]) {
		kind = TypeID
	}
	return Token{Kind: kind, Text: text, Span: l.span(start)}
}

func (l *Lexer) scanOperator(start ast.Location) Token {
	c := l.advance()
	switch c {
	case '{':
		return Token{Kind: LBrace, Span: l.span(start)}
	case '}':
		return Token{Kind: RBrace, Span: l.span(start)}
	case '(':
		return Token{Kind: LParen, Span: l.span(start)}
	case ')':
		return Token{Kind: RParen, Span: l.span(start)}
	case ':':
		return Token{Kind: Colon, Span: l.span(start)}
	case ';':
		return Token{Kind: Semi, Span: l.span(start)}
	case ',':
		return Token{Kind: Comma, Span: l.span(start)}
	case '.':
		return Token{Kind: Dot, Span: l.span(start)}
	case '@':
		return Token{Kind: At, Span: l.span(start)}
	case '+':
		return Token{Kind: Plus, Span: l.span(start)}
	case '-':
		return Token{Kind: Minus, Span: l.span(start)}
	case '*':
		return Token{Kind: Star, Span: l.span(start)}
	case '/':
		return Token{Kind: Slash, Span: l.span(start)}
	case '~':
		return Token{Kind: Tilde, Span: l.span(start)}
	case '=':
		if l.peekByte() == '>' {
			l.advance()
			return Token{Kind: DArrow, Span: l.span(start)}
		}
		return Token{Kind: Equal, Span: l.span(start)}
	case '<':
		if l.peekByte() == '=' {
			l.advance()
			return Token{Kind: LessEqual, Span: l.span(start)}
		}
		if l.peekByte() == '-' {
			l.advance()
			return Token{Kind: Assign, Span: l.span(start)}
		}
		return Token{Kind: Less, Span: l.span(start)}
	default:
		return Token{Kind: ERROR, Error: "invalid character: '" + string(c) + "'", Span: l.span(start)}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isIdentContinueASCII(c byte) bool {
	return isUpper(c) || isLower(c) || isDigit(c) || c == '_'
}

// isIdentStartUnicode/isIdentContinueUnicode mirror lexer_util's
// UAX-31-based classification, minus '$' (not part of COOL's grammar).
func isIdentStartUnicode(r rune) bool {
	return (r == '_' ||
		unicode.IsLetter(r) ||
		unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Other_ID_Start, r)) &&
		!unicode.Is(unicode.Pattern_Syntax, r) &&
		!unicode.Is(unicode.Pattern_White_Space, r)
}

func isIdentContinueUnicode(r rune) bool {
	return (r == '_' ||
		unicode.IsLetter(r) ||
		unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Other_ID_Start, r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Nd, r) ||
		unicode.Is(unicode.Pc, r) ||
		unicode.Is(unicode.Other_ID_Continue, r)) &&
		!unicode.Is(unicode.Pattern_Syntax, r) &&
		!unicode.Is(unicode.Pattern_White_Space, r)
}
