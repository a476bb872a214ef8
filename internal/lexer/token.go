// Package lexer tokenizes COOL source text. Identifier scanning uses
// UAX-31-based start/continue classification with
// golang.org/x/text/unicode/norm normalization for non-ASCII names,
// feeding COOL's case-sensitive OBJECTID/TYPEID vocabulary and keyword
// set.
package lexer

import "github.com/cool-lang/coolc/internal/ast"

type Kind int

const (
	EOF Kind = iota
	ERROR

	TypeID   // identifier starting with an uppercase letter
	ObjectID // identifier starting with a lowercase letter
	IntConst
	StrConst
	BoolConst

	Class
	Else
	Fi
	If
	In
	Inherits
	IsVoid
	Let
	Loop
	Pool
	Then
	While
	Case
	Esac
	New
	Of
	Not

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	Colon     // :
	Semi      // ;
	Comma     // ,
	Dot       // .
	At        // @
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Tilde     // ~
	Less      // <
	LessEqual // <=
	Equal     // =
	Assign    // <-
	DArrow    // =>
)

var keywords = map[string]Kind{
	"class":    Class,
	"else":     Else,
	"fi":       Fi,
	"if":       If,
	"in":       In,
	"inherits": Inherits,
	"isvoid":   IsVoid,
	"let":      Let,
	"loop":     Loop,
	"pool":     Pool,
	"then":     Then,
	"while":    While,
	"case":     Case,
	"esac":     Esac,
	"new":      New,
	"of":       Of,
	"not":      Not,
}

// Token is one lexical unit, spanning exactly the source text it covers.
type Token struct {
	Kind  Kind
	Text  string // raw text for TypeID/ObjectID; unescaped value for StrConst
	Int   int32
	Bool  bool
	Span  ast.Span
	Error string // populated only when Kind == ERROR
}
