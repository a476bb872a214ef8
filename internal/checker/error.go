package checker

import (
	"fmt"

	"github.com/cool-lang/coolc/internal/ast"
)

// Error is the closed set of diagnostics the analyzer can emit: every
// diagnostic carries a message and the source token it should be reported
// against, and is accumulated rather than thrown.
//
//sumtype:decl
type Error interface {
	isError()
	Span() ast.Span
	Message() string
}

func (WrongSignatureError) isError()        {}
func (SelfIsReadonlyError) isError()        {}
func (LocalAlreadyDefinedError) isError()   {}
func (IncompatibleTypesError) isError()     {}
func (VariableNotDefinedError) isError()    {}
func (InvalidOperationError) isError()      {}
func (ConditionNotBoolError) isError()      {}
func (CyclicHeritageError) isError()        {}
func (NoMainClassError) isError()           {}
func (MissingMainMethodError) isError()     {}
func (MainTakesArgsError) isError()         {}
func (InvalidInheritanceError) isError()    {}
func (InvalidClassNameError) isError()      {}
func (DuplicateAttributeError) isError()    {}
func (UnknownTypeError) isError()           {}
func (ArityMismatchError) isError()         {}
func (InvalidCastError) isError()           {}
func (ComplementRequiresIntError) isError() {}
func (NotRequiresBoolError) isError()       {}
func (UndefinedMethodError) isError()       {}

type WrongSignatureError struct {
	Method, Class string
	span          ast.Span
}

func NewWrongSignatureError(method, class string, span ast.Span) WrongSignatureError {
	return WrongSignatureError{Method: method, Class: class, span: span}
}
func (e WrongSignatureError) Span() ast.Span { return e.span }
func (e WrongSignatureError) Message() string {
	return fmt.Sprintf(`Method "%s" already defined in "%s" with a different signature.`, e.Method, e.Class)
}

type SelfIsReadonlyError struct{ span ast.Span }

func NewSelfIsReadonlyError(span ast.Span) SelfIsReadonlyError { return SelfIsReadonlyError{span} }
func (e SelfIsReadonlyError) Span() ast.Span                    { return e.span }
func (e SelfIsReadonlyError) Message() string                  { return `Variable "self" is read-only.` }

type LocalAlreadyDefinedError struct {
	Name, Method string
	span         ast.Span
}

func NewLocalAlreadyDefinedError(name, method string, span ast.Span) LocalAlreadyDefinedError {
	return LocalAlreadyDefinedError{Name: name, Method: method, span: span}
}
func (e LocalAlreadyDefinedError) Span() ast.Span { return e.span }
func (e LocalAlreadyDefinedError) Message() string {
	return fmt.Sprintf(`Variable "%s" is already defined in method "%s".`, e.Name, e.Method)
}

type IncompatibleTypesError struct {
	From, To string
	span     ast.Span
}

func NewIncompatibleTypesError(from, to string, span ast.Span) IncompatibleTypesError {
	return IncompatibleTypesError{From: from, To: to, span: span}
}
func (e IncompatibleTypesError) Span() ast.Span { return e.span }
func (e IncompatibleTypesError) Message() string {
	return fmt.Sprintf(`Cannot convert "%s" into "%s".`, e.From, e.To)
}

type VariableNotDefinedError struct {
	Name string
	span ast.Span
}

func NewVariableNotDefinedError(name string, span ast.Span) VariableNotDefinedError {
	return VariableNotDefinedError{Name: name, span: span}
}
func (e VariableNotDefinedError) Span() ast.Span { return e.span }
func (e VariableNotDefinedError) Message() string {
	return fmt.Sprintf(`Variable "%s" is not defined.`, e.Name)
}

type InvalidOperationError struct {
	Left, Right string
	span        ast.Span
}

func NewInvalidOperationError(left, right string, span ast.Span) InvalidOperationError {
	return InvalidOperationError{Left: left, Right: right, span: span}
}
func (e InvalidOperationError) Span() ast.Span { return e.span }
func (e InvalidOperationError) Message() string {
	return fmt.Sprintf(`Operation is not defined between "%s" and "%s".`, e.Left, e.Right)
}

type ConditionNotBoolError struct {
	Construct, Actual string
	span              ast.Span
}

func NewConditionNotBoolError(construct, actual string, span ast.Span) ConditionNotBoolError {
	return ConditionNotBoolError{Construct: construct, Actual: actual, span: span}
}
func (e ConditionNotBoolError) Span() ast.Span { return e.span }
func (e ConditionNotBoolError) Message() string {
	return fmt.Sprintf(`"%s" conditions return type must be Bool not "%s"`, e.Construct, e.Actual)
}

type CyclicHeritageError struct{ span ast.Span }

func NewCyclicHeritageError(span ast.Span) CyclicHeritageError { return CyclicHeritageError{span} }
func (e CyclicHeritageError) Span() ast.Span                    { return e.span }
func (e CyclicHeritageError) Message() string                  { return "Cyclic heritage." }

type NoMainClassError struct{ span ast.Span }

func NewNoMainClassError(span ast.Span) NoMainClassError { return NoMainClassError{span} }
func (e NoMainClassError) Span() ast.Span                 { return e.span }
func (e NoMainClassError) Message() string                { return `No definition for class "Main"` }

type MissingMainMethodError struct{ span ast.Span }

func NewMissingMainMethodError(span ast.Span) MissingMainMethodError {
	return MissingMainMethodError{span}
}
func (e MissingMainMethodError) Span() ast.Span { return e.span }
func (e MissingMainMethodError) Message() string {
	return `Class "Main" must have a method "main"`
}

type MainTakesArgsError struct{ span ast.Span }

func NewMainTakesArgsError(span ast.Span) MainTakesArgsError { return MainTakesArgsError{span} }
func (e MainTakesArgsError) Span() ast.Span                   { return e.span }
func (e MainTakesArgsError) Message() string {
	return `Method "main" must takes no formal parameters`
}

type InvalidInheritanceError struct {
	Parent string
	span   ast.Span
}

func NewInvalidInheritanceError(parent string, span ast.Span) InvalidInheritanceError {
	return InvalidInheritanceError{Parent: parent, span: span}
}
func (e InvalidInheritanceError) Span() ast.Span { return e.span }
func (e InvalidInheritanceError) Message() string {
	return fmt.Sprintf(`Is not possible to inherits from "%s"`, e.Parent)
}

type InvalidClassNameError struct {
	Name string
	span ast.Span
}

func NewInvalidClassNameError(name string, span ast.Span) InvalidClassNameError {
	return InvalidClassNameError{Name: name, span: span}
}
func (e InvalidClassNameError) Span() ast.Span { return e.span }
func (e InvalidClassNameError) Message() string {
	return fmt.Sprintf(`%s is an invalid class name`, e.Name)
}

type DuplicateAttributeError struct {
	Name, Class string
	span        ast.Span
}

func NewDuplicateAttributeError(name, class string, span ast.Span) DuplicateAttributeError {
	return DuplicateAttributeError{Name: name, Class: class, span: span}
}
func (e DuplicateAttributeError) Span() ast.Span { return e.span }
func (e DuplicateAttributeError) Message() string {
	return fmt.Sprintf(`Attribute "%s" is already defined in "%s".`, e.Name, e.Class)
}

type UnknownTypeError struct {
	Name string
	span ast.Span
}

func NewUnknownTypeError(name string, span ast.Span) UnknownTypeError {
	return UnknownTypeError{Name: name, span: span}
}
func (e UnknownTypeError) Span() ast.Span  { return e.span }
func (e UnknownTypeError) Message() string { return fmt.Sprintf(`Type "%s" is not defined.`, e.Name) }

type ArityMismatchError struct {
	Method, Class string
	Want, Got     int
	span          ast.Span
}

func NewArityMismatchError(method, class string, want, got int, span ast.Span) ArityMismatchError {
	return ArityMismatchError{Method: method, Class: class, Want: want, Got: got, span: span}
}
func (e ArityMismatchError) Span() ast.Span { return e.span }
func (e ArityMismatchError) Message() string {
	return fmt.Sprintf(`Method "%s" of "%s" only accepts %d argument(s), got %d.`, e.Method, e.Class, e.Want, e.Got)
}

type InvalidCastError struct {
	Reason string
	span   ast.Span
}

func NewInvalidCastError(reason string, span ast.Span) InvalidCastError {
	return InvalidCastError{Reason: reason, span: span}
}
func (e InvalidCastError) Span() ast.Span  { return e.span }
func (e InvalidCastError) Message() string { return e.Reason }

type ComplementRequiresIntError struct{ span ast.Span }

func NewComplementRequiresIntError(span ast.Span) ComplementRequiresIntError {
	return ComplementRequiresIntError{span}
}
func (e ComplementRequiresIntError) Span() ast.Span { return e.span }
func (e ComplementRequiresIntError) Message() string {
	return "Complement operator works only for Int."
}

type NotRequiresBoolError struct{ span ast.Span }

func NewNotRequiresBoolError(span ast.Span) NotRequiresBoolError {
	return NotRequiresBoolError{span}
}
func (e NotRequiresBoolError) Span() ast.Span  { return e.span }
func (e NotRequiresBoolError) Message() string { return "Not operator works only for Bool." }

type UndefinedMethodError struct {
	Method, Class string
	span          ast.Span
}

func NewUndefinedMethodError(method, class string, span ast.Span) UndefinedMethodError {
	return UndefinedMethodError{Method: method, Class: class, span: span}
}
func (e UndefinedMethodError) Span() ast.Span { return e.span }
func (e UndefinedMethodError) Message() string {
	return fmt.Sprintf(`Method "%s" is not defined in "%s".`, e.Method, e.Class)
}

// ErrorList accumulates diagnostics across a pass. Passes never halt on
// error: every failure site appends here and substitutes ErrorType so
// downstream visits stay productive.
type ErrorList struct {
	errors []Error
}

func (l *ErrorList) Add(e Error) { l.errors = append(l.errors, e) }

func (l *ErrorList) Errors() []Error { return l.errors }

func (l *ErrorList) Len() int { return len(l.errors) }
