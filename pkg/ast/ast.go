package ast

import "github.com/aretw0/nutshell/pkg/domain"

// Table is one rule-table section: an ordered list of statements.
// Order matters: a symmetries directive applies to the transitions after it.
type Table struct {
	Name       string
	Statements []Statement
}

// Statement is a Directive, a VarDecl or a Transition.
type Statement interface {
	statement()
	Pos() domain.Span
}

// Directive is a `name: value` line such as `neighborhood: Moore`.
// Symmetries directives carry their parsed expression in Symmetry.
type Directive struct {
	Name     string
	Value    string
	Symmetry *SymmetryExpr
	Span     domain.Span
}

// VarDecl binds a name to a state-list expression.
type VarDecl struct {
	Name  string
	Value Expr
	Span  domain.Span
}

// Transition is one abstract transition.
type Transition struct {
	Initial     Expr
	Napkin      []Term
	Result      Expr
	Auxiliaries []Auxiliary
	Span        domain.Span
}

// Term fills one or more napkin positions. An empty Dir means the position
// following the previous term. Dir..Through fills a clockwise compass range.
type Term struct {
	Dir     string
	Through string
	Value   Expr
	Span    domain.Span
}

// Auxiliary changes the cells at Targets when the transition fires. Group,
// when set, expands each target under that symmetry's transformations.
type Auxiliary struct {
	Targets []string
	Group   *SymmetryExpr
	Value   Expr
	Span    domain.Span
}

// SymmetryExpr is a symmetry declaration. With Op empty it is a named class
// or a primitive (Name with Args): none, rotate(n), reflect(a, b),
// permute(dirs...). With Op "compose" or "combine" it applies to Of.
type SymmetryExpr struct {
	Op   string
	Name string
	Args []string
	Of   []SymmetryExpr
	Span domain.Span
}

func (*Directive) statement()  {}
func (*VarDecl) statement()    {}
func (*Transition) statement() {}

func (d *Directive) Pos() domain.Span  { return d.Span }
func (v *VarDecl) Pos() domain.Span    { return v.Span }
func (t *Transition) Pos() domain.Span { return t.Span }

// Op is a state-list operator.
type Op string

const (
	OpRepeat   Op = "*"  // repeat n times
	OpRepeatTo Op = "**" // repeat cyclically to the length of the right operand
	OpSubtract Op = "-"  // remove every state of the right operand
	OpRotate   Op = ">>" // cyclic shift right
)

// Expr is a value expression. The set of implementations is closed.
type Expr interface {
	expr()
	Pos() domain.Span
}

// Int is a state or count literal, kept raw so bad input can be reported verbatim.
type Int struct {
	Raw  string
	Span domain.Span
}

// Name references a declared variable, or the built-ins any and live.
type Name struct {
	Ident string
	Span  domain.Span
}

// Set is an inline state list. Ellipsis marks a trailing `...`.
type Set struct {
	Elems    []Expr
	Ellipsis bool
	Span     domain.Span
}

// Range is `lo..hi`, inclusive.
type Range struct {
	Lo, Hi Expr
	Span   domain.Span
}

// Binary applies Op to two operands.
type Binary struct {
	Op          Op
	Left, Right Expr
	Span        domain.Span
}

// Complement is every state (or every live state) not in Operand.
type Complement struct {
	Operand Expr
	Live    bool
	Span    domain.Span
}

// Ref binds to the value of another position. Dir is a compass label, a
// 1-based (or negative) position, or C / 0 for the initial state.
type Ref struct {
	Dir  string
	Span domain.Span
}

// Map looks up the referenced position's index in To.
type Map struct {
	Ref  Ref
	To   Expr
	Span domain.Span
}

// RefOp transforms the referenced position's variable by Op and Arg.
type RefOp struct {
	Ref  Ref
	Op   Op
	Arg  Expr
	Span domain.Span
}

func (*Int) expr()        {}
func (*Name) expr()       {}
func (*Set) expr()        {}
func (*Range) expr()      {}
func (*Binary) expr()     {}
func (*Complement) expr() {}
func (*Ref) expr()        {}
func (*Map) expr()        {}
func (*RefOp) expr()      {}

func (e *Int) Pos() domain.Span        { return e.Span }
func (e *Name) Pos() domain.Span       { return e.Span }
func (e *Set) Pos() domain.Span        { return e.Span }
func (e *Range) Pos() domain.Span      { return e.Span }
func (e *Binary) Pos() domain.Span     { return e.Span }
func (e *Complement) Pos() domain.Span { return e.Span }
func (e *Ref) Pos() domain.Span        { return e.Span }
func (e *Map) Pos() domain.Span        { return e.Span }
func (e *RefOp) Pos() domain.Span      { return e.Span }
