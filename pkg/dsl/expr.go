package dsl

import (
	"strconv"

	"github.com/aretw0/nutshell/pkg/ast"
)

// Int is a state literal.
func Int(n int) ast.Expr { return &ast.Int{Raw: strconv.Itoa(n)} }

// Name references a variable.
func Name(ident string) ast.Expr { return &ast.Name{Ident: ident} }

// Set is an inline state list.
func Set(elems ...ast.Expr) *ast.Set { return &ast.Set{Elems: elems} }

// States is an inline state list of literals.
func States(states ...int) *ast.Set {
	s := &ast.Set{}
	for _, n := range states {
		s.Elems = append(s.Elems, Int(n))
	}
	return s
}

// Fill is States ending in an ellipsis, for mapping targets.
func Fill(states ...int) *ast.Set {
	s := States(states...)
	s.Ellipsis = true
	return s
}

// Range is lo..hi.
func Range(lo, hi int) ast.Expr { return &ast.Range{Lo: Int(lo), Hi: Int(hi)} }

// Repeat is left * n.
func Repeat(left ast.Expr, n int) ast.Expr {
	return &ast.Binary{Op: ast.OpRepeat, Left: left, Right: Int(n)}
}

// RepeatTo is left ** right.
func RepeatTo(left, right ast.Expr) ast.Expr {
	return &ast.Binary{Op: ast.OpRepeatTo, Left: left, Right: right}
}

// Minus is left - right.
func Minus(left, right ast.Expr) ast.Expr {
	return &ast.Binary{Op: ast.OpSubtract, Left: left, Right: right}
}

// Rotate is left >> n.
func Rotate(left ast.Expr, n int) ast.Expr {
	return &ast.Binary{Op: ast.OpRotate, Left: left, Right: Int(n)}
}

// Not is every state outside operand.
func Not(operand ast.Expr) ast.Expr { return &ast.Complement{Operand: operand} }

// NotLive is every live state outside operand.
func NotLive(operand ast.Expr) ast.Expr { return &ast.Complement{Operand: operand, Live: true} }

// Ref binds to another position.
func Ref(dir string) ast.Expr { return &ast.Ref{Dir: dir} }

// Map looks up dir's index in to.
func Map(dir string, to ast.Expr) ast.Expr { return &ast.Map{Ref: ast.Ref{Dir: dir}, To: to} }

// RefOp transforms the variable at dir by op and arg.
func RefOp(dir string, op ast.Op, arg ast.Expr) ast.Expr {
	return &ast.RefOp{Ref: ast.Ref{Dir: dir}, Op: op, Arg: arg}
}
