package compiler

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/nutshell/internal/dto"
	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
)

// Parser decodes the YAML interchange form of a rule-table file into syntax
// trees. The grammar itself lives in the external parser; this is only the
// hand-over format.
//
// Expressions are written as:
//
//	1                      state literal
//	live                   variable
//	[1, 2, ...]            state set, optionally ending in an ellipsis
//	{range: [1, 3]}        inclusive range
//	{repeat: [a, 2]}       also repeat_to, minus, rotate
//	{not: a}               also not_live
//	{ref: N}               binding; compass label, 1-based position or C
//	{map: {ref: N, to: [0, 1, ...]}}
//	{refop: {ref: N, op: ">>", arg: 1}}
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses path.
func (p *Parser) ParseFile(path string) ([]*ast.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	return p.Parse(data)
}

// Parse decodes every section of data.
func (p *Parser) Parse(data []byte) ([]*ast.Table, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}
	var raw map[string]any
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}
	var file dto.File
	if err := decode(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to decode rule file: %w", err)
	}

	positions := statementPositions(&root)
	tables := make([]*ast.Table, 0, len(file.Sections))
	for i, sec := range file.Sections {
		t := &ast.Table{Name: sec.Name}
		for j, rawStmt := range sec.Statements {
			span := domain.Span{}
			if i < len(positions) && j < len(positions[i]) {
				span = positions[i][j]
			}
			st, err := p.statement(rawStmt, span)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sec.Name, err)
			}
			t.Statements = append(t.Statements, st)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func (p *Parser) statement(raw map[string]any, span domain.Span) (ast.Statement, error) {
	var st dto.Statement
	if err := decode(raw, &st); err != nil {
		return nil, domain.Wrap(domain.KindSyntaxInconsistency, span, err)
	}
	if st.Span != nil {
		span = domain.Span{Line: st.Span.Line, Start: st.Span.Start, End: st.Span.End}
	}

	switch {
	case st.Directive != "":
		d := &ast.Directive{Name: st.Directive, Value: scalar(st.Value), Span: span}
		if st.Symmetry != nil {
			d.Symmetry = symmetryExpr(*st.Symmetry, span)
		}
		return d, nil

	case st.Var != "":
		value, err := p.expr(st.Value, span)
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Name: st.Var, Value: value, Span: span}, nil

	case st.Transition != nil:
		return p.transition(st.Transition, span)
	}
	return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "statement is neither a directive, a variable nor a transition")
}

func (p *Parser) transition(tr *dto.Transition, span domain.Span) (*ast.Transition, error) {
	out := &ast.Transition{Span: span}
	var err error
	if out.Initial, err = p.expr(tr.Initial, span); err != nil {
		return nil, err
	}
	if out.Result, err = p.expr(tr.Result, span); err != nil {
		return nil, err
	}
	for _, term := range tr.Napkin {
		value, err := p.expr(term.Value, span)
		if err != nil {
			return nil, err
		}
		out.Napkin = append(out.Napkin, ast.Term{Dir: term.Dir, Through: term.Through, Value: value, Span: span})
	}
	for _, aux := range tr.Aux {
		value, err := p.expr(aux.Value, span)
		if err != nil {
			return nil, err
		}
		a := ast.Auxiliary{Targets: aux.Targets, Value: value, Span: span}
		if aux.Group != nil {
			a.Group = symmetryExpr(*aux.Group, span)
		}
		out.Auxiliaries = append(out.Auxiliaries, a)
	}
	return out, nil
}

func symmetryExpr(s dto.Symmetry, span domain.Span) *ast.SymmetryExpr {
	out := &ast.SymmetryExpr{Op: s.Op, Name: s.Name, Args: s.Args, Span: span}
	for _, of := range s.Of {
		out.Of = append(out.Of, *symmetryExpr(of, span))
	}
	return out
}

// scalar renders a directive value. Lists, as in an explicit neighborhood,
// are joined with commas.
func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

func (p *Parser) expr(v any, span domain.Span) (ast.Expr, error) {
	switch v := v.(type) {
	case nil:
		return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "missing value")
	case int:
		return &ast.Int{Raw: strconv.Itoa(v), Span: span}, nil
	case float64:
		return &ast.Int{Raw: strconv.FormatFloat(v, 'f', -1, 64), Span: span}, nil
	case string:
		s := strings.TrimSpace(v)
		if _, err := strconv.Atoi(s); err == nil {
			return &ast.Int{Raw: s, Span: span}, nil
		}
		return &ast.Name{Ident: s, Span: span}, nil
	case []any:
		set := &ast.Set{Span: span}
		for i, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) == "..." {
				if i != len(v)-1 {
					return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "an ellipsis must end the set")
				}
				set.Ellipsis = true
				continue
			}
			el, err := p.expr(e, span)
			if err != nil {
				return nil, err
			}
			set.Elems = append(set.Elems, el)
		}
		return set, nil
	case map[string]any:
		if len(v) != 1 {
			return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "an expression map needs exactly one key, got %d", len(v))
		}
		var key string
		for k := range v {
			key = k
		}
		return p.operator(key, v[key], span)
	}
	return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "unexpected %T in expression", v)
}

var binaryOps = map[string]ast.Op{
	"repeat":    ast.OpRepeat,
	"repeat_to": ast.OpRepeatTo,
	"minus":     ast.OpSubtract,
	"rotate":    ast.OpRotate,
}

func (p *Parser) operator(key string, arg any, span domain.Span) (ast.Expr, error) {
	if op, ok := binaryOps[key]; ok {
		left, right, err := p.pair(key, arg, span)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: op, Left: left, Right: right, Span: span}, nil
	}

	switch key {
	case "range":
		lo, hi, err := p.pair(key, arg, span)
		if err != nil {
			return nil, err
		}
		return &ast.Range{Lo: lo, Hi: hi, Span: span}, nil

	case "not", "not_live":
		operand, err := p.expr(arg, span)
		if err != nil {
			return nil, err
		}
		return &ast.Complement{Operand: operand, Live: key == "not_live", Span: span}, nil

	case "ref":
		return &ast.Ref{Dir: fmt.Sprint(arg), Span: span}, nil

	case "map":
		var m struct {
			Ref string `mapstructure:"ref"`
			To  any    `mapstructure:"to"`
		}
		if err := decode(arg, &m); err != nil {
			return nil, domain.Wrap(domain.KindSyntaxInconsistency, span, err)
		}
		to, err := p.expr(m.To, span)
		if err != nil {
			return nil, err
		}
		return &ast.Map{Ref: ast.Ref{Dir: m.Ref, Span: span}, To: to, Span: span}, nil

	case "refop":
		var m struct {
			Ref string `mapstructure:"ref"`
			Op  string `mapstructure:"op"`
			Arg any    `mapstructure:"arg"`
		}
		if err := decode(arg, &m); err != nil {
			return nil, domain.Wrap(domain.KindSyntaxInconsistency, span, err)
		}
		operand, err := p.expr(m.Arg, span)
		if err != nil {
			return nil, err
		}
		return &ast.RefOp{Ref: ast.Ref{Dir: m.Ref, Span: span}, Op: ast.Op(m.Op), Arg: operand, Span: span}, nil
	}
	return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "unknown operator %q", key)
}

func (p *Parser) pair(key string, arg any, span domain.Span) (ast.Expr, ast.Expr, error) {
	list, ok := arg.([]any)
	if !ok || len(list) != 2 {
		return nil, nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "%s takes two operands", key)
	}
	left, err := p.expr(list[0], span)
	if err != nil {
		return nil, nil, err
	}
	right, err := p.expr(list[1], span)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// statementPositions returns the line and column of every statement, per
// section, from the YAML node tree.
func statementPositions(root *yaml.Node) [][]domain.Span {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	sections := mappingValue(doc, "sections")
	if sections == nil {
		return nil
	}
	out := make([][]domain.Span, len(sections.Content))
	for i, sec := range sections.Content {
		stmts := mappingValue(sec, "statements")
		if stmts == nil {
			continue
		}
		for _, st := range stmts.Content {
			out[i] = append(out[i], domain.Span{Line: st.Line, Start: st.Column, End: st.Column})
		}
	}
	return out
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
