//nolint:errcheck // Kind implies the Data payload type.
package expr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"exprnorm/internal/meta"
	"exprnorm/internal/types"
)

// Printer renders expressions. Format produces source-like text that the
// front-end parses back; Dump produces an indented node tree.
type Printer struct {
	interner *types.Interner
}

// NewPrinter creates a printer resolving type names through interner.
func NewPrinter(interner *types.Interner) *Printer {
	return &Printer{interner: interner}
}

// Format renders e as source text, e.g. `x[3] = "a"`.
func (p *Printer) Format(e *Expr) string {
	var sb strings.Builder
	p.format(&sb, e, precLambda)
	return sb.String()
}

// precedence levels for parenthesization; binary ops use 1..6.
const (
	precAssign = -2
	precCond   = -1
	precLambda = -3
	precUnary  = 7
	precPostfx = 8
)

func exprPrec(e *Expr) int {
	switch e.Kind {
	case ExprAssign:
		return precAssign
	case ExprConditional:
		return precCond
	case ExprLambda:
		return precLambda
	case ExprBinary:
		return e.Data.(BinaryData).Op.Precedence()
	case ExprUnary:
		return precUnary
	default:
		return precPostfx
	}
}

func (p *Printer) format(sb *strings.Builder, e *Expr, minPrec int) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	if exprPrec(e) < minPrec {
		sb.WriteByte('(')
		p.format(sb, e, precLambda)
		sb.WriteByte(')')
		return
	}

	switch e.Kind {
	case ExprConstant:
		sb.WriteString(formatConst(e.Data.(ConstantData)))
	case ExprParameter:
		sb.WriteString(e.Data.(ParameterData).Name)
	case ExprUnary:
		d := e.Data.(UnaryData)
		sb.WriteString(d.Op.String())
		p.format(sb, d.Operand, precUnary)
	case ExprBinary:
		d := e.Data.(BinaryData)
		prec := d.Op.Precedence()
		p.format(sb, d.Left, prec)
		sb.WriteString(" " + d.Op.String() + " ")
		p.format(sb, d.Right, prec+1)
	case ExprConditional:
		d := e.Data.(ConditionalData)
		p.format(sb, d.Cond, 1)
		sb.WriteString(" ? ")
		p.format(sb, d.Then, precCond)
		sb.WriteString(" : ")
		p.format(sb, d.Else, precCond)
	case ExprLambda:
		d := e.Data.(LambdaData)
		sb.WriteByte('(')
		for i, prm := range d.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(prm.Data.(ParameterData).Name)
			sb.WriteString(": ")
			sb.WriteString(p.typeStr(prm.Type))
		}
		sb.WriteString(") => ")
		p.format(sb, d.Body, precLambda)
	case ExprNewArray:
		d := e.Data.(NewArrayData)
		sb.WriteString("new " + p.typeStr(d.Elem) + "[]{")
		p.list(sb, d.Elements)
		sb.WriteByte('}')
	case ExprCall:
		d := e.Data.(CallData)
		p.receiver(sb, d.Instance, d.Method.DeclaringType())
		sb.WriteString(d.Method.Name())
		sb.WriteByte('(')
		p.list(sb, d.Args)
		sb.WriteByte(')')
	case ExprMemberAccess:
		d := e.Data.(MemberAccessData)
		p.receiver(sb, d.Instance, d.Property.DeclaringType())
		sb.WriteString(d.Property.Name())
	case ExprIndex:
		d := e.Data.(IndexData)
		p.format(sb, d.Instance, precPostfx)
		sb.WriteByte('[')
		p.list(sb, d.Args)
		sb.WriteByte(']')
	case ExprAssign:
		d := e.Data.(AssignData)
		p.format(sb, d.Target, precPostfx)
		sb.WriteString(" = ")
		p.format(sb, d.Value, precAssign)
	default:
		fmt.Fprintf(sb, "<%v>", e.Kind)
	}
}

func (p *Printer) receiver(sb *strings.Builder, instance *Expr, decl types.TypeID) {
	if instance == nil {
		sb.WriteString(p.typeStr(decl))
	} else {
		p.format(sb, instance, precPostfx)
	}
	sb.WriteByte('.')
}

func (p *Printer) list(sb *strings.Builder, xs []*Expr) {
	for i, x := range xs {
		if i > 0 {
			sb.WriteString(", ")
		}
		p.format(sb, x, precCond)
	}
}

func formatConst(c ConstantData) string {
	switch c.Kind {
	case ConstInt:
		return strconv.FormatInt(c.IntValue, 10)
	case ConstFloat:
		s := strconv.FormatFloat(c.FloatValue, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case ConstBool:
		return strconv.FormatBool(c.BoolValue)
	case ConstString:
		return strconv.Quote(c.StringValue)
	default:
		return "null"
	}
}

func (p *Printer) typeStr(id types.TypeID) string {
	if p.interner == nil {
		return fmt.Sprintf("type#%d", id)
	}
	return p.interner.String(id)
}

// Dump writes an indented tree of e, one node per line.
func (p *Printer) Dump(w io.Writer, e *Expr) error {
	var sb strings.Builder
	p.dump(&sb, e, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (p *Printer) dump(sb *strings.Builder, e *Expr, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if e == nil {
		sb.WriteString("<nil>\n")
		return
	}
	sb.WriteString(e.Kind.String())
	switch e.Kind {
	case ExprConstant:
		sb.WriteString(" " + formatConst(e.Data.(ConstantData)))
	case ExprParameter:
		sb.WriteString(" " + e.Data.(ParameterData).Name)
	case ExprUnary:
		sb.WriteString(" " + e.Data.(UnaryData).Op.String())
	case ExprBinary:
		sb.WriteString(" " + e.Data.(BinaryData).Op.String())
	case ExprCall:
		d := e.Data.(CallData)
		sb.WriteString(" " + p.methodStr(d.Method))
		if d.Instance == nil {
			sb.WriteString(" static")
		}
	case ExprMemberAccess:
		prop := e.Data.(MemberAccessData).Property
		sb.WriteString(" " + p.typeStr(prop.DeclaringType()) + "." + prop.Name())
	case ExprIndex:
		ix := e.Data.(IndexData).Indexer
		sb.WriteString(" " + p.typeStr(ix.DeclaringType()) + "." + ix.Name() + p.params(ix.IndexParameterTypes()))
	}
	sb.WriteString(" : " + p.typeStr(e.Type) + "\n")
	for _, c := range Children(e) {
		p.dump(sb, c, depth+1)
	}
}

func (p *Printer) methodStr(m *meta.Method) string {
	return p.typeStr(m.DeclaringType()) + "." + m.Name() + p.params(m.ParameterTypes())
}

func (p *Printer) params(ps []types.TypeID) string {
	parts := make([]string, len(ps))
	for i, t := range ps {
		parts[i] = p.typeStr(t)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
