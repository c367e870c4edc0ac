package meta

import (
	"fmt"
	"io"
	"strings"
)

// Describe writes a readable listing of every declared type and its members.
// Accessors synthesized for properties and indexers are folded into their
// owner's line; hand-written methods, special or not, are listed separately.
func Describe(w io.Writer, t *Table) error {
	var sb strings.Builder
	for _, decl := range t.DeclaredTypes() {
		props, ixs, methods := t.Members(decl)
		fmt.Fprintf(&sb, "type %s\n", t.types.String(decl))

		synthesized := make(map[*Method]struct{}, 2*(len(props)+len(ixs)))
		for _, p := range props {
			fmt.Fprintf(&sb, "  property %s: %s %s%s\n", p.name, t.types.String(p.value),
				accessorList(p.get, p.set), visibility(p.nonPublic))
			markSynthesized(synthesized, p.get, p.set)
		}
		for _, ix := range ixs {
			fmt.Fprintf(&sb, "  indexer %s%s: %s %s%s\n", ix.name, t.signature(ix.params), t.types.String(ix.value),
				accessorList(ix.get, ix.set), visibility(ix.nonPublic))
			markSynthesized(synthesized, ix.get, ix.set)
		}
		for _, m := range methods {
			if _, ok := synthesized[m]; ok {
				continue
			}
			var mods []string
			if m.IsStatic() {
				mods = append(mods, "static")
			}
			if m.IsSpecialName() {
				mods = append(mods, "special")
			}
			if !m.IsPublic() {
				mods = append(mods, "non-public")
			}
			fmt.Fprintf(&sb, "  method %s%s: %s", m.name, t.signature(m.params), t.types.String(m.ret))
			if len(mods) > 0 {
				sb.WriteString(" [" + strings.Join(mods, ", ") + "]")
			}
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func accessorList(get, set *Method) string {
	switch {
	case get != nil && set != nil:
		return "{ get; set; }"
	case get != nil:
		return "{ get; }"
	default:
		return "{ set; }"
	}
}

func visibility(nonPublic bool) string {
	if nonPublic {
		return " non-public"
	}
	return ""
}

func markSynthesized(set map[*Method]struct{}, ms ...*Method) {
	for _, m := range ms {
		if m != nil {
			set[m] = struct{}{}
		}
	}
}
