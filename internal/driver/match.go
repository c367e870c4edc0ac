package driver

import (
	"context"
	"fmt"
	"strings"

	"exprnorm/internal/expr"
)

// MatchResult is the outcome of Match.
type MatchResult struct {
	File     *FileResult
	Expected *expr.Expr // normalized
	Observed *expr.Expr // normalized
	Equal    bool
}

// Match normalizes two expressions over the same parameters and compares them
// structurally, the way a consumer that understands only MemberAccess/Index
// nodes would. params are declarations such as "x: Widget".
//
// The inputs are joined into one virtual file:
//
//	param x: Widget;
//	<expected>;
//	<observed>;
//
// Diagnostics land in File.Bag and leave Equal false.
func (s *Session) Match(ctx context.Context, params []string, expected, observed string) (*MatchResult, error) {
	var sb strings.Builder
	for _, p := range params {
		fmt.Fprintf(&sb, "param %s;\n", p)
	}
	fmt.Fprintf(&sb, "%s;\n%s;\n", expected, observed)

	res, err := s.NormalizeSource(ctx, "<match>", []byte(sb.String()))
	if err != nil {
		return nil, err
	}
	m := &MatchResult{File: res}
	if res.HasErrors() {
		return m, nil
	}
	if len(res.Entries) != 2 {
		return m, fmt.Errorf("match: want exactly two expressions, got %d", len(res.Entries))
	}
	m.Expected, m.Observed = res.Entries[0].Output, res.Entries[1].Output
	m.Equal = expr.Equal(m.Expected, m.Observed)
	return m, nil
}
