package transform

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
)

// sortExecutor orders rows by one column. Null and absent cells sort to
// the end regardless of direction; when both cells parse as numbers the
// comparison is numeric, otherwise it is a locale string compare.
type sortExecutor struct{}

func (e *sortExecutor) Kind() dag.Kind { return dag.KindSort }

func (e *sortExecutor) Apply(_ context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error) {
	column := cfg.String("column")
	if column == "" {
		return in, nil
	}
	desc := cfg.String("direction") == "desc"

	rows := make([]frame.Row, len(in.Rows))
	copy(rows, in.Rows)

	coll := collate.New(language.Und, collate.Loose)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][column], rows[j][column]
		if a == nil || b == nil {
			// Nulls always lose, whatever the direction.
			return a != nil && b == nil
		}

		an, aok := frame.ParseNumber(a)
		bn, bok := frame.ParseNumber(b)
		var less bool
		if aok && bok {
			if an == bn {
				return false
			}
			less = an < bn
		} else {
			c := coll.CompareString(frame.ToString(a), frame.ToString(b))
			if c == 0 {
				return false
			}
			less = c < 0
		}
		if desc {
			return !less
		}
		return less
	})

	return &frame.DataFrame{Columns: in.Columns, Rows: rows}, nil
}
