package transform

import (
	"context"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/frame"
)

// groupByExecutor groups rows by the string-coerced key of one column and
// reduces a second column per group. Output is exactly two columns: the
// group key and the aggregate. Groups keep first-seen-key order.
type groupByExecutor struct{}

func (e *groupByExecutor) Kind() dag.Kind { return dag.KindGroupBy }

func (e *groupByExecutor) Apply(_ context.Context, in *frame.DataFrame, cfg dag.Config) (*frame.DataFrame, error) {
	groupCol := cfg.String("groupByColumn")
	aggCol := cfg.String("aggregateColumn")
	agg := cfg.String("aggregation")
	if groupCol == "" || agg == "" {
		return in, nil
	}
	if agg != "count" && aggCol == "" {
		return in, nil
	}

	type group struct {
		keyCell any
		rows    []frame.Row
	}
	var order []string
	groups := make(map[string]*group)
	for _, row := range in.Rows {
		key := frame.ToString(row[groupCol])
		g, ok := groups[key]
		if !ok {
			g = &group{keyCell: row[groupCol]}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, row)
	}

	outCol := "count"
	if agg != "count" {
		outCol = agg + "_" + aggCol
	}

	keyType := frame.TypeString
	if c, ok := in.Column(groupCol); ok {
		keyType = c.Type
	}

	out := &frame.DataFrame{
		Columns: []frame.Column{
			{Name: groupCol, Type: keyType},
			{Name: outCol, Type: frame.TypeNumber},
		},
		Rows: make([]frame.Row, 0, len(order)),
	}

	for _, key := range order {
		g := groups[key]
		keyCell := g.keyCell
		if keyCell == nil {
			keyCell = ""
		}
		out.Rows = append(out.Rows, frame.Row{
			groupCol: keyCell,
			outCol:   aggregate(agg, aggCol, g.rows),
		})
	}
	return out, nil
}

func aggregate(agg, aggCol string, rows []frame.Row) float64 {
	switch agg {
	case "count":
		return float64(len(rows))
	case "sum":
		// Non-numeric cells count as zero here. avg/min/max exclude them
		// instead; the asymmetry is the documented engine behavior and
		// existing pipelines depend on it.
		var total float64
		for _, row := range rows {
			n, ok := frame.ToNumber(row[aggCol])
			if !ok {
				n = 0
			}
			total += n
		}
		return total
	case "avg":
		var total float64
		var n int
		for _, row := range rows {
			if v, ok := frame.ParseNumber(row[aggCol]); ok {
				total += v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return total / float64(n)
	case "min", "max":
		var best float64
		found := false
		for _, row := range rows {
			v, ok := frame.ParseNumber(row[aggCol])
			if !ok {
				continue
			}
			if !found || (agg == "min" && v < best) || (agg == "max" && v > best) {
				best = v
				found = true
			}
		}
		if !found {
			return 0
		}
		return best
	default:
		return 0
	}
}
