package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/frame"
	"github.com/vk/flowgrid/internal/proposal"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	// The raw dataset the UI would have loaded from a CSV upload.
	dataset := &frame.DataFrame{
		Columns: []frame.Column{
			{Name: "country", Type: frame.TypeString},
			{Name: "pop", Type: frame.TypeNumber},
		},
		Rows: []frame.Row{
			{"country": "Argentina", "pop": float64(45)},
			{"country": "Brazil", "pop": float64(214)},
			{"country": "Argentina", "pop": float64(2)},
			{"country": "Chile", "pop": float64(19)},
		},
	}

	// A pipeline as it would arrive from the AI collaborator: implicit
	// chaining, node i feeds node i+1.
	pipe := proposal.Pipeline{
		Nodes: []proposal.Step{
			{Type: dag.KindSource},
			{Type: dag.KindFilter, Config: dag.Config{
				"column": "pop", "operator": "gt", "value": "10",
			}},
			{Type: dag.KindGroupBy, Config: dag.Config{
				"groupByColumn": "country", "aggregateColumn": "pop", "aggregation": "sum",
			}},
			{Type: dag.KindSort, Config: dag.Config{
				"column": "sum_pop", "direction": "desc",
			}},
		},
		Explanation: "keep countries above 10, total population per country, largest first",
	}

	nodes, edges := proposal.Linearize(pipe)

	eng := engine.New()
	res, err := eng.Run(ctx, nodes, edges, map[string]*frame.DataFrame{
		nodes[0].ID: dataset,
	})
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	final := res.Outputs[nodes[len(nodes)-1].ID]
	fmt.Println("final frame:")
	printJSON(final)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println("marshal error:", err)
		return
	}
	fmt.Println(string(b))
}
