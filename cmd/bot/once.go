package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/scheduler"
)

func newOnceCmd(opts *rootOptions) *cobra.Command {
	var alert bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Evaluate a single run and print the result as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var n notifier.Notifier = notifier.NewLogNotifier(a.logger)
			if alert {
				n = a.notifier
			}
			runner := scheduler.NewRunner(a.collector, n, metrics.New(), a.logger)
			result, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&alert, "alert", false, "deliver a BUY or SELL alert like a scheduled run would")
	return cmd
}

type resultView struct {
	Symbol      string              `json:"symbol"`
	Signal      string              `json:"signal"`
	Category    model.Category      `json:"category"`
	Qualifier   model.Qualifier     `json:"qualifier,omitempty"`
	Price       float64             `json:"price"`
	Fired       []string            `json:"fired"`
	Indicators  map[string]*float64 `json:"indicators"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
}

// writeResult prints the result; indicators without a value print as null.
func writeResult(w io.Writer, result *model.SignalResult) error {
	view := resultView{
		Symbol:      result.Symbol,
		Signal:      result.Label(),
		Category:    result.Category,
		Qualifier:   result.Qualifier,
		Price:       result.LatestPrice,
		Fired:       result.Fired,
		Indicators:  make(map[string]*float64, len(result.Snapshot)),
		EvaluatedAt: result.EvaluatedAt,
	}
	if view.Fired == nil {
		view.Fired = []string{}
	}
	for key, r := range result.Snapshot {
		if r.Valid {
			v := r.Value
			view.Indicators[key] = &v
		} else {
			view.Indicators[key] = nil
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
