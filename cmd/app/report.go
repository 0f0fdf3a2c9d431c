package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"UsageCast/internal/domain/models"
)

const tsLayout = "2006-01-02 15:04:05"

func writeReport(w io.Writer, r *models.RunReport, tail int) error {
	res := r.Result
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	history := res.History.Tail(tail)
	fmt.Fprintf(tw, "History (last %d of %d points)\n", len(history), len(res.History))
	fmt.Fprintln(tw, "TIMESTAMP\tVALUE")
	for _, o := range history {
		fmt.Fprintf(tw, "%s\t%.4f\n", o.Timestamp.Format(tsLayout), o.Value)
	}

	fmt.Fprintf(tw, "\nForecast (%d steps, interval %s, backend %s, order (%d,%d,%d))\n",
		len(res.Forecast), res.Interval, res.Backend,
		res.Config.Order.P, res.Config.Order.D, res.Config.Order.Q)
	fmt.Fprintln(tw, "TIMESTAMP\tPREDICTED\tERROR\tACTUAL")
	for i, p := range res.Forecast {
		actual := "-"
		if i < len(r.Actual) {
			actual = fmt.Sprintf("%.4f", r.Actual[i].Value)
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%s\n", p.Timestamp.Format(tsLayout), p.Predicted, p.ErrorEstimate, actual)
	}

	if ev := r.Evaluation; ev != nil {
		fmt.Fprintf(tw, "\nEvaluation (%d points, baseline repeats %.4f)\n", ev.Points, ev.BaselineValue)
		fmt.Fprintln(tw, "METRIC\tBASELINE\tMODEL")
		fmt.Fprintf(tw, "MAE\t%.4f\t%.4f\n", ev.Baseline.MAE, ev.Model.MAE)
		fmt.Fprintf(tw, "RMSE\t%.4f\t%.4f\n", ev.Baseline.RMSE, ev.Model.RMSE)
		fmt.Fprintf(tw, "MAPE (%%)\t%.4f\t%.4f\n", ev.Baseline.MAPE, ev.Model.MAPE)
	}

	return tw.Flush()
}
