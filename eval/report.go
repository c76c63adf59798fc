// report.go - Tabellarischer Bericht einer Evaluation
package eval

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
)

// Report writes a per-sentence score table followed by the aggregate
// line to w.
func (r *Result) Report(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"SOURCE", "RESULT", "REFERENCE", "SCORE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for _, s := range r.Scores {
		if s.Err != nil {
			table.Append([]string{trim(s.Source), "ERROR: " + s.Err.Error(), trim(s.Reference), "-"})
			continue
		}
		table.Append([]string{trim(s.Source), trim(s.Result), trim(s.Reference), fmt.Sprintf("%.3f", s.Similarity)})
	}
	table.Render()

	fmt.Fprintf(w, "\n%d sentences, %d failed, mean similarity %.3f\n",
		len(r.Scores), r.Failed, r.MeanSimilarity)
}

func trim(s string) string {
	return runewidth.Truncate(s, 40, "…")
}
