// Package report writes analysis and sweep results to disk for downstream
// charting.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-pricer/internal/app"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// WriteJSON dumps the full analysis to analysis.json in outdir.
func WriteJSON(res *app.Analysis, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "analysis.json"), b, 0644)
}

// WriteSweepCSV writes one sensitivity sweep as sweep_<param>.csv in outdir,
// one row per swept point: x, price, then the five Greeks in display order.
func WriteSweepCSV(sw *pricing.SensitivitySweep, param pricing.SweepParam, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, fmt.Sprintf("sweep_%s.csv", param)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := append([]string{string(param), "price"}, pricing.GreekNames...)
	if err := w.Write(headers); err != nil {
		return err
	}
	for i := range sw.X {
		row := make([]string, 0, len(headers))
		row = append(row, formatF(sw.X[i]), formatF(sw.Price[i]))
		for _, name := range pricing.GreekNames {
			row = append(row, formatF(sw.Greeks[name][i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func formatF(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
