// Package view shapes a normalized comparison into the JSON the dashboard
// charts consume. Everything here is defensive by contract: any nil or
// partial input degrades to "N/A" cards and omitted chart points, never to a
// fault.
package view

import (
	"fmt"
	"strings"

	"github.com/dbm-eval/benchboard/pkg/metrics"
	"github.com/dbm-eval/benchboard/pkg/models"
)

// Card is one metric card: a formatted per-engine value or "N/A".
type Card struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	SciDB     string `json:"scidb"`
	MapReduce string `json:"mapreduce"`
}

// Bar is one grouped bar-chart entry. Nil sides are omitted points, not
// zero-height bars.
type Bar struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	Unit      string   `json:"unit,omitempty"`
	SciDB     *float64 `json:"scidb"`
	MapReduce *float64 `json:"mapreduce"`
}

// Dashboard is the full render model for one comparison run.
type Dashboard struct {
	HasData      bool                      `json:"has_data"`
	Cards        []Card                    `json:"cards,omitempty"`
	Charts       []Bar                     `json:"charts,omitempty"`
	Rows         []metrics.Row             `json:"rows,omitempty"`
	Summary      *models.ComparisonSummary `json:"summary,omitempty"`
	EngineErrors map[string]string         `json:"engine_errors,omitempty"`
}

// Unavailable is the placeholder shown where an engine reported nothing
// usable.
const Unavailable = "N/A"

// BuildDashboard renders a processor response. A nil pair (or one with
// neither engine present) yields the upload-form-only state: HasData false,
// no cards, no charts.
func BuildDashboard(pair *metrics.EnginePair) Dashboard {
	if pair == nil || (pair.SciDB == nil && pair.MapReduce == nil) {
		return Dashboard{}
	}

	rows := metrics.BuildRows(pair.SciDB, pair.MapReduce)

	d := Dashboard{
		HasData: true,
		Rows:    rows,
		Cards:   make([]Card, 0, len(rows)),
		Charts:  make([]Bar, 0, len(rows)),
	}

	for _, row := range rows {
		d.Cards = append(d.Cards, Card{
			Key:       row.Key,
			Label:     cardLabel(row),
			SciDB:     formatValue(row.SciDB, row.Unit, row.SciDBSampling),
			MapReduce: formatValue(row.MapReduce, row.Unit, row.MapReduceSampling),
		})
		d.Charts = append(d.Charts, Bar{
			Key:       row.Key,
			Title:     cardLabel(row),
			Unit:      row.Unit,
			SciDB:     metrics.ToChartValue(row.SciDB),
			MapReduce: metrics.ToChartValue(row.MapReduce),
		})
	}

	if summary, err := metrics.BuildSummary(pair.SciDB, pair.MapReduce); err == nil {
		d.Summary = summary
	}

	d.EngineErrors = engineErrors(pair)
	return d
}

func engineErrors(pair *metrics.EnginePair) map[string]string {
	errs := map[string]string{}
	if pair.SciDB.Failed() {
		errs[string(models.EngineSciDB)] = pair.SciDB.Err
	}
	if pair.MapReduce.Failed() {
		errs[string(models.EngineMapReduce)] = pair.MapReduce.Err
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func cardLabel(row metrics.Row) string {
	if row.Unit == "" {
		return row.Label
	}
	return fmt.Sprintf("%s (%s)", row.Label, row.Unit)
}

// formatValue renders one side of a card. The sampling tag is kept visible so
// a snapshot reading is never mistaken for an averaged one.
func formatValue(v metrics.Value, unit string, sampling metrics.Sampling) string {
	f, ok := v.Float64()
	if !ok {
		return Unavailable
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
	if unit != "" {
		s += " " + unit
	}
	if sampling != metrics.SamplingUnknown {
		s += fmt.Sprintf(" (%s)", sampling)
	}
	return s
}
