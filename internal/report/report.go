// Package report renders plain-text durability reports for a single ride,
// suitable for piping or saving alongside the interactive TUI.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"strava-durability/internal/analysis"
	"strava-durability/internal/service"
)

// ErrUnknownProfile is returned when the requested report profile is not
// registered
var ErrUnknownProfile = errors.New("unknown report profile")

// renderFn builds one report layout from a ride detail
type renderFn func(*service.RideDetail) string

// profiles maps config-selectable profile keys to report layouts
var profiles = map[string]renderFn{
	"summary":  renderSummary,
	"detailed": renderDetailed,
}

// Render produces the report for the given profile key
func Render(profile string, detail *service.RideDetail) (string, error) {
	fn, ok := profiles[profile]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
	}
	return fn(detail), nil
}

// Profiles returns the registered profile keys, sorted
func Profiles() []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderSummary(d *service.RideDetail) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — %s\n", d.Ride.Name, d.Ride.StartDateLocal.Format("Mon Jan 2 2006"))
	fmt.Fprintf(&b, "%.1f km in %s\n\n", d.Ride.Distance/1000, formatDuration(d.Ride.MovingTime))

	if d.ComputeError != "" {
		fmt.Fprintf(&b, "Not analyzed: %s\n", d.ComputeError)
		return b.String()
	}
	m := d.Analysis
	if m == nil {
		b.WriteString("Not analyzed yet. Run a sync first.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Durability score  %s\n", formatValue(m.DurabilityScore, "%.0f"))
	fmt.Fprintf(&b, "Pw:HR drift       %s\n", withBaseline(m.PwHrDrift, baselineField(d.Baseline, func(bl *analysis.Baseline) *float64 { return bl.PwHrDrift }), "%.1f%%"))
	fmt.Fprintf(&b, "Power fade        %s\n", formatValue(m.PowerFade, "%.1f%%"))
	fmt.Fprintf(&b, "EF decline        %s\n", formatValue(m.EFDecline, "%.1f%%"))
	fmt.Fprintf(&b, "Best 5m diff      %s\n", withBaseline(m.Rolling5Diff, baselineField(d.Baseline, func(bl *analysis.Baseline) *float64 { return bl.Rolling5Diff }), "%+.0f W"))

	return b.String()
}

func renderDetailed(d *service.RideDetail) string {
	var b strings.Builder
	b.WriteString(renderSummary(d))

	m := d.Analysis
	if m == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "Power @150bpm Δ   %s\n", formatValue(m.Power150Delta, "%+.0f W"))
	fmt.Fprintf(&b, "Cadence drop      %s\n", formatValue(m.CadenceDrop, "%+.1f rpm"))
	fmt.Fprintf(&b, "HR creep          %s\n", formatValue(m.HRCreep, "%+.1f bpm"))
	fmt.Fprintf(&b, "Zone time early   %s\n", formatValue(m.Z2Early, "%.0f%%"))
	fmt.Fprintf(&b, "Zone time late    %s\n", formatValue(m.Z2Late, "%.0f%%"))
	fmt.Fprintf(&b, "W/beat trend      %s per hour\n", formatValue(m.WattsPerBeat.PercentPerHour, "%+.1f%%"))

	// Quartile table
	b.WriteString("\nQuartiles          avg W     NP      avg HR  EF\n")
	for i, q := range m.Quartiles {
		fmt.Fprintf(&b, "  Q%d               %-9s %-7s %-7s %s\n",
			i+1,
			formatValue(q.AvgPower, "%.0f"),
			formatValue(q.NormalizedPower, "%.0f"),
			formatValue(q.AvgHeartrate, "%.0f"),
			formatValue(q.EfficiencyFactor, "%.2f"),
		)
	}

	// Quartile power chart
	if series := quartilePowerSeries(m.Quartiles); len(series) == 4 {
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(series,
			asciigraph.Height(6),
			asciigraph.Caption("avg power by quartile"),
		))
		b.WriteString("\n")
	}

	// Fatigue curve
	if len(m.FatigueCurve) > 0 {
		b.WriteString("\nFatigue resistance (best W after elapsed time)\n")
		b.WriteString("  elapsed   5m      10m     20m     60m\n")
		for _, entry := range m.FatigueCurve {
			fmt.Fprintf(&b, "  %-9s %-7s %-7s %-7s %s\n",
				formatDuration(entry.OffsetSeconds),
				formatBest(entry.BestPower, 300),
				formatBest(entry.BestPower, 600),
				formatBest(entry.BestPower, 1200),
				formatBest(entry.BestPower, 3600),
			)
		}
	}

	return b.String()
}

// quartilePowerSeries extracts the four average-power values when all are
// present
func quartilePowerSeries(quartiles []analysis.QuartileSummary) []float64 {
	var series []float64
	for _, q := range quartiles {
		if q.AvgPower == nil {
			return nil
		}
		series = append(series, *q.AvgPower)
	}
	return series
}

// formatValue formats a nullable metric, with a dash for absent values
func formatValue(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

// withBaseline appends the baseline average in parentheses when one exists
func withBaseline(v, baseline *float64, format string) string {
	s := formatValue(v, format)
	if v != nil && baseline != nil {
		s += fmt.Sprintf("  (baseline %s)", fmt.Sprintf(format, *baseline))
	}
	return s
}

// baselineField safely projects one field out of a possibly-nil baseline
func baselineField(b *analysis.Baseline, f func(*analysis.Baseline) *float64) *float64 {
	if b == nil {
		return nil
	}
	return f(b)
}

// formatBest formats one duration cell of a fatigue entry
func formatBest(best map[int]float64, duration int) string {
	if v, ok := best[duration]; ok {
		return fmt.Sprintf("%.0f", v)
	}
	return "-"
}

// formatDuration formats seconds as "H:MM:SS" or "M:SS"
func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
