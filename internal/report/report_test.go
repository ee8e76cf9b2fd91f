package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"strava-durability/internal/analysis"
	"strava-durability/internal/service"
	"strava-durability/internal/store"
)

func floatPtr(f float64) *float64 { return &f }

func testDetail() *service.RideDetail {
	return &service.RideDetail{
		Ride: store.Ride{
			ID:             1,
			Name:           "Long Ride",
			StartDateLocal: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
			Distance:       82000,
			MovingTime:     10800,
		},
		Analysis: &analysis.DurabilityMetrics{
			PwHrDrift:       floatPtr(4.2),
			PowerFade:       floatPtr(6.5),
			EFDecline:       floatPtr(3.1),
			Rolling5Diff:    floatPtr(-18),
			Power150Delta:   floatPtr(-12),
			CadenceDrop:     floatPtr(-4.2),
			HRCreep:         floatPtr(6),
			Z2Early:         floatPtr(82),
			Z2Late:          floatPtr(64),
			DurabilityScore: floatPtr(87),
			WattsPerBeat: analysis.WattsPerBeatTrend{
				SlopePerHour:   floatPtr(-0.04),
				PercentPerHour: floatPtr(-2.5),
			},
			Quartiles: []analysis.QuartileSummary{
				{AvgPower: floatPtr(220), NormalizedPower: floatPtr(228), AvgHeartrate: floatPtr(138), EfficiencyFactor: floatPtr(1.65)},
				{AvgPower: floatPtr(215), NormalizedPower: floatPtr(220), AvgHeartrate: floatPtr(141), EfficiencyFactor: floatPtr(1.56)},
				{AvgPower: floatPtr(210), NormalizedPower: floatPtr(214), AvgHeartrate: floatPtr(144), EfficiencyFactor: floatPtr(1.49)},
				{AvgPower: floatPtr(205), NormalizedPower: floatPtr(209), AvgHeartrate: floatPtr(147), EfficiencyFactor: floatPtr(1.42)},
			},
			FatigueCurve: []analysis.FatigueEntry{
				{OffsetSeconds: 0, BestPower: map[int]float64{300: 260, 600: 245, 1200: 230, 3600: 215}},
				{OffsetSeconds: 3600, BestPower: map[int]float64{300: 250, 600: 238, 1200: 224}},
			},
		},
		Baseline: &analysis.Baseline{
			PwHrDrift:    floatPtr(3.8),
			Rolling5Diff: floatPtr(-10),
		},
	}
}

func TestRenderSummary(t *testing.T) {
	out, err := Render("summary", testDetail())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"Long Ride",
		"82.0 km",
		"Durability score  87",
		"4.2%",
		"baseline 3.8%",
		"-18 W",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	// Detailed-only sections stay out of the summary
	if strings.Contains(out, "Quartiles") || strings.Contains(out, "Fatigue resistance") {
		t.Error("summary should not include detailed sections")
	}
}

func TestRenderDetailed(t *testing.T) {
	out, err := Render("detailed", testDetail())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"Quartiles",
		"Q1",
		"Q4",
		"Fatigue resistance",
		"1:00:00", // second fatigue offset
		"avg power by quartile",
		"W/beat trend      -2.5% per hour",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detailed missing %q:\n%s", want, out)
		}
	}

	// The hour offset has no 60m window; its cell is a dash
	if !strings.Contains(out, "224     -") {
		t.Errorf("missing dash for infeasible duration:\n%s", out)
	}
}

func TestRenderComputeError(t *testing.T) {
	d := testDetail()
	d.Analysis = nil
	d.ComputeError = "insufficient data"

	out, err := Render("detailed", d)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Not analyzed: insufficient data") {
		t.Errorf("missing compute error:\n%s", out)
	}
	if strings.Contains(out, "Quartiles") {
		t.Error("failed rides should not render metric sections")
	}
}

func TestRenderUnknownProfile(t *testing.T) {
	_, err := Render("verbose", testDetail())
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Render() error = %v, want ErrUnknownProfile", err)
	}
}

func TestProfiles(t *testing.T) {
	got := Profiles()
	if len(got) != 2 || got[0] != "detailed" || got[1] != "summary" {
		t.Errorf("Profiles() = %v", got)
	}
}
