package analysis

import (
	"math"
	"testing"
)

func TestAggregateBaseline(t *testing.T) {
	tests := []struct {
		name    string
		rows    []MetricRow
		checkFn func(t *testing.T, b *Baseline)
	}{
		{
			name: "empty window",
			rows: nil,
			checkFn: func(t *testing.T, b *Baseline) {
				if b != nil {
					t.Errorf("baseline = %+v, want nil", b)
				}
			},
		},
		{
			name: "single row is the identity",
			rows: []MetricRow{{
				PwHrDrift:   floatPtr(4.2),
				Z2Early:     floatPtr(80),
				CadenceDrop: floatPtr(-3),
			}},
			checkFn: func(t *testing.T, b *Baseline) {
				if b == nil {
					t.Fatal("baseline should not be nil")
				}
				if *b.PwHrDrift != 4.2 || *b.Z2Early != 80 || *b.CadenceDrop != -3 {
					t.Errorf("baseline = %+v, want the row itself", b)
				}
				if b.Rolling5Diff != nil || b.HRCreep != nil {
					t.Error("absent fields should stay nil")
				}
			},
		},
		{
			name: "fields average independently",
			rows: []MetricRow{
				{PwHrDrift: floatPtr(2), Rolling5Diff: floatPtr(10)},
				{PwHrDrift: floatPtr(6)},
				{PwHrDrift: nil, Rolling5Diff: floatPtr(20), Power150Delta: floatPtr(-8)},
			},
			checkFn: func(t *testing.T, b *Baseline) {
				if b == nil {
					t.Fatal("baseline should not be nil")
				}
				if math.Abs(*b.PwHrDrift-4) > 1e-9 {
					t.Errorf("PwHrDrift = %v, want 4 (mean of 2 and 6)", *b.PwHrDrift)
				}
				if math.Abs(*b.Rolling5Diff-15) > 1e-9 {
					t.Errorf("Rolling5Diff = %v, want 15", *b.Rolling5Diff)
				}
				if math.Abs(*b.Power150Delta-(-8)) > 1e-9 {
					t.Errorf("Power150Delta = %v, want -8", *b.Power150Delta)
				}
				if b.Z2Late != nil {
					t.Error("Z2Late should be nil with no contributing rows")
				}
			},
		},
		{
			name: "rows with nothing still produce a baseline",
			rows: []MetricRow{{}, {}},
			checkFn: func(t *testing.T, b *Baseline) {
				if b == nil {
					t.Fatal("baseline should not be nil for a non-empty window")
				}
				if b.PwHrDrift != nil || b.Z2Early != nil {
					t.Error("all fields should be nil")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFn(t, AggregateBaseline(tt.rows))
		})
	}
}

func TestAggregateBaselineOrderIndependent(t *testing.T) {
	rows := []MetricRow{
		{PwHrDrift: floatPtr(1), HRCreep: floatPtr(5)},
		{PwHrDrift: floatPtr(3)},
		{PwHrDrift: floatPtr(8), HRCreep: floatPtr(7)},
	}
	reversed := []MetricRow{rows[2], rows[1], rows[0]}

	a := AggregateBaseline(rows)
	b := AggregateBaseline(reversed)

	if math.Abs(*a.PwHrDrift-*b.PwHrDrift) > 1e-9 || math.Abs(*a.HRCreep-*b.HRCreep) > 1e-9 {
		t.Errorf("order changed the baseline: %+v vs %+v", a, b)
	}
}
