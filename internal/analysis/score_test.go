package analysis

import (
	"math"
	"testing"
)

func TestDurabilityScore(t *testing.T) {
	tests := []struct {
		name string
		m    DurabilityMetrics
		want *float64
	}{
		{
			name: "no components",
			m:    DurabilityMetrics{},
			want: nil,
		},
		{
			name: "perfect ride",
			m: DurabilityMetrics{
				PowerFade: floatPtr(0),
				PwHrDrift: floatPtr(0),
				EFDecline: floatPtr(0),
				WattsPerBeat: WattsPerBeatTrend{
					SlopePerHour:   floatPtr(0),
					PercentPerHour: floatPtr(0),
				},
			},
			want: floatPtr(100),
		},
		{
			name: "negative penalties score as zero penalty",
			m: DurabilityMetrics{
				PowerFade: floatPtr(-10),
				PwHrDrift: floatPtr(-5),
			},
			want: floatPtr(100),
		},
		{
			name: "uniform fatigue",
			m: DurabilityMetrics{
				PowerFade: floatPtr(20),
				PwHrDrift: floatPtr(20),
				EFDecline: floatPtr(20),
			},
			want: floatPtr(80),
		},
		{
			name: "penalties clamp at 100",
			m: DurabilityMetrics{
				PowerFade: floatPtr(500),
			},
			want: floatPtr(0),
		},
		{
			name: "partial components average",
			m: DurabilityMetrics{
				PowerFade: floatPtr(30),
				EFDecline: floatPtr(10),
			},
			want: floatPtr(80),
		},
		{
			name: "rising watts per beat costs nothing",
			m: DurabilityMetrics{
				WattsPerBeat: WattsPerBeatTrend{PercentPerHour: floatPtr(8)},
			},
			want: floatPtr(100),
		},
		{
			name: "falling watts per beat is a penalty",
			m: DurabilityMetrics{
				WattsPerBeat: WattsPerBeatTrend{PercentPerHour: floatPtr(-15)},
			},
			want: floatPtr(85),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := durabilityScore(&tt.m)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("score = %v, want %v", got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("score = %v, want %v", *got, *tt.want)
			}
		})
	}
}
