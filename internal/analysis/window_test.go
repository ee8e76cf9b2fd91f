package analysis

import (
	"math"
	"testing"
)

func wattsSamples(watts []float64) []timedValue {
	out := make([]timedValue, len(watts))
	for i, w := range watts {
		out[i] = timedValue{t: float64(i), v: w}
	}
	return out
}

func TestSlidingWindowMeans(t *testing.T) {
	// 60s of 1Hz data: windows are emitted once the span reaches 29s
	// (one under the nominal width, so short trailing windows survive)
	samples := wattsSamples(constantSlice(60, 200))

	means := slidingWindowMeans(samples, 30)
	if len(means) != 31 {
		t.Fatalf("len(means) = %d, want 31", len(means))
	}
	for i, m := range means {
		if math.Abs(m-200) > 1e-9 {
			t.Errorf("means[%d] = %v, want 200", i, m)
		}
	}
}

func TestSlidingWindowMeansShortStream(t *testing.T) {
	samples := wattsSamples(constantSlice(10, 150))
	if means := slidingWindowMeans(samples, 30); means != nil {
		t.Errorf("means = %v, want none below the window span", means)
	}
}

func TestBestWindowMean(t *testing.T) {
	// 600s at 100W with a 300s surge to 250W in the middle
	watts := constantSlice(601, 100)
	for i := 150; i < 450; i++ {
		watts[i] = 250
	}
	samples := wattsSamples(watts)

	best := bestWindowMean(samples, 300, 0)
	if best == nil {
		t.Fatal("best window should exist")
	}
	if math.Abs(*best-250) > 1.0 {
		t.Errorf("best = %v, want ~250", *best)
	}

	// Anchored past the surge, the best 300s window is mostly 100W
	late := bestWindowMean(samples, 300, 300)
	if late == nil {
		t.Fatal("late window should exist")
	}
	if *late >= *best {
		t.Errorf("late best %v should be below unanchored best %v", *late, *best)
	}

	// No 300s window fits starting at 500s into a 600s stream
	if none := bestWindowMean(samples, 300, 500); none != nil {
		t.Errorf("best from offset 500 = %v, want nil", *none)
	}
}

func TestNormalizedPower(t *testing.T) {
	tests := []struct {
		name    string
		watts   []float64
		checkFn func(t *testing.T, np *float64, mean float64)
	}{
		{
			name:  "constant power equals mean",
			watts: constantSlice(120, 200),
			checkFn: func(t *testing.T, np *float64, mean float64) {
				if np == nil {
					t.Fatal("NP should not be nil")
				}
				if math.Abs(*np-mean) > 1e-6 {
					t.Errorf("NP = %v, want mean %v", *np, mean)
				}
			},
		},
		{
			name: "variable power exceeds mean",
			watts: func() []float64 {
				w := constantSlice(120, 100)
				for i := 60; i < 120; i++ {
					w[i] = 300
				}
				return w
			}(),
			checkFn: func(t *testing.T, np *float64, mean float64) {
				if np == nil {
					t.Fatal("NP should not be nil")
				}
				if *np <= mean {
					t.Errorf("NP = %v, want > mean %v (quartic mean weights surges)", *np, mean)
				}
			},
		},
		{
			name:  "below sample floor",
			watts: constantSlice(29, 200),
			checkFn: func(t *testing.T, np *float64, mean float64) {
				if np != nil {
					t.Errorf("NP = %v, want nil below %d samples", *np, MinNPSamples)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sum float64
			for _, w := range tt.watts {
				sum += w
			}
			mean := sum / float64(len(tt.watts))

			np := normalizedPower(wattsSamples(tt.watts))
			tt.checkFn(t, np, mean)
		})
	}
}

func TestNormalizedPowerRebasesTime(t *testing.T) {
	// Same data shifted two hours into the ride must give the same NP
	watts := constantSlice(120, 180)
	base := normalizedPower(wattsSamples(watts))

	shifted := make([]timedValue, len(watts))
	for i, w := range watts {
		shifted[i] = timedValue{t: float64(7200 + i), v: w}
	}
	late := normalizedPower(shifted)

	if base == nil || late == nil {
		t.Fatal("NP should not be nil")
	}
	if math.Abs(*base-*late) > 1e-9 {
		t.Errorf("NP(shifted) = %v, want %v", *late, *base)
	}
}

func constantSlice(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
