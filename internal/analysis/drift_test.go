package analysis

import (
	"math"
	"testing"
)

func mustPlan(t *testing.T, s SampleStream) *SegmentPlan {
	t.Helper()
	plan, err := PlanSegments(s.Time)
	if err != nil {
		t.Fatalf("PlanSegments() error = %v", err)
	}
	return plan
}

func TestPwHrDrift(t *testing.T) {
	// Steady 200W but HR creeps from 130 to 156 in the second half:
	// the ratio drops so drift is positive
	s := makeStream(40, 2000, 200, 130)
	for i := 20; i < 40; i++ {
		s.Heartrate[i] = floatPtr(156)
	}

	drift := pwHrDrift(s, mustPlan(t, s))
	if drift == nil {
		t.Fatal("drift should not be nil")
	}
	if *drift <= 0 {
		t.Errorf("drift = %v, want > 0 for creeping heart rate", *drift)
	}

	// Constant ratio drifts by exactly zero
	flat := makeStream(40, 2000, 200, 130)
	zero := pwHrDrift(flat, mustPlan(t, flat))
	if zero == nil || math.Abs(*zero) > 1e-9 {
		t.Errorf("drift = %v, want 0", zero)
	}
}

func TestPwHrDriftMissingHeartrate(t *testing.T) {
	s := makeStream(40, 2000, 200, 130)
	for i := 20; i < 40; i++ {
		s.Heartrate[i] = nil
	}

	if drift := pwHrDrift(s, mustPlan(t, s)); drift != nil {
		t.Errorf("drift = %v, want nil with no second-half heart rate", *drift)
	}
}

func TestPowerAtFixedHRDelta(t *testing.T) {
	// 150 bpm throughout; power falls from 250 to 200 in the second half
	s := makeStream(40, 2000, 250, 150)
	for i := 20; i < 40; i++ {
		s.Watts[i] = floatPtr(200)
	}

	delta := powerAtFixedHRDelta(s, mustPlan(t, s))
	if delta == nil {
		t.Fatal("delta should not be nil")
	}
	if *delta > -45 {
		t.Errorf("delta = %v, want ~-50", *delta)
	}
}

func TestPowerAtFixedHRDeltaOutsideBand(t *testing.T) {
	// No sample within 2.5 bpm of 150 in the first half (index 20 is the
	// shared boundary sample, so the ramp starts past it)
	s := makeStream(40, 2000, 250, 130)
	for i := 21; i < 40; i++ {
		s.Heartrate[i] = floatPtr(150)
	}

	if delta := powerAtFixedHRDelta(s, mustPlan(t, s)); delta != nil {
		t.Errorf("delta = %v, want nil when a half never reaches the band", *delta)
	}
}

func TestRolling5Diff(t *testing.T) {
	// One-hour ride at 1Hz: second half holds 180W against a 220W first half
	s := makeStream(3601, 3600, 220, 140)
	for i := 1800; i <= 3600; i++ {
		s.Watts[i] = floatPtr(180)
	}
	plan := mustPlan(t, s)

	diff := rolling5Diff(s, plan)
	if math.Abs(diff-(-40)) > 1.0 {
		t.Errorf("diff = %v, want ~-40", diff)
	}
}

func TestRolling5DiffShortHalves(t *testing.T) {
	// 400s total: neither half spans a 300s window, so both fall back to 0
	s := makeStream(41, 400, 200, 130)
	if diff := rolling5Diff(s, mustPlan(t, s)); diff != 0 {
		t.Errorf("diff = %v, want 0 fallback", diff)
	}
}

func TestPowerFade(t *testing.T) {
	tests := []struct {
		name   string
		q1, q4 QuartileSummary
		want   *float64
	}{
		{
			name: "fading ride",
			q1:   QuartileSummary{AvgPower: floatPtr(250)},
			q4:   QuartileSummary{AvgPower: floatPtr(200)},
			want: floatPtr(20),
		},
		{
			name: "negative split",
			q1:   QuartileSummary{AvgPower: floatPtr(200)},
			q4:   QuartileSummary{AvgPower: floatPtr(220)},
			want: floatPtr(-10),
		},
		{
			name: "zero first quartile",
			q1:   QuartileSummary{AvgPower: floatPtr(0)},
			q4:   QuartileSummary{AvgPower: floatPtr(100)},
			want: nil,
		},
		{
			name: "missing quartile power",
			q1:   QuartileSummary{},
			q4:   QuartileSummary{AvgPower: floatPtr(100)},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := powerFade(tt.q1, tt.q4)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("fade = %v, want %v", got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("fade = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestEFDecline(t *testing.T) {
	q1 := QuartileSummary{EfficiencyFactor: floatPtr(1.6)}
	q4 := QuartileSummary{EfficiencyFactor: floatPtr(1.2)}

	got := efDecline(q1, q4)
	if got == nil || math.Abs(*got-25) > 1e-9 {
		t.Errorf("decline = %v, want 25", got)
	}

	if d := efDecline(QuartileSummary{}, q4); d != nil {
		t.Errorf("decline = %v, want nil without a first-quartile EF", *d)
	}
}

func TestWattsPerBeatTrend(t *testing.T) {
	// Ratio decays linearly: 2.0 w/beat at the start, 1.5 after an hour
	n := 361
	s := SampleStream{
		Time:      make([]float64, n),
		Watts:     make([]*float64, n),
		Heartrate: make([]*float64, n),
	}
	for i := 0; i < n; i++ {
		sec := float64(i * 10)
		s.Time[i] = sec
		s.Heartrate[i] = floatPtr(140)
		s.Watts[i] = floatPtr(140 * (2.0 - 0.5*sec/3600))
	}

	trend := wattsPerBeatTrend(s)
	if trend.SlopePerHour == nil || trend.PercentPerHour == nil {
		t.Fatal("trend should be defined")
	}
	if math.Abs(*trend.SlopePerHour-(-0.5)) > 1e-6 {
		t.Errorf("SlopePerHour = %v, want -0.5", *trend.SlopePerHour)
	}
	// Mean ratio over the hour is 1.75, so -0.5/h is about -28.6%/h
	if math.Abs(*trend.PercentPerHour-(-0.5/1.75*100)) > 1e-6 {
		t.Errorf("PercentPerHour = %v, want %v", *trend.PercentPerHour, -0.5/1.75*100)
	}
}

func TestWattsPerBeatTrendDegenerate(t *testing.T) {
	one := SampleStream{
		Time:      []float64{0},
		Watts:     []*float64{floatPtr(200)},
		Heartrate: []*float64{floatPtr(140)},
	}
	if trend := wattsPerBeatTrend(one); trend.SlopePerHour != nil {
		t.Error("a single point has no slope")
	}

	noHR := makeStream(10, 100, 200, 130)
	for i := range noHR.Heartrate {
		noHR.Heartrate[i] = nil
	}
	if trend := wattsPerBeatTrend(noHR); trend.SlopePerHour != nil {
		t.Error("no heart rate means no trend")
	}
}

func TestLateEarlyDelta(t *testing.T) {
	// Cadence drops from 90 to 82 across the ride
	s := makeStream(40, 2000, 200, 130)
	s.Cadence = make([]*float64, 40)
	for i := 0; i < 40; i++ {
		if i < 10 {
			s.Cadence[i] = floatPtr(90)
		} else if i >= 30 {
			s.Cadence[i] = floatPtr(82)
		} else {
			s.Cadence[i] = floatPtr(86)
		}
	}
	plan := mustPlan(t, s)

	delta := lateEarlyDelta(s, s.Cadence, plan)
	if delta == nil {
		t.Fatal("delta should not be nil")
	}
	if math.Abs(*delta-(-8)) > 0.5 {
		t.Errorf("delta = %v, want ~-8", *delta)
	}

	if d := lateEarlyDelta(s, nil, plan); d != nil {
		t.Errorf("delta = %v, want nil for an absent channel", *d)
	}
}
