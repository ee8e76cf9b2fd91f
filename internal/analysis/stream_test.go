package analysis

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want *float64
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "in range unchanged", in: floatPtr(250), want: floatPtr(250)},
		{name: "below floor", in: floatPtr(-50), want: floatPtr(0)},
		{name: "above ceiling", in: floatPtr(2500), want: floatPtr(2000)},
		{name: "NaN dropped", in: floatPtr(math.NaN()), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clamp(tt.in, MinPlausibleWatts, MaxPlausibleWatts)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("clamp = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("clamp = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	s := SampleStream{
		Time:      []float64{0, 10, 20, 30},
		Watts:     []*float64{floatPtr(-10), floatPtr(3000), floatPtr(math.NaN()), floatPtr(220)},
		Heartrate: []*float64{floatPtr(20), floatPtr(250), nil, floatPtr(140)},
		Cadence:   []*float64{floatPtr(90), floatPtr(90), floatPtr(90), floatPtr(90)},
	}

	clean := Sanitize(s)

	if got := *clean.Watts[0]; got != MinPlausibleWatts {
		t.Errorf("Watts[0] = %v, want %v", got, MinPlausibleWatts)
	}
	if got := *clean.Watts[1]; got != MaxPlausibleWatts {
		t.Errorf("Watts[1] = %v, want %v", got, MaxPlausibleWatts)
	}
	if clean.Watts[2] != nil {
		t.Errorf("Watts[2] = %v, want nil for NaN input", *clean.Watts[2])
	}
	if got := *clean.Watts[3]; got != 220 {
		t.Errorf("Watts[3] = %v, want 220", got)
	}

	if got := *clean.Heartrate[0]; got != MinPlausibleHR {
		t.Errorf("Heartrate[0] = %v, want %v", got, MinPlausibleHR)
	}
	if got := *clean.Heartrate[1]; got != MaxPlausibleHR {
		t.Errorf("Heartrate[1] = %v, want %v", got, MaxPlausibleHR)
	}
	if clean.Heartrate[2] != nil {
		t.Error("Heartrate[2] should stay nil")
	}

	// The input stream is untouched
	if *s.Watts[0] != -10 || *s.Heartrate[0] != 20 {
		t.Error("Sanitize must not mutate the input stream")
	}
	// Channels the sanitizer does not touch are carried over as-is
	if len(clean.Cadence) != 4 || *clean.Cadence[0] != 90 {
		t.Error("Cadence should be carried through unchanged")
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	s := SampleStream{
		Time:      []float64{0, 10},
		Watts:     []*float64{floatPtr(-5), floatPtr(1999)},
		Heartrate: []*float64{floatPtr(300), floatPtr(60)},
	}

	once := Sanitize(s)
	twice := Sanitize(once)

	for i := range once.Watts {
		if *once.Watts[i] != *twice.Watts[i] {
			t.Errorf("Watts[%d] changed on second pass: %v != %v", i, *once.Watts[i], *twice.Watts[i])
		}
		if *once.Heartrate[i] != *twice.Heartrate[i] {
			t.Errorf("Heartrate[%d] changed on second pass: %v != %v", i, *once.Heartrate[i], *twice.Heartrate[i])
		}
	}
}
