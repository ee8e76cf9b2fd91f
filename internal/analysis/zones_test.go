package analysis

import (
	"math"
	"testing"
)

func TestZoneShareFixedBand(t *testing.T) {
	// 10s sampling, first half at 130bpm (in band), second half at 160bpm
	s := SampleStream{
		Time: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80},
		Heartrate: []*float64{
			floatPtr(130), floatPtr(130), floatPtr(130), floatPtr(130),
			floatPtr(160), floatPtr(160), floatPtr(160), floatPtr(160), floatPtr(160),
		},
	}
	seg := Segment{Start: 0, End: 8}

	got := zoneShare(s, seg, Athlete{})
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("share = %v, want 0.5", got)
	}
}

func TestZoneShareReserveBand(t *testing.T) {
	// Reserve 130 on resting 50: the 60-70% band is [128, 141] bpm,
	// so 135 is inside it while the fixed band would also accept 135.
	// 125 is outside the reserve band but inside the fixed one.
	athlete := Athlete{RestingHR: 50, MaxHR: 180}
	s := SampleStream{
		Time:      []float64{0, 10, 20, 30, 40},
		Heartrate: []*float64{floatPtr(135), floatPtr(135), floatPtr(125), floatPtr(125), floatPtr(125)},
	}
	seg := Segment{Start: 0, End: 4}

	got := zoneShare(s, seg, athlete)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("reserve share = %v, want 0.5", got)
	}

	fixed := zoneShare(s, seg, Athlete{})
	if math.Abs(fixed-1.0) > 1e-9 {
		t.Errorf("fixed share = %v, want 1.0", fixed)
	}
}

func TestZoneShareNonPositiveReserve(t *testing.T) {
	// Max at or below resting means reserve math is meaningless,
	// so no sample counts as in-zone
	athlete := Athlete{RestingHR: 100, MaxHR: 100}
	s := SampleStream{
		Time:      []float64{0, 10, 20},
		Heartrate: []*float64{floatPtr(130), floatPtr(130), floatPtr(130)},
	}

	if got := zoneShare(s, Segment{Start: 0, End: 2}, athlete); got != 0 {
		t.Errorf("share = %v, want 0", got)
	}
}

func TestZoneShareEdges(t *testing.T) {
	tests := []struct {
		name string
		s    SampleStream
		seg  Segment
		want float64
	}{
		{
			name: "single sample carries no weight",
			s: SampleStream{
				Time:      []float64{0},
				Heartrate: []*float64{floatPtr(130)},
			},
			seg:  Segment{Start: 0, End: 0},
			want: 0,
		},
		{
			name: "missing heart rate counts toward total only",
			s: SampleStream{
				Time:      []float64{0, 10, 20},
				Heartrate: []*float64{floatPtr(130), nil, floatPtr(130)},
			},
			seg:  Segment{Start: 0, End: 2},
			want: 0.5,
		},
		{
			name: "zero-duration gaps skipped",
			s: SampleStream{
				Time:      []float64{0, 10, 10, 20},
				Heartrate: []*float64{floatPtr(130), floatPtr(200), floatPtr(130), floatPtr(130)},
			},
			seg:  Segment{Start: 0, End: 3},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := zoneShare(tt.s, tt.seg, Athlete{})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("share = %v, want %v", got, tt.want)
			}
		})
	}
}
