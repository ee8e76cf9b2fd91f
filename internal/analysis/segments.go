package analysis

import "errors"

// ErrUnableToSplit is returned when the time channel is empty and no segment
// plan can be produced.
var ErrUnableToSplit = errors.New("unable to split segments")

// Segment is a closed index range [Start, End] into a SampleStream
type Segment struct {
	Start int
	End   int
}

// SegmentPlan partitions a ride into elapsed-time quartiles plus the derived
// views the analyzers compare. Adjacent quartiles share their boundary sample.
type SegmentPlan struct {
	Quartiles  [4]Segment
	FirstHalf  Segment
	SecondHalf Segment
	Early      Segment // first quartile
	Late       Segment // last quartile
}

// PlanSegments splits the stream timeline into four quartiles by elapsed time,
// not by sample count. Boundary timestamps are fixed fractions of the last
// timestamp; a sample that reaches-or-exceeds a boundary closes the current
// segment and opens the next one at the same index. Short or sparse streams
// are padded with degenerate [last,last] segments so the plan always has four
// quartiles.
func PlanSegments(times []float64) (*SegmentPlan, error) {
	n := len(times)
	if n == 0 {
		return nil, ErrUnableToSplit
	}

	total := times[n-1]
	bounds := [3]float64{total * 0.25, total * 0.50, total * 0.75}

	segments := make([]Segment, 0, 4)
	start := 0
	next := 0

	for i := 0; i < n && next < len(bounds); i++ {
		for next < len(bounds) && times[i] >= bounds[next] {
			segments = append(segments, Segment{Start: start, End: i})
			start = i
			next++
		}
	}
	segments = append(segments, Segment{Start: start, End: n - 1})

	for len(segments) < 4 {
		segments = append(segments, Segment{Start: n - 1, End: n - 1})
	}

	plan := &SegmentPlan{}
	copy(plan.Quartiles[:], segments[:4])
	plan.FirstHalf = Segment{Start: plan.Quartiles[0].Start, End: plan.Quartiles[1].End}
	plan.SecondHalf = Segment{Start: plan.Quartiles[2].Start, End: plan.Quartiles[3].End}
	plan.Early = plan.Quartiles[0]
	plan.Late = plan.Quartiles[3]

	return plan, nil
}
