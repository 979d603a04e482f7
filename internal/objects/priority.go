package objects

import (
	"math"
	"time"
)

// PriorityBand buckets a priority score for display.
type PriorityBand string

const (
	BandHigh    PriorityBand = "high"
	BandMedium  PriorityBand = "medium"
	BandLow     PriorityBand = "low"
	BandUnknown PriorityBand = "unknown"
)

const yearMillis = 365.25 * 24 * 60 * 60 * 1000

var passportLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParsePassportDate parses a stored passport date. Values without a zone are read as UTC.
func ParsePassportDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range passportLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ComputePriority scores how urgently obj needs inspection as of now:
// (6 - condition) * 3 plus the passport age in whole years. A condition of 0
// counts as 1 and ages before the passport date count as 0. The result is nil
// when the passport date is missing or unparseable.
func ComputePriority(obj WaterObject, now time.Time) *int {
	passport, ok := ParsePassportDate(obj.PassportDate)
	if !ok {
		return nil
	}

	// Millisecond difference rather than Sub, which saturates near 292 years.
	age := int(math.Floor(float64(now.UnixMilli()-passport.UnixMilli()) / yearMillis))
	condition := obj.TechnicalCondition
	if condition == 0 {
		condition = 1
	}

	score := (6-condition)*3 + max(age, 0)
	return &score
}

// Band maps a priority to its display band.
func Band(p *int) PriorityBand {
	switch {
	case p == nil:
		return BandUnknown
	case *p >= 12:
		return BandHigh
	case *p >= 6:
		return BandMedium
	default:
		return BandLow
	}
}

// Annotate returns a copy of list with every priority recomputed as of now.
func Annotate(list []WaterObject, now time.Time) []WaterObject {
	out := make([]WaterObject, len(list))
	for i, obj := range list {
		obj.Priority = ComputePriority(obj, now)
		out[i] = obj
	}
	return out
}
