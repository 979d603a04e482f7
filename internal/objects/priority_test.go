package objects_test

import (
	"testing"
	"time"

	"github.com/gidroatlas/gidroatlas/internal/objects"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestComputePriority(t *testing.T) {
	tests := []struct {
		name      string
		condition int
		passport  string
		want      *int
	}{
		{"ten years good condition", 5, "2015-06-01", intPtr(13)},
		{"ten years critical condition", 1, "2015-06-01", intPtr(25)},
		{"zero condition counts as one", 0, "2015-06-01", intPtr(25)},
		{"one day short of a year", 3, "2024-06-02", intPtr(9)},
		{"future passport clamps age", 4, "2030-01-01", intPtr(6)},
		{"ancient passport beyond duration range", 3, "0001-01-01", intPtr(2033)},
		{"rfc3339 timestamp", 5, "2015-06-01T00:00:00Z", intPtr(13)},
		{"timestamp without zone", 5, "2015-06-01T00:00:00", intPtr(13)},
		{"missing date", 3, "", nil},
		{"unparseable date", 3, "yesterday", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objects.ComputePriority(objects.WaterObject{
				TechnicalCondition: tt.condition,
				PassportDate:       tt.passport,
			}, now)

			switch {
			case tt.want == nil && got != nil:
				t.Errorf("got %d, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("got nil, want %d", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("got %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestComputePriorityMonotonic(t *testing.T) {
	for cond := 1; cond < 5; cond++ {
		worse := objects.ComputePriority(objects.WaterObject{TechnicalCondition: cond, PassportDate: "2018-03-10"}, now)
		better := objects.ComputePriority(objects.WaterObject{TechnicalCondition: cond + 1, PassportDate: "2018-03-10"}, now)
		if *worse <= *better {
			t.Errorf("condition %d scored %d, condition %d scored %d", cond, *worse, cond+1, *better)
		}
	}

	older := objects.ComputePriority(objects.WaterObject{TechnicalCondition: 3, PassportDate: "2001-01-01"}, now)
	newer := objects.ComputePriority(objects.WaterObject{TechnicalCondition: 3, PassportDate: "2021-01-01"}, now)
	if *older < *newer {
		t.Errorf("older passport scored %d, newer scored %d", *older, *newer)
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		priority *int
		want     objects.PriorityBand
	}{
		{nil, objects.BandUnknown},
		{intPtr(0), objects.BandLow},
		{intPtr(5), objects.BandLow},
		{intPtr(6), objects.BandMedium},
		{intPtr(11), objects.BandMedium},
		{intPtr(12), objects.BandHigh},
		{intPtr(40), objects.BandHigh},
	}

	for _, tt := range tests {
		if got := objects.Band(tt.priority); got != tt.want {
			t.Errorf("Band(%v): got %s, want %s", tt.priority, got, tt.want)
		}
	}

	if got := objects.Band(objects.ComputePriority(objects.WaterObject{TechnicalCondition: 5, PassportDate: "2015-06-01"}, now)); got != objects.BandHigh {
		t.Errorf("ten year old passport: got %s, want high", got)
	}
}

func TestAnnotate(t *testing.T) {
	stale := intPtr(99)
	list := []objects.WaterObject{
		{Name: "A", TechnicalCondition: 5, PassportDate: "2015-06-01", Priority: stale},
		{Name: "B", TechnicalCondition: 2},
	}

	got := objects.Annotate(list, now)

	if *got[0].Priority != 13 {
		t.Errorf("A priority: got %d, want 13", *got[0].Priority)
	}
	if got[1].Priority != nil {
		t.Errorf("B priority: got %d, want nil", *got[1].Priority)
	}
	if list[0].Priority != stale {
		t.Error("input list was modified")
	}

	again := objects.Annotate(got, now)
	if *again[0].Priority != *got[0].Priority {
		t.Error("annotate is not idempotent")
	}
}
