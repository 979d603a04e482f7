package objects

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"time"
)

// Direction orders non-null sort keys.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Asc for "asc" and Desc for anything else.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Asc)) {
		return Asc
	}
	return Desc
}

// DefaultSortField orders the object list when the request names none.
const DefaultSortField = "priority"

type sortKey struct {
	null    func(WaterObject) bool
	compare func(a, b WaterObject) int
}

func never(WaterObject) bool { return false }

func textKey(get func(WaterObject) string) sortKey {
	return sortKey{
		null: never,
		compare: func(a, b WaterObject) int {
			return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
		},
	}
}

func optionalTextKey(get func(WaterObject) *string) sortKey {
	return sortKey{
		null: func(o WaterObject) bool { return get(o) == nil },
		compare: func(a, b WaterObject) int {
			return strings.Compare(strings.ToLower(*get(a)), strings.ToLower(*get(b)))
		},
	}
}

func numberKey[T cmp.Ordered](get func(WaterObject) T) sortKey {
	return sortKey{
		null:    never,
		compare: func(a, b WaterObject) int { return cmp.Compare(get(a), get(b)) },
	}
}

func timeKey(get func(WaterObject) time.Time) sortKey {
	return sortKey{
		null:    never,
		compare: func(a, b WaterObject) int { return get(a).Compare(get(b)) },
	}
}

var sortKeys = map[string]sortKey{
	"name":          textKey(func(o WaterObject) string { return o.Name }),
	"region":        textKey(func(o WaterObject) string { return o.Region }),
	"resource_type": textKey(func(o WaterObject) string { return string(o.ResourceType) }),
	"water_type":    textKey(func(o WaterObject) string { return string(o.WaterType) }),
	"fauna": {
		null: never,
		compare: func(a, b WaterObject) int {
			switch {
			case a.Fauna == b.Fauna:
				return 0
			case b.Fauna:
				return -1
			default:
				return 1
			}
		},
	},
	"passport_date": {
		null: func(o WaterObject) bool { return o.PassportDate == "" },
		compare: func(a, b WaterObject) int {
			return strings.Compare(strings.ToLower(a.PassportDate), strings.ToLower(b.PassportDate))
		},
	},
	"technical_condition": numberKey(func(o WaterObject) int { return o.TechnicalCondition }),
	"latitude":            numberKey(func(o WaterObject) float64 { return o.Latitude }),
	"longitude":           numberKey(func(o WaterObject) float64 { return o.Longitude }),
	"pdf_url":             optionalTextKey(func(o WaterObject) *string { return o.PDFURL }),
	"priority": {
		null:    func(o WaterObject) bool { return o.Priority == nil },
		compare: func(a, b WaterObject) int { return cmp.Compare(*a.Priority, *b.Priority) },
	},
	"created_at": timeKey(func(o WaterObject) time.Time { return o.CreatedAt }),
	"updated_at": timeKey(func(o WaterObject) time.Time { return o.UpdatedAt }),
}

// SortFields lists the fields SortObjects understands.
func SortFields() []string {
	return slices.Sorted(maps.Keys(sortKeys))
}

// SortObjects returns a stably ordered copy of list. Objects whose key is
// null sort last in both directions. An unknown field leaves the order unchanged.
func SortObjects(list []WaterObject, field string, dir Direction) []WaterObject {
	out := slices.Clone(list)

	key, ok := sortKeys[field]
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b WaterObject) int {
		an, bn := key.null(a), key.null(b)
		switch {
		case an && bn:
			return 0
		case an:
			return 1
		case bn:
			return -1
		}

		c := key.compare(a, b)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}
