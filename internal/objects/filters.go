package objects

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FilterState holds the list filters. Every field is a raw string and an
// empty string leaves that filter inactive. Fauna is active only for "true"
// or "false". TechnicalCondition and the passport date bounds are inactive
// when they do not parse.
type FilterState struct {
	Region             string `json:"region"`
	ResourceType       string `json:"resource_type"`
	WaterType          string `json:"water_type"`
	Fauna              string `json:"fauna"`
	TechnicalCondition string `json:"technical_condition"`
	PassportDateFrom   string `json:"passport_date_from"`
	PassportDateTo     string `json:"passport_date_to"`
	SearchQuery        string `json:"search"`
}

// FilterStateFromQuery reads filters from URL query parameters.
func FilterStateFromQuery(values url.Values) FilterState {
	return FilterState{
		Region:             values.Get("region"),
		ResourceType:       values.Get("resource_type"),
		WaterType:          values.Get("water_type"),
		Fauna:              values.Get("fauna"),
		TechnicalCondition: values.Get("technical_condition"),
		PassportDateFrom:   values.Get("passport_date_from"),
		PassportDateTo:     values.Get("passport_date_to"),
		SearchQuery:        values.Get("search"),
	}
}

// WithoutExpertFilters clears the filters reserved for experts.
func (f FilterState) WithoutExpertFilters() FilterState {
	f.TechnicalCondition = ""
	f.PassportDateFrom = ""
	f.PassportDateTo = ""
	return f
}

type predicate func(WaterObject) bool

func (f FilterState) predicates() []predicate {
	var ps []predicate

	if f.Region != "" {
		ps = append(ps, func(o WaterObject) bool { return o.Region == f.Region })
	}
	if f.ResourceType != "" {
		ps = append(ps, func(o WaterObject) bool { return string(o.ResourceType) == f.ResourceType })
	}
	if f.WaterType != "" {
		ps = append(ps, func(o WaterObject) bool { return string(o.WaterType) == f.WaterType })
	}
	if f.Fauna == "true" || f.Fauna == "false" {
		want := f.Fauna == "true"
		ps = append(ps, func(o WaterObject) bool { return o.Fauna == want })
	}
	if f.TechnicalCondition != "" {
		if cond, err := strconv.Atoi(strings.TrimSpace(f.TechnicalCondition)); err == nil {
			ps = append(ps, func(o WaterObject) bool { return o.TechnicalCondition == cond })
		}
	}
	if f.SearchQuery != "" {
		q := strings.ToLower(f.SearchQuery)
		ps = append(ps, func(o WaterObject) bool { return matchesName(o, q) })
	}
	if from, ok := ParsePassportDate(strings.TrimSpace(f.PassportDateFrom)); ok {
		ps = append(ps, passportBound(func(d time.Time) bool { return !d.Before(from) }))
	}
	if to, ok := ParsePassportDate(strings.TrimSpace(f.PassportDateTo)); ok {
		ps = append(ps, passportBound(func(d time.Time) bool { return !d.After(to) }))
	}

	return ps
}

// passportBound excludes objects whose passport date does not parse.
func passportBound(within func(time.Time) bool) predicate {
	return func(o WaterObject) bool {
		d, ok := ParsePassportDate(o.PassportDate)
		return ok && within(d)
	}
}

func matchesName(o WaterObject, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(o.Name), lowerQuery)
}

// ApplyFilters returns the objects in list that satisfy every active filter,
// in their original order. The input is not modified.
func ApplyFilters(list []WaterObject, f FilterState) []WaterObject {
	ps := f.predicates()
	out := make([]WaterObject, 0, len(list))

outer:
	for _, obj := range list {
		for _, p := range ps {
			if !p(obj) {
				continue outer
			}
		}
		out = append(out, obj)
	}
	return out
}

// Highlighted returns the first object in list whose name contains the
// search query, or nil when there is no query or no match.
func Highlighted(list []WaterObject, search string) *WaterObject {
	if search == "" {
		return nil
	}
	q := strings.ToLower(search)
	for i := range list {
		if matchesName(list[i], q) {
			obj := list[i]
			return &obj
		}
	}
	return nil
}

// ParseLayers reads a comma-separated list of resource types. Unknown names are ignored.
func ParseLayers(s string) []ResourceType {
	var layers []ResourceType
	for part := range strings.SplitSeq(s, ",") {
		if t := ResourceType(strings.TrimSpace(part)); t.Valid() {
			layers = append(layers, t)
		}
	}
	return layers
}

// FilterLayers keeps objects whose resource type is among the visible
// layers. An empty layer list shows everything.
func FilterLayers(list []WaterObject, layers []ResourceType) []WaterObject {
	if len(layers) == 0 {
		return append([]WaterObject(nil), list...)
	}

	visible := make(map[ResourceType]bool, len(layers))
	for _, l := range layers {
		visible[l] = true
	}

	out := make([]WaterObject, 0, len(list))
	for _, obj := range list {
		if visible[obj.ResourceType] {
			out = append(out, obj)
		}
	}
	return out
}
