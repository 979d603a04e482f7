package objects

import (
	"slices"

	"github.com/gidroatlas/gidroatlas/pkg/formatting"
)

// Statistics aggregates the registry.
type Statistics struct {
	Total            int                  `json:"total"`
	ByResourceType   map[ResourceType]int `json:"by_resource_type"`
	ByWaterType      map[WaterType]int    `json:"by_water_type"`
	WithFauna        int                  `json:"with_fauna"`
	AverageCondition float64              `json:"average_condition"`
	Regions          int                  `json:"regions"`
	GoodCondition    int                  `json:"good_condition"`
	PoorCondition    int                  `json:"poor_condition"`
}

// ComputeStatistics tallies list. Good condition is 4 or above and poor is 2
// or below. The average condition is rounded to one decimal.
func ComputeStatistics(list []WaterObject) Statistics {
	s := Statistics{
		Total:          len(list),
		ByResourceType: make(map[ResourceType]int, len(ResourceTypes)),
		ByWaterType:    make(map[WaterType]int, len(WaterTypes)),
	}
	for _, t := range ResourceTypes {
		s.ByResourceType[t] = 0
	}
	for _, t := range WaterTypes {
		s.ByWaterType[t] = 0
	}

	sum := 0
	for _, obj := range list {
		s.ByResourceType[obj.ResourceType]++
		s.ByWaterType[obj.WaterType]++
		if obj.Fauna {
			s.WithFauna++
		}
		if obj.TechnicalCondition >= 4 {
			s.GoodCondition++
		}
		if obj.TechnicalCondition <= 2 {
			s.PoorCondition++
		}
		sum += obj.TechnicalCondition
	}

	if len(list) > 0 {
		s.AverageCondition = formatting.Round(float64(sum)/float64(len(list)), 1)
	}
	s.Regions = len(Regions(list))
	return s
}

// Regions returns the distinct regions in list, sorted.
func Regions(list []WaterObject) []string {
	regions := make([]string, 0, len(list))
	for _, obj := range list {
		regions = append(regions, obj.Region)
	}
	slices.Sort(regions)
	return slices.Compact(regions)
}
