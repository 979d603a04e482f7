package objects

import (
	"fmt"
	"strings"
	"time"

	"github.com/gidroatlas/gidroatlas/pkg/formatting"
)

// ReportKind selects the objects included in a report.
type ReportKind string

const (
	ReportAll      ReportKind = "all"
	ReportCritical ReportKind = "critical"
	ReportRegion   ReportKind = "region"
)

// CriticalCondition is the highest technical condition counted as critical.
const CriticalCondition = 2

// ReportRequest describes a report. Region is required for ReportRegion.
type ReportRequest struct {
	Kind   ReportKind
	Region string
}

// Validate checks the kind and its region.
func (r ReportRequest) Validate() error {
	switch r.Kind {
	case ReportAll, ReportCritical:
		return nil
	case ReportRegion:
		if r.Region == "" {
			return fmt.Errorf("%w: region report requires a region", ErrInvalidInput)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown report type %q", ErrInvalidInput, r.Kind)
}

// Select returns the objects of list covered by the report.
func (r ReportRequest) Select(list []WaterObject) []WaterObject {
	out := make([]WaterObject, 0, len(list))
	for _, obj := range list {
		switch {
		case r.Kind == ReportCritical && obj.TechnicalCondition > CriticalCondition:
		case r.Kind == ReportRegion && obj.Region != r.Region:
		default:
			out = append(out, obj)
		}
	}
	return out
}

func (r ReportRequest) title() string {
	switch r.Kind {
	case ReportCritical:
		return "Critical condition"
	case ReportRegion:
		return "Region: " + r.Region
	default:
		return "All objects"
	}
}

// Report is a rendered plain-text report.
type Report struct {
	Filename string
	Body     string
	Count    int
}

// RenderReport writes the selected objects of list as a plain-text report dated now.
func RenderReport(list []WaterObject, req ReportRequest, now time.Time) Report {
	selected := req.Select(list)

	var b strings.Builder
	b.WriteString("WATER OBJECTS REPORT\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format(time.DateOnly))
	fmt.Fprintf(&b, "Report type: %s\n\n", req.title())
	fmt.Fprintf(&b, "Objects: %d\n", len(selected))
	if len(selected) > 0 {
		avg := ComputeStatistics(selected).AverageCondition
		fmt.Fprintf(&b, "Average condition: %s/5\n", formatting.Decimal(avg, 1))
	}

	for i, obj := range selected {
		priority := "N/A"
		if obj.Priority != nil {
			priority = fmt.Sprint(*obj.Priority)
		}
		fauna := "No"
		if obj.Fauna {
			fauna = "Yes"
		}

		fmt.Fprintf(&b, "\n%d. %s\n", i+1, obj.Name)
		fmt.Fprintf(&b, "   Region: %s\n", obj.Region)
		fmt.Fprintf(&b, "   Type: %s\n", obj.ResourceType)
		fmt.Fprintf(&b, "   Water type: %s\n", obj.WaterType)
		fmt.Fprintf(&b, "   Technical condition: %d/5\n", obj.TechnicalCondition)
		fmt.Fprintf(&b, "   Fauna: %s\n", fauna)
		fmt.Fprintf(&b, "   Priority: %s (%s)\n", priority, Band(obj.Priority))
	}

	return Report{
		Filename: fmt.Sprintf("report-%d.txt", now.UnixMilli()),
		Body:     b.String(),
		Count:    len(selected),
	}
}
