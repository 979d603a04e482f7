package objects

import (
	"github.com/gidroatlas/gidroatlas/pkg/query"
	"github.com/gidroatlas/gidroatlas/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "water_objects", "w").
	Project("id", "ID").
	Project("name", "Name").
	Project("region", "Region").
	Project("resource_type", "ResourceType").
	Project("water_type", "WaterType").
	Project("fauna", "Fauna").
	Project("passport_date", "PassportDate").
	Project("technical_condition", "TechnicalCondition").
	Project("latitude", "Latitude").
	Project("longitude", "Longitude").
	Project("pdf_url", "PDFURL").
	Project("priority", "Priority").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var insertionOrder = query.SortField{Field: "CreatedAt"}

var returning = projection.Returning()

func scanObject(s repository.Scanner) (WaterObject, error) {
	var o WaterObject
	err := s.Scan(
		&o.ID,
		&o.Name,
		&o.Region,
		&o.ResourceType,
		&o.WaterType,
		&o.Fauna,
		&o.PassportDate,
		&o.TechnicalCondition,
		&o.Latitude,
		&o.Longitude,
		&o.PDFURL,
		&o.Priority,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
