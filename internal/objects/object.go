// Package objects implements the water object registry. Besides storage it
// computes inspection priorities and performs the in-memory filtering,
// ordering, statistics, and reporting that back the object list endpoints.
package objects

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResourceType classifies the water body.
type ResourceType string

const (
	Lake      ResourceType = "lake"
	Canal     ResourceType = "canal"
	Reservoir ResourceType = "reservoir"
)

// ResourceTypes lists every resource type in display order.
var ResourceTypes = []ResourceType{Lake, Canal, Reservoir}

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	switch t {
	case Lake, Canal, Reservoir:
		return true
	}
	return false
}

// WaterType distinguishes fresh from non-fresh water.
type WaterType string

const (
	Fresh    WaterType = "fresh"
	NonFresh WaterType = "non-fresh"
)

// WaterTypes lists every water type in display order.
var WaterTypes = []WaterType{Fresh, NonFresh}

// Valid reports whether t is a known water type.
func (t WaterType) Valid() bool {
	return t == Fresh || t == NonFresh
}

// WaterObject is a registered water body. PassportDate holds the raw stored
// value and may be empty or unparseable. Priority is derived; see ComputePriority.
type WaterObject struct {
	ID                 uuid.UUID    `json:"id"`
	Name               string       `json:"name"`
	Region             string       `json:"region"`
	ResourceType       ResourceType `json:"resource_type"`
	WaterType          WaterType    `json:"water_type"`
	Fauna              bool         `json:"fauna"`
	PassportDate       string       `json:"passport_date"`
	TechnicalCondition int          `json:"technical_condition"`
	Latitude           float64      `json:"latitude"`
	Longitude          float64      `json:"longitude"`
	PDFURL             *string      `json:"pdf_url"`
	Priority           *int         `json:"priority"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Command carries the editable fields of a water object for create and update.
type Command struct {
	Name               string       `json:"name"`
	Region             string       `json:"region"`
	ResourceType       ResourceType `json:"resource_type"`
	WaterType          WaterType    `json:"water_type"`
	Fauna              bool         `json:"fauna"`
	PassportDate       string       `json:"passport_date"`
	TechnicalCondition int          `json:"technical_condition"`
	Latitude           float64      `json:"latitude"`
	Longitude          float64      `json:"longitude"`
}

// Validate trims text fields in place and checks every field.
func (c *Command) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Region = strings.TrimSpace(c.Region)
	c.PassportDate = strings.TrimSpace(c.PassportDate)

	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case c.Region == "":
		return fmt.Errorf("%w: region is required", ErrInvalidInput)
	case !c.ResourceType.Valid():
		return fmt.Errorf("%w: unknown resource_type %q", ErrInvalidInput, c.ResourceType)
	case !c.WaterType.Valid():
		return fmt.Errorf("%w: unknown water_type %q", ErrInvalidInput, c.WaterType)
	case c.TechnicalCondition < 1 || c.TechnicalCondition > 5:
		return fmt.Errorf("%w: technical_condition must be between 1 and 5", ErrInvalidInput)
	case c.Latitude < -90 || c.Latitude > 90:
		return fmt.Errorf("%w: latitude out of range", ErrInvalidInput)
	case c.Longitude < -180 || c.Longitude > 180:
		return fmt.Errorf("%w: longitude out of range", ErrInvalidInput)
	}

	if c.PassportDate != "" {
		if _, ok := ParsePassportDate(c.PassportDate); !ok {
			return fmt.Errorf("%w: passport_date %q is not a date", ErrInvalidInput, c.PassportDate)
		}
	}
	return nil
}
