package objects

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/pkg/pagination"
	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

// System defines the public contract for water object operations.
type System interface {
	Handler() *Handler

	// All returns every object with priorities computed against the current time.
	All(ctx context.Context) ([]WaterObject, error)
	// List annotates, filters, orders, and pages the registry.
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Find(ctx context.Context, id uuid.UUID) (*WaterObject, error)
	Create(ctx context.Context, cmd Command) (*WaterObject, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*WaterObject, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Recalculate recomputes every priority as of now and persists the ones
	// that changed. It returns the number of rows updated.
	Recalculate(ctx context.Context, now time.Time) (int, error)

	Regions(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Report(ctx context.Context, req ReportRequest) (*Report, error)

	UploadPassport(ctx context.Context, id uuid.UUID, cmd PassportCommand) (*Passport, error)
	DownloadPassport(ctx context.Context, id uuid.UUID) (*storage.Blob, error)
}

// ListRequest selects a page of the object list.
type ListRequest struct {
	Filters   FilterState
	Layers    []ResourceType
	SortField string
	Direction Direction
	Page      int
	PageSize  int
}

// ListResult is a page of objects plus the object matching the search query, if any.
type ListResult struct {
	pagination.PageResult[WaterObject]
	Highlighted *WaterObject `json:"highlighted"`
}

// Query runs the in-memory list pipeline over an annotated registry:
// filter, order, pick the highlighted object, apply layers, and page.
// The highlight is the first search match in display order and ignores layers.
func (req ListRequest) Query(list []WaterObject, paging pagination.Config) ListResult {
	field := req.SortField
	if field == "" {
		field = DefaultSortField
	}
	dir := req.Direction
	if dir == "" {
		dir = Desc
	}

	sorted := SortObjects(ApplyFilters(list, req.Filters), field, dir)
	highlighted := Highlighted(sorted, req.Filters.SearchQuery)
	ordered := FilterLayers(sorted, req.Layers)

	page := pagination.PageRequest{Page: req.Page, PageSize: req.PageSize}
	page.Normalize(paging)

	return ListResult{
		PageResult:  pagination.Slice(ordered, page),
		Highlighted: highlighted,
	}
}
