package objects

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gidroatlas/gidroatlas/pkg/formatting"
	"github.com/gidroatlas/gidroatlas/pkg/pagination"
	"github.com/gidroatlas/gidroatlas/pkg/query"
	"github.com/gidroatlas/gidroatlas/pkg/repository"
	"github.com/gidroatlas/gidroatlas/pkg/storage"
)

// Config bounds the side effects of the object system.
type Config struct {
	Pagination     pagination.Config
	MaxUploadSize  int64
	MaxConcurrency int
}

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
	cfg     Config
	now     func() time.Time
}

// New creates the water object System backed by db and blob storage.
func New(db *sql.DB, store storage.System, logger *slog.Logger, cfg Config) System {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "objects"),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.cfg.Pagination, r.cfg.MaxUploadSize)
}

func (r *repo) load(ctx context.Context) ([]WaterObject, error) {
	q, args := query.NewBuilder(projection, insertionOrder).Build()
	list, err := repository.QueryMany(ctx, r.db, q, args, scanObject)
	if err != nil {
		return nil, fmt.Errorf("query water objects: %w", err)
	}
	return list, nil
}

func (r *repo) All(ctx context.Context) ([]WaterObject, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return Annotate(list, r.now()), nil
}

func (r *repo) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	list, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	result := req.Query(list, r.cfg.Pagination)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*WaterObject, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanObject)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	o.Priority = ComputePriority(o, r.now())
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*WaterObject, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO water_objects(id, name, region, resource_type, water_type, fauna, passport_date,
			technical_condition, latitude, longitude, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		` + returning

	priority := ComputePriority(WaterObject{
		PassportDate:       cmd.PassportDate,
		TechnicalCondition: cmd.TechnicalCondition,
	}, r.now())

	args := []any{
		uuid.New(),
		cmd.Name,
		cmd.Region,
		cmd.ResourceType,
		cmd.WaterType,
		cmd.Fauna,
		cmd.PassportDate,
		cmd.TechnicalCondition,
		cmd.Latitude,
		cmd.Longitude,
		priority,
	}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (WaterObject, error) {
		return repository.QueryOne(ctx, tx, q, args, scanObject)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	r.logger.Info("water object created", "id", o.ID, "name", o.Name)
	return &o, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*WaterObject, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE water_objects
		SET name = $2, region = $3, resource_type = $4, water_type = $5, fauna = $6,
			passport_date = $7, technical_condition = $8, latitude = $9, longitude = $10,
			priority = $11, updated_at = NOW()
		WHERE id = $1
		` + returning

	priority := ComputePriority(WaterObject{
		PassportDate:       cmd.PassportDate,
		TechnicalCondition: cmd.TechnicalCondition,
	}, r.now())

	args := []any{
		id,
		cmd.Name,
		cmd.Region,
		cmd.ResourceType,
		cmd.WaterType,
		cmd.Fauna,
		cmd.PassportDate,
		cmd.TechnicalCondition,
		cmd.Latitude,
		cmd.Longitude,
		priority,
	}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (WaterObject, error) {
		return repository.QueryOne(ctx, tx, q, args, scanObject)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	r.logger.Info("water object updated", "id", o.ID)
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	obj, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	err = repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM water_objects WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if obj.PDFURL != nil {
		if delErr := r.storage.Delete(ctx, *obj.PDFURL); delErr != nil {
			r.logger.Warn("passport delete failed after object delete", "key", *obj.PDFURL, "error", delErr)
		}
	}

	r.logger.Info("water object deleted", "id", id)
	return nil
}

func (r *repo) Recalculate(ctx context.Context, now time.Time) (int, error) {
	stored, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	annotated := Annotate(stored, now)
	changed := make([]WaterObject, 0, len(annotated))
	for i, obj := range annotated {
		if !samePriority(stored[i].Priority, obj.Priority) {
			changed = append(changed, obj)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrency)

	for _, obj := range changed {
		g.Go(func() error {
			err := repository.ExecExpectOne(
				gctx, r.db,
				"UPDATE water_objects SET priority = $2 WHERE id = $1",
				obj.ID, obj.Priority,
			)
			if err != nil {
				return fmt.Errorf("persist priority for %s: %w", obj.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	r.logger.Info("priorities recalculated", "objects", len(annotated), "updated", len(changed))
	return len(changed), nil
}

func (r *repo) Regions(ctx context.Context) ([]string, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return Regions(list), nil
}

func (r *repo) Statistics(ctx context.Context) (*Statistics, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStatistics(list)
	return &stats, nil
}

func (r *repo) Report(ctx context.Context, req ReportRequest) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	list, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	report := RenderReport(list, req, r.now())
	return &report, nil
}

func (r *repo) UploadPassport(ctx context.Context, id uuid.UUID, cmd PassportCommand) (*Passport, error) {
	pages, err := inspectPassport(cmd)
	if err != nil {
		return nil, err
	}

	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := passportKey(id, cmd.Filename)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), pdfContentType); err != nil {
		return nil, fmt.Errorf("upload passport: %w", err)
	}

	q := `UPDATE water_objects SET pdf_url = $2, updated_at = NOW() WHERE id = $1 ` + returning
	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (WaterObject, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, key}, scanObject)
	})
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating passport delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if old := current.PDFURL; old != nil && *old != key {
		if delErr := r.storage.Delete(ctx, *old); delErr != nil {
			r.logger.Warn("replaced passport delete failed", "key", *old, "error", delErr)
		}
	}

	size := int64(len(cmd.Data))
	r.logger.Info("passport uploaded",
		"id", id,
		"key", key,
		"pages", pages,
		"size", formatting.FormatBytes(size, 1),
	)

	o.Priority = ComputePriority(o, r.now())
	return &Passport{Object: &o, Key: key, Pages: pages, Size: size}, nil
}

func (r *repo) DownloadPassport(ctx context.Context, id uuid.UUID) (*storage.Blob, error) {
	obj, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj.PDFURL == nil {
		return nil, ErrNoPassport
	}

	blob, err := r.storage.Download(ctx, *obj.PDFURL)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoPassport
		}
		return nil, fmt.Errorf("download passport: %w", err)
	}
	return blob, nil
}

func samePriority(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func mapWriteError(err error) error {
	if repository.IsCheckViolation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
