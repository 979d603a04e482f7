package hardware

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gidroatlas/gidroatlas/pkg/query"
	"github.com/gidroatlas/gidroatlas/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "hardware", "h").
	Project("id", "ID").
	Project("humidity", "Humidity").
	Project("temperature", "Temperature").
	Project("remote_control", "RemoteControl").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var returning = projection.Returning()

func scanHardware(s repository.Scanner) (Hardware, error) {
	var h Hardware
	err := s.Scan(&h.ID, &h.Humidity, &h.Temperature, &h.RemoteControl, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates the hardware System backed by db.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{db: db, logger: logger.With("system", "hardware")}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(ctx context.Context) (*Hardware, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", DeviceID)

	h, err := repository.QueryOne(ctx, r.db, q, args, scanHardware)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}
	return &h, nil
}

func (r *repo) SetRemoteControl(ctx context.Context, cmd RemoteCommand) (*Hardware, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := "UPDATE hardware SET remote_control = $2, updated_at = NOW() WHERE id = $1 " + returning
	h, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Hardware, error) {
		return repository.QueryOne(ctx, tx, q, []any{DeviceID, *cmd.RemoteControl}, scanHardware)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	r.logger.Info("remote control set", "value", h.RemoteControl)
	return &h, nil
}

func (r *repo) RecordReadings(ctx context.Context, cmd ReadingsCommand) (*Hardware, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := "UPDATE hardware SET humidity = $2, temperature = $3, updated_at = NOW() WHERE id = $1 " + returning
	h, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Hardware, error) {
		return repository.QueryOne(ctx, tx, q, []any{DeviceID, cmd.Humidity, cmd.Temperature}, scanHardware)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidInput)
	}

	r.logger.Debug("readings recorded", "humidity", h.Humidity, "temperature", h.Temperature)
	return &h, nil
}
