package objects

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/auth"
	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/pagination"
	"github.com/gidroatlas/gidroatlas/pkg/routes"
)

// Handler provides HTTP endpoints for water objects.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "objects"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group for water object endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/objects",
		Tags:    []string{"Objects"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, Middleware: auth.Guest, Doc: docs.list},
			{Method: "GET", Pattern: "/regions", Handler: h.Regions, Middleware: auth.Guest, Doc: docs.regions},
			{Method: "GET", Pattern: "/statistics", Handler: h.Statistics, Middleware: auth.Guest, Doc: docs.statistics},
			{Method: "GET", Pattern: "/report", Handler: h.Report, Middleware: auth.Guest, Doc: docs.report},
			{Method: "POST", Pattern: "/recalculate", Handler: h.Recalculate, Middleware: auth.Expert, Doc: docs.recalculate},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, Middleware: auth.Guest, Doc: docs.find},
			{Method: "POST", Pattern: "", Handler: h.Create, Middleware: auth.Expert, Doc: docs.create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, Middleware: auth.Expert, Doc: docs.update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, Middleware: auth.Expert, Doc: docs.remove},
			{Method: "POST", Pattern: "/{id}/passport", Handler: h.UploadPassport, Middleware: auth.Expert, Doc: docs.uploadPassport},
			{Method: "GET", Pattern: "/{id}/passport", Handler: h.DownloadPassport, Middleware: auth.Guest, Doc: docs.downloadPassport},
		},
	}
}

// List returns the filtered, ordered, and paged object list. The
// technical_condition and passport date filters apply only to experts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page := pagination.PageRequestFromQuery(values, h.pagination)

	filters := FilterStateFromQuery(values)
	if !auth.IsExpert(r.Context()) {
		filters = filters.WithoutExpertFilters()
	}

	req := ListRequest{
		Filters:   filters,
		Layers:    ParseLayers(values.Get("layers")),
		SortField: values.Get("sort_by"),
		Direction: ParseDirection(values.Get("order")),
		Page:      page.Page,
		PageSize:  page.PageSize,
	}

	result, err := h.sys.List(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single object with its current priority.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	obj, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, obj)
}

// Create registers a new object and returns it with its priority.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[Command](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	obj, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, obj)
}

// Update replaces the editable fields of an object.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, err := handlers.DecodeJSON[Command](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	obj, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, obj)
}

// Delete removes an object and its passport.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Recalculate recomputes and persists every priority.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	updated, err := h.sys.Recalculate(r.Context(), time.Now())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// Regions returns the distinct regions, sorted.
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.sys.Regions(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, regions)
}

// Statistics returns registry aggregates.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sys.Statistics(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Report returns a plain-text report as an attachment. The type query
// parameter selects all (default), critical, or region.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req := ReportRequest{
		Kind:   ReportKind(r.URL.Query().Get("type")),
		Region: r.URL.Query().Get("region"),
	}
	if req.Kind == "" {
		req.Kind = ReportAll
	}

	report, err := h.sys.Report(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondText(w, http.StatusOK, report.Filename, report.Body)
}

// UploadPassport accepts a multipart PDF in the file field.
func (h *Handler) UploadPassport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	passport, err := h.sys.UploadPassport(r.Context(), id, PassportCommand{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, passport)
}

// DownloadPassport streams the stored passport PDF.
func (h *Handler) DownloadPassport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	blob, err := h.sys.DownloadPassport(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("passport stream interrupted", "id", id, "error", err)
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return uuid.Nil, false
	}
	return id, true
}
