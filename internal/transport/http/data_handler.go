package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "lomacli/internal/errors"
	appmw "lomacli/internal/middleware"
	"lomacli/internal/services"
)

// DataHandler handles the dashboard's data endpoints
type DataHandler struct {
	service      DataServiceInterface
	validation   *appmw.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DataServiceInterface, validation *appmw.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		validation:   validation,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/filters", h.GetFilters)

	// Body-carrying endpoints must declare a JSON payload. Reload takes no
	// body and stays outside the group.
	r.Group(func(r chi.Router) {
		r.Use(appmw.ContentTypeValidator("application/json"))
		r.Post("/series", h.GetSeries)
		r.Post("/comparison", h.GetComparison)
		r.Post("/table", h.GetTable)
		r.Post("/export", h.Export)
	})

	r.Post("/reload", h.Reload)

	return r
}

// GetFilters handles GET /api/data/filters
func (h *DataHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.GetFilters(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, meta)
}

// GetSeries handles POST /api/data/series
func (h *DataHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindSeriesRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetSeries(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logRequest(r, "series", req, len(res.Rows))
	render.JSON(w, r, res)
}

// GetComparison handles POST /api/data/comparison
func (h *DataHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindSeriesRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetComparison(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logRequest(r, "comparison", req, len(res.Rows))
	render.JSON(w, r, res)
}

// GetTable handles POST /api/data/table
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindSeriesRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetTable(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logRequest(r, "table", req, res.Total)
	render.JSON(w, r, res)
}

// Export handles POST /api/data/export, streaming the filtered table as an
// Excel workbook
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindSeriesRequest(w, r)
	if !ok {
		return
	}

	res, err := h.service.ExportXLSX(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logRequest(r, "export", req, len(res.Content))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(res.Content)))
	w.Write(res.Content)
}

// Reload handles POST /api/data/reload
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset reloaded",
		slog.String("request_id", appmw.GetReqID(r.Context())))

	render.JSON(w, r, map[string]interface{}{"success": true})
}

// bindSeriesRequest decodes and validates the shared request body of the
// series, comparison, table and export endpoints.
func (h *DataHandler) bindSeriesRequest(w http.ResponseWriter, r *http.Request) (services.SeriesRequest, bool) {
	var req services.SeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return req, false
	}

	if err := h.validation.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return req, false
	}

	return req, true
}

func (h *DataHandler) logRequest(r *http.Request, view string, req services.SeriesRequest, resultSize int) {
	h.logger.InfoContext(r.Context(), "data query served",
		slog.String("request_id", appmw.GetReqID(r.Context())),
		slog.String("view", view),
		slog.String("level", req.Level),
		slog.Int("areas", len(req.Areas)),
		slog.String("metric", req.Metric),
		slog.Int("result_size", resultSize),
	)
}
