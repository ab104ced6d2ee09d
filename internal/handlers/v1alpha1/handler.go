package v1alpha1

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/smartstow/move-planner/api/v1alpha1"
	"github.com/smartstow/move-planner/internal/handlers/validator"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/smartstow/move-planner/pkg/requestid"
)

type ServiceHandler struct {
	estimationSrv *service.EstimationService
	snapshotSrv   *service.SnapshotService
	reportSrv     *service.ReportService

	estimateValidator *validator.Validator
	snapshotValidator *validator.Validator
}

func NewServiceHandler(estimationService *service.EstimationService, snapshotService *service.SnapshotService, reportService *service.ReportService) *ServiceHandler {
	estimateValidator := validator.NewValidator()
	estimateValidator.Register(validator.NewEstimateValidationRules()...)

	snapshotValidator := validator.NewValidator()
	snapshotValidator.Register(validator.NewSnapshotValidationRules()...)

	return &ServiceHandler{
		estimationSrv:     estimationService,
		snapshotSrv:       snapshotService,
		reportSrv:         reportService,
		estimateValidator: estimateValidator,
		snapshotValidator: snapshotValidator,
	}
}

// Register mounts every v1 route on router.
func (h *ServiceHandler) Register(router chi.Router) {
	router.Get("/health", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimates", h.CreateEstimate)
		r.Post("/estimates/report", h.CreateEstimateReport)

		r.Get("/reference-tables", h.ListReferenceTables)
		r.Get("/reference-tables/{version}", h.GetReferenceTable)

		r.Get("/snapshots", h.ListSnapshots)
		r.Post("/snapshots", h.CreateSnapshot)
		r.Get("/snapshots/{id}", h.GetSnapshot)
		r.Put("/snapshots/{id}", h.UpdateSnapshot)
		r.Delete("/snapshots/{id}", h.DeleteSnapshot)
		r.Get("/snapshots/{id}/estimate", h.EstimateSnapshot)
	})
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, v1alpha1.Status{Status: v1alpha1.StatusOK})
}

type ErrorReply struct {
	v1alpha1.Error
	HTTPStatusCode int `json:"-"`
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	_ = render.Render(w, r, ErrorReply{
		Error:          v1alpha1.NewError(message, requestid.FromRequest(r)),
		HTTPStatusCode: status,
	})
}

// decodeBody reads a JSON body into v. An absent body is reported as such.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

var errEmptyBody = errors.New("empty body")

// respondServiceError maps a service error to a response. A missing resource named in the request body is
// the caller's mistake, so those callers pass http.StatusBadRequest as notFound. Internal failures other
// than a broken reference table are reported with fallback instead of the error text.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFound int, fallback string) {
	var (
		notFoundErr *service.ErrResourceNotFound
		invalidErr  *service.ErrInvalidInput
		formErr     *validator.ErrInvalidForm
		formatErr   *service.ErrUnsupportedFormat
		cfgErr      *reference.ErrConfiguration
	)
	switch {
	case errors.As(err, &notFoundErr):
		respondError(w, r, notFound, err.Error())
	case errors.As(err, &invalidErr), errors.As(err, &formErr), errors.As(err, &formatErr):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &cfgErr):
		respondError(w, r, http.StatusInternalServerError, err.Error())
	default:
		respondError(w, r, http.StatusInternalServerError, fallback)
	}
}
