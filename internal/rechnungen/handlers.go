package rechnungen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"rechner-api/internal/calculator"
	"rechner-api/internal/handlers"
	"rechner-api/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("rechnungen")

// Handler exposes a Service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the Rechnungen HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/rechnungen
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "list")
	defer span.End()

	start := time.Now()
	records, err := h.svc.List(ctx)
	if err != nil {
		fail(ctx, span, logger, "list", err, w)
		return
	}

	span.SetAttributes(attribute.Int("rechnungen.count", len(records)))
	succeed(ctx, span, "list", start)
	handlers.WriteJSON(w, http.StatusOK, records)
}

// Get handles GET /api/rechnungen/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "get")
	defer span.End()

	id, err := idParam(r, span)
	if err != nil {
		fail(ctx, span, logger, "get", err, w)
		return
	}

	start := time.Now()
	rec, err := h.svc.Get(ctx, id)
	if err != nil {
		fail(ctx, span, logger, "get", err, w)
		return
	}

	succeed(ctx, span, "get", start)
	handlers.WriteJSON(w, http.StatusOK, rec)
}

// Create handles POST /api/rechnungen
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "create")
	defer span.End()

	a, b, op, err := decodeRequest(r)
	if err != nil {
		fail(ctx, span, logger, "create", err, w)
		return
	}

	start := time.Now()
	rec, err := h.svc.Create(ctx, a, b, op)
	if err != nil {
		fail(ctx, span, logger, "create", err, w)
		return
	}

	span.SetAttributes(attribute.Int64("rechnung.id", rec.ID))
	succeed(ctx, span, "create", start)

	logger.Info("rechnung created",
		zap.Int64("id", rec.ID),
		zap.String("operator", rec.Operator),
		zap.Float64("result", rec.Result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, rec)
}

// Update handles PUT /api/rechnungen/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "update")
	defer span.End()

	id, err := idParam(r, span)
	if err != nil {
		fail(ctx, span, logger, "update", err, w)
		return
	}

	a, b, op, err := decodeRequest(r)
	if err != nil {
		fail(ctx, span, logger, "update", err, w)
		return
	}

	start := time.Now()
	rec, err := h.svc.Update(ctx, id, a, b, op)
	if err != nil {
		fail(ctx, span, logger, "update", err, w)
		return
	}

	succeed(ctx, span, "update", start)

	logger.Info("rechnung updated",
		zap.Int64("id", rec.ID),
		zap.String("operator", rec.Operator),
		zap.Float64("result", rec.Result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/rechnungen/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "delete")
	defer span.End()

	id, err := idParam(r, span)
	if err != nil {
		fail(ctx, span, logger, "delete", err, w)
		return
	}

	start := time.Now()
	if err := h.svc.Delete(ctx, id); err != nil {
		fail(ctx, span, logger, "delete", err, w)
		return
	}

	succeed(ctx, span, "delete", start)

	logger.Info("rechnung deleted",
		zap.Int64("id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Rechnung %d deleted", id),
	})
}

func startSpan(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("rechnungen.%s", opName),
		trace.WithAttributes(
			attribute.String("rechnungen.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	return ctx, span, logger
}

func succeed(ctx context.Context, span trace.Span, opName string, start time.Time) {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	requestCounter.Add(ctx, 1, attrs)
	requestHistogram.Record(ctx, elapsed, attrs)

	span.SetStatus(codes.Ok, "")
}

// fail maps service errors onto HTTP statuses. Storage failures are logged
// with their cause but answered with a generic message.
func fail(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, calculator.ErrInvalidOperand),
		errors.Is(err, calculator.ErrInvalidOperator),
		errors.Is(err, calculator.ErrDivisionByZero),
		errors.Is(err, calculator.ErrOverflow),
		errors.Is(err, errMissingFields),
		errors.Is(err, errInvalidID):
		status, msg = http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, errInvalidBody):
		status, msg = http.StatusBadRequest, errInvalidBody.Error()
	case errors.Is(err, ErrNotFound):
		status, msg = http.StatusNotFound, ErrNotFound.Error()
	}

	observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
}

// rootMessage returns the message of the sentinel at the bottom of err.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func idParam(r *http.Request, span trace.Span) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q: %w", raw, errInvalidID)
	}
	span.SetAttributes(attribute.Int64("rechnung.id", id))
	return id, nil
}

func decodeRequest(r *http.Request) (float64, float64, calculator.Operator, error) {
	var req RechnungRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, 0, "", fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return req.operands()
}
