package calculator

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"rechner-api/internal/handlers"
	"rechner-api/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const msgStoreFailed = "Fehler beim Einfügen in die Datenbank"

// Handler serves the calculate endpoint. Every successful evaluation is
// handed to the Recorder before the response is written.
type Handler struct {
	recorder Recorder
}

// NewHandler creates a calculate handler persisting through rec.
func NewHandler(rec Recorder) *Handler {
	return &Handler{recorder: rec}
}

// Calculate handles GET /api/calculate?num1=<n>&num2=<n>&op=<+|-|*|/>
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	q := r.URL.Query()

	a, errA := ParseOperand(q.Get("num1"))
	b, errB := ParseOperand(q.Get("num2"))
	if err := errors.Join(errA, errB); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", ErrInvalidOperand.Error(),
			fmt.Errorf("num1=%q num2=%q: %w", q.Get("num1"), q.Get("num2"), err), http.StatusBadRequest, w)
		return
	}

	op, err := ParseOperator(q.Get("op"))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", err.Error(),
			fmt.Errorf("op=%q: %w", q.Get("op"), err), http.StatusBadRequest, w)
		return
	}

	opName := op.Name()
	span.SetName(fmt.Sprintf("calculator.%s", opName))
	span.SetAttributes(
		attribute.String("calculator.operation", opName),
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	start := time.Now()

	result, err := Evaluate(a, b, op)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	if err := h.recorder.Record(ctx, Calculation{A: a, B: b, Op: op, Result: result}); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, msgStoreFailed, err, http.StatusInternalServerError, w)
		return
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{Result: result})
}
