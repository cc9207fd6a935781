package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/today-api/internal/domain/football"
	"github.com/riskibarqy/today-api/internal/usecase"
)

type mappedError struct {
	HTTPStatus int
	Reason     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeEnvelope always answers 200: a degraded upstream shows up as an empty
// response list, or an error field for a failed enrichment batch.
func writeEnvelope(ctx context.Context, w http.ResponseWriter, env football.Envelope) {
	writeJSON(ctx, w, http.StatusOK, env)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	env := football.WithError(err.Error())
	if mapped.HTTPStatus == http.StatusInternalServerError {
		env = football.WithError(mapped.Reason)
	}
	writeJSON(ctx, w, mapped.HTTPStatus, env)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, football.WithError("internal server error"))
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalid input"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internal server error"}
	}
}
