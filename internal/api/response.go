package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/services"
)

// statusFor maps engine error kinds onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrIllegalStateTransition),
		errors.Is(err, services.ErrSchedulingConflict),
		errors.Is(err, services.ErrCapacityExhausted),
		errors.Is(err, services.ErrBlockedByDependents),
		errors.Is(err, services.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, initTime time.Time, err error, message string) {
	common.RespondError(w, initTime, err, message, services.ErrorCode(err), statusFor(err))
}

func respondBadRequest(w http.ResponseWriter, initTime time.Time, message string) {
	common.RespondError(w, initTime, nil, message, constants.ErrCodeInvalidField, http.StatusBadRequest)
}

// decodeJSON decodes a request body, rejecting unknown fields
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func respondOK(w http.ResponseWriter, initTime time.Time, message string, data any) {
	common.RespondSuccess(w, initTime, message, data)
}

func respondCreated(w http.ResponseWriter, initTime time.Time, message string, data any) {
	common.RespondSuccess(w, initTime, message, data, http.StatusCreated)
}
