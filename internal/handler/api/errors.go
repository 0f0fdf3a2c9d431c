package api

import (
	"context"
	"errors"
	"net/http"

	"UsageCast/internal/domain/models"
	xhttp "UsageCast/pkg/http"
)

// toAppError maps pipeline errors onto HTTP statuses: bad input is 400,
// input the model cannot work with is 422, everything else is 500.
func toAppError(err error) *xhttp.AppError {
	var (
		malformed    *models.MalformedInputError
		invalid      *models.InvalidInputError
		insufficient *models.InsufficientDataError
		fitting      *models.ModelFittingError
	)
	switch {
	case errors.As(err, &malformed):
		return xhttp.NewAppError("ERR_MALFORMED_INPUT", "", malformed.Error(), http.StatusBadRequest).
			WithParam("line", malformed.Line).
			WithError(err)
	case errors.As(err, &invalid):
		return xhttp.BadRequestError(invalid.Message).WithError(err)
	case errors.As(err, &insufficient):
		return xhttp.UnprocessableError("ERR_INSUFFICIENT_DATA", insufficient.Error()).
			WithParam("have", insufficient.Have).
			WithParam("need", insufficient.Need).
			WithError(err)
	case errors.As(err, &fitting):
		return xhttp.UnprocessableError("ERR_MODEL_FITTING", fitting.Error()).WithError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return xhttp.InternalError("request timed out").WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}
