package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"star-catalog-api/internal/model"
	"star-catalog-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates service and repository errors to the uniform
// {message, status_code} wire shape.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.StatusCode, apiErr)
		return
	}

	switch {
	case errors.Is(err, model.ErrEmailAlreadyTaken):
		writeJSON(w, http.StatusConflict, apierror.Conflict("email already taken"))
	case errors.Is(err, model.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, apierror.NotFound("user not found"))
	case errors.Is(err, model.ErrPersonNotFound):
		writeJSON(w, http.StatusNotFound, apierror.NotFound("person not found"))
	case errors.Is(err, model.ErrPlanetNotFound):
		writeJSON(w, http.StatusNotFound, apierror.NotFound("planet not found"))
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenRevoked):
		writeJSON(w, http.StatusUnauthorized, apierror.Unauthenticated())
	case errors.Is(err, model.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, apierror.BadRequest("invalid input"))
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError,
			apierror.New("internal server error", http.StatusInternalServerError))
	}
}
