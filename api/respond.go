package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus writes data with an explicit status code. The Content-Type
// header is set before the status line goes out; headers written after
// WriteHeader are discarded.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, statusCode int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteMessage answers with a plain human-readable message body.
func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.WriteJSON(w, map[string]string{"message": message})
}

// WriteError is the single place where domain errors become HTTP status
// codes and bodies. Handlers never set failure statuses themselves.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return a generic internal error so no
	// internal detail leaks into the response.
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"error":  "An unexpected error occurred",
			"status": "error",
		})
		return
	}

	// Partial updates are a reportable inconsistency; always log the chain.
	if errs.IsPartialUpdate(apiErr) {
		r.logger.Error().Str("chain", apiErr.GetFullError()).Msg("partial update detected")
	} else if apiErr.Cause != nil {
		r.logger.Error().Str("chain", apiErr.GetFullError()).Msg(apiErr.Error())
	}

	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}
