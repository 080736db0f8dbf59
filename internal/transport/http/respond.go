package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/inkpost/inkpost/internal/pkg/httperr"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON parses and validates a request body.
func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return httperr.BadRequest("invalid JSON body")
	}
	if err := validate.Struct(out); err != nil {
		return httperr.BadRequest(err.Error())
	}
	return nil
}
