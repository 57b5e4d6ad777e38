package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clayfin/hr-records-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func pathID(r *http.Request, name string) (int64, error) {
	id, ok := validator.ParseID(chi.URLParam(r, name))
	if !ok {
		return 0, validator.ValidationErrors{{
			Field:   name,
			Message: name + " must be a positive integer",
		}}
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, validator.ValidationErrors{{
			Field:   name,
			Message: name + " must be an integer",
		}}
	}
	return n, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
