package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/andrewpaige1/kioku-api/repository"
	"go.uber.org/zap"
)

// DBHandler serves the user, card and deck endpoints from a Store.
type DBHandler struct {
	store *repository.Store
	log   *zap.Logger
}

func NewDBHandler(store *repository.Store, log *zap.Logger) *DBHandler {
	return &DBHandler{store: store, log: log}
}

// request bodies report missing required fields after decoding
type request interface {
	validate() error
}

// decode reads the JSON body into req. Syntax errors answer 400; type
// mismatches and missing required fields answer 422. Unknown fields are
// ignored.
func (h *DBHandler) decode(w http.ResponseWriter, r *http.Request, op string, req request) bool {
	err := json.NewDecoder(r.Body).Decode(req)
	if err == nil {
		err = req.validate()
	}
	if err == nil {
		return true
	}

	var syntaxErr *json.SyntaxError
	status := http.StatusUnprocessableEntity
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		status = http.StatusBadRequest
	}
	h.log.Debug(op+": invalid request body", zap.Error(err))
	http.Error(w, fmt.Sprintf("Invalid request body: %v", err), status)
	return false
}

// writeStoreError maps repository errors onto HTTP statuses. Unexpected
// errors answer 500 with the store error text appended.
func (h *DBHandler) writeStoreError(w http.ResponseWriter, op, message string, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrCardNotFound),
		errors.Is(err, repository.ErrDeckNotFound),
		errors.Is(err, repository.ErrReferenceMissing):
		http.Error(w, fmt.Sprintf("%s - %v", message, err), http.StatusNotFound)
	case errors.Is(err, repository.ErrUsernameTaken),
		errors.Is(err, repository.ErrUserHasDependents):
		http.Error(w, fmt.Sprintf("%s - %v", message, err), http.StatusConflict)
	default:
		h.log.Error(op+": "+message, zap.Error(err))
		http.Error(w, fmt.Sprintf("%s - %v", message, err), http.StatusInternalServerError)
	}
}

// writeListError answers a failed full-table read with 404.
func (h *DBHandler) writeListError(w http.ResponseWriter, op, entity string, err error) {
	h.log.Error(op+": failed to list "+entity, zap.Error(err))
	http.Error(w, fmt.Sprintf("Could not find any %s in the database - %v", entity, err), http.StatusNotFound)
}

func (h *DBHandler) writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn(op+": failed to encode response", zap.Error(err))
	}
}

func missingField(name string) error {
	return fmt.Errorf("missing field `%s`", name)
}

// optionalString tells an absent JSON key apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
