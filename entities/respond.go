// Package entities holds helpers shared by the per-entity HTTP handlers.
package entities

import (
	"crm/database"
	"crm/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// PathObjectID parses the {name} path value. On failure it answers 400 and
// returns ok=false.
func PathObjectID(w http.ResponseWriter, r *http.Request, name string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(r.PathValue(name))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.INVALID_ID_FORMAT)
		return id, false
	}
	return id, true
}

// SendStoreError maps repository errors: ErrNotFound becomes 404 with
// notFoundMessage, anything else a 500 carrying internalErrorCode.
func SendStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string, internalErrorCode int) {
	if errors.Is(err, database.ErrNotFound) {
		utils.SendResponse(w, http.StatusNotFound, notFoundMessage, nil, 0)
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Int("code", internalErrorCode).Msg("store operation failed")
	utils.SendResponse(w, http.StatusInternalServerError, "", nil, internalErrorCode)
}

// QueryObjectIDs copies every ?param=<hex> present in the query into filter.
func QueryObjectIDs(r *http.Request, filter database.Filter, params ...string) {
	query := r.URL.Query()
	for _, param := range params {
		if value := query.Get(param); value != "" {
			if objID, err := bson.ObjectIDFromHex(value); err == nil {
				filter[param] = objID
			}
		}
	}
}

// QueryStrings copies every non-empty ?param=value into filter.
func QueryStrings(r *http.Request, filter database.Filter, params ...string) {
	query := r.URL.Query()
	for _, param := range params {
		if value := query.Get(param); value != "" {
			filter[param] = value
		}
	}
}

// QueryBool parses ?param=true|false into filter.
func QueryBool(r *http.Request, filter database.Filter, param string) {
	if value := r.URL.Query().Get(param); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			filter[param] = parsed
		}
	}
}
