package middlewares

import (
	"context"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type contextKey string

const (
	ActorContextKey = contextKey("actor")
	ACTOR_HEADER    = "X-Member-Id"
)

// Actor reads the acting team member from X-Member-Id. Authentication
// happens upstream; the id is only used to attribute stage history.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(ACTOR_HEADER)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := bson.ObjectIDFromHex(header)
		if err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "Cabeçalho "+ACTOR_HEADER+" inválido", nil, 0)
			return
		}

		ctx := context.WithValue(r.Context(), ActorContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ActorFromContext(ctx context.Context) *bson.ObjectID {
	id, ok := ctx.Value(ActorContextKey).(bson.ObjectID)
	if !ok {
		return nil
	}
	return &id
}
