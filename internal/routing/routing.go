package routing

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/idtoken/pkg/authn"
)

// WhoAmIResponse is the body served by GET /api/whoami
type WhoAmIResponse struct {
	Subject string `json:"subject"`
	UserID  string `json:"uid"`
	Expires int64  `json:"exp"`
}

// BuildRouter mounts the health check and, behind the verifier's
// middleware, the identity echo endpoint.
func BuildRouter(
	verifier *authn.Verifier,
	logger *zap.Logger,
) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", health).Methods(http.MethodGet)

	// routes for api
	s := r.PathPrefix("/api/").
		Methods(http.MethodGet).
		Subrouter()
	s.Use(verifier.Middleware())
	s.HandleFunc("/whoami", whoAmI(logger))

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func whoAmI(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authn.IdentityFromContext(r.Context())
		if !ok {
			logger.Error("whoami reached without identity", zap.String("path", r.URL.Path))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		returnJson(WhoAmIResponse{
			Subject: identity.Subject,
			UserID:  identity.UserID,
			Expires: identity.Expiration.Unix(),
		}, w)
	}
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
