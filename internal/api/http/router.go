package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all API routes. Everything under /api/v1 except the health
// check requires a valid bearer token.
func NewRouter(
	auth *AuthMiddleware,
	rentals *RentalHandler,
	extensions *ExtensionHandler,
	notifications *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Handler)

	api.HandleFunc("/rentals/quote", rentals.Quote).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", rentals.RecordReturn).Methods(http.MethodPost)

	api.HandleFunc("/rentals/{id:[0-9]+}/extensions/quote", extensions.Quote).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/extensions", extensions.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/extensions", extensions.ListByRental).Methods(http.MethodGet)
	api.HandleFunc("/extensions/{id:[0-9]+}/approve", extensions.Approve).Methods(http.MethodPost)
	api.HandleFunc("/extensions/{id:[0-9]+}/reject", extensions.Reject).Methods(http.MethodPost)

	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
