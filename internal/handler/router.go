package handler

import (
	"net/http"

	"wordmine-server/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(analyzeHandler *AnalyzeHandler, logger domain.Logger) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"wordmine-server"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/analyze_pdf", analyzeHandler.AnalyzePDF).Methods(http.MethodPost)

	// Any origin is accepted. With credentials allowed the origin is echoed
	// back instead of "*".
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})

	var h http.Handler = router
	h = Recovery(logger)(h)
	h = AccessLog(logger)(h)
	h = RequestID(h)
	return c.Handler(h)
}
