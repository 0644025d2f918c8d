package router

import (
	"github.com/antinvestor/bkash-api/service/handler"
	"github.com/gorilla/mux"
)

func NewRouter(js *handler.JobServer, webhookPath string) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	// Health check endpoint
	router.HandleFunc("/health", handler.HealthHandler).Methods("GET")
	// bKash webhook deliveries
	router.HandleFunc(webhookPath, js.HandleWebhook).Methods("POST")
	return router
}
