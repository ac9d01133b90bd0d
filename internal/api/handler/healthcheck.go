package handler

import (
	"net/http"
	"time"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONResponse(w, map[string]string{
			"status":  "ok",
			"service": "crm-analytics-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}
