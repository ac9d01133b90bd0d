package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/internal/usecases/reporting"
	"github.com/almahq/crm-analytics-api/pkg/apiErrors"
)

// GetVolumetrics serve a visão de volumetria de CX mais recente
func GetVolumetrics(service *reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Volumetrics(parseLimit(r))
		if err != nil {
			writeViewError(w, err)
			return
		}

		writeJSONResponse(w, view)
	}
}

// GetFriction serve a visão de heurísticas de atrito mais recente
func GetFriction(service *reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := service.Friction(parseLimit(r))
		if err != nil {
			writeViewError(w, err)
			return
		}

		writeJSONResponse(w, view)
	}
}

// GetTemporalHeat serve a grade de calor temporal mais recente
func GetTemporalHeat(service *reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := service.TemporalHeat(parseLimit(r))
		if err != nil {
			writeViewError(w, err)
			return
		}

		writeJSONResponse(w, view)
	}
}

// GetAnalyticsSummary serve o sumário das visões gold disponíveis
func GetAnalyticsSummary(service *reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Summarize()
		if err != nil {
			writeViewError(w, err)
			return
		}

		writeJSONResponse(w, summary)
	}
}

// parseLimit lê o parâmetro opcional limit; ausente ou inválido vira zero
// (sem corte).
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}

	return limit
}

// writeViewError distingue snapshot ausente (estado esperado antes da
// primeira execução do pipeline) de falha de leitura.
func writeViewError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	if strings.Contains(err.Error(), "nenhum snapshot encontrado") {
		apiErrors.WriteError(w, apiErrors.ErrSnapshotUnavailable, "Nenhum snapshot disponível. Execute o pipeline primeiro", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler snapshot", nil)
}

func writeJSONResponse(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
	}
}
