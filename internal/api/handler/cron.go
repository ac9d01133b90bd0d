package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/infrastructure/repository"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/scheduler"
	"github.com/almahq/crm-analytics-api/pkg/apiErrors"
	"github.com/almahq/crm-analytics-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypePipeline = "pipeline"
	CronJobTypeAll      = "all"
)

const defaultRunHistoryLimit = 20

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	PipelineSyncService *scheduler.PipelineSyncService
	PipelineRunRepo     repository.PipelineRunRepository
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - somente administradores e supervisores
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || (userClaims.UserRoleID != middleware.RoleAdmin && userClaims.UserRoleID != middleware.RoleSupervisor) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores e supervisores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypePipeline, CronJobTypeAll:
			if services.PipelineSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do pipeline não disponível", nil)
				return
			}
			if !services.PipelineSyncService.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrPipelineRunning, "Já existe uma execução do pipeline em andamento", nil)
				return
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: pipeline, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - somente administradores e supervisores
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || (userClaims.UserRoleID != middleware.RoleAdmin && userClaims.UserRoleID != middleware.RoleSupervisor) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores e supervisores podem verificar status de cron jobs", nil)
			return
		}

		response := map[string]any{
			"pipeline": services.PipelineSyncService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// ListPipelineRuns retorna o histórico das execuções do pipeline
func ListPipelineRuns(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRunHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		runs, err := services.PipelineRunRepo.ListRecentRuns(limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar execuções do pipeline", nil)
			return
		}

		writeJSONResponse(w, runs)
	}
}
