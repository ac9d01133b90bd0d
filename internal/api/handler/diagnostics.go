package handler

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/internal/usecases/reporting"
	"github.com/almahq/crm-analytics-api/pkg/apiErrors"
)

// GetLinkageReport serve o relatório de cobertura de vínculo Pessoa→Empresa
// mais recente
func GetLinkageReport(service *reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Linkage()
		if err != nil {
			logrus.Error(err)

			if strings.Contains(err.Error(), "nenhum relatório de vínculo encontrado") {
				apiErrors.WriteError(w, apiErrors.ErrSnapshotUnavailable, "Nenhum relatório de vínculo disponível. Execute o diagnóstico primeiro", nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler relatório de vínculo", nil)
			return
		}

		writeJSONResponse(w, report)
	}
}
