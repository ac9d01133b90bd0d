// Package diagnosing mede a cobertura do vínculo entre as referências de
// cliente das interações e o cadastro de contatos. O resultado é um
// relatório somente leitura: referências não resolvidas viram métrica,
// nunca correção automática.
package diagnosing

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
	"github.com/almahq/crm-analytics-api/pkg/utils"
)

type Service struct {
	silver *snapshot.Store
	gold   *snapshot.Store
}

func NewService(silver, gold *snapshot.Store) *Service {
	return &Service{silver: silver, gold: gold}
}

// Run resolve cada referência de cliente do snapshot silver mais recente
// contra o cadastro e grava o relatório datado na camada gold.
func (s *Service) Run(runDate string) (*domain.LinkageReport, error) {
	logrus.WithField("run_date", runDate).Info("Iniciando diagnóstico de vínculo Pessoa→Empresa")

	interactions, _, err := snapshot.ReadLatest[domain.Interaction](s.silver, refining.TableInteractions)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler interações do silver: %w", err)
	}

	contacts, _, err := snapshot.ReadLatest[domain.Contact](s.silver, refining.TableContacts)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler contatos do silver: %w", err)
	}

	registry := make(map[string]domain.Contact, len(contacts))
	for _, contact := range contacts {
		registry[contact.ID] = contact
	}

	report := &domain.LinkageReport{RunDate: runDate, TotalInteractions: len(interactions)}
	for _, interaction := range interactions {
		switch Resolve(interaction.ClientID, registry) {
		case domain.ResolutionCompany:
			report.CompanyLinked++
		case domain.ResolutionPerson:
			report.PersonLinked++
		case domain.ResolutionPersonMissingCompany:
			report.PersonMissingCompany++
		case domain.ResolutionUnknown:
			report.UnknownReference++
		}
	}

	if report.TotalInteractions > 0 {
		total := float64(report.TotalInteractions)
		report.CompanyLinkedPct = utils.RoundWithTwoDecimalPlace(float64(report.CompanyLinked) / total * 100)
		report.UnresolvedPct = utils.RoundWithTwoDecimalPlace(float64(report.Unresolved()) / total * 100)
	}

	if err := s.gold.WriteLinkageReport(report); err != nil {
		return nil, err
	}

	manifest := &domain.RunManifest{
		Layer:       domain.LayerDiagnostic,
		RunDate:     runDate,
		GeneratedAt: time.Now(),
		Counts: domain.RunCounts{
			RecordsRead: report.TotalInteractions,
			Kept:        report.TotalInteractions,
		},
	}
	if err := s.gold.WriteManifest(manifest); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"run_date":               runDate,
		"total":                  report.TotalInteractions,
		"company_linked":         report.CompanyLinked,
		"person_linked":          report.PersonLinked,
		"person_missing_company": report.PersonMissingCompany,
		"unknown_reference":      report.UnknownReference,
		"company_linked_pct":     report.CompanyLinkedPct,
		"unresolved_pct":         report.UnresolvedPct,
	}).Info("Diagnóstico de vínculo concluído")

	return report, nil
}

// Resolve classifica uma referência de cliente contra o cadastro.
// A resolução é polimórfica: a referência pode apontar direto para uma
// empresa ou para uma pessoa, que por sua vez pode (ou não) ter a
// empresa-mãe cadastrada.
func Resolve(clientID string, registry map[string]domain.Contact) domain.ClientResolution {
	contact, ok := registry[clientID]
	if !ok {
		return domain.ResolutionUnknown
	}

	if contact.IsCompany() {
		return domain.ResolutionCompany
	}

	if !contact.IsPerson() {
		return domain.ResolutionUnknown
	}

	if contact.ParentCompanyID == "" {
		return domain.ResolutionPersonMissingCompany
	}

	parent, ok := registry[contact.ParentCompanyID]
	if !ok || !parent.IsCompany() {
		return domain.ResolutionPersonMissingCompany
	}

	return domain.ResolutionPerson
}
