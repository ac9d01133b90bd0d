// Package refining materializa a camada silver: projeta os registros
// brutos do bronze em tabelas tipadas, sem filtrar nada — ruído incluído,
// para rastreabilidade. Todo campo opcional ganha um fallback definido
// aqui, em vez de tratamento ad hoc espalhado pela agregação.
package refining

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/infrastructure/bronze"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

// Tabelas da camada silver.
const (
	TableInteractions = "silver_interactions"
	TableContacts     = "silver_contacts"
	TableDeals        = "silver_deals"
)

// Formatos de timestamp aceitos nos exports do CRM.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type Service struct {
	source *bronze.Source
	store  *snapshot.Store
}

func NewService(source *bronze.Source, store *snapshot.Store) *Service {
	return &Service{source: source, store: store}
}

// Run executa o full refresh da camada silver para a data informada e
// retorna o manifesto da execução. Os contadores do manifesto se referem
// às interações, a entidade central da reconciliação.
func (s *Service) Run(runDate string) (*domain.RunManifest, error) {
	logrus.WithField("run_date", runDate).Info("Iniciando projeção da camada silver")

	interactions, malformed, err := s.projectInteractions()
	if err != nil {
		return nil, err
	}

	contacts, contactsMalformed, err := s.projectContacts()
	if err != nil {
		return nil, err
	}

	deals, dealsMalformed, err := s.projectDeals()
	if err != nil {
		return nil, err
	}

	if err := snapshot.WriteTable(s.store, TableInteractions, runDate, interactions); err != nil {
		return nil, err
	}
	if err := snapshot.WriteTable(s.store, TableContacts, runDate, contacts); err != nil {
		return nil, err
	}
	if err := snapshot.WriteTable(s.store, TableDeals, runDate, deals); err != nil {
		return nil, err
	}

	manifest := &domain.RunManifest{
		Layer:       domain.LayerSilver,
		RunDate:     runDate,
		GeneratedAt: time.Now(),
		Counts: domain.RunCounts{
			RecordsRead:      len(interactions) + malformed,
			MalformedSkipped: malformed,
			Kept:             len(interactions),
		},
		Tables: []string{TableInteractions, TableContacts, TableDeals},
	}

	if err := s.store.WriteManifest(manifest); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"run_date":           runDate,
		"interactions":       len(interactions),
		"contacts":           len(contacts),
		"deals":              len(deals),
		"malformed":          malformed,
		"contacts_malformed": contactsMalformed,
		"deals_malformed":    dealsMalformed,
	}).Info("Camada silver concluída")

	return manifest, nil
}

// projectInteractions aplica os fallbacks e descarta (contando) registros
// sem timestamp utilizável — sem ele não há célula de calor temporal nem
// janela de velocidade possível.
func (s *Service) projectInteractions() ([]domain.Interaction, int, error) {
	raw, malformed, err := s.source.Interactions()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao ler interações do bronze: %w", err)
	}

	interactions := make([]domain.Interaction, 0, len(raw))
	for _, record := range raw {
		timestamp, err := parseTimestamp(record.Timestamp)
		if err != nil {
			malformed++
			logrus.WithFields(logrus.Fields{
				"interaction_id": record.ID,
				"timestamp":      record.Timestamp,
			}).Warn("Interação com timestamp inválido ignorada")
			continue
		}

		interactions = append(interactions, domain.Interaction{
			ID:              record.ID,
			ManagerID:       record.ManagerID,
			ClientID:        record.ClientID,
			Timestamp:       timestamp,
			EmailSubject:    stringOrEmpty(record.EmailSubject),
			EmailRecipients: stringOrEmpty(record.EmailRecipients),
			Content:         stringOrEmpty(record.Content),
			Title:           stringOrEmpty(record.Title),
			DealValue:       floatOrZero(record.DealValue),
			TypeCode:        stringOrEmpty(record.TypeCode),
		})
	}

	return interactions, malformed, nil
}

func (s *Service) projectContacts() ([]domain.Contact, int, error) {
	raw, malformed, err := s.source.Contacts()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao ler contatos do bronze: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(raw))
	for _, record := range raw {
		contacts = append(contacts, domain.Contact{
			ID:              record.ID,
			Type:            record.Type,
			Name:            stringOrEmpty(record.Name),
			ParentCompanyID: stringOrEmpty(record.ParentCompanyID),
		})
	}

	return contacts, malformed, nil
}

func (s *Service) projectDeals() ([]domain.Deal, int, error) {
	raw, malformed, err := s.source.Deals()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao ler negócios do bronze: %w", err)
	}

	deals := make([]domain.Deal, 0, len(raw))
	for _, record := range raw {
		// CreatedAt inválido vira zero: negócio sem data não quebra o run.
		createdAt, _ := parseTimestamp(record.CreatedAt)

		deals = append(deals, domain.Deal{
			ID:        record.ID,
			ClientID:  record.ClientID,
			ManagerID: record.ManagerID,
			Stage:     stringOrEmpty(record.Stage),
			Value:     floatOrZero(record.Value),
			CreatedAt: createdAt,
		})
	}

	return deals, malformed, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp vazio")
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("timestamp em formato desconhecido: %s", value)
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func floatOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
