// Package aggregating materializa a camada gold: aplica o classificador
// de ruído sobre o silver e monta as três visões exploratórias de CX
// (volumetria, atrito e calor temporal), com os contadores de
// reconciliação fechando no manifesto.
package aggregating

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/infrastructure/bronze"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/usecases/classifying"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
)

// Tabelas da camada gold, com os nomes do pacote de handoff.
const (
	TableVolumetrics  = "exploratory_cx_volumetrics"
	TableFriction     = "exploratory_friction_heuristics"
	TableTemporalHeat = "exploratory_temporal_heat"
)

type Service struct {
	silver *snapshot.Store
	gold   *snapshot.Store
	source *bronze.Source
}

func NewService(silver, gold *snapshot.Store, source *bronze.Source) *Service {
	return &Service{silver: silver, gold: gold, source: source}
}

// Run executa o full refresh da camada gold para a data informada, a
// partir do snapshot silver mais recente. O manifesto silver da mesma
// origem fornece o total lido e os malformados; aqui entram os contadores
// de ruído, e a soma precisa fechar: lidos - malformados = ruído + mantidas.
func (s *Service) Run(runDate string) (*domain.RunManifest, error) {
	logrus.WithField("run_date", runDate).Info("Iniciando agregação da camada gold")

	interactions, silverDate, err := snapshot.ReadLatest[domain.Interaction](s.silver, refining.TableInteractions)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler interações do silver: %w", err)
	}

	contacts, _, err := snapshot.ReadLatest[domain.Contact](s.silver, refining.TableContacts)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler contatos do silver: %w", err)
	}

	silverManifest, err := s.silver.LatestManifest(domain.LayerSilver)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler manifesto do silver: %w", err)
	}

	managerNames, err := s.source.Users()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler usuários do bronze: %w", err)
	}

	counts := domain.RunCounts{
		RecordsRead:      silverManifest.Counts.RecordsRead,
		MalformedSkipped: silverManifest.Counts.MalformedSkipped,
	}

	kept := make([]domain.Interaction, 0, len(interactions))
	for _, interaction := range interactions {
		classification := classifying.Classify(interaction)
		if !classification.IsNoise {
			kept = append(kept, interaction)
			continue
		}

		counts.NoiseTotal++
		switch classification.Reason {
		case domain.NoiseReasonReadReceipt:
			counts.ReadReceipts++
		case domain.NoiseReasonDeliveryReceipt:
			counts.DeliveryReceipts++
		case domain.NoiseReasonMassEmail:
			counts.MassEmails++
		}
	}
	counts.Kept = len(kept)

	contactNames := make(map[string]string, len(contacts))
	for _, contact := range contacts {
		contactNames[contact.ID] = contact.Name
	}

	volumetrics := buildVolumetrics(kept, contactNames, managerNames)
	friction := buildFriction(kept)
	temporalHeat := buildTemporalHeat(kept)

	if err := snapshot.WriteTable(s.gold, TableVolumetrics, runDate, volumetrics); err != nil {
		return nil, err
	}
	if err := snapshot.WriteTable(s.gold, TableFriction, runDate, friction); err != nil {
		return nil, err
	}
	if err := snapshot.WriteTable(s.gold, TableTemporalHeat, runDate, temporalHeat); err != nil {
		return nil, err
	}

	manifest := &domain.RunManifest{
		Layer:       domain.LayerGold,
		RunDate:     runDate,
		GeneratedAt: time.Now(),
		Counts:      counts,
		Tables:      []string{TableVolumetrics, TableFriction, TableTemporalHeat},
	}

	if err := s.gold.WriteManifest(manifest); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"run_date":          runDate,
		"silver_date":       silverDate,
		"records_read":      counts.RecordsRead,
		"malformed_skipped": counts.MalformedSkipped,
		"noise_total":       counts.NoiseTotal,
		"read_receipts":     counts.ReadReceipts,
		"delivery_receipts": counts.DeliveryReceipts,
		"mass_emails":       counts.MassEmails,
		"kept":              counts.Kept,
	}).Info("Camada gold concluída")

	return manifest, nil
}
