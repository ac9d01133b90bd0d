// Package reporting serve as visões exploratórias da camada gold para a
// API. A leitura é sempre do snapshot completo mais recente, pelo espelho
// JSON; a API nunca recalcula nada.
package reporting

import (
	"fmt"

	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/usecases/aggregating"
)

// View é o payload servido pela API para uma visão gold: as linhas do
// snapshot mais recente e a data de referência.
type View struct {
	Table   string           `json:"table"`
	RunDate string           `json:"run_date"`
	Rows    []map[string]any `json:"rows"`
}

// TableSummary resume uma visão para o endpoint de sumário.
type TableSummary struct {
	Table   string `json:"table"`
	RunDate string `json:"run_date"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// Summary agrega o estado do snapshot gold mais recente.
type Summary struct {
	Tables   []TableSummary    `json:"tables"`
	Counts   *domain.RunCounts `json:"counts,omitempty"`
	Manifest string            `json:"manifest_run_date,omitempty"`
}

type Service struct {
	gold *snapshot.Store
}

func NewService(gold *snapshot.Store) *Service {
	return &Service{gold: gold}
}

// Volumetrics retorna a visão de volumetria de CX mais recente.
// limit <= 0 retorna todas as linhas.
func (s *Service) Volumetrics(limit int) (*View, error) {
	return s.view(aggregating.TableVolumetrics, limit)
}

// Friction retorna a visão de heurísticas de atrito mais recente.
func (s *Service) Friction(limit int) (*View, error) {
	return s.view(aggregating.TableFriction, limit)
}

// TemporalHeat retorna a visão de calor temporal mais recente.
func (s *Service) TemporalHeat(limit int) (*View, error) {
	return s.view(aggregating.TableTemporalHeat, limit)
}

// Linkage retorna o relatório de vínculo mais recente.
func (s *Service) Linkage() (*domain.LinkageReport, error) {
	return s.gold.LatestLinkageReport()
}

// Summarize lista as visões gold disponíveis com suas cardinalidades e os
// contadores de reconciliação da última execução.
func (s *Service) Summarize() (*Summary, error) {
	summary := &Summary{Tables: make([]TableSummary, 0, 3)}

	tables := []string{
		aggregating.TableVolumetrics,
		aggregating.TableFriction,
		aggregating.TableTemporalHeat,
	}
	for _, table := range tables {
		rows, runDate, err := s.gold.ReadLatestJSON(table)
		if err != nil {
			return nil, fmt.Errorf("erro ao sumarizar a tabela %s: %w", table, err)
		}
		columns := 0
		if len(rows) > 0 {
			columns = len(rows[0])
		}
		summary.Tables = append(summary.Tables, TableSummary{Table: table, RunDate: runDate, Rows: len(rows), Columns: columns})
	}

	// O manifesto pode não existir em diretórios populados manualmente;
	// o sumário segue sem os contadores nesse caso.
	if manifest, err := s.gold.LatestManifest(domain.LayerGold); err == nil {
		summary.Counts = &manifest.Counts
		summary.Manifest = manifest.RunDate
	}

	return summary, nil
}

func (s *Service) view(table string, limit int) (*View, error) {
	rows, runDate, err := s.gold.ReadLatestJSON(table)
	if err != nil {
		return nil, err
	}

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return &View{Table: table, RunDate: runDate, Rows: rows}, nil
}
