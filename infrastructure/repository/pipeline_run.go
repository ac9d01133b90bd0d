package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/almahq/crm-analytics-api/infrastructure/database/postgres"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/pkg/utils"
)

const pipelineRunsTable = "pipeline_runs"

type PipelineRunRepository interface {
	CreateRun(runDate, trigger string) (*domain.PipelineRun, error)
	CompleteRun(runID string, counts *domain.RunCounts) error
	FailRun(runID string, runErr error) error
	GetRunByID(runID string) (*domain.PipelineRun, error)
	ListRecentRuns(limit int) ([]*domain.PipelineRun, error)
}

type pipelineRunRepository struct {
	conn postgres.Conn
}

func NewPipelineRunRepository(conn postgres.Conn) PipelineRunRepository {
	return &pipelineRunRepository{
		conn: conn,
	}
}

// CreateRun registra o início de uma execução com status running.
func (r *pipelineRunRepository) CreateRun(runDate, trigger string) (*domain.PipelineRun, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	run := &domain.PipelineRun{
		ID:        id,
		RunDate:   runDate,
		Trigger:   trigger,
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now(),
	}

	queryBuilder := squirrel.
		Insert(pipelineRunsTable).
		Columns("id", "run_date", "trigger_source", "status", "started_at").
		Values(run.ID, run.RunDate, run.Trigger, run.Status, run.StartedAt).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := r.conn.Exec(runsSQL, runsArgs...); err != nil {
		return nil, fmt.Errorf("erro ao registrar execução do pipeline: %w", err)
	}

	return run, nil
}

// CompleteRun encerra a execução com sucesso e grava os contadores de
// reconciliação como JSONB.
func (r *pipelineRunRepository) CompleteRun(runID string, counts *domain.RunCounts) error {
	payload, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("erro ao serializar contadores da execução: %w", err)
	}

	queryBuilder := squirrel.
		Update(pipelineRunsTable).
		Set("status", domain.RunStatusCompleted).
		Set("counts", payload).
		Set("finished_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": runID}).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(runsSQL, runsArgs...); err != nil {
		return fmt.Errorf("erro ao encerrar execução do pipeline: %w", err)
	}

	return nil
}

// FailRun encerra a execução com falha, guardando a mensagem do erro.
func (r *pipelineRunRepository) FailRun(runID string, runErr error) error {
	message := ""
	if runErr != nil {
		message = runErr.Error()
	}

	queryBuilder := squirrel.
		Update(pipelineRunsTable).
		Set("status", domain.RunStatusFailed).
		Set("error", message).
		Set("finished_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": runID}).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(runsSQL, runsArgs...); err != nil {
		return fmt.Errorf("erro ao registrar falha da execução: %w", err)
	}

	return nil
}

func (r *pipelineRunRepository) GetRunByID(runID string) (*domain.PipelineRun, error) {
	queryBuilder := squirrel.
		Select("id", "run_date", "trigger_source", "status", "counts", "error", "started_at", "finished_at").
		From(pipelineRunsTable).
		Where(squirrel.Eq{"id": runID}).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(r.conn.QueryRow(runsSQL, runsArgs...))
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar execução do pipeline: %w", err)
	}

	return run, nil
}

// ListRecentRuns retorna as execuções mais recentes, da mais nova para a
// mais antiga.
func (r *pipelineRunRepository) ListRecentRuns(limit int) ([]*domain.PipelineRun, error) {
	queryBuilder := squirrel.
		Select("id", "run_date", "trigger_source", "status", "counts", "error", "started_at", "finished_at").
		From(pipelineRunsTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	runsSQL, runsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(runsSQL, runsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar execuções do pipeline: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PipelineRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.PipelineRun, error) {
	var run domain.PipelineRun
	var counts []byte

	if err := row.Scan(
		&run.ID,
		&run.RunDate,
		&run.Trigger,
		&run.Status,
		&counts,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	); err != nil {
		return nil, err
	}

	if len(counts) > 0 {
		run.Counts = &domain.RunCounts{}
		if err := json.Unmarshal(counts, run.Counts); err != nil {
			return nil, fmt.Errorf("erro ao decodificar contadores da execução: %w", err)
		}
	}

	return &run, nil
}
