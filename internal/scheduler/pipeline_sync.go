package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/infrastructure/repository"
	"github.com/almahq/crm-analytics-api/internal/config"
	"github.com/almahq/crm-analytics-api/internal/usecases/aggregating"
	"github.com/almahq/crm-analytics-api/internal/usecases/diagnosing"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
	"github.com/almahq/crm-analytics-api/pkg/utils"
)

// Origens de disparo registradas no histórico de execuções.
const (
	TriggerCron   = "cron"
	TriggerManual = "manual"
)

// PipelineSyncConfig representa a configuração do agendador do pipeline
type PipelineSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PipelineSyncService gerencia o agendamento e a execução do full refresh
// do pipeline: silver, gold e diagnóstico de vínculo, nessa ordem.
type PipelineSyncService struct {
	scheduler           *gocron.Scheduler
	config              PipelineSyncConfig
	appConfig           *config.Config
	refiningService     *refining.Service
	aggregatingService  *aggregating.Service
	diagnosingService   *diagnosing.Service
	runRepo             repository.PipelineRunRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
}

// NewPipelineSyncService cria uma nova instância do serviço de sincronização do pipeline
func NewPipelineSyncService(
	refiningService *refining.Service,
	aggregatingService *aggregating.Service,
	diagnosingService *diagnosing.Service,
	runRepo repository.PipelineRunRepository,
	appConfig *config.Config,
) *PipelineSyncService {
	// Criar a configuração com base na config global
	syncConfig := PipelineSyncConfig{
		CronSchedule: appConfig.PipelineSync.CronSchedule,
		SyncEnabled:  appConfig.PipelineSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do pipeline carregada")

	return &PipelineSyncService{
		scheduler:          scheduler,
		config:             syncConfig,
		appConfig:          appConfig,
		refiningService:    refiningService,
		aggregatingService: aggregatingService,
		diagnosingService:  diagnosingService,
		runRepo:            runRepo,
		syncRunning:        false,
	}
}

// Start inicia o agendador
func (s *PipelineSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Atualização agendada do pipeline desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do pipeline")

	// Agendar o full refresh noturno
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runFullPipeline(TriggerCron)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do pipeline: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do pipeline")
		s.scheduler.Stop()
	}()

	return nil
}

// runFullPipeline executa as três etapas em sequência e registra a
// execução no banco. Qualquer etapa que falhe aborta as seguintes: servir
// um gold de um silver de outra data quebraria a reconciliação.
func (s *PipelineSyncService) runFullPipeline(trigger string) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do pipeline já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runDate := s.runDate()

	logrus.WithFields(logrus.Fields{
		"run_date": runDate,
		"trigger":  trigger,
	}).Info("Iniciando full refresh do pipeline")

	run, err := s.runRepo.CreateRun(runDate, trigger)
	if err != nil {
		logrus.WithError(err).Error("Erro ao registrar execução do pipeline")
		return
	}
	s.lastRunID = run.ID

	if _, err := s.refiningService.Run(runDate); err != nil {
		s.failRun(run.ID, fmt.Errorf("camada silver: %w", err))
		return
	}

	manifest, err := s.aggregatingService.Run(runDate)
	if err != nil {
		s.failRun(run.ID, fmt.Errorf("camada gold: %w", err))
		return
	}

	if _, err := s.diagnosingService.Run(runDate); err != nil {
		s.failRun(run.ID, fmt.Errorf("diagnóstico de vínculo: %w", err))
		return
	}

	if err := s.runRepo.CompleteRun(run.ID, &manifest.Counts); err != nil {
		logrus.WithError(err).Error("Erro ao encerrar execução do pipeline")
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"run_date": runDate,
		"duration": duration.String(),
		"kept":     manifest.Counts.Kept,
		"noise":    manifest.Counts.NoiseTotal,
	}).Info("Full refresh do pipeline concluído")

	s.lastSyncCompletedAt = time.Now()
}

func (s *PipelineSyncService) failRun(runID string, runErr error) {
	logrus.WithError(runErr).Error("Execução do pipeline falhou")
	if err := s.runRepo.FailRun(runID, runErr); err != nil {
		logrus.WithError(err).Error("Erro ao registrar falha da execução")
	}
}

// runDate resolve a data do snapshot: a forçada por configuração ou a atual.
func (s *PipelineSyncService) runDate() string {
	if s.appConfig.Pipeline.RunDate != "" {
		return s.appConfig.Pipeline.RunDate
	}
	return utils.CurrentRunDate()
}

// TriggerManualSync inicia manualmente um full refresh do pipeline.
// Retorna falso se já houver uma execução em andamento.
func (s *PipelineSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do pipeline já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do pipeline")
	go s.runFullPipeline(TriggerManual)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           running,
		"last_run_id":            s.lastRunID,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
