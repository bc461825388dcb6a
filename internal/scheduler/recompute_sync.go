package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/usecases/costing"
)

// RecomputeSyncConfig representa a configuração do agendador de recálculo
type RecomputeSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RecomputeSyncService recalcula periodicamente o razão de custos de todos os
// cenários ATIVOS. Uma execução por vez; disparos sobrepostos são ignorados.
type RecomputeSyncService struct {
	scheduler           *gocron.Scheduler
	config              RecomputeSyncConfig
	scenarioRepo        repository.ScenarioRepository
	costEngine          costing.Engine
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewRecomputeSyncService(
	scenarioRepo repository.ScenarioRepository,
	costEngine costing.Engine,
	appConfig *config.Config,
) *RecomputeSyncService {
	syncConfig := RecomputeSyncConfig{
		CronSchedule: appConfig.RecomputeSync.CronSchedule,
		SyncEnabled:  appConfig.RecomputeSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de recálculo carregada")

	return &RecomputeSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		scenarioRepo: scenarioRepo,
		costEngine:   costEngine,
	}
}

// Start inicia o agendador e o amarra ao ciclo de vida do contexto.
func (s *RecomputeSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recálculo agendado desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recálculo de cenários")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.recomputeActiveScenarios(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de cenários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recálculo de cenários")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow dispara uma execução imediata, usada pelo endpoint administrativo.
func (s *RecomputeSyncService) RunNow(ctx context.Context) {
	s.recomputeActiveScenarios(ctx)
}

// Status expõe o estado corrente da sincronização.
func (s *RecomputeSyncService) Status() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"running":           s.syncRunning,
		"last_started_at":   s.lastSyncStartedAt,
		"last_completed_at": s.lastSyncCompletedAt,
	}
}

func (s *RecomputeSyncService) recomputeActiveScenarios(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo de cenários já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	scenarioIDs, err := s.scenarioRepo.ListActiveScenarioIDs(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar cenários ativos para recálculo")
		return
	}

	logrus.WithField("scenarios", len(scenarioIDs)).Info("Iniciando recálculo dos cenários ativos")

	for _, scenarioID := range scenarioIDs {
		if ctx.Err() != nil {
			logrus.Info("Recálculo interrompido pelo cancelamento do contexto")
			return
		}

		result, err := s.costEngine.RecomputeScenarioCosts(ctx, scenarioID, nil)
		if err != nil {
			logrus.WithError(err).WithField("scenario_id", scenarioID).
				Error("Erro ao recalcular cenário")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"scenario_id":  scenarioID,
			"rows_written": result.RowsWritten,
			"warnings":     len(result.Warnings),
		}).Info("Cenário recalculado")
	}
}
