package reporting

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

var ErrScenarioNotFound = errors.New("cenário não encontrado")

// CostSummary agrega o razão por rubrica e o total geral do cenário.
type CostSummary struct {
	ScenarioID string                     `json:"scenario_id"`
	ByRubric   map[string]decimal.Decimal `json:"by_rubric"`
	Total      decimal.Decimal            `json:"total"`
}

// Reporter responde as consultas de leitura sobre cenários e seu razão.
type Reporter interface {
	GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error)
	ListCosts(ctx context.Context, scenarioID string, year, month *int) ([]*domain.CostRow, error)
	CostSummary(ctx context.Context, scenarioID string) (*CostSummary, error)
}

type Service struct {
	scenarioRepo repository.ScenarioRepository
	costRowRepo  repository.CostRowRepository
}

func NewService(scenarioRepo repository.ScenarioRepository, costRowRepo repository.CostRowRepository) Reporter {
	return &Service{
		scenarioRepo: scenarioRepo,
		costRowRepo:  costRowRepo,
	}
}

func (s *Service) GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	scenario, err := s.scenarioRepo.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, ErrScenarioNotFound
	}
	return scenario, nil
}

func (s *Service) ListCosts(ctx context.Context, scenarioID string, year, month *int) ([]*domain.CostRow, error) {
	if _, err := s.GetScenario(ctx, scenarioID); err != nil {
		return nil, err
	}
	return s.costRowRepo.ListByScenario(ctx, scenarioID, year, month)
}

func (s *Service) CostSummary(ctx context.Context, scenarioID string) (*CostSummary, error) {
	rows, err := s.ListCosts(ctx, scenarioID, nil, nil)
	if err != nil {
		return nil, err
	}

	summary := &CostSummary{
		ScenarioID: scenarioID,
		ByRubric:   make(map[string]decimal.Decimal),
	}
	for _, row := range rows {
		summary.ByRubric[row.RubricCode] = summary.ByRubric[row.RubricCode].Add(row.Amount)
		summary.Total = summary.Total.Add(row.Amount)
	}

	return summary, nil
}
