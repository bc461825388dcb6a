package planning

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

var ErrScenarioNotFound = errors.New("cenário não encontrado")

var oneHundred = decimal.NewFromInt(100)

// Planner produz o relatório analítico de overhead: sobre o quadro produtivo
// de cada mês, quanto quadro adicional os índices de absenteísmo, turnover e
// férias do cenário exigem. É somente leitura; nada é gravado no razão.
type Planner interface {
	OverheadReport(ctx context.Context, scenarioID string, year *int) (*domain.OverheadReport, error)
}

type Service struct {
	scenarioRepo  repository.ScenarioRepository
	headcountRepo repository.HeadcountRepository
}

func NewService(scenarioRepo repository.ScenarioRepository, headcountRepo repository.HeadcountRepository) Planner {
	return &Service{
		scenarioRepo:  scenarioRepo,
		headcountRepo: headcountRepo,
	}
}

func (s *Service) OverheadReport(ctx context.Context, scenarioID string, year *int) (*domain.OverheadReport, error) {
	scenario, err := s.scenarioRepo.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, ErrScenarioNotFound
	}

	entries, err := s.headcountRepo.ListByScenario(ctx, scenarioID, scenario.StartYear)
	if err != nil {
		return nil, err
	}

	horizon := scenario.Horizon()
	if year != nil {
		horizon = scenario.HorizonForYear(*year)
	}

	factors := domain.OverheadFactors{
		Absenteeism: scenario.Premises.AbsenteeismRate,
		Turnover:    scenario.Premises.TurnoverRate,
		Vacation:    scenario.Premises.VacationIndex,
	}
	factors.Total = factors.Absenteeism.Add(factors.Turnover).Add(factors.Vacation)

	// required = produtivo · (1 + (abs + turnover + férias) / 100)
	multiplier := decimal.NewFromInt(1).Add(factors.Total.Div(oneHundred))

	report := &domain.OverheadReport{
		ScenarioID: scenarioID,
		Factors:    factors,
		PerMonth:   make([]domain.OverheadMonth, 0, len(horizon)),
	}

	for _, mk := range horizon {
		productive := decimal.Zero
		for _, entry := range entries {
			productive = productive.Add(entry.Quantity(mk))
		}

		// O produto fica exato: arredondar aqui distorceria a razão
		// required/produtivo em meses com quadro fracionário.
		required := productive.Mul(multiplier)
		report.PerMonth = append(report.PerMonth, domain.OverheadMonth{
			MonthKey:   mk,
			Productive: productive,
			Required:   required,
			Overhead:   required.Sub(productive),
		})
	}

	return report, nil
}
