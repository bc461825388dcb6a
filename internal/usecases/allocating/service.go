package allocating

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

var oneHundred = decimal.NewFromInt(100)

// weightTolerance é o ε aceito na soma de pesos MANUAL (100 ± 0.01).
var weightTolerance = decimal.New(1, -2)

// Solver aplica os grupos de rateio de um cenário: zera as linhas gravadas
// nos centros POOL e as espelha nos centros OPERATIONAL destino, conservando
// o total ao centavo.
type Solver interface {
	ApplyAllocations(ctx context.Context, scenarioID string, groupID *string) (*domain.AllocationResult, error)
}

type Service struct {
	conn          postgres.Conn
	scenarioRepo  repository.ScenarioRepository
	headcountRepo repository.HeadcountRepository
	catalogRepo   repository.CatalogRepository
	groupRepo     repository.AllocationGroupRepository
	costRowRepo   repository.CostRowRepository
	lockRepo      repository.ScenarioLockRepository
	engineCfg     config.Engine
}

func NewService(
	conn postgres.Conn,
	scenarioRepo repository.ScenarioRepository,
	headcountRepo repository.HeadcountRepository,
	catalogRepo repository.CatalogRepository,
	groupRepo repository.AllocationGroupRepository,
	costRowRepo repository.CostRowRepository,
	lockRepo repository.ScenarioLockRepository,
	cfg *config.Config,
) Solver {
	return &Service{
		conn:          conn,
		scenarioRepo:  scenarioRepo,
		headcountRepo: headcountRepo,
		catalogRepo:   catalogRepo,
		groupRepo:     groupRepo,
		costRowRepo:   costRowRepo,
		lockRepo:      lockRepo,
		engineCfg:     cfg.Engine,
	}
}

// weightBasis carrega as bases de peso derivadas, pré-calculadas fora da
// transação. HC e PA variam mês a mês; AREA é atributo do catálogo.
type weightBasis struct {
	hcByCC   map[string]map[domain.MonthKey]decimal.Decimal
	paByCC   map[string]map[domain.MonthKey]decimal.Decimal
	areaByCC map[string]decimal.Decimal
}

func (s *Service) ApplyAllocations(ctx context.Context, scenarioID string, groupID *string) (*domain.AllocationResult, error) {
	scenario, err := s.scenarioRepo.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, &AllocationError{Err: ErrScenarioNotFound, ScenarioID: scenarioID}
	}

	groups, err := s.loadGroups(ctx, scenarioID, groupID)
	if err != nil {
		return nil, err
	}

	basis, err := s.loadWeightBasis(ctx, scenario)
	if err != nil {
		return nil, err
	}

	result := &domain.AllocationResult{}

	err = s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		acquired, err := s.lockRepo.TryLock(ctx, tx, scenarioID)
		if err != nil {
			return err
		}
		if !acquired {
			return &AllocationError{Err: ErrScenarioLocked, ScenarioID: scenarioID}
		}

		for _, group := range groups {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.applyGroup(ctx, tx, scenario, group, basis, result); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"scenario_id":    scenarioID,
		"groups_applied": result.GroupsApplied,
		"source_zeroed":  result.SourceZeroed,
		"residual_cents": result.ResidualCents,
	}).Info("Rateio aplicado")

	return result, nil
}

func (s *Service) loadGroups(ctx context.Context, scenarioID string, groupID *string) ([]*domain.AllocationGroup, error) {
	if groupID == nil {
		return s.groupRepo.ListByScenario(ctx, scenarioID)
	}

	group, err := s.groupRepo.GetByID(ctx, *groupID)
	if err != nil {
		return nil, err
	}
	if group == nil || group.ScenarioID != scenarioID {
		return nil, &AllocationError{Err: ErrGroupNotFound, ScenarioID: scenarioID, GroupID: *groupID}
	}

	return []*domain.AllocationGroup{group}, nil
}

// loadWeightBasis agrega o quadro de pessoal por centro de custo destino.
// PA usa o headcount produtivo multiplicado pelo paFactor da seção.
func (s *Service) loadWeightBasis(ctx context.Context, scenario *domain.Scenario) (*weightBasis, error) {
	basis := &weightBasis{
		hcByCC:   make(map[string]map[domain.MonthKey]decimal.Decimal),
		paByCC:   make(map[string]map[domain.MonthKey]decimal.Decimal),
		areaByCC: make(map[string]decimal.Decimal),
	}

	costCenters, err := s.catalogRepo.ListCostCenters(ctx)
	if err != nil {
		return nil, err
	}
	for _, costCenter := range costCenters {
		basis.areaByCC[costCenter.ID] = costCenter.AreaM2
	}

	entries, err := s.headcountRepo.ListByScenario(ctx, scenario.ID, scenario.StartYear)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]*domain.ScenarioSection, len(scenario.Sections))
	for _, section := range scenario.Sections {
		sections[section.ID] = section
	}

	for _, entry := range entries {
		if entry.ScenarioSectionID == nil {
			continue
		}
		section := sections[*entry.ScenarioSectionID]
		if section == nil {
			continue
		}

		for mk, qty := range entry.Months {
			if !qty.IsPositive() {
				continue
			}
			addMonthly(basis.hcByCC, section.CostCenterID, mk, qty)
			addMonthly(basis.paByCC, section.CostCenterID, mk, qty.Mul(section.PAFactor))
		}
	}

	return basis, nil
}

func (s *Service) applyGroup(
	ctx context.Context,
	tx *sql.Tx,
	scenario *domain.Scenario,
	group *domain.AllocationGroup,
	basis *weightBasis,
	result *domain.AllocationResult,
) error {
	if group.Method == domain.AllocationManual {
		if err := validateManualWeights(group); err != nil {
			return err
		}
	}

	rows, err := s.costRowRepo.ListByCostCenter(ctx, tx, scenario.ID, group.SourceCostCenterID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	mirrored := make([]*domain.CostRow, 0, len(rows)*len(group.Destinations))
	inertMonths := make(map[domain.MonthKey]bool)
	applied := false

	for _, row := range rows {
		weights, sum, err := s.groupWeights(group, basis, row.MonthKey())
		if err != nil {
			return err
		}
		if sum.IsZero() {
			if !inertMonths[row.MonthKey()] {
				inertMonths[row.MonthKey()] = true
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"grupo %s inerte em %s: soma de pesos zero, linhas do centro %s mantidas",
					group.ID, row.MonthKey(), group.SourceCostCenterID))
			}
			continue
		}

		shares, residual := s.splitAmount(row.Amount, group.Destinations, weights, sum)
		result.ResidualCents += domain.Cents(residual.Abs())

		for _, share := range shares {
			if share.amount.IsZero() {
				continue
			}
			mirrored = append(mirrored, s.mirrorRow(row, group, share))
			result.DestinationsIncreased++
		}

		if err := s.costRowRepo.MarkAllocated(ctx, tx, row.ID, map[string]any{
			"allocated_from":  group.ID,
			"valor_original":  row.Amount.StringFixed(2),
			"centro_original": row.CostCenterID,
		}); err != nil {
			return err
		}
		result.SourceZeroed++
		applied = true
	}

	if applied {
		result.GroupsApplied++
	}

	return s.costRowRepo.BulkInsert(ctx, tx, mirrored)
}

// share é a fatia de um destino sobre uma linha de origem.
type share struct {
	costCenterID string
	weight       decimal.Decimal
	raw          decimal.Decimal
	amount       decimal.Decimal
}

// splitAmount distribui amount entre os destinos e devolve fatias já
// arredondadas cuja soma é exatamente amount. O resíduo de arredondamento vai
// para a maior fatia bruta (empate: menor costCenterId) no modo padrão, ou é
// pulverizado centavo a centavo no modo proporcional.
func (s *Service) splitAmount(
	amount decimal.Decimal,
	destinations []domain.AllocationDestination,
	weights map[string]decimal.Decimal,
	sum decimal.Decimal,
) ([]share, decimal.Decimal) {
	rounding := s.engineCfg.Rounding()

	shares := make([]share, 0, len(destinations))
	distributed := decimal.Zero
	for _, destination := range destinations {
		weight := weights[destination.CostCenterID].Div(sum)
		raw := amount.Mul(weight)
		rounded := rounding.Round2(raw)
		distributed = distributed.Add(rounded)
		shares = append(shares, share{
			costCenterID: destination.CostCenterID,
			weight:       weight,
			raw:          raw,
			amount:       rounded,
		})
	}

	residual := amount.Sub(distributed)
	if residual.IsZero() {
		return shares, residual
	}

	// Ordena por fatia bruta decrescente (em módulo, para origens negativas),
	// desempatando pelo menor id
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := shares[order[a]].raw.Abs(), shares[order[b]].raw.Abs()
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		return shares[order[a]].costCenterID < shares[order[b]].costCenterID
	})

	if s.engineCfg.AllocationResidualPolicy == config.ResidualProportional {
		cent := decimal.New(1, -2)
		if residual.IsNegative() {
			cent = cent.Neg()
		}
		for i, rest := 0, residual; !rest.IsZero(); i = (i + 1) % len(order) {
			idx := order[i]
			shares[idx].amount = shares[idx].amount.Add(cent)
			rest = rest.Sub(cent)
		}
		return shares, residual
	}

	shares[order[0]].amount = shares[order[0]].amount.Add(residual)
	return shares, residual
}

func (s *Service) mirrorRow(row *domain.CostRow, group *domain.AllocationGroup, sh share) *domain.CostRow {
	rounding := s.engineCfg.Rounding()

	return &domain.CostRow{
		ID:                utils.MustGenerateID(),
		ScenarioID:        row.ScenarioID,
		ScenarioSectionID: row.ScenarioSectionID,
		CostCenterID:      sh.costCenterID,
		RubricCode:        row.RubricCode,
		Year:              row.Year,
		Month:             row.Month,
		QuantityBase:      rounding.Round2(row.QuantityBase.Mul(sh.weight)),
		UnitValue:         row.UnitValue,
		Amount:            sh.amount,
		Regime:            row.Regime,
		Parameters: map[string]any{
			"allocated_from":  group.ID,
			"centro_original": row.CostCenterID,
			"peso":            sh.weight.Round(6).String(),
			"metodo":          string(group.Method),
		},
	}
}

// groupWeights devolve o peso bruto de cada destino para o mês dado, mais a
// soma. Soma zero sinaliza grupo inerte; soma negativa é inconsistência dura.
func (s *Service) groupWeights(group *domain.AllocationGroup, basis *weightBasis, mk domain.MonthKey) (map[string]decimal.Decimal, decimal.Decimal, error) {
	weights := make(map[string]decimal.Decimal, len(group.Destinations))
	sum := decimal.Zero

	for _, destination := range group.Destinations {
		var weight decimal.Decimal
		switch group.Method {
		case domain.AllocationManual:
			weight = destination.Weight
		case domain.AllocationHC:
			weight = monthly(basis.hcByCC, destination.CostCenterID, mk)
		case domain.AllocationPA:
			weight = monthly(basis.paByCC, destination.CostCenterID, mk)
		case domain.AllocationArea:
			weight = basis.areaByCC[destination.CostCenterID]
		}
		weights[destination.CostCenterID] = weight
		sum = sum.Add(weight)
	}

	if sum.IsNegative() {
		return nil, decimal.Zero, &AllocationError{Err: ErrNegativeWeights, ScenarioID: group.ScenarioID, GroupID: group.ID}
	}

	return weights, sum, nil
}

func validateManualWeights(group *domain.AllocationGroup) error {
	sum := decimal.Zero
	for _, destination := range group.Destinations {
		sum = sum.Add(destination.Weight)
	}
	if sum.Sub(oneHundred).Abs().GreaterThan(weightTolerance) {
		return &AllocationError{Err: ErrInvalidManualWeights, ScenarioID: group.ScenarioID, GroupID: group.ID}
	}
	return nil
}

func addMonthly(byCC map[string]map[domain.MonthKey]decimal.Decimal, costCenterID string, mk domain.MonthKey, qty decimal.Decimal) {
	if byCC[costCenterID] == nil {
		byCC[costCenterID] = make(map[domain.MonthKey]decimal.Decimal)
	}
	byCC[costCenterID][mk] = byCC[costCenterID][mk].Add(qty)
}

func monthly(byCC map[string]map[domain.MonthKey]decimal.Decimal, costCenterID string, mk domain.MonthKey) decimal.Decimal {
	if byCC[costCenterID] == nil {
		return decimal.Zero
	}
	return byCC[costCenterID][mk]
}
