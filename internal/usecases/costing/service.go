package costing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

var six = decimal.NewFromInt(6)

// Engine produz o razão de custos de um cenário: para cada (seção, função,
// mês) avalia as rubricas em ordem de categoria (remuneração, benefícios,
// encargos, provisões, bônus, deduções) e grava custos_calculados dentro de
// uma única transação. O recálculo é idempotente: apaga o escopo antes de
// reemitir.
type Engine interface {
	RecomputeScenarioCosts(ctx context.Context, scenarioID string, year *int) (*domain.ComputeResult, error)
}

type Service struct {
	conn          postgres.Conn
	scenarioRepo  repository.ScenarioRepository
	headcountRepo repository.HeadcountRepository
	catalogRepo   repository.CatalogRepository
	costRowRepo   repository.CostRowRepository
	revenueRepo   repository.RevenueRepository
	lockRepo      repository.ScenarioLockRepository
	engineCfg     config.Engine
}

func NewService(
	conn postgres.Conn,
	scenarioRepo repository.ScenarioRepository,
	headcountRepo repository.HeadcountRepository,
	catalogRepo repository.CatalogRepository,
	costRowRepo repository.CostRowRepository,
	revenueRepo repository.RevenueRepository,
	lockRepo repository.ScenarioLockRepository,
	cfg *config.Config,
) Engine {
	return &Service{
		conn:          conn,
		scenarioRepo:  scenarioRepo,
		headcountRepo: headcountRepo,
		catalogRepo:   catalogRepo,
		costRowRepo:   costRowRepo,
		revenueRepo:   revenueRepo,
		lockRepo:      lockRepo,
		engineCfg:     cfg.Engine,
	}
}

// computeSnapshot é a visão imutável carregada nos pontos de entrada; o
// motor nunca volta ao banco no meio da avaliação.
type computeSnapshot struct {
	scenario   *domain.Scenario
	rubrics    map[domain.RubricCategory][]*domain.Rubric
	provisions []*domain.Provision
	entries    map[string][]*domain.HeadcountEntry           // por seção
	charges    map[string][]*domain.Charge                   // por empresa|regime
	holidays   map[string][]*domain.Holiday                  // por seção
	salaries   map[string]*domain.SalaryTable                // por função|regime
	policies   map[string]*domain.BenefitPolicy              // por id
	revenues   map[string]map[domain.MonthKey]decimal.Decimal // por seção

	warnings []string
}

func (s *Service) RecomputeScenarioCosts(ctx context.Context, scenarioID string, year *int) (*domain.ComputeResult, error) {
	scenario, err := s.scenarioRepo.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, &ComputeError{Err: ErrScenarioNotFound, ScenarioID: scenarioID}
	}

	snap, err := s.loadSnapshot(ctx, scenario)
	if err != nil {
		return nil, err
	}

	horizon := scenario.Horizon()
	if year != nil {
		horizon = scenario.HorizonForYear(*year)
	}

	rows := make([]*domain.CostRow, 0)

	err = s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		acquired, err := s.lockRepo.TryLock(ctx, tx, scenarioID)
		if err != nil {
			return err
		}
		if !acquired {
			return &ComputeError{Err: ErrScenarioLocked, ScenarioID: scenarioID}
		}

		if s.engineCfg.RecomputeDeleteScope != config.DeleteScopePerSection {
			if _, err := s.costRowRepo.DeleteByScope(ctx, tx, scenarioID, year, nil); err != nil {
				return err
			}
		}

		for _, section := range scenario.Sections {
			if err := ctx.Err(); err != nil {
				return err
			}

			if s.engineCfg.RecomputeDeleteScope == config.DeleteScopePerSection {
				sectionID := section.ID
				if _, err := s.costRowRepo.DeleteByScope(ctx, tx, scenarioID, year, &sectionID); err != nil {
					return err
				}
			}

			sectionRows := s.computeSection(snap, section, horizon)
			rows = append(rows, sectionRows...)
		}

		return s.costRowRepo.BulkInsert(ctx, tx, rows)
	})
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	logrus.WithFields(logrus.Fields{
		"scenario_id":  scenarioID,
		"rows_written": len(rows),
		"total":        total.StringFixed(2),
	}).Info("Razão de custos recalculado")

	return &domain.ComputeResult{
		RowsWritten: len(rows),
		TotalAmount: total,
		Warnings:    snap.warnings,
	}, nil
}

func (s *Service) loadSnapshot(ctx context.Context, scenario *domain.Scenario) (*computeSnapshot, error) {
	snap := &computeSnapshot{
		scenario: scenario,
		rubrics:  make(map[domain.RubricCategory][]*domain.Rubric),
		entries:  make(map[string][]*domain.HeadcountEntry),
		charges:  make(map[string][]*domain.Charge),
		holidays: make(map[string][]*domain.Holiday),
		salaries: make(map[string]*domain.SalaryTable),
		policies: make(map[string]*domain.BenefitPolicy),
		revenues: make(map[string]map[domain.MonthKey]decimal.Decimal),
	}

	rubrics, err := s.catalogRepo.ListRubrics(ctx)
	if err != nil {
		return nil, err
	}
	for _, rubric := range rubrics {
		snap.rubrics[rubric.Category] = append(snap.rubrics[rubric.Category], rubric)
	}

	if snap.provisions, err = s.catalogRepo.ListProvisions(ctx); err != nil {
		return nil, err
	}

	entries, err := s.headcountRepo.ListByScenario(ctx, scenario.ID, scenario.StartYear)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.ScenarioSectionID == nil {
			// Sem seção não há centro de custo para receber as linhas.
			snap.warn("linha %s ignorada: quadro sem seção de cenário", entry.ID)
			continue
		}
		snap.entries[*entry.ScenarioSectionID] = append(snap.entries[*entry.ScenarioSectionID], entry)
	}

	revenues, err := s.revenueRepo.ListByScenario(ctx, scenario.ID)
	if err != nil {
		return nil, err
	}
	for _, revenue := range revenues {
		if snap.revenues[revenue.ScenarioSectionID] == nil {
			snap.revenues[revenue.ScenarioSectionID] = make(map[domain.MonthKey]decimal.Decimal)
		}
		mk := domain.NewMonthKey(revenue.Year, revenue.Month)
		snap.revenues[revenue.ScenarioSectionID][mk] = snap.revenues[revenue.ScenarioSectionID][mk].Add(revenue.Amount)
	}

	for _, section := range scenario.Sections {
		if snap.holidays[section.ID], err = s.catalogRepo.ListHolidays(ctx, section.State, section.City); err != nil {
			return nil, err
		}

		for _, regime := range []domain.Regime{domain.RegimeCLT, domain.RegimePJ} {
			key := chargeKey(section.CompanyID, regime)
			if _, ok := snap.charges[key]; ok {
				continue
			}
			if snap.charges[key], err = s.catalogRepo.ListCharges(ctx, section.CompanyID, regime); err != nil {
				return nil, err
			}
		}

		for _, entry := range snap.entries[section.ID] {
			if err := s.loadSalaryAndPolicy(ctx, snap, entry); err != nil {
				return nil, err
			}
		}
	}

	return snap, nil
}

func (s *Service) loadSalaryAndPolicy(ctx context.Context, snap *computeSnapshot, entry *domain.HeadcountEntry) error {
	key := salaryKey(entry.FunctionID, entry.Regime)
	if _, ok := snap.salaries[key]; ok {
		return nil
	}

	table, err := s.catalogRepo.GetSalaryTable(ctx, entry.FunctionID, entry.Regime)
	if err != nil {
		return err
	}
	snap.salaries[key] = table

	if table == nil || table.PolicyID == nil {
		return nil
	}
	if _, ok := snap.policies[*table.PolicyID]; ok {
		return nil
	}

	policy, err := s.catalogRepo.GetBenefitPolicy(ctx, *table.PolicyID)
	if err != nil {
		return err
	}
	snap.policies[*table.PolicyID] = policy

	return nil
}

func (s *Service) computeSection(snap *computeSnapshot, section *domain.ScenarioSection, horizon []domain.MonthKey) []*domain.CostRow {
	rows := make([]*domain.CostRow, 0)

	for _, entry := range snap.entries[section.ID] {
		rows = append(rows, s.computeEntry(snap, section, entry, horizon)...)
	}

	rows = append(rows, s.computeBonuses(snap, section, horizon)...)

	return rows
}

func (s *Service) computeEntry(snap *computeSnapshot, section *domain.ScenarioSection, entry *domain.HeadcountEntry, horizon []domain.MonthKey) []*domain.CostRow {
	salary, ok := s.entrySalary(snap, entry)
	if !ok {
		snap.warn("linha %s ignorada: sem tabela salarial e sem salário override (função %s)", entry.ID, entry.FunctionID)
		return nil
	}

	policy := s.entryPolicy(snap, entry)
	if policy == nil && entry.Regime == domain.RegimeCLT {
		snap.warn("linha %s sem política de benefícios; benefícios zerados (função %s)", entry.ID, entry.FunctionID)
	}

	charges := snap.charges[chargeKey(section.CompanyID, entry.Regime)]

	rows := make([]*domain.CostRow, 0)
	for _, mk := range horizon {
		rows = append(rows, s.computeUnit(snap, section, entry, mk, salary, policy, charges)...)
	}

	return rows
}

// computeUnit avalia uma unidade (seção, função, mês) camada por camada.
// Valores intermediários carregam 4 casas; o arredondamento para 2 casas
// acontece só na emissão da linha.
func (s *Service) computeUnit(
	snap *computeSnapshot,
	section *domain.ScenarioSection,
	entry *domain.HeadcountEntry,
	mk domain.MonthKey,
	salary decimal.Decimal,
	policy *domain.BenefitPolicy,
	charges []*domain.Charge,
) []*domain.CostRow {
	rounding := s.engineCfg.Rounding()

	qty := entry.Quantity(mk)
	if !qty.IsPositive() {
		return nil
	}

	rows := make([]*domain.CostRow, 0, 8)
	basePay := rounding.Round4(qty.Mul(salary))

	// Camada 1: remuneração
	for _, rubric := range snap.rubrics[domain.CategoryRemuneration] {
		switch rubric.Code {
		case RubricSalario:
			if entry.Regime == domain.RegimeCLT {
				rows = append(rows, s.newRow(section, entry.Regime, mk, rubric.Code, qty, salary, nil))
			}
		case RubricHonorarios:
			if entry.Regime == domain.RegimePJ {
				rows = append(rows, s.newRow(section, entry.Regime, mk, rubric.Code, qty, salary, nil))
			}
		case RubricHE50, RubricHE100, RubricDSR:
			if entry.Regime != domain.RegimeCLT || rubric.DefaultRate == nil || !rubric.DefaultRate.IsPositive() {
				continue
			}
			factor := *rubric.DefaultRate
			amount := domain.Percent(basePay, factor)
			rows = append(rows, s.newRow(section, entry.Regime, mk, rubric.Code, decimal.NewFromInt(1), amount,
				map[string]any{"fator": factor.String()}))
		}
	}

	// Camada 2: benefícios (somente CLT)
	benefitsTotal := decimal.Zero
	if entry.Regime == domain.RegimeCLT && policy != nil {
		benefitRows, total := s.computeBenefits(section, entry, mk, basePay, policy, snap.holidays[section.ID])
		rows = append(rows, benefitRows...)
		benefitsTotal = total
	}

	// Camada 3: encargos sobre salário e sobre total; os de base PROVISION
	// incidem sobre a camada seguinte e ficam para depois
	deferred := make([]*domain.Charge, 0)
	for _, charge := range charges {
		var base decimal.Decimal
		switch charge.BaseKind {
		case domain.ChargeBaseSalary:
			base = basePay
		case domain.ChargeBaseTotal:
			base = basePay.Add(benefitsTotal)
		case domain.ChargeBaseProvision:
			deferred = append(deferred, charge)
			continue
		default:
			continue
		}

		amount := domain.Percent(base, charge.Rate)
		if amount.IsZero() {
			continue
		}
		rows = append(rows, s.newRow(section, entry.Regime, mk, charge.Code, decimal.NewFromInt(1), amount,
			map[string]any{"taxa": charge.Rate.String(), "base": string(charge.BaseKind)}))
	}

	// Camada 4: provisões (somente CLT), com reflexo dos encargos salariais
	provisionTotal := decimal.Zero
	if entry.Regime == domain.RegimeCLT {
		for _, provision := range snap.provisions {
			base := domain.Percent(basePay, provision.Rate)
			amount := base
			if provision.IncidesCharges {
				for _, charge := range charges {
					if charge.BaseKind == domain.ChargeBaseSalary {
						amount = amount.Add(domain.Percent(base, charge.Rate))
					}
				}
			}
			if amount.IsZero() {
				continue
			}
			provisionTotal = provisionTotal.Add(amount)
			rows = append(rows, s.newRow(section, entry.Regime, mk, provision.Code, decimal.NewFromInt(1), amount,
				map[string]any{"taxa": provision.Rate.String(), "incide_encargos": provision.IncidesCharges}))
		}
	}

	for _, charge := range deferred {
		amount := domain.Percent(provisionTotal, charge.Rate)
		if amount.IsZero() {
			continue
		}
		rows = append(rows, s.newRow(section, entry.Regime, mk, charge.Code, decimal.NewFromInt(1), amount,
			map[string]any{"taxa": charge.Rate.String(), "base": string(charge.BaseKind)}))
	}

	// Camada 6: deduções, emitidas como valores negativos
	if entry.Regime == domain.RegimeCLT {
		for _, rubric := range snap.rubrics[domain.CategoryDeduction] {
			if rubric.CalcKind != domain.RubricPercentOfRubric || rubric.DefaultRate == nil || !rubric.DefaultRate.IsPositive() {
				continue
			}
			amount := domain.Percent(basePay, *rubric.DefaultRate).Neg()
			rows = append(rows, s.newRow(section, entry.Regime, mk, rubric.Code, decimal.NewFromInt(1), amount,
				map[string]any{"taxa": rubric.DefaultRate.String()}))
		}
	}

	return rows
}

func (s *Service) computeBenefits(
	section *domain.ScenarioSection,
	entry *domain.HeadcountEntry,
	mk domain.MonthKey,
	basePay decimal.Decimal,
	policy *domain.BenefitPolicy,
	holidays []*domain.Holiday,
) ([]*domain.CostRow, decimal.Decimal) {
	rounding := s.engineCfg.Rounding()
	qty := entry.Quantity(mk)

	days := WorkingDays(mk.Year, mk.Month, section.Workdays, holidays)
	if s.engineCfg.BenefitDaysMode == config.BenefitDaysFixed {
		days = FixedBenefitDays(policy.Schedule)
	}
	daysDec := decimal.NewFromInt(int64(days))

	rows := make([]*domain.CostRow, 0, 8)
	total := decimal.Zero

	// VT com teto de 6% do salário: o desconto do empregado abate do bruto,
	// nunca abaixo de zero. A linha segue o formato dos demais benefícios,
	// quantidade x valor líquido por pessoa.
	gross := rounding.Round4(qty.Mul(policy.VTPerDay).Mul(daysDec))
	if gross.IsPositive() {
		net := gross
		params := map[string]any{"dias": days, "vt_bruto": gross.String()}
		if policy.VT6PercentCap {
			cap := domain.Percent(basePay, six)
			deduction := decimal.Min(gross, cap)
			net = gross.Sub(deduction)
			params["vt_teto"] = cap.String()
		}
		unit := rounding.Round4(net.Div(qty))
		rows = append(rows, s.newRow(section, entry.Regime, mk, RubricVT, qty, unit, params))
		total = total.Add(qty.Mul(unit))
	}

	perDay := map[string]decimal.Decimal{
		RubricVR: policy.VRPerDay,
		RubricVA: policy.VAPerDay,
	}
	for _, code := range []string{RubricVR, RubricVA} {
		if !perDay[code].IsPositive() {
			continue
		}
		unit := rounding.Round4(perDay[code].Mul(daysDec))
		rows = append(rows, s.newRow(section, entry.Regime, mk, code, qty, unit,
			map[string]any{"dias": days}))
		total = total.Add(qty.Mul(unit))
	}

	monthly := map[string]decimal.Decimal{
		RubricSaude:      policy.Health,
		RubricOdonto:     policy.Dental,
		RubricVida:       policy.Life,
		RubricHomeOffice: policy.HomeOffice,
	}
	for _, code := range []string{RubricSaude, RubricOdonto, RubricVida, RubricHomeOffice} {
		if !monthly[code].IsPositive() {
			continue
		}
		rows = append(rows, s.newRow(section, entry.Regime, mk, code, qty, monthly[code], nil))
		total = total.Add(qty.Mul(monthly[code]))
	}

	if policy.ChildcareValue.IsPositive() && policy.ChildcarePercent.IsPositive() {
		unit := rounding.Round4(domain.Percent(policy.ChildcareValue, policy.ChildcarePercent))
		rows = append(rows, s.newRow(section, entry.Regime, mk, RubricCreche, qty, unit,
			map[string]any{"percentual": policy.ChildcarePercent.String()}))
		total = total.Add(qty.Mul(unit))
	}

	return rows, total
}

// computeBonuses emite as rubricas de bônus por percentual da receita da
// seção; elas não dependem do quadro de pessoal.
func (s *Service) computeBonuses(snap *computeSnapshot, section *domain.ScenarioSection, horizon []domain.MonthKey) []*domain.CostRow {
	rows := make([]*domain.CostRow, 0)

	sectionRevenue := snap.revenues[section.ID]
	if sectionRevenue == nil {
		return rows
	}

	for _, mk := range horizon {
		revenue := sectionRevenue[mk]
		if !revenue.IsPositive() {
			continue
		}

		for _, rubric := range snap.rubrics[domain.CategoryBonus] {
			if rubric.CalcKind != domain.RubricPercentOfRevenue || rubric.DefaultRate == nil || !rubric.DefaultRate.IsPositive() {
				continue
			}
			amount := domain.Percent(revenue, *rubric.DefaultRate)
			rows = append(rows, s.newRow(section, domain.RegimeCLT, mk, rubric.Code, decimal.NewFromInt(1), amount,
				map[string]any{"percentual": rubric.DefaultRate.String(), "receita": revenue.String()}))
		}
	}

	return rows
}

func (s *Service) newRow(
	section *domain.ScenarioSection,
	regime domain.Regime,
	mk domain.MonthKey,
	rubricCode string,
	qty, unit decimal.Decimal,
	params map[string]any,
) *domain.CostRow {
	rounding := s.engineCfg.Rounding()
	unit4 := rounding.Round4(unit)

	return &domain.CostRow{
		ID:                utils.MustGenerateID(),
		ScenarioID:        section.ScenarioID,
		ScenarioSectionID: section.ID,
		CostCenterID:      section.CostCenterID,
		RubricCode:        rubricCode,
		Year:              mk.Year,
		Month:             mk.Month,
		QuantityBase:      qty,
		UnitValue:         unit4,
		Amount:            rounding.Round2(qty.Mul(unit4)),
		Regime:            regime,
		Parameters:        params,
	}
}

func (s *Service) entrySalary(snap *computeSnapshot, entry *domain.HeadcountEntry) (decimal.Decimal, bool) {
	if entry.SalaryOverride != nil {
		return domain.NonNil(entry.SalaryOverride), true
	}

	table := snap.salaries[salaryKey(entry.FunctionID, entry.Regime)]
	if table == nil {
		return decimal.Zero, false
	}

	return table.BaseSalary, true
}

func (s *Service) entryPolicy(snap *computeSnapshot, entry *domain.HeadcountEntry) *domain.BenefitPolicy {
	table := snap.salaries[salaryKey(entry.FunctionID, entry.Regime)]
	if table == nil || table.PolicyID == nil {
		return nil
	}
	return snap.policies[*table.PolicyID]
}

func (snap *computeSnapshot) warn(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	snap.warnings = append(snap.warnings, message)
	logrus.Warn(message)
}

func chargeKey(companyID string, regime domain.Regime) string {
	return companyID + "|" + string(regime)
}

func salaryKey(functionID string, regime domain.Regime) string {
	return domain.CanonicalFunctionID(functionID) + "|" + string(regime)
}
