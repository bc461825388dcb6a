package costing

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	pgmocks "github.com/vfg2006/budget-planner-api/infrastructure/database/postgres/mocks"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

type engineFixture struct {
	service       *Service
	conn          *pgmocks.MockConn
	scenarioRepo  *mocks.MockScenarioRepository
	headcountRepo *mocks.MockHeadcountRepository
	catalogRepo   *mocks.MockCatalogRepository
	costRowRepo   *mocks.MockCostRowRepository
	revenueRepo   *mocks.MockRevenueRepository
	lockRepo      *mocks.MockScenarioLockRepository
}

func newEngineFixture(ctrl *gomock.Controller) *engineFixture {
	f := &engineFixture{
		conn:          pgmocks.NewMockConn(ctrl),
		scenarioRepo:  mocks.NewMockScenarioRepository(ctrl),
		headcountRepo: mocks.NewMockHeadcountRepository(ctrl),
		catalogRepo:   mocks.NewMockCatalogRepository(ctrl),
		costRowRepo:   mocks.NewMockCostRowRepository(ctrl),
		revenueRepo:   mocks.NewMockRevenueRepository(ctrl),
		lockRepo:      mocks.NewMockScenarioLockRepository(ctrl),
	}
	f.service = &Service{
		conn:          f.conn,
		scenarioRepo:  f.scenarioRepo,
		headcountRepo: f.headcountRepo,
		catalogRepo:   f.catalogRepo,
		costRowRepo:   f.costRowRepo,
		revenueRepo:   f.revenueRepo,
		lockRepo:      f.lockRepo,
		engineCfg:     config.Engine{},
	}
	return f
}

func januaryScenario() *domain.Scenario {
	section := &domain.ScenarioSection{
		ID:           "cs1",
		ScenarioID:   "cen1",
		SectionID:    "sec1",
		CostCenterID: "cc1",
		CompanyID:    "emp1",
		State:        "SP",
		City:         "São Paulo",
	}
	return &domain.Scenario{
		ID:         "cen1",
		Name:       "Orçamento 2025",
		StartYear:  2025,
		StartMonth: 1,
		EndYear:    2025,
		EndMonth:   1,
		Status:     "ACTIVE",
		Sections:   []*domain.ScenarioSection{section},
	}
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func rubricWithRate(code string, category domain.RubricCategory, kind domain.RubricCalcKind, rate float64) *domain.Rubric {
	return &domain.Rubric{
		Code:        code,
		Category:    category,
		CalcKind:    kind,
		DefaultRate: decPtr(rate),
	}
}

func rowByRubric(rows []*domain.CostRow, code string) *domain.CostRow {
	for _, row := range rows {
		if row.RubricCode == code {
			return row
		}
	}
	return nil
}

// expectTransaction arma o caminho padrão de escrita: transação, lock
// adquirido, limpeza do escopo inteiro e captura das linhas inseridas.
func (f *engineFixture) expectTransaction(captured *[]*domain.CostRow) {
	f.conn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	f.lockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
	f.costRowRepo.EXPECT().
		DeleteByScope(gomock.Any(), gomock.Any(), "cen1", gomock.Nil(), gomock.Nil()).
		Return(int64(0), nil)
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, rows []*domain.CostRow) error {
			*captured = rows
			return nil
		})
}

func TestService_RecomputeScenarioCosts_CLT(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)
	scenario := januaryScenario()

	entry := &domain.HeadcountEntry{
		ID:                "hc1",
		ScenarioID:        "cen1",
		ScenarioSectionID: strPtr("cs1"),
		FunctionID:        "OPERADOR",
		Regime:            domain.RegimeCLT,
		SalaryOverride:    decPtr(5000),
		CalcKind:          domain.CalcManual,
		Months: map[domain.MonthKey]decimal.Decimal{
			domain.NewMonthKey(2025, 1): decimal.NewFromInt(10),
		},
		Active: true,
	}

	table := &domain.SalaryTable{
		ID:         "tab1",
		FunctionID: "OPERADOR",
		Regime:     domain.RegimeCLT,
		PolicyID:   strPtr("pol1"),
		BaseSalary: decimal.NewFromInt(4200),
	}
	policy := &domain.BenefitPolicy{
		ID:            "pol1",
		Regime:        domain.RegimeCLT,
		Schedule:      domain.Schedule5x2,
		VTPerDay:      decimal.NewFromInt(12),
		VT6PercentCap: true,
		VRPerDay:      decimal.NewFromInt(30),
	}

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListRubrics(gomock.Any()).Return([]*domain.Rubric{
		{Code: RubricSalario, Category: domain.CategoryRemuneration, CalcKind: domain.RubricHCxSalary},
		{Code: RubricHonorarios, Category: domain.CategoryRemuneration, CalcKind: domain.RubricHCxSalary},
	}, nil)
	f.catalogRepo.EXPECT().ListProvisions(gomock.Any()).Return(nil, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return([]*domain.HeadcountEntry{entry}, nil)
	f.revenueRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return(nil, nil)
	f.catalogRepo.EXPECT().ListHolidays(gomock.Any(), "SP", "São Paulo").Return([]*domain.Holiday{
		{ID: "fer1", Name: "Confraternização Universal", Scope: domain.HolidayNational, Day: 1, Month: 1},
	}, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimeCLT).Return([]*domain.Charge{
		{Code: "INSS", BaseKind: domain.ChargeBaseSalary, Rate: decimal.NewFromInt(20)},
	}, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimePJ).Return(nil, nil)
	f.catalogRepo.EXPECT().GetSalaryTable(gomock.Any(), "OPERADOR", domain.RegimeCLT).Return(table, nil)
	f.catalogRepo.EXPECT().GetBenefitPolicy(gomock.Any(), "pol1").Return(policy, nil)

	var rows []*domain.CostRow
	f.expectTransaction(&rows)

	result, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.NoError(t, err)
	assert.Equal(t, 4, result.RowsWritten)
	assert.Equal(t, "66600.00", result.TotalAmount.StringFixed(2))

	// Salário: 10 pessoas x override de 5000,00. O override vence a tabela.
	salario := rowByRubric(rows, RubricSalario)
	assert.NotNil(t, salario)
	assert.Equal(t, "50000.00", salario.Amount.StringFixed(2))
	assert.Equal(t, "10", salario.QuantityBase.String())
	assert.Equal(t, "cc1", salario.CostCenterID)

	// VT: bruto 10 x 12,00 x 22 dias = 2640,00, inteiramente abatido pelo
	// desconto de 6% do salário (teto 3000,00).
	vt := rowByRubric(rows, RubricVT)
	assert.NotNil(t, vt)
	assert.Equal(t, "0.00", vt.Amount.StringFixed(2))
	assert.Equal(t, "2640", vt.Parameters["vt_bruto"])
	assert.Equal(t, 22, vt.Parameters["dias"])

	// VR: 30,00 por dia x 22 dias por pessoa.
	vr := rowByRubric(rows, RubricVR)
	assert.NotNil(t, vr)
	assert.Equal(t, "6600.00", vr.Amount.StringFixed(2))

	// INSS: 20% sobre a folha de 50000,00. O VT zerado não muda a base.
	inss := rowByRubric(rows, "INSS")
	assert.NotNil(t, inss)
	assert.Equal(t, "10000.00", inss.Amount.StringFixed(2))
}

func TestService_RecomputeScenarioCosts_VTWithoutCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)
	scenario := januaryScenario()

	entry := &domain.HeadcountEntry{
		ID:                "hc1",
		ScenarioID:        "cen1",
		ScenarioSectionID: strPtr("cs1"),
		FunctionID:        "OPERADOR",
		Regime:            domain.RegimeCLT,
		SalaryOverride:    decPtr(5000),
		CalcKind:          domain.CalcManual,
		Months: map[domain.MonthKey]decimal.Decimal{
			domain.NewMonthKey(2025, 1): decimal.NewFromInt(4),
		},
		Active: true,
	}

	table := &domain.SalaryTable{
		ID:         "tab1",
		FunctionID: "OPERADOR",
		Regime:     domain.RegimeCLT,
		PolicyID:   strPtr("pol1"),
		BaseSalary: decimal.NewFromInt(4200),
	}
	policy := &domain.BenefitPolicy{
		ID:       "pol1",
		Regime:   domain.RegimeCLT,
		Schedule: domain.Schedule5x2,
		VTPerDay: decimal.NewFromInt(10),
	}

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListRubrics(gomock.Any()).Return([]*domain.Rubric{
		{Code: RubricSalario, Category: domain.CategoryRemuneration, CalcKind: domain.RubricHCxSalary},
	}, nil)
	f.catalogRepo.EXPECT().ListProvisions(gomock.Any()).Return(nil, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return([]*domain.HeadcountEntry{entry}, nil)
	f.revenueRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return(nil, nil)
	f.catalogRepo.EXPECT().ListHolidays(gomock.Any(), "SP", "São Paulo").Return([]*domain.Holiday{
		{ID: "fer1", Name: "Confraternização Universal", Scope: domain.HolidayNational, Day: 1, Month: 1},
	}, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimeCLT).Return(nil, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimePJ).Return(nil, nil)
	f.catalogRepo.EXPECT().GetSalaryTable(gomock.Any(), "OPERADOR", domain.RegimeCLT).Return(table, nil)
	f.catalogRepo.EXPECT().GetBenefitPolicy(gomock.Any(), "pol1").Return(policy, nil)

	var rows []*domain.CostRow
	f.expectTransaction(&rows)

	result, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.RowsWritten)
	assert.Equal(t, "20880.00", result.TotalAmount.StringFixed(2))

	// VT sem teto: 4 pessoas x 10,00 x 22 dias. A linha carrega a quantidade
	// e o valor líquido por pessoa, como as demais linhas de benefício.
	vt := rowByRubric(rows, RubricVT)
	assert.NotNil(t, vt)
	assert.Equal(t, "4", vt.QuantityBase.String())
	assert.Equal(t, "220.00", vt.UnitValue.StringFixed(2))
	assert.Equal(t, "880.00", vt.Amount.StringFixed(2))
	assert.Equal(t, "880", vt.Parameters["vt_bruto"])
	assert.Equal(t, 22, vt.Parameters["dias"])
}

func TestService_RecomputeScenarioCosts_PJ(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)
	scenario := januaryScenario()

	entry := &domain.HeadcountEntry{
		ID:                "hc1",
		ScenarioID:        "cen1",
		ScenarioSectionID: strPtr("cs1"),
		FunctionID:        "CONSULTOR",
		Regime:            domain.RegimePJ,
		SalaryOverride:    decPtr(4000),
		CalcKind:          domain.CalcManual,
		Months: map[domain.MonthKey]decimal.Decimal{
			domain.NewMonthKey(2025, 1): decimal.NewFromInt(2),
		},
		Active: true,
	}

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListRubrics(gomock.Any()).Return([]*domain.Rubric{
		{Code: RubricSalario, Category: domain.CategoryRemuneration, CalcKind: domain.RubricHCxSalary},
		{Code: RubricHonorarios, Category: domain.CategoryRemuneration, CalcKind: domain.RubricHCxSalary},
		rubricWithRate("DESC_VT", domain.CategoryDeduction, domain.RubricPercentOfRubric, 6),
	}, nil)
	f.catalogRepo.EXPECT().ListProvisions(gomock.Any()).Return([]*domain.Provision{
		{Code: "PROV_FERIAS", Rate: decimal.NewFromFloat(11.11), IncidesCharges: true},
	}, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return([]*domain.HeadcountEntry{entry}, nil)
	f.revenueRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return(nil, nil)
	f.catalogRepo.EXPECT().ListHolidays(gomock.Any(), "SP", "São Paulo").Return(nil, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimeCLT).Return([]*domain.Charge{
		{Code: "INSS", BaseKind: domain.ChargeBaseSalary, Rate: decimal.NewFromInt(20)},
	}, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimePJ).Return(nil, nil)
	f.catalogRepo.EXPECT().GetSalaryTable(gomock.Any(), "CONSULTOR", domain.RegimePJ).Return(nil, nil)

	var rows []*domain.CostRow
	f.expectTransaction(&rows)

	result, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.NoError(t, err)

	// PJ recebe só honorários: sem benefícios, sem encargos CLT, sem
	// provisões e sem deduções.
	assert.Equal(t, 1, result.RowsWritten)
	honorarios := rowByRubric(rows, RubricHonorarios)
	assert.NotNil(t, honorarios)
	assert.Equal(t, "8000.00", honorarios.Amount.StringFixed(2))
	assert.Nil(t, rowByRubric(rows, RubricSalario))
	assert.Nil(t, rowByRubric(rows, "INSS"))
	assert.Nil(t, rowByRubric(rows, "PROV_FERIAS"))
}

func TestService_RecomputeScenarioCosts_ProvisionsAndDeferredCharges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)
	scenario := januaryScenario()

	entry := &domain.HeadcountEntry{
		ID:                "hc1",
		ScenarioID:        "cen1",
		ScenarioSectionID: strPtr("cs1"),
		FunctionID:        "ANALISTA",
		Regime:            domain.RegimeCLT,
		SalaryOverride:    decPtr(1000),
		CalcKind:          domain.CalcManual,
		Months: map[domain.MonthKey]decimal.Decimal{
			domain.NewMonthKey(2025, 1): decimal.NewFromInt(1),
		},
		Active: true,
	}

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListRubrics(gomock.Any()).Return([]*domain.Rubric{
		{Code: RubricSalario, Category: domain.CategoryRemuneration, CalcKind: domain.RubricHCxSalary},
	}, nil)
	f.catalogRepo.EXPECT().ListProvisions(gomock.Any()).Return([]*domain.Provision{
		{Code: "PROV_FERIAS", Rate: decimal.NewFromInt(10), IncidesCharges: true},
	}, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return([]*domain.HeadcountEntry{entry}, nil)
	f.revenueRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return(nil, nil)
	f.catalogRepo.EXPECT().ListHolidays(gomock.Any(), "SP", "São Paulo").Return(nil, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimeCLT).Return([]*domain.Charge{
		{Code: "INSS", BaseKind: domain.ChargeBaseSalary, Rate: decimal.NewFromInt(20)},
		{Code: "INSS_PROV", BaseKind: domain.ChargeBaseProvision, Rate: decimal.NewFromInt(20)},
	}, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimePJ).Return(nil, nil)
	f.catalogRepo.EXPECT().GetSalaryTable(gomock.Any(), "ANALISTA", domain.RegimeCLT).Return(nil, nil)

	var rows []*domain.CostRow
	f.expectTransaction(&rows)

	result, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.NoError(t, err)

	// Linha sem tabela salarial e sem política gera aviso sem abortar.
	assert.NotEmpty(t, result.Warnings)

	// Provisão de 10% sobre 1000,00 com reflexo do INSS: 100 + 20 = 120.
	provisao := rowByRubric(rows, "PROV_FERIAS")
	assert.NotNil(t, provisao)
	assert.Equal(t, "120.00", provisao.Amount.StringFixed(2))

	// Encargo de base PROVISION incide sobre o total provisionado.
	inssProv := rowByRubric(rows, "INSS_PROV")
	assert.NotNil(t, inssProv)
	assert.Equal(t, "24.00", inssProv.Amount.StringFixed(2))

	assert.Equal(t, "1344.00", result.TotalAmount.StringFixed(2))
}

func TestService_RecomputeScenarioCosts_RevenueBonus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)
	scenario := januaryScenario()

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListRubrics(gomock.Any()).Return([]*domain.Rubric{
		rubricWithRate("PLR", domain.CategoryBonus, domain.RubricPercentOfRevenue, 2),
	}, nil)
	f.catalogRepo.EXPECT().ListProvisions(gomock.Any()).Return(nil, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(nil, nil)
	f.revenueRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return([]*domain.RevenueEntry{
		{ID: "rec1", ScenarioID: "cen1", ScenarioSectionID: "cs1", Year: 2025, Month: 1, Amount: decimal.NewFromInt(50000)},
	}, nil)
	f.catalogRepo.EXPECT().ListHolidays(gomock.Any(), "SP", "São Paulo").Return(nil, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimeCLT).Return(nil, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", domain.RegimePJ).Return(nil, nil)

	var rows []*domain.CostRow
	f.expectTransaction(&rows)

	result, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.RowsWritten)

	// PLR: 2% da receita de 50000,00 da seção no mês.
	plr := rowByRubric(rows, "PLR")
	assert.NotNil(t, plr)
	assert.Equal(t, "1000.00", plr.Amount.StringFixed(2))
}

func TestService_RecomputeScenarioCosts_ScenarioNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(nil, nil)

	_, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.ErrorIs(t, err, ErrScenarioNotFound)

	var computeErr *ComputeError
	assert.ErrorAs(t, err, &computeErr)
	assert.Equal(t, "cen1", computeErr.ScenarioID)
}

func TestService_RecomputeScenarioCosts_ScenarioLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newEngineFixture(ctrl)
	scenario := januaryScenario()

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListRubrics(gomock.Any()).Return(nil, nil)
	f.catalogRepo.EXPECT().ListProvisions(gomock.Any()).Return(nil, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(nil, nil)
	f.revenueRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return(nil, nil)
	f.catalogRepo.EXPECT().ListHolidays(gomock.Any(), "SP", "São Paulo").Return(nil, nil)
	f.catalogRepo.EXPECT().ListCharges(gomock.Any(), "emp1", gomock.Any()).Return(nil, nil).Times(2)

	f.conn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	f.lockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(false, nil)
	f.costRowRepo.EXPECT().
		DeleteByScope(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	_, err := f.service.RecomputeScenarioCosts(context.Background(), "cen1", nil)
	assert.ErrorIs(t, err, ErrScenarioLocked)
}
