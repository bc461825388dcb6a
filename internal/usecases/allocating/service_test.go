package allocating

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

type solverFixture struct {
	service       *Service
	conn          *pgmocks.MockConn
	scenarioRepo  *mocks.MockScenarioRepository
	headcountRepo *mocks.MockHeadcountRepository
	catalogRepo   *mocks.MockCatalogRepository
	groupRepo     *mocks.MockAllocationGroupRepository
	costRowRepo   *mocks.MockCostRowRepository
	lockRepo      *mocks.MockScenarioLockRepository
}

func newSolverFixture(ctrl *gomock.Controller) *solverFixture {
	f := &solverFixture{
		conn:          pgmocks.NewMockConn(ctrl),
		scenarioRepo:  mocks.NewMockScenarioRepository(ctrl),
		headcountRepo: mocks.NewMockHeadcountRepository(ctrl),
		catalogRepo:   mocks.NewMockCatalogRepository(ctrl),
		groupRepo:     mocks.NewMockAllocationGroupRepository(ctrl),
		costRowRepo:   mocks.NewMockCostRowRepository(ctrl),
		lockRepo:      mocks.NewMockScenarioLockRepository(ctrl),
	}
	f.service = &Service{
		conn:          f.conn,
		scenarioRepo:  f.scenarioRepo,
		headcountRepo: f.headcountRepo,
		catalogRepo:   f.catalogRepo,
		groupRepo:     f.groupRepo,
		costRowRepo:   f.costRowRepo,
		lockRepo:      f.lockRepo,
		engineCfg:     config.Engine{},
	}
	return f
}

func strPtr(s string) *string {
	return &s
}

func poolScenario(sections ...*domain.ScenarioSection) *domain.Scenario {
	return &domain.Scenario{
		ID:         "cen1",
		Name:       "Orçamento 2025",
		StartYear:  2025,
		StartMonth: 1,
		EndYear:    2025,
		EndMonth:   1,
		Status:     "ACTIVE",
		Sections:   sections,
	}
}

func sourceRow(id string, amount float64) *domain.CostRow {
	return &domain.CostRow{
		ID:                id,
		ScenarioID:        "cen1",
		ScenarioSectionID: "cs_pool",
		CostCenterID:      "pool1",
		RubricCode:        "SALARIO",
		Year:              2025,
		Month:             1,
		QuantityBase:      decimal.NewFromInt(10),
		UnitValue:         decimal.NewFromFloat(amount / 10),
		Amount:            decimal.NewFromFloat(amount),
		Regime:            domain.RegimeCLT,
	}
}

func (f *solverFixture) expectBasis(scenario *domain.Scenario, costCenters []*domain.CostCenter, entries []*domain.HeadcountEntry) {
	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(scenario, nil)
	f.catalogRepo.EXPECT().ListCostCenters(gomock.Any()).Return(costCenters, nil)
	f.headcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(entries, nil)
}

func (f *solverFixture) expectTransaction() {
	f.conn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	f.lockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
}

func rowByCostCenter(rows []*domain.CostRow, costCenterID string) *domain.CostRow {
	for _, row := range rows {
		if row.CostCenterID == costCenterID {
			return row
		}
	}
	return nil
}

func TestService_ApplyAllocations_Manual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSolverFixture(ctrl)

	group := &domain.AllocationGroup{
		ID:                 "grp1",
		ScenarioID:         "cen1",
		SourceCostCenterID: "pool1",
		Method:             domain.AllocationManual,
		Destinations: []domain.AllocationDestination{
			{CostCenterID: "cc_a", Weight: decimal.NewFromInt(30)},
			{CostCenterID: "cc_b", Weight: decimal.NewFromInt(70)},
		},
	}

	f.expectBasis(poolScenario(), nil, nil)
	f.groupRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return([]*domain.AllocationGroup{group}, nil)
	f.expectTransaction()

	f.costRowRepo.EXPECT().
		ListByCostCenter(gomock.Any(), gomock.Any(), "cen1", "pool1").
		Return([]*domain.CostRow{sourceRow("row1", 1000)}, nil)
	f.costRowRepo.EXPECT().
		MarkAllocated(gomock.Any(), gomock.Any(), "row1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, _ string, params map[string]any) error {
			assert.Equal(t, "grp1", params["allocated_from"])
			assert.Equal(t, "1000.00", params["valor_original"])
			assert.Equal(t, "pool1", params["centro_original"])
			return nil
		})

	var mirrored []*domain.CostRow
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, rows []*domain.CostRow) error {
			mirrored = rows
			return nil
		})

	result, err := f.service.ApplyAllocations(context.Background(), "cen1", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.GroupsApplied)
	assert.Equal(t, 1, result.SourceZeroed)
	assert.Equal(t, 2, result.DestinationsIncreased)
	assert.Equal(t, int64(0), result.ResidualCents)

	// 30/70 sobre 1000,00: espelhos de 300,00 e 700,00 conservam o total.
	assert.Len(t, mirrored, 2)
	ccA := rowByCostCenter(mirrored, "cc_a")
	assert.NotNil(t, ccA)
	assert.Equal(t, "300.00", ccA.Amount.StringFixed(2))
	assert.Equal(t, "3.00", ccA.QuantityBase.StringFixed(2))
	assert.Equal(t, "MANUAL", ccA.Parameters["metodo"])
	assert.Equal(t, "pool1", ccA.Parameters["centro_original"])

	ccB := rowByCostCenter(mirrored, "cc_b")
	assert.NotNil(t, ccB)
	assert.Equal(t, "700.00", ccB.Amount.StringFixed(2))
}

func TestService_ApplyAllocations_ResidualToLargestShare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSolverFixture(ctrl)

	// Três seções com um headcount cada: pesos HC iguais (um terço).
	sections := []*domain.ScenarioSection{
		{ID: "cs_a", ScenarioID: "cen1", CostCenterID: "cc_a", CompanyID: "emp1"},
		{ID: "cs_b", ScenarioID: "cen1", CostCenterID: "cc_b", CompanyID: "emp1"},
		{ID: "cs_c", ScenarioID: "cen1", CostCenterID: "cc_c", CompanyID: "emp1"},
	}
	jan := domain.NewMonthKey(2025, 1)
	entries := make([]*domain.HeadcountEntry, 0, 3)
	for _, sectionID := range []string{"cs_a", "cs_b", "cs_c"} {
		entries = append(entries, &domain.HeadcountEntry{
			ID:                "hc_" + sectionID,
			ScenarioID:        "cen1",
			ScenarioSectionID: strPtr(sectionID),
			FunctionID:        "OPERADOR",
			Regime:            domain.RegimeCLT,
			CalcKind:          domain.CalcManual,
			Months:            map[domain.MonthKey]decimal.Decimal{jan: decimal.NewFromInt(1)},
			Active:            true,
		})
	}

	group := &domain.AllocationGroup{
		ID:                 "grp1",
		ScenarioID:         "cen1",
		SourceCostCenterID: "pool1",
		Method:             domain.AllocationHC,
		Destinations: []domain.AllocationDestination{
			{CostCenterID: "cc_a"},
			{CostCenterID: "cc_b"},
			{CostCenterID: "cc_c"},
		},
	}

	f.expectBasis(poolScenario(sections...), nil, entries)
	f.groupRepo.EXPECT().GetByID(gomock.Any(), "grp1").Return(group, nil)
	f.expectTransaction()

	f.costRowRepo.EXPECT().
		ListByCostCenter(gomock.Any(), gomock.Any(), "cen1", "pool1").
		Return([]*domain.CostRow{sourceRow("row1", 100.03)}, nil)
	f.costRowRepo.EXPECT().
		MarkAllocated(gomock.Any(), gomock.Any(), "row1", gomock.Any()).
		Return(nil)

	var mirrored []*domain.CostRow
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, rows []*domain.CostRow) error {
			mirrored = rows
			return nil
		})

	result, err := f.service.ApplyAllocations(context.Background(), "cen1", strPtr("grp1"))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ResidualCents)

	// 100,03 em terços: 33,34 + 33,34 + 33,34 deixa 0,01 de resíduo, que vai
	// para o empate de menor id de centro de custo.
	assert.Len(t, mirrored, 3)
	assert.Equal(t, "33.35", rowByCostCenter(mirrored, "cc_a").Amount.StringFixed(2))
	assert.Equal(t, "33.34", rowByCostCenter(mirrored, "cc_b").Amount.StringFixed(2))
	assert.Equal(t, "33.34", rowByCostCenter(mirrored, "cc_c").Amount.StringFixed(2))

	total := decimal.Zero
	for _, row := range mirrored {
		total = total.Add(row.Amount)
	}
	assert.Equal(t, "100.03", total.StringFixed(2))
}

func TestService_ApplyAllocations_InvalidManualWeights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSolverFixture(ctrl)

	group := &domain.AllocationGroup{
		ID:                 "grp1",
		ScenarioID:         "cen1",
		SourceCostCenterID: "pool1",
		Method:             domain.AllocationManual,
		Destinations: []domain.AllocationDestination{
			{CostCenterID: "cc_a", Weight: decimal.NewFromInt(30)},
			{CostCenterID: "cc_b", Weight: decimal.NewFromInt(60)},
		},
	}

	f.expectBasis(poolScenario(), nil, nil)
	f.groupRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return([]*domain.AllocationGroup{group}, nil)
	f.expectTransaction()

	f.costRowRepo.EXPECT().
		MarkAllocated(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	_, err := f.service.ApplyAllocations(context.Background(), "cen1", nil)
	assert.ErrorIs(t, err, ErrInvalidManualWeights)

	var allocErr *AllocationError
	assert.ErrorAs(t, err, &allocErr)
	assert.Equal(t, "grp1", allocErr.GroupID)
}

func TestService_ApplyAllocations_InertGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSolverFixture(ctrl)

	// Método HC sem quadro de pessoal nos destinos: pesos somam zero.
	group := &domain.AllocationGroup{
		ID:                 "grp1",
		ScenarioID:         "cen1",
		SourceCostCenterID: "pool1",
		Method:             domain.AllocationHC,
		Destinations: []domain.AllocationDestination{
			{CostCenterID: "cc_a"},
			{CostCenterID: "cc_b"},
		},
	}

	f.expectBasis(poolScenario(), nil, nil)
	f.groupRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return([]*domain.AllocationGroup{group}, nil)
	f.expectTransaction()

	f.costRowRepo.EXPECT().
		ListByCostCenter(gomock.Any(), gomock.Any(), "cen1", "pool1").
		Return([]*domain.CostRow{sourceRow("row1", 500)}, nil)
	f.costRowRepo.EXPECT().
		MarkAllocated(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Len(0)).
		Return(nil)

	result, err := f.service.ApplyAllocations(context.Background(), "cen1", nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.GroupsApplied)
	assert.Equal(t, 0, result.SourceZeroed)
	assert.NotEmpty(t, result.Warnings)
}

func TestService_ApplyAllocations_NegativeWeights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSolverFixture(ctrl)

	group := &domain.AllocationGroup{
		ID:                 "grp1",
		ScenarioID:         "cen1",
		SourceCostCenterID: "pool1",
		Method:             domain.AllocationArea,
		Destinations: []domain.AllocationDestination{
			{CostCenterID: "cc_a"},
			{CostCenterID: "cc_b"},
		},
	}
	costCenters := []*domain.CostCenter{
		{ID: "cc_a", AreaM2: decimal.NewFromInt(-5)},
		{ID: "cc_b", AreaM2: decimal.NewFromInt(2)},
	}

	f.expectBasis(poolScenario(), costCenters, nil)
	f.groupRepo.EXPECT().ListByScenario(gomock.Any(), "cen1").Return([]*domain.AllocationGroup{group}, nil)
	f.expectTransaction()

	f.costRowRepo.EXPECT().
		ListByCostCenter(gomock.Any(), gomock.Any(), "cen1", "pool1").
		Return([]*domain.CostRow{sourceRow("row1", 500)}, nil)
	f.costRowRepo.EXPECT().
		BulkInsert(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	_, err := f.service.ApplyAllocations(context.Background(), "cen1", nil)
	assert.ErrorIs(t, err, ErrNegativeWeights)
}

func TestService_ApplyAllocations_GroupNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newSolverFixture(ctrl)

	f.scenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(poolScenario(), nil)
	f.groupRepo.EXPECT().GetByID(gomock.Any(), "grp9").Return(&domain.AllocationGroup{
		ID:         "grp9",
		ScenarioID: "outro-cenario",
	}, nil)

	_, err := f.service.ApplyAllocations(context.Background(), "cen1", strPtr("grp9"))
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
