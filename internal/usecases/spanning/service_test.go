package spanning

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	pgmocks "github.com/vfg2006/budget-planner-api/infrastructure/database/postgres/mocks"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

func newTestScenario() *domain.Scenario {
	return &domain.Scenario{
		ID:         "cen1",
		Name:       "Orçamento 2025",
		StartYear:  2025,
		StartMonth: 1,
		EndYear:    2025,
		EndMonth:   1,
		Status:     "ACTIVE",
	}
}

func baseEntry(id, functionID string, qty float64) *domain.HeadcountEntry {
	return &domain.HeadcountEntry{
		ID:         id,
		ScenarioID: "cen1",
		FunctionID: functionID,
		Regime:     domain.RegimeCLT,
		CalcKind:   domain.CalcManual,
		Months: map[domain.MonthKey]decimal.Decimal{
			domain.NewMonthKey(2025, 1): decimal.NewFromFloat(qty),
		},
		Active: true,
	}
}

func spanEntry(id, functionID string, bases []string, ratio float64) *domain.HeadcountEntry {
	r := decimal.NewFromFloat(ratio)
	return &domain.HeadcountEntry{
		ID:                  id,
		ScenarioID:          "cen1",
		FunctionID:          functionID,
		Regime:              domain.RegimeCLT,
		CalcKind:            domain.CalcSpan,
		SpanBaseFunctionIDs: bases,
		SpanRatio:           &r,
		Months:              map[domain.MonthKey]decimal.Decimal{},
		Active:              true,
	}
}

func TestService_ResolveOne(t *testing.T) {
	jan := domain.NewMonthKey(2025, 1)

	tests := []struct {
		name         string
		baseQuantity [2]float64
		expectedGrid string
	}{
		{
			name:         "Teto de 15 operadores sobre razão 5 resulta em 3 supervisores",
			baseQuantity: [2]float64{7, 8},
			expectedGrid: "3",
		},
		{
			name:         "Aumento da base para 17 propaga o teto para 4 supervisores",
			baseQuantity: [2]float64{9, 8},
			expectedGrid: "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockConn := pgmocks.NewMockConn(ctrl)
			mockScenarioRepo := mocks.NewMockScenarioRepository(ctrl)
			mockHeadcountRepo := mocks.NewMockHeadcountRepository(ctrl)
			mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

			service := &Service{
				conn:          mockConn,
				scenarioRepo:  mockScenarioRepo,
				headcountRepo: mockHeadcountRepo,
				lockRepo:      mockLockRepo,
			}

			entries := []*domain.HeadcountEntry{
				baseEntry("hc1", "OPERADOR", tt.baseQuantity[0]),
				baseEntry("hc2", "operador", tt.baseQuantity[1]),
				spanEntry("hc3", "SUPERVISOR", []string{"OPERADOR"}, 5),
			}

			mockConn.EXPECT().
				RunInTransaction(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
					return fn(nil)
				})
			mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
			mockScenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(newTestScenario(), nil)
			mockHeadcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(entries, nil)

			mockHeadcountRepo.EXPECT().
				ReplaceMonths(gomock.Any(), gomock.Any(), "hc3", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sql.Tx, _ string, months map[domain.MonthKey]decimal.Decimal) error {
					assert.Equal(t, tt.expectedGrid, months[jan].String())
					return nil
				})
			mockHeadcountRepo.EXPECT().
				SyncInlineQuantities(gomock.Any(), gomock.Any(), "hc3", 2025, gomock.Any()).
				Return(nil)

			err := service.ResolveOne(context.Background(), "cen1", "hc3")
			assert.NoError(t, err)
		})
	}
}

func TestService_ResolveOne_NotSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := pgmocks.NewMockConn(ctrl)
	mockScenarioRepo := mocks.NewMockScenarioRepository(ctrl)
	mockHeadcountRepo := mocks.NewMockHeadcountRepository(ctrl)
	mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

	service := &Service{
		conn:          mockConn,
		scenarioRepo:  mockScenarioRepo,
		headcountRepo: mockHeadcountRepo,
		lockRepo:      mockLockRepo,
	}

	mockConn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
	mockScenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(newTestScenario(), nil)
	mockHeadcountRepo.EXPECT().
		ListByScenario(gomock.Any(), "cen1", 2025).
		Return([]*domain.HeadcountEntry{baseEntry("hc1", "OPERADOR", 10)}, nil)

	err := service.ResolveOne(context.Background(), "cen1", "hc1")
	assert.ErrorIs(t, err, ErrNotSpanEntry)
}

func TestService_ResolveAffected_Propagation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := pgmocks.NewMockConn(ctrl)
	mockScenarioRepo := mocks.NewMockScenarioRepository(ctrl)
	mockHeadcountRepo := mocks.NewMockHeadcountRepository(ctrl)
	mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

	service := &Service{
		conn:          mockConn,
		scenarioRepo:  mockScenarioRepo,
		headcountRepo: mockHeadcountRepo,
		lockRepo:      mockLockRepo,
	}

	jan := domain.NewMonthKey(2025, 1)

	// Cadeia OPERADOR -> SUPERVISOR (razão 5) -> COORDENADOR (razão 3).
	entries := []*domain.HeadcountEntry{
		baseEntry("hc1", "OPERADOR", 17),
		spanEntry("hc2", "SUPERVISOR", []string{"OPERADOR"}, 5),
		spanEntry("hc3", "COORDENADOR", []string{"SUPERVISOR"}, 3),
	}

	mockConn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
	mockScenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(newTestScenario(), nil)
	mockHeadcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(entries, nil)

	persisted := make(map[string]decimal.Decimal)
	mockHeadcountRepo.EXPECT().
		ReplaceMonths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, headcountID string, months map[domain.MonthKey]decimal.Decimal) error {
			persisted[headcountID] = months[jan]
			return nil
		}).
		Times(2)
	mockHeadcountRepo.EXPECT().
		SyncInlineQuantities(gomock.Any(), gomock.Any(), gomock.Any(), 2025, gomock.Any()).
		Return(nil).
		Times(2)

	count, err := service.ResolveAffected(context.Background(), "cen1", "OPERADOR", nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	// teto(17/5) = 4 supervisores; teto(4/3) = 2 coordenadores.
	assert.Equal(t, "4", persisted["hc2"].String())
	assert.Equal(t, "2", persisted["hc3"].String())
}

func TestService_ResolveAffected_Cycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := pgmocks.NewMockConn(ctrl)
	mockScenarioRepo := mocks.NewMockScenarioRepository(ctrl)
	mockHeadcountRepo := mocks.NewMockHeadcountRepository(ctrl)
	mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

	service := &Service{
		conn:          mockConn,
		scenarioRepo:  mockScenarioRepo,
		headcountRepo: mockHeadcountRepo,
		lockRepo:      mockLockRepo,
	}

	// E1 depende de F2 e E2 depende de F1: ciclo direto entre os dois spans.
	entries := []*domain.HeadcountEntry{
		spanEntry("hc1", "F1", []string{"F2"}, 2),
		spanEntry("hc2", "F2", []string{"F1"}, 2),
	}

	mockConn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
	mockScenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(newTestScenario(), nil)
	mockHeadcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(entries, nil)

	// Nenhuma escrita pode acontecer quando a resolução detecta ciclo.
	mockHeadcountRepo.EXPECT().
		ReplaceMonths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)
	mockHeadcountRepo.EXPECT().
		SyncInlineQuantities(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	count, err := service.ResolveAffected(context.Background(), "cen1", "F1", nil)
	assert.Equal(t, 0, count)
	assert.ErrorIs(t, err, ErrSpanCycle)

	var spanErr *SpanError
	assert.ErrorAs(t, err, &spanErr)
}

func TestService_ResolveAffected_ScenarioLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := pgmocks.NewMockConn(ctrl)
	mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

	service := &Service{
		conn:     mockConn,
		lockRepo: mockLockRepo,
	}

	mockConn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(false, nil)

	_, err := service.ResolveAffected(context.Background(), "cen1", "OPERADOR", nil)
	assert.ErrorIs(t, err, ErrScenarioLocked)
}

func TestService_ResolveOne_InvalidSpanSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := pgmocks.NewMockConn(ctrl)
	mockScenarioRepo := mocks.NewMockScenarioRepository(ctrl)
	mockHeadcountRepo := mocks.NewMockHeadcountRepository(ctrl)
	mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

	service := &Service{
		conn:          mockConn,
		scenarioRepo:  mockScenarioRepo,
		headcountRepo: mockHeadcountRepo,
		lockRepo:      mockLockRepo,
	}

	// Span sem razão: a linha é pulada sem erro e nada é persistido.
	invalid := spanEntry("hc1", "SUPERVISOR", []string{"OPERADOR"}, 5)
	invalid.SpanRatio = nil

	mockConn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
	mockScenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(newTestScenario(), nil)
	mockHeadcountRepo.EXPECT().
		ListByScenario(gomock.Any(), "cen1", 2025).
		Return([]*domain.HeadcountEntry{invalid}, nil)

	err := service.ResolveOne(context.Background(), "cen1", "hc1")
	assert.NoError(t, err)
}

func TestService_ResolveOne_ZeroBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := pgmocks.NewMockConn(ctrl)
	mockScenarioRepo := mocks.NewMockScenarioRepository(ctrl)
	mockHeadcountRepo := mocks.NewMockHeadcountRepository(ctrl)
	mockLockRepo := mocks.NewMockScenarioLockRepository(ctrl)

	service := &Service{
		conn:          mockConn,
		scenarioRepo:  mockScenarioRepo,
		headcountRepo: mockHeadcountRepo,
		lockRepo:      mockLockRepo,
	}

	jan := domain.NewMonthKey(2025, 1)
	entries := []*domain.HeadcountEntry{
		baseEntry("hc1", "OPERADOR", 0),
		spanEntry("hc2", "SUPERVISOR", []string{"OPERADOR"}, 5),
	}

	mockConn.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
	mockLockRepo.EXPECT().TryLock(gomock.Any(), gomock.Any(), "cen1").Return(true, nil)
	mockScenarioRepo.EXPECT().GetScenario(gomock.Any(), "cen1").Return(newTestScenario(), nil)
	mockHeadcountRepo.EXPECT().ListByScenario(gomock.Any(), "cen1", 2025).Return(entries, nil)

	mockHeadcountRepo.EXPECT().
		ReplaceMonths(gomock.Any(), gomock.Any(), "hc2", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, _ string, months map[domain.MonthKey]decimal.Decimal) error {
			assert.True(t, months[jan].IsZero())
			return nil
		})
	mockHeadcountRepo.EXPECT().
		SyncInlineQuantities(gomock.Any(), gomock.Any(), "hc2", 2025, gomock.Any()).
		Return(nil)

	err := service.ResolveOne(context.Background(), "cen1", "hc2")
	assert.NoError(t, err)
}
