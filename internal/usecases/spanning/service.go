package spanning

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// Resolver mantém as quantidades das linhas SPAN do quadro de pessoal:
// teto(soma das funções base / razão) em cada mês do horizonte, com
// propagação quando as funções base mudam.
type Resolver interface {
	// ResolveOne recalcula o grid de uma única linha SPAN.
	ResolveOne(ctx context.Context, scenarioID, headcountID string) error

	// ResolveAffected recalcula toda linha SPAN cuja base contém a função
	// alterada, propagando para spans dependentes. Devolve o número de
	// linhas recalculadas.
	ResolveAffected(ctx context.Context, scenarioID, functionID string, sectionID *string) (int, error)

	// ResolveAffectedInTx é a variante sem commit, para rodar na mesma
	// transação da mutação que alterou o quadro.
	ResolveAffectedInTx(ctx context.Context, tx *sql.Tx, scenarioID, functionID string, sectionID *string) (int, error)
}

type Service struct {
	conn          postgres.Conn
	scenarioRepo  repository.ScenarioRepository
	headcountRepo repository.HeadcountRepository
	lockRepo      repository.ScenarioLockRepository
}

func NewService(
	conn postgres.Conn,
	scenarioRepo repository.ScenarioRepository,
	headcountRepo repository.HeadcountRepository,
	lockRepo repository.ScenarioLockRepository,
) Resolver {
	return &Service{
		conn:          conn,
		scenarioRepo:  scenarioRepo,
		headcountRepo: headcountRepo,
		lockRepo:      lockRepo,
	}
}

// resolveState carrega o snapshot imutável sobre o qual a resolução roda.
// Nenhuma consulta ao banco acontece durante o caminhamento do grafo.
type resolveState struct {
	scenario *domain.Scenario
	horizon  []domain.MonthKey
	entries  []*domain.HeadcountEntry

	// spans produzindo cada função (id canônico), para resolver
	// dependências antes dos dependentes
	producers map[string][]*domain.HeadcountEntry

	visiting map[string]bool
	resolved map[string]bool
	changed  []*domain.HeadcountEntry
}

func (s *Service) ResolveAffected(ctx context.Context, scenarioID, functionID string, sectionID *string) (int, error) {
	var count int

	err := s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		acquired, err := s.lockRepo.TryLock(ctx, tx, scenarioID)
		if err != nil {
			return err
		}
		if !acquired {
			return ErrScenarioLocked
		}

		count, err = s.ResolveAffectedInTx(ctx, tx, scenarioID, functionID, sectionID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Service) ResolveAffectedInTx(ctx context.Context, tx *sql.Tx, scenarioID, functionID string, sectionID *string) (int, error) {
	state, err := s.loadState(ctx, scenarioID)
	if err != nil {
		return 0, err
	}

	changedFn := domain.CanonicalFunctionID(functionID)

	// Fila de trabalho: spans cuja base contém a função alterada; spans
	// dependentes dos recalculados entram conforme a resolução avança.
	queue := make([]*domain.HeadcountEntry, 0)
	for _, entry := range state.entries {
		if !s.dependsOn(entry, changedFn) {
			continue
		}
		if sectionID != nil && entry.ScenarioSectionID != nil && *entry.ScenarioSectionID != *sectionID {
			continue
		}
		queue = append(queue, entry)
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		entry := queue[0]
		queue = queue[1:]

		if state.resolved[entry.ID] {
			continue
		}

		if err := s.resolveEntry(state, entry); err != nil {
			return 0, err
		}

		// Propaga para spans que dependem da função recém-recalculada.
		dependentFn := domain.CanonicalFunctionID(entry.FunctionID)
		for _, candidate := range state.entries {
			if !state.resolved[candidate.ID] && s.dependsOn(candidate, dependentFn) {
				queue = append(queue, candidate)
			}
		}
	}

	if err := s.persistChanged(ctx, tx, state); err != nil {
		return 0, err
	}

	return len(state.changed), nil
}

func (s *Service) ResolveOne(ctx context.Context, scenarioID, headcountID string) error {
	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		acquired, err := s.lockRepo.TryLock(ctx, tx, scenarioID)
		if err != nil {
			return err
		}
		if !acquired {
			return ErrScenarioLocked
		}

		state, err := s.loadState(ctx, scenarioID)
		if err != nil {
			return err
		}

		var target *domain.HeadcountEntry
		for _, entry := range state.entries {
			if entry.ID == headcountID {
				target = entry
				break
			}
		}
		if target == nil {
			return &SpanError{Err: ErrEntryNotFound, HeadcountID: headcountID}
		}
		if !target.IsSpan() {
			return &SpanError{Err: ErrNotSpanEntry, HeadcountID: headcountID, FunctionID: target.FunctionID}
		}

		if err := s.resolveEntry(state, target); err != nil {
			return err
		}

		return s.persistChanged(ctx, tx, state)
	})
}

func (s *Service) loadState(ctx context.Context, scenarioID string) (*resolveState, error) {
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

	state := &resolveState{
		scenario:  scenario,
		horizon:   scenario.Horizon(),
		entries:   entries,
		producers: make(map[string][]*domain.HeadcountEntry),
		visiting:  make(map[string]bool),
		resolved:  make(map[string]bool),
	}

	for _, entry := range entries {
		if entry.IsSpan() {
			fn := domain.CanonicalFunctionID(entry.FunctionID)
			state.producers[fn] = append(state.producers[fn], entry)
		}
	}

	return state, nil
}

// dependsOn verifica se a linha é um SPAN válido cuja base contém a função.
func (s *Service) dependsOn(entry *domain.HeadcountEntry, canonicalFn string) bool {
	if !entry.IsSpan() || !s.spanIsValid(entry) {
		return false
	}
	for _, base := range entry.SpanBaseFunctionIDs {
		if domain.CanonicalFunctionID(base) == canonicalFn {
			return true
		}
	}
	return false
}

// spanIsValid implementa a política de recuperação local: razão ausente ou
// base vazia não é erro, a linha é apenas pulada.
func (s *Service) spanIsValid(entry *domain.HeadcountEntry) bool {
	if len(entry.SpanBaseFunctionIDs) == 0 || entry.SpanRatio == nil || !entry.SpanRatio.IsPositive() {
		logrus.WithFields(logrus.Fields{
			"headcount_id": entry.ID,
			"function_id":  entry.FunctionID,
		}).Warn("Span sem razão ou sem base; linha ignorada na resolução")
		return false
	}
	return true
}

// resolveEntry recalcula o grid de uma linha SPAN, resolvendo antes os spans
// dos quais ela depende. Revisita durante o caminhamento indica ciclo.
func (s *Service) resolveEntry(state *resolveState, entry *domain.HeadcountEntry) error {
	if state.resolved[entry.ID] {
		return nil
	}
	if state.visiting[entry.ID] {
		return &SpanError{Err: ErrSpanCycle, HeadcountID: entry.ID, FunctionID: entry.FunctionID}
	}
	if !s.spanIsValid(entry) {
		return nil
	}

	state.visiting[entry.ID] = true
	defer delete(state.visiting, entry.ID)

	baseSet := make(map[string]bool, len(entry.SpanBaseFunctionIDs))
	for _, base := range entry.SpanBaseFunctionIDs {
		baseSet[domain.CanonicalFunctionID(base)] = true
	}

	// Spans que produzem funções da base são resolvidos primeiro.
	for fn := range baseSet {
		for _, producer := range state.producers[fn] {
			if producer.ID == entry.ID || !s.sameScope(entry, producer) {
				continue
			}
			if err := s.resolveEntry(state, producer); err != nil {
				return err
			}
		}
	}

	baseSum := make(map[domain.MonthKey]decimal.Decimal, len(state.horizon))
	for _, other := range state.entries {
		if other.ID == entry.ID || !baseSet[domain.CanonicalFunctionID(other.FunctionID)] {
			continue
		}
		if !s.sameScope(entry, other) {
			continue
		}
		for _, mk := range state.horizon {
			baseSum[mk] = baseSum[mk].Add(other.Quantity(mk))
		}
	}

	grid := make(map[domain.MonthKey]decimal.Decimal, len(state.horizon))
	for _, mk := range state.horizon {
		sum := baseSum[mk]
		if sum.IsPositive() {
			grid[mk] = sum.Div(*entry.SpanRatio).Ceil()
		} else {
			grid[mk] = decimal.Zero
		}
	}

	entry.Months = grid
	state.resolved[entry.ID] = true
	state.changed = append(state.changed, entry)

	return nil
}

// sameScope aplica o escopo de seção: span com seção enxerga só a própria
// seção; span sem seção resolve sobre o cenário inteiro.
func (s *Service) sameScope(spanEntry, other *domain.HeadcountEntry) bool {
	if spanEntry.ScenarioSectionID == nil {
		return true
	}
	return other.ScenarioSectionID != nil && *other.ScenarioSectionID == *spanEntry.ScenarioSectionID
}

func (s *Service) persistChanged(ctx context.Context, tx *sql.Tx, state *resolveState) error {
	for _, entry := range state.changed {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.headcountRepo.ReplaceMonths(ctx, tx, entry.ID, entry.Months); err != nil {
			return err
		}
		if err := s.headcountRepo.SyncInlineQuantities(ctx, tx, entry.ID, state.scenario.StartYear, entry.Months); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"scenario_id":  state.scenario.ID,
			"headcount_id": entry.ID,
			"function_id":  entry.FunctionID,
		}).Debug("Grid de span recalculado")
	}

	return nil
}
