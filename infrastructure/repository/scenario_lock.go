package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
)

// ScenarioLockRepository serializa cálculos sobre o mesmo cenário via
// advisory lock transacional do Postgres. O lock é liberado sozinho no
// commit ou rollback da transação que o adquiriu; cenários distintos não
// se bloqueiam.
type ScenarioLockRepository interface {
	TryLock(ctx context.Context, tx *sql.Tx, scenarioID string) (bool, error)
}

type scenarioLockRepository struct{}

func NewScenarioLockRepository() ScenarioLockRepository {
	return &scenarioLockRepository{}
}

func (r *scenarioLockRepository) TryLock(ctx context.Context, tx *sql.Tx, scenarioID string) (bool, error) {
	var acquired bool

	row := postgres.TxQueryer{Tx: tx}.QueryRow(ctx,
		"SELECT pg_try_advisory_xact_lock(hashtext($1))", scenarioID)

	if err := row.Scan(&acquired); err != nil {
		return false, fmt.Errorf("erro ao adquirir lock do cenário: %w", err)
	}

	return acquired, nil
}
