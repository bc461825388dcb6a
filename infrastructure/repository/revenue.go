package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// RevenueRepository lê a receita mensal prevista por seção, base das
// rubricas de bônus calculadas como percentual da receita.
type RevenueRepository interface {
	ListByScenario(ctx context.Context, scenarioID string) ([]*domain.RevenueEntry, error)
}

type revenueRepository struct {
	conn *postgres.Connection
}

func NewRevenueRepository(conn *postgres.Connection) RevenueRepository {
	return &revenueRepository{conn: conn}
}

func (r *revenueRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*domain.RevenueEntry, error) {
	query, args, err := squirrel.
		Select("rc.id, rc.cenario_id, rc.cenario_secao_id, rc.ano, rc.mes, rc.valor").
		From("receitas rc").
		Where(squirrel.Eq{"rc.cenario_id": scenarioID}).
		OrderBy("rc.ano ASC", "rc.mes ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	revenues := make([]*domain.RevenueEntry, 0)
	for rows.Next() {
		revenue := &domain.RevenueEntry{}
		err := rows.Scan(
			&revenue.ID,
			&revenue.ScenarioID,
			&revenue.ScenarioSectionID,
			&revenue.Year,
			&revenue.Month,
			&revenue.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear receita: %w", err)
		}
		revenues = append(revenues, revenue)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return revenues, nil
}
