package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// AllocationGroupRepository lê os grupos de rateio (rateio_grupos) com seus
// destinos.
type AllocationGroupRepository interface {
	ListByScenario(ctx context.Context, scenarioID string) ([]*domain.AllocationGroup, error)
	GetByID(ctx context.Context, groupID string) (*domain.AllocationGroup, error)
}

type allocationGroupRepository struct {
	conn *postgres.Connection
}

func NewAllocationGroupRepository(conn *postgres.Connection) AllocationGroupRepository {
	return &allocationGroupRepository{conn: conn}
}

func (r *allocationGroupRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*domain.AllocationGroup, error) {
	return r.list(ctx, squirrel.Eq{"rg.cenario_id": scenarioID})
}

func (r *allocationGroupRepository) GetByID(ctx context.Context, groupID string) (*domain.AllocationGroup, error) {
	groups, err := r.list(ctx, squirrel.Eq{"rg.id": groupID})
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups[0], nil
}

func (r *allocationGroupRepository) list(ctx context.Context, where squirrel.Eq) ([]*domain.AllocationGroup, error) {
	query, args, err := squirrel.
		Select("rg.id, rg.cenario_id, rg.centro_custo_origem_id, rg.metodo").
		From("rateio_grupos rg").
		Where(where).
		OrderBy("rg.id ASC").
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

	groups := make([]*domain.AllocationGroup, 0)
	byID := make(map[string]*domain.AllocationGroup)
	ids := make([]string, 0)

	for rows.Next() {
		group := &domain.AllocationGroup{}
		if err := rows.Scan(&group.ID, &group.ScenarioID, &group.SourceCostCenterID, &group.Method); err != nil {
			return nil, fmt.Errorf("erro ao escanear grupo de rateio: %w", err)
		}
		groups = append(groups, group)
		byID[group.ID] = group
		ids = append(ids, group.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if len(ids) == 0 {
		return groups, nil
	}

	if err := r.loadDestinations(ctx, byID, ids); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *allocationGroupRepository) loadDestinations(ctx context.Context, byID map[string]*domain.AllocationGroup, groupIDs []string) error {
	query, args, err := squirrel.
		Select("rd.rateio_grupo_id, rd.centro_custo_id, rd.peso").
		From("rateio_destinos rd").
		Where(squirrel.Eq{"rd.rateio_grupo_id": groupIDs}).
		OrderBy("rd.centro_custo_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		var dest domain.AllocationDestination
		var weight sql.NullString

		if err := rows.Scan(&groupID, &dest.CostCenterID, &weight); err != nil {
			return fmt.Errorf("erro ao escanear destino de rateio: %w", err)
		}

		if weight.Valid {
			if err := dest.Weight.Scan(weight.String); err != nil {
				return fmt.Errorf("erro ao converter peso do rateio: %w", err)
			}
		}

		if group, ok := byID[groupID]; ok {
			group.Destinations = append(group.Destinations, dest)
		}
	}

	return rows.Err()
}
