package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// ScenarioRepository carrega o cenário com suas seções e vínculos de empresa
// em uma única chamada; o motor nunca volta ao banco no meio do cálculo.
type ScenarioRepository interface {
	GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error)
	ListActiveScenarioIDs(ctx context.Context) ([]string, error)
}

type scenarioRepository struct {
	conn *postgres.Connection
}

func NewScenarioRepository(conn *postgres.Connection) ScenarioRepository {
	return &scenarioRepository{conn: conn}
}

func (r *scenarioRepository) GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	query, args, err := squirrel.
		Select(
			"c.id, c.nome, c.ano_inicio, c.mes_inicio, c.ano_fim, c.mes_fim, c.ano_base, c.status",
			"c.taxa_absenteismo, c.taxa_turnover, c.indice_ferias, c.created_at, c.updated_at",
		).
		From("cenarios c").
		Where(squirrel.Eq{"c.id": scenarioID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, query, args...)

	scenario := &domain.Scenario{}
	err = row.Scan(
		&scenario.ID,
		&scenario.Name,
		&scenario.StartYear,
		&scenario.StartMonth,
		&scenario.EndYear,
		&scenario.EndMonth,
		&scenario.BaseYear,
		&scenario.Status,
		&scenario.Premises.AbsenteeismRate,
		&scenario.Premises.TurnoverRate,
		&scenario.Premises.VacationIndex,
		&scenario.CreatedAt,
		&scenario.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cenário: %w", err)
	}

	if scenario.CompanyIDs, err = r.listCompanyIDs(ctx, scenarioID); err != nil {
		return nil, err
	}

	if scenario.Sections, err = r.listSections(ctx, scenarioID); err != nil {
		return nil, err
	}

	return scenario, nil
}

func (r *scenarioRepository) listCompanyIDs(ctx context.Context, scenarioID string) ([]string, error) {
	query, args, err := squirrel.
		Select("ce.empresa_id").
		From("cenario_empresas ce").
		Where(squirrel.Eq{"ce.cenario_id": scenarioID}).
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

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear empresa do cenário: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *scenarioRepository) listSections(ctx context.Context, scenarioID string) ([]*domain.ScenarioSection, error) {
	query, args, err := squirrel.
		Select(
			"cs.id, cs.cenario_id, cs.secao_id, cs.centro_custo_id, cs.empresa_id, cs.codigo_cliente",
			"cs.trabalha_sabado, cs.trabalha_domingo, cs.trabalha_feriado_nacional",
			"cs.trabalha_feriado_estadual, cs.trabalha_feriado_municipal",
			"cs.uf, cs.municipio, cs.fator_pa",
		).
		From("cenario_secoes cs").
		Where(squirrel.Eq{"cs.cenario_id": scenarioID}).
		OrderBy("cs.id ASC").
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

	sections := make([]*domain.ScenarioSection, 0)
	for rows.Next() {
		section := &domain.ScenarioSection{}
		var clientCode sql.NullString

		err := rows.Scan(
			&section.ID,
			&section.ScenarioID,
			&section.SectionID,
			&section.CostCenterID,
			&section.CompanyID,
			&clientCode,
			&section.Workdays.Saturday,
			&section.Workdays.Sunday,
			&section.Workdays.NationalHolidays,
			&section.Workdays.StateHolidays,
			&section.Workdays.MunicipalHolidays,
			&section.State,
			&section.City,
			&section.PAFactor,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear seção do cenário: %w", err)
		}

		if clientCode.Valid {
			section.ClientCode = &clientCode.String
		}

		sections = append(sections, section)
	}

	return sections, rows.Err()
}

func (r *scenarioRepository) ListActiveScenarioIDs(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("c.id").
		From("cenarios c").
		Where(squirrel.Eq{"c.status": domain.ScenarioActive}).
		OrderBy("c.id ASC").
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

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear cenário ativo: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
