package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

const costRowsTable = "custos_calculados"

// Tamanho do lote do insert em massa; mantém a query abaixo do limite de
// parâmetros do Postgres (65535 / 11 colunas).
const bulkInsertBatch = 500

// CostRowRepository grava e lê o razão de custos. As escritas acontecem
// sempre dentro da transação do motor (Cost Engine ou Rateio).
type CostRowRepository interface {
	DeleteByScope(ctx context.Context, tx *sql.Tx, scenarioID string, year *int, sectionID *string) (int64, error)
	BulkInsert(ctx context.Context, tx *sql.Tx, rows []*domain.CostRow) error
	ListByCostCenter(ctx context.Context, tx *sql.Tx, scenarioID, costCenterID string) ([]*domain.CostRow, error)
	MarkAllocated(ctx context.Context, tx *sql.Tx, rowID string, parameters map[string]any) error
	ListByScenario(ctx context.Context, scenarioID string, year, month *int) ([]*domain.CostRow, error)
	SumByScenario(ctx context.Context, scenarioID string) (decimal.Decimal, error)
}

type costRowRepository struct {
	conn *postgres.Connection
}

func NewCostRowRepository(conn *postgres.Connection) CostRowRepository {
	return &costRowRepository{conn: conn}
}

func (r *costRowRepository) DeleteByScope(ctx context.Context, tx *sql.Tx, scenarioID string, year *int, sectionID *string) (int64, error) {
	builder := squirrel.
		Delete(costRowsTable).
		Where(squirrel.Eq{"cenario_id": scenarioID}).
		PlaceholderFormat(squirrel.Dollar)

	if year != nil {
		builder = builder.Where(squirrel.Eq{"ano": *year})
	}
	if sectionID != nil {
		builder = builder.Where(squirrel.Eq{"cenario_secao_id": *sectionID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := postgres.TxQueryer{Tx: tx}.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao apagar custos anteriores: %w", err)
	}

	return result.RowsAffected()
}

func (r *costRowRepository) BulkInsert(ctx context.Context, tx *sql.Tx, rows []*domain.CostRow) error {
	txq := postgres.TxQueryer{Tx: tx}

	for start := 0; start < len(rows); start += bulkInsertBatch {
		end := start + bulkInsertBatch
		if end > len(rows) {
			end = len(rows)
		}

		insert := squirrel.StatementBuilder.
			Insert(costRowsTable).
			Columns(
				"id", "cenario_id", "cenario_secao_id", "centro_custo_id", "tipo_custo_codigo",
				"ano", "mes", "quantidade_base", "valor_unitario", "valor", "regime", "parametros",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows[start:end] {
			var params []byte
			if row.Parameters != nil {
				encoded, err := json.Marshal(row.Parameters)
				if err != nil {
					return fmt.Errorf("erro ao serializar parâmetros do custo: %w", err)
				}
				params = encoded
			}

			insert = insert.Values(
				row.ID,
				row.ScenarioID,
				row.ScenarioSectionID,
				row.CostCenterID,
				row.RubricCode,
				row.Year,
				row.Month,
				row.QuantityBase,
				row.UnitValue,
				row.Amount,
				row.Regime,
				params,
			)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := txq.Exec(ctx, query, args...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao gravar custos calculados: %w", err)
		}
	}

	return nil
}

func (r *costRowRepository) ListByCostCenter(ctx context.Context, tx *sql.Tx, scenarioID, costCenterID string) ([]*domain.CostRow, error) {
	query, args, err := r.selectBuilder().
		Where(squirrel.Eq{"cc.cenario_id": scenarioID, "cc.centro_custo_id": costCenterID}).
		Where(squirrel.NotEq{"cc.valor": 0}).
		OrderBy("cc.ano ASC", "cc.mes ASC", "cc.tipo_custo_codigo ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := postgres.TxQueryer{Tx: tx}.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *costRowRepository) MarkAllocated(ctx context.Context, tx *sql.Tx, rowID string, parameters map[string]any) error {
	params, err := json.Marshal(parameters)
	if err != nil {
		return fmt.Errorf("erro ao serializar parâmetros do custo: %w", err)
	}

	query, args, err := squirrel.
		Update(costRowsTable).
		Set("valor", decimal.Zero).
		Set("parametros", params).
		Where(squirrel.Eq{"id": rowID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := (postgres.TxQueryer{Tx: tx}).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao zerar custo rateado: %w", err)
	}

	return nil
}

func (r *costRowRepository) ListByScenario(ctx context.Context, scenarioID string, year, month *int) ([]*domain.CostRow, error) {
	builder := r.selectBuilder().
		Where(squirrel.Eq{"cc.cenario_id": scenarioID})

	if year != nil {
		builder = builder.Where(squirrel.Eq{"cc.ano": *year})
	}
	if month != nil {
		builder = builder.Where(squirrel.Eq{"cc.mes": *month})
	}

	query, args, err := builder.
		OrderBy("cc.ano ASC", "cc.mes ASC", "cc.centro_custo_id ASC", "cc.tipo_custo_codigo ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *costRowRepository) SumByScenario(ctx context.Context, scenarioID string) (decimal.Decimal, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(cc.valor), 0)").
		From(costRowsTable + " cc").
		Where(squirrel.Eq{"cc.cenario_id": scenarioID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total decimal.Decimal
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("erro ao somar custos do cenário: %w", err)
	}

	return total, nil
}

func (r *costRowRepository) selectBuilder() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"cc.id, cc.cenario_id, cc.cenario_secao_id, cc.centro_custo_id, cc.tipo_custo_codigo",
			"cc.ano, cc.mes, cc.quantidade_base, cc.valor_unitario, cc.valor, cc.regime, cc.parametros",
		).
		From(costRowsTable + " cc").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *costRowRepository) scanRows(rows *sql.Rows) ([]*domain.CostRow, error) {
	result := make([]*domain.CostRow, 0)
	for rows.Next() {
		row := &domain.CostRow{}
		var params []byte

		err := rows.Scan(
			&row.ID,
			&row.ScenarioID,
			&row.ScenarioSectionID,
			&row.CostCenterID,
			&row.RubricCode,
			&row.Year,
			&row.Month,
			&row.QuantityBase,
			&row.UnitValue,
			&row.Amount,
			&row.Regime,
			&params,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear custo calculado: %w", err)
		}

		if params != nil {
			parameters := make(map[string]any)
			if err := json.Unmarshal(params, &parameters); err != nil {
				return nil, fmt.Errorf("erro ao deserializar parâmetros do custo: %w", err)
			}
			row.Parameters = parameters
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}
