package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

// HeadcountRepository lê e grava o quadro de pessoal. A leitura devolve o
// grid mensal já consolidado: quadro_pessoal_mes é autoritativo e as 12
// colunas inline de quadro_pessoal valem apenas como primeiro ano.
type HeadcountRepository interface {
	ListByScenario(ctx context.Context, scenarioID string, startYear int) ([]*domain.HeadcountEntry, error)
	ReplaceMonths(ctx context.Context, tx *sql.Tx, headcountID string, months map[domain.MonthKey]decimal.Decimal) error
	SyncInlineQuantities(ctx context.Context, tx *sql.Tx, headcountID string, firstYear int, months map[domain.MonthKey]decimal.Decimal) error
}

type headcountRepository struct {
	conn *postgres.Connection
}

func NewHeadcountRepository(conn *postgres.Connection) HeadcountRepository {
	return &headcountRepository{conn: conn}
}

func (r *headcountRepository) ListByScenario(ctx context.Context, scenarioID string, startYear int) ([]*domain.HeadcountEntry, error) {
	entries, err := r.listEntries(ctx, scenarioID, startYear)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return entries, nil
	}

	byID := make(map[string]*domain.HeadcountEntry, len(entries))
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
		ids = append(ids, entry.ID)
	}

	months, err := r.listMonths(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Linhas mensais substituem o espelho inline por completo quando existem.
	overridden := make(map[string]bool)
	for _, m := range months {
		entry, ok := byID[m.HeadcountID]
		if !ok {
			continue
		}
		if !overridden[m.HeadcountID] {
			entry.Months = make(map[domain.MonthKey]decimal.Decimal)
			overridden[m.HeadcountID] = true
		}
		entry.Months[domain.NewMonthKey(m.Year, m.Month)] = m.Quantity
	}

	return entries, nil
}

func (r *headcountRepository) listEntries(ctx context.Context, scenarioID string, startYear int) ([]*domain.HeadcountEntry, error) {
	columns := []string{
		"qp.id", "qp.cenario_id", "qp.cenario_secao_id", "qp.funcao_id", "qp.regime",
		"qp.tabela_salarial_id", "qp.salario_override", "qp.tipo_calculo",
		"qp.span_funcoes_base", "qp.span_razao", "qp.rateio_grupo_id", "qp.rateio_percentual", "qp.ativo",
	}
	for month := 1; month <= 12; month++ {
		columns = append(columns, fmt.Sprintf("qp.qtd_%02d", month))
	}

	query, args, err := squirrel.
		Select(columns...).
		From("quadro_pessoal qp").
		Where(squirrel.Eq{"qp.cenario_id": scenarioID, "qp.ativo": true}).
		OrderBy("qp.id ASC").
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

	entries := make([]*domain.HeadcountEntry, 0)
	for rows.Next() {
		entry := &domain.HeadcountEntry{}
		var sectionID, tableID, rateioGroupID sql.NullString
		var salaryOverride, spanRatio, rateioPercent sql.NullString
		var spanBases pq.StringArray
		quantities := make([]decimal.Decimal, 12)

		dest := []any{
			&entry.ID,
			&entry.ScenarioID,
			&sectionID,
			&entry.FunctionID,
			&entry.Regime,
			&tableID,
			&salaryOverride,
			&entry.CalcKind,
			&spanBases,
			&spanRatio,
			&rateioGroupID,
			&rateioPercent,
			&entry.Active,
		}
		for month := 0; month < 12; month++ {
			dest = append(dest, &quantities[month])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("erro ao escanear quadro de pessoal: %w", err)
		}

		if sectionID.Valid {
			entry.ScenarioSectionID = &sectionID.String
		}
		if tableID.Valid {
			entry.SalaryTableID = &tableID.String
		}
		if salaryOverride.Valid {
			d, err := decimal.NewFromString(salaryOverride.String)
			if err != nil {
				return nil, fmt.Errorf("erro ao converter salário override: %w", err)
			}
			entry.SalaryOverride = &d
		}
		if spanRatio.Valid {
			d, err := decimal.NewFromString(spanRatio.String)
			if err != nil {
				return nil, fmt.Errorf("erro ao converter razão de span: %w", err)
			}
			entry.SpanRatio = &d
		}
		if rateioGroupID.Valid {
			entry.RateioGroupID = &rateioGroupID.String
		}
		if rateioPercent.Valid {
			d, err := decimal.NewFromString(rateioPercent.String)
			if err != nil {
				return nil, fmt.Errorf("erro ao converter percentual de rateio: %w", err)
			}
			entry.RateioPercent = &d
		}
		entry.SpanBaseFunctionIDs = []string(spanBases)

		// Espelho inline interpretado como primeiro ano do cenário.
		entry.Months = make(map[domain.MonthKey]decimal.Decimal, 12)
		for month := 0; month < 12; month++ {
			entry.Months[domain.NewMonthKey(startYear, month+1)] = quantities[month]
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *headcountRepository) listMonths(ctx context.Context, headcountIDs []string) ([]*domain.HeadcountMonth, error) {
	query, args, err := squirrel.
		Select("qpm.quadro_pessoal_id, qpm.ano, qpm.mes, qpm.quantidade").
		From("quadro_pessoal_mes qpm").
		Where(squirrel.Eq{"qpm.quadro_pessoal_id": headcountIDs}).
		OrderBy("qpm.ano ASC", "qpm.mes ASC").
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

	months := make([]*domain.HeadcountMonth, 0)
	for rows.Next() {
		m := &domain.HeadcountMonth{}
		if err := rows.Scan(&m.HeadcountID, &m.Year, &m.Month, &m.Quantity); err != nil {
			return nil, fmt.Errorf("erro ao escanear quadro mensal: %w", err)
		}
		months = append(months, m)
	}

	return months, rows.Err()
}

// ReplaceMonths sobrescreve as linhas de quadro_pessoal_mes da entrada dentro
// da transação do chamador.
func (r *headcountRepository) ReplaceMonths(ctx context.Context, tx *sql.Tx, headcountID string, months map[domain.MonthKey]decimal.Decimal) error {
	txq := postgres.TxQueryer{Tx: tx}

	deleteQuery, args, err := squirrel.
		Delete("quadro_pessoal_mes").
		Where(squirrel.Eq{"quadro_pessoal_id": headcountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := txq.Exec(ctx, deleteQuery, args...); err != nil {
		return fmt.Errorf("erro ao limpar quadro mensal: %w", err)
	}

	if len(months) == 0 {
		return nil
	}

	insert := squirrel.StatementBuilder.
		Insert("quadro_pessoal_mes").
		Columns("id", "quadro_pessoal_id", "ano", "mes", "quantidade").
		PlaceholderFormat(squirrel.Dollar)

	keys := make([]domain.MonthKey, 0, len(months))
	for mk := range months {
		keys = append(keys, mk)
	}
	domain.SortMonthKeys(keys)

	for _, mk := range keys {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do quadro mensal: %w", err)
		}
		insert = insert.Values(id, headcountID, mk.Year, mk.Month, months[mk])
	}

	insertQuery, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := txq.Exec(ctx, insertQuery, args...); err != nil {
		return fmt.Errorf("erro ao gravar quadro mensal: %w", err)
	}

	return nil
}

// SyncInlineQuantities copia o primeiro ano do grid para as 12 colunas de
// quadro_pessoal, mantendo a visão de compatibilidade coerente.
func (r *headcountRepository) SyncInlineQuantities(ctx context.Context, tx *sql.Tx, headcountID string, firstYear int, months map[domain.MonthKey]decimal.Decimal) error {
	txq := postgres.TxQueryer{Tx: tx}

	update := squirrel.StatementBuilder.
		Update("quadro_pessoal").
		PlaceholderFormat(squirrel.Dollar)

	for month := 1; month <= 12; month++ {
		qty := months[domain.NewMonthKey(firstYear, month)]
		update = update.Set(fmt.Sprintf("qtd_%02d", month), qty)
	}

	query, args, err := update.Where(squirrel.Eq{"id": headcountID}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := txq.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao sincronizar colunas inline: %w", err)
	}

	return nil
}
