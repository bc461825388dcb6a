package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// CatalogRepository carrega as entidades de referência compartilhadas entre
// cenários. O motor de cálculo trata todas como snapshots imutáveis.
type CatalogRepository interface {
	ListRubrics(ctx context.Context) ([]*domain.Rubric, error)
	ListProvisions(ctx context.Context) ([]*domain.Provision, error)
	ListCharges(ctx context.Context, companyID string, regime domain.Regime) ([]*domain.Charge, error)
	ListHolidays(ctx context.Context, state, city string) ([]*domain.Holiday, error)
	ListCostCenters(ctx context.Context) ([]*domain.CostCenter, error)
	GetSalaryTable(ctx context.Context, functionID string, regime domain.Regime) (*domain.SalaryTable, error)
	GetBenefitPolicy(ctx context.Context, policyID string) (*domain.BenefitPolicy, error)
}

type catalogRepository struct {
	conn *postgres.Connection
}

func NewCatalogRepository(conn *postgres.Connection) CatalogRepository {
	return &catalogRepository{conn: conn}
}

func (r *catalogRepository) ListRubrics(ctx context.Context) ([]*domain.Rubric, error) {
	query, args, err := squirrel.
		Select("tc.codigo, tc.nome, tc.categoria, tc.tipo_calculo, tc.taxa_padrao, tc.incide_fgts, tc.incide_inss, tc.reflexo_ferias, tc.reflexo_13, tc.ordem").
		From("tipos_custo tc").
		OrderBy("tc.ordem ASC", "tc.codigo ASC").
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

	rubrics := make([]*domain.Rubric, 0)
	for rows.Next() {
		rubric := &domain.Rubric{}
		var rate sql.NullString

		err := rows.Scan(
			&rubric.Code,
			&rubric.Name,
			&rubric.Category,
			&rubric.CalcKind,
			&rate,
			&rubric.IncidesFGTS,
			&rubric.IncidesINSS,
			&rubric.ReflexVacation,
			&rubric.Reflex13th,
			&rubric.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tipo de custo: %w", err)
		}

		if rate.Valid {
			d, err := decimal.NewFromString(rate.String)
			if err != nil {
				return nil, fmt.Errorf("erro ao converter taxa padrão: %w", err)
			}
			rubric.DefaultRate = &d
		}

		rubrics = append(rubrics, rubric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return rubrics, nil
}

func (r *catalogRepository) ListProvisions(ctx context.Context) ([]*domain.Provision, error) {
	query, args, err := squirrel.
		Select("p.id, p.codigo, p.taxa, p.incide_encargos").
		From("provisoes p").
		OrderBy("p.codigo ASC").
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

	provisions := make([]*domain.Provision, 0)
	for rows.Next() {
		provision := &domain.Provision{}
		if err := rows.Scan(&provision.ID, &provision.Code, &provision.Rate, &provision.IncidesCharges); err != nil {
			return nil, fmt.Errorf("erro ao escanear provisão: %w", err)
		}
		provisions = append(provisions, provision)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return provisions, nil
}

func (r *catalogRepository) ListCharges(ctx context.Context, companyID string, regime domain.Regime) ([]*domain.Charge, error) {
	query, args, err := squirrel.
		Select("e.id, e.empresa_id, e.regime, e.codigo, e.tipo_base, e.taxa, e.ordem").
		From("encargos e").
		Where(squirrel.Eq{"e.empresa_id": companyID, "e.regime": regime}).
		OrderBy("e.ordem ASC", "e.codigo ASC").
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

	charges := make([]*domain.Charge, 0)
	for rows.Next() {
		charge := &domain.Charge{}
		err := rows.Scan(
			&charge.ID,
			&charge.CompanyID,
			&charge.Regime,
			&charge.Code,
			&charge.BaseKind,
			&charge.Rate,
			&charge.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear encargo: %w", err)
		}
		charges = append(charges, charge)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return charges, nil
}

func (r *catalogRepository) ListHolidays(ctx context.Context, state, city string) ([]*domain.Holiday, error) {
	// Feriados nacionais mais os estaduais/municipais da localidade da seção.
	query, args, err := squirrel.
		Select("f.id, f.nome, f.abrangencia, f.uf, f.municipio, f.dia, f.mes, f.ano").
		From("feriados f").
		Where(squirrel.Or{
			squirrel.Eq{"f.abrangencia": domain.HolidayNational},
			squirrel.And{
				squirrel.Eq{"f.abrangencia": domain.HolidayState},
				squirrel.Eq{"f.uf": state},
			},
			squirrel.And{
				squirrel.Eq{"f.abrangencia": domain.HolidayMunicipal},
				squirrel.Eq{"f.uf": state},
				squirrel.Eq{"f.municipio": city},
			},
		}).
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

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		holiday := &domain.Holiday{}
		var uf, municipio sql.NullString
		var year sql.NullInt64

		err := rows.Scan(
			&holiday.ID,
			&holiday.Name,
			&holiday.Scope,
			&uf,
			&municipio,
			&holiday.Day,
			&holiday.Month,
			&year,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear feriado: %w", err)
		}

		holiday.State = uf.String
		holiday.City = municipio.String
		if year.Valid {
			y := int(year.Int64)
			holiday.Year = &y
		}

		holidays = append(holidays, holiday)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return holidays, nil
}

func (r *catalogRepository) ListCostCenters(ctx context.Context) ([]*domain.CostCenter, error) {
	query, args, err := squirrel.
		Select("cc.id, cc.codigo, cc.nome, cc.tipo, cc.area_m2").
		From("centros_custo cc").
		OrderBy("cc.codigo ASC").
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

	costCenters := make([]*domain.CostCenter, 0)
	for rows.Next() {
		cc := &domain.CostCenter{}
		if err := rows.Scan(&cc.ID, &cc.Code, &cc.Name, &cc.Type, &cc.AreaM2); err != nil {
			return nil, fmt.Errorf("erro ao escanear centro de custo: %w", err)
		}
		costCenters = append(costCenters, cc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return costCenters, nil
}

func (r *catalogRepository) GetSalaryTable(ctx context.Context, functionID string, regime domain.Regime) (*domain.SalaryTable, error) {
	query, args, err := squirrel.
		Select("ts.id, ts.funcao_id, ts.regime, ts.faixa_id, ts.politica_id, ts.salario_base").
		From("tabelas_salariais ts").
		Where(squirrel.Eq{"ts.funcao_id": functionID, "ts.regime": regime}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, query, args...)

	table := &domain.SalaryTable{}
	var bandID, policyID sql.NullString

	err = row.Scan(&table.ID, &table.FunctionID, &table.Regime, &bandID, &policyID, &table.BaseSalary)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear tabela salarial: %w", err)
	}

	if bandID.Valid {
		table.BandID = &bandID.String
	}
	if policyID.Valid {
		table.PolicyID = &policyID.String
	}

	return table, nil
}

func (r *catalogRepository) GetBenefitPolicy(ctx context.Context, policyID string) (*domain.BenefitPolicy, error) {
	query, args, err := squirrel.
		Select(
			"pb.id, pb.codigo, pb.regime, pb.escala, pb.horas_mensais, pb.vt_dia, pb.vt_teto_6pct",
			"pb.vr_dia, pb.va_dia, pb.saude, pb.odonto, pb.vida, pb.creche_valor, pb.creche_percentual",
			"pb.home_office, pb.dias_treinamento",
		).
		From("politicas_beneficio pb").
		Where(squirrel.Eq{"pb.id": policyID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, query, args...)

	policy := &domain.BenefitPolicy{}
	err = row.Scan(
		&policy.ID,
		&policy.Code,
		&policy.Regime,
		&policy.Schedule,
		&policy.MonthlyHours,
		&policy.VTPerDay,
		&policy.VT6PercentCap,
		&policy.VRPerDay,
		&policy.VAPerDay,
		&policy.Health,
		&policy.Dental,
		&policy.Life,
		&policy.ChildcareValue,
		&policy.ChildcarePercent,
		&policy.HomeOffice,
		&policy.TrainingDays,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear política de benefícios: %w", err)
	}

	return policy, nil
}
