package postgres

import (
	"context"
	"database/sql"
)

// Queryer é a superfície mínima de consulta usada pelos repositórios.
// Tanto a Connection quanto uma transação aberta a satisfazem, o que permite
// que os motores de cálculo rodem todas as escritas dentro de uma única
// transação lógica.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

// TxQueryer adapta *sql.Tx à interface Queryer.
type TxQueryer struct {
	Tx *sql.Tx
}

func (t TxQueryer) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.Tx.ExecContext(ctx, query, args...)
}

func (t TxQueryer) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.Tx.QueryContext(ctx, query, args...)
}

func (t TxQueryer) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.Tx.QueryRowContext(ctx, query, args...)
}
