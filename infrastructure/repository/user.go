package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	TouchLastLogin(ctx context.Context, id int) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{conn: conn}
}

const userColumns = "u.id, u.nome, u.sobrenome, u.email, u.senha, u.role_id, u.ativo, u.created_at, u.updated_at, u.last_login_at"

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns).
		From("usuarios u").
		Where(squirrel.Eq{"u.email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanUser(r.conn.QueryRow(ctx, query, args...))
}

func (r *userRepository) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns).
		From("usuarios u").
		Where(squirrel.Eq{"u.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanUser(r.conn.QueryRow(ctx, query, args...))
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("usuarios").
		Columns("nome", "sobrenome", "email", "senha", "role_id", "ativo").
		Values(user.Name, user.Lastname, user.Email, user.Password, user.RoleID, user.Active).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query, args, err := squirrel.
		Update("usuarios").
		Set("nome", user.Name).
		Set("sobrenome", user.Lastname).
		Set("email", user.Email).
		Set("role_id", user.RoleID).
		Set("ativo", user.Active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	return nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns).
		From("usuarios u").
		OrderBy("u.id ASC").
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

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		var lastLogin sql.NullTime

		err := rows.Scan(
			&user.ID, &user.Name, &user.Lastname, &user.Email, &user.Password,
			&user.RoleID, &user.Active, &user.CreatedAt, &user.UpdatedAt, &lastLogin,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
		}

		if lastLogin.Valid {
			user.LastLoginAt = &lastLogin.Time
		}
		user.Password = ""

		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int) error {
	query, args, err := squirrel.
		Update("usuarios").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar login: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID, &user.Name, &user.Lastname, &user.Email, &user.Password,
		&user.RoleID, &user.Active, &user.CreatedAt, &user.UpdatedAt, &lastLogin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	if lastLogin.Valid {
		user.LastLoginAt = &lastLogin.Time
	}

	return user, nil
}
