package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"social_network_service/internal/user/domain"
	errprocess "social_network_service/pkg/err"
)

// uniqueViolation postgres unique_violation
const uniqueViolation = "23505"

// UserRepository definition get User info
type UserRepository interface {
	EnsureSchema(ctx context.Context) error
	CreateUser(ctx context.Context, user *domain.User) error
	FindByUser(ctx context.Context, query *domain.UserQuery) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, bio, avatar *string) (*domain.User, error)
	SearchByUsername(ctx context.Context, keyword string, limit int) ([]domain.User, error)
}

type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository create a UserRepository
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, password, bio, avatar, role, approved, created_at"

func (r *userRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS users (
        id         VARCHAR(36) PRIMARY KEY,
        username   TEXT NOT NULL,
        email      TEXT NOT NULL UNIQUE,
        password   TEXT NOT NULL,
        bio        TEXT NOT NULL DEFAULT '',
        avatar     TEXT NOT NULL DEFAULT '',
        role       TEXT NOT NULL DEFAULT 'user',
        approved   BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )`)
	return err
}

func (r *userRepository) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO users(id, username, email, password, bio, avatar, role, approved) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		u.ID, u.Username, u.Email, u.Password, u.Bio, u.Avatar, string(u.Role), u.Approved,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errprocess.Wrap(errprocess.ErrValidation, "email already exists")
	}
	return err
}

func (r *userRepository) FindByUser(ctx context.Context, q *domain.UserQuery) (*domain.User, error) {
	queryStr := "SELECT " + userColumns + " FROM users WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if q.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *q.Email)
		paramCount++
	}
	if q.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *q.ID)
		paramCount++
	}
	if q.Username != nil {
		queryStr += fmt.Sprintf(" AND username = $%d", paramCount)
		params = append(params, *q.Username)
		paramCount++
	}
	if paramCount == 1 {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "empty user query")
	}

	u, err := scanUser(r.db.QueryRow(ctx, queryStr+" LIMIT 1", params...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errprocess.Wrap(errprocess.ErrNotFound, "no user found with given criteria")
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile nil 欄位不更新
func (r *userRepository) UpdateProfile(ctx context.Context, id string, bio, avatar *string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
      UPDATE users
      SET bio = COALESCE($1, bio), avatar = COALESCE($2, avatar)
      WHERE id = $3
      RETURNING `+userColumns, bio, avatar, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errprocess.Wrap(errprocess.ErrNotFound, "user %s", id)
	}
	return u, err
}

// SearchByUsername 不分大小寫的模糊搜尋
func (r *userRepository) SearchByUsername(ctx context.Context, keyword string, limit int) ([]domain.User, error) {
	like := "%" + escapeLike(keyword) + "%"
	rows, err := r.db.Query(ctx,
		"SELECT "+userColumns+" FROM users WHERE username ILIKE $1 AND approved ORDER BY username LIMIT $2",
		like, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Bio, &u.Avatar, &role, &u.Approved, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
