package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/loginlink/pkg/auth"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the user
// store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserStore implements auth.Storage on a users table shaped like the
// embedded migration.
type UserStore struct {
	db          Querier
	selectByID  string
	updateLogin string
}

var _ auth.Storage = (*UserStore)(nil)

// NewUserStore returns a store reading table, which may be schema-qualified
// ("auth.users"). An empty table name means "users".
func NewUserStore(db Querier, table string) (*UserStore, error) {
	ident, err := tableIdentifier(table)
	if err != nil {
		return nil, err
	}
	return &UserStore{
		db: db,
		selectByID: fmt.Sprintf(
			"SELECT id, email, password_hash, last_login_at, is_active, created_at FROM %s WHERE id = $1",
			ident,
		),
		updateLogin: fmt.Sprintf("UPDATE %s SET last_login_at = $2 WHERE id = $1", ident),
	}, nil
}

func tableIdentifier(table string) (string, error) {
	if table == "" {
		table = "users"
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidTableName, table)
		}
	}
	return pgx.Identifier(parts).Sanitize(), nil
}

// GetUserByID returns auth.ErrUserNotFound when no row matches.
func (s *UserStore) GetUserByID(ctx context.Context, id any) (*auth.User, error) {
	var (
		user    auth.User
		rawID   any
		lastLog *time.Time
	)
	err := s.db.QueryRow(ctx, s.selectByID, id).Scan(
		&rawID,
		&user.Email,
		&user.PasswordHash,
		&lastLog,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, errors.Join(ErrQueryFailed, err)
	}

	user.ID = normalizeID(rawID)
	user.LastLoginAt = lastLog
	return &user, nil
}

// UpdateLastLogin stores at as the user's last login time.
func (s *UserStore) UpdateLastLogin(ctx context.Context, id any, at time.Time) error {
	tag, err := s.db.Exec(ctx, s.updateLogin, id, at)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// normalizeID maps driver values to the types the token packers produce:
// uuid columns arrive as [16]byte, integer columns as int64 or int32.
func normalizeID(v any) any {
	switch id := v.(type) {
	case [16]byte:
		return uuid.UUID(id)
	case int32:
		return int64(id)
	case int16:
		return int64(id)
	default:
		return v
	}
}
