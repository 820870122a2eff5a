package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookinggate/internal/common"
	"github.com/dmitrijs2005/bookinggate/internal/dbx"
	"github.com/dmitrijs2005/bookinggate/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const selectUser = `SELECT id, email, first_name, last_name, phone_no, dob, password,
		 is_active, otp, password_reset_token, set_password_token, role, created_at, updated_at
		 FROM users`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, first_name, last_name, phone_no, dob, password, is_active, otp, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		nullString(user.Email), nullString(user.FirstName), nullString(user.LastName), nullString(user.PhoneNo),
		user.Dob, user.PasswordHash, user.IsActive, user.Otp, string(user.Role),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user                              models.User
		email, firstName, lastName, phone sql.NullString
		role                              string
	)

	err := row.Scan(
		&user.ID, &email, &firstName, &lastName, &phone, &user.Dob, &user.PasswordHash,
		&user.IsActive, &user.Otp, &user.PasswordResetToken, &user.SetPasswordToken, &role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Email = email.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.PhoneNo = phone.String
	user.Role = models.Role(role)

	return &user, nil
}

// invalidID reports whether Postgres rejected the id as not a uuid. No row
// can have such an id, so callers treat it as not found.
func invalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

func (r *PostgresRepository) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUser+"\n\t\t WHERE "+where+" = $1\n\t\t ", arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || invalidID(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, "email", email)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PostgresRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, "password_reset_token", token)
}

func (r *PostgresRepository) FindBySetToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, "set_password_token", token)
}

func (r *PostgresRepository) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	var (
		where []string
		args  []any
	)
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}

	query := selectUser
	if len(where) > 0 {
		query += "\n\t\t WHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\t ORDER BY created_at, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

// Update writes the set fields of f in one statement and bumps updated_at.
// An empty update is a no-op.
func (r *PostgresRepository) Update(ctx context.Context, id string, f models.Fields) error {
	if f.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.FirstName != nil {
		add("first_name", nullString(*f.FirstName))
	}
	if f.LastName != nil {
		add("last_name", nullString(*f.LastName))
	}
	if f.PhoneNo != nil {
		add("phone_no", nullString(*f.PhoneNo))
	}
	if f.PasswordHash != nil {
		add("password", *f.PasswordHash)
	}
	if f.IsActive != nil {
		add("is_active", *f.IsActive)
	}
	if f.ClearOtp {
		sets = append(sets, "otp = NULL")
	}
	if f.PasswordResetToken != nil {
		add("password_reset_token", *f.PasswordResetToken)
	}
	if f.SetPasswordToken != nil {
		add("set_password_token", *f.SetPasswordToken)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if invalidID(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
