package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/internal/domain"
)

// UserRepo implements domain.UserRepository on DB.
type UserRepo struct {
	db *DB
}

// NewUserRepo wraps a DB as a UserRepository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

const userCols = "id, username, email, password_hash, full_name, bio, fitness_level, height_cm, weight_kg, is_active, is_admin, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Bio,
		&u.FitnessLevel, &u.HeightCM, &u.WeightKG, &u.IsActive, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert creates a new user and returns the persisted row.
func (r *UserRepo) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	now := time.Now()
	return scanUser(r.db.queryRow(ctx,
		`INSERT INTO users (username, email, password_hash, full_name, bio, fitness_level, height_cm, weight_kg, is_active, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11) RETURNING `+userCols,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Bio, u.FitnessLevel,
		u.HeightCM, u.WeightKG, u.IsActive, u.IsAdmin, now,
	))
}

// FindByID retrieves a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.queryRow(ctx, "SELECT "+userCols+" FROM users WHERE id = $1", id))
}

// FindByUsername retrieves a user by exact username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.queryRow(ctx, "SELECT "+userCols+" FROM users WHERE username = $1", username))
}

// FindByEmail retrieves a user by exact email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.queryRow(ctx, "SELECT "+userCols+" FROM users WHERE email = $1", email))
}

// List returns users ordered by id with skip/limit pagination.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	rows, err := r.db.query(ctx, "SELECT "+userCols+" FROM users ORDER BY id OFFSET $1 LIMIT $2", skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Update overwrites all mutable columns and bumps updated_at.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	_, err := r.db.exec(ctx,
		`UPDATE users SET username=$1, email=$2, password_hash=$3, full_name=$4, bio=$5,
		 fitness_level=$6, height_cm=$7, weight_kg=$8, is_active=$9, is_admin=$10, updated_at=$11
		 WHERE id=$12`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Bio, u.FitnessLevel,
		u.HeightCM, u.WeightKG, u.IsActive, u.IsAdmin, time.Now(), u.ID,
	)
	return err
}

// Delete removes the user; owned rows go with it via ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
