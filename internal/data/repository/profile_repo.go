package repository

import (
	"context"
	"errors"
	"fmt"

	"identity-service/internal/data/entity"
	"identity-service/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrProfileExists reports that a profile row already exists for the same
// identity id. Callers treat this as an idempotent success, not a failure.
var ErrProfileExists = errors.New("profile already exists for identity")

const (
	uniqueViolationCode = "23505"
	profilePKConstraint = "user_profiles_pkey"
)

type ProfileRepository interface {
	Insert(ctx context.Context, profile *entity.Profile) error
	FindByIdentityID(ctx context.Context, identityID string) (*entity.Profile, error)
	FindByUsername(ctx context.Context, username string) ([]*entity.Profile, error)
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

// Insert writes a new profile row. A unique violation on the primary key
// (same identity id) is reported as ErrProfileExists so a retried insert
// after a half-observed success stays idempotent. Unique violations on any
// other constraint (username) stay ordinary errors.
func (pr *profileRepository) Insert(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO user_profiles (identity_id, email, first_name, last_name,
		                           username, phone, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pr.db.Exec(ctx, query,
		profile.IdentityID,
		profile.Email,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Phone,
		profile.Role,
		profile.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == profilePKConstraint {
			return fmt.Errorf("insert profile %s: %w", profile.IdentityID, ErrProfileExists)
		}

		pr.log.Error("Failed to insert profile",
			zap.Error(err),
			zap.String("identity_id", profile.IdentityID),
			zap.String("username", profile.Username),
		)
		return fmt.Errorf("insert profile %s: %w", profile.IdentityID, err)
	}

	return nil
}

func (pr *profileRepository) FindByIdentityID(ctx context.Context, identityID string) (*entity.Profile, error) {
	query := `
		SELECT identity_id, email, first_name, last_name, username, phone, role, created_at
		FROM user_profiles
		WHERE identity_id = $1
	`

	var profile entity.Profile
	err := pr.db.QueryRow(ctx, query, identityID).Scan(
		&profile.IdentityID,
		&profile.Email,
		&profile.FirstName,
		&profile.LastName,
		&profile.Username,
		&profile.Phone,
		&profile.Role,
		&profile.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find profile by identity id",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
		return nil, fmt.Errorf("find profile by identity id %s: %w", identityID, err)
	}

	return &profile, nil
}

// FindByUsername returns every row matching the username. The resolver needs
// the multiplicity to detect a violated uniqueness invariant, so this does
// not stop at the first match.
func (pr *profileRepository) FindByUsername(ctx context.Context, username string) ([]*entity.Profile, error) {
	query := `
		SELECT identity_id, email, first_name, last_name, username, phone, role, created_at
		FROM user_profiles
		WHERE username = $1
	`

	rows, err := pr.db.Query(ctx, query, username)
	if err != nil {
		pr.log.Error("Failed to find profiles by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find profiles by username %s: %w", username, err)
	}
	defer rows.Close()

	var profiles []*entity.Profile
	for rows.Next() {
		var profile entity.Profile
		err := rows.Scan(
			&profile.IdentityID,
			&profile.Email,
			&profile.FirstName,
			&profile.LastName,
			&profile.Username,
			&profile.Phone,
			&profile.Role,
			&profile.CreatedAt,
		)
		if err != nil {
			pr.log.Error("Failed to scan profile row", zap.Error(err))
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		pr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}

	return profiles, nil
}
