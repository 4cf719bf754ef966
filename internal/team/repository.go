package team

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no team matched the lookup.
	ErrNotFound = errors.New("team not found")
	// ErrExists indicates a team with the same name already exists.
	ErrExists = errors.New("team already exists")
)

// Repository persists teams.
type Repository interface {
	Create(ctx context.Context, t Team) error
	Get(ctx context.Context, id string) (Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, t Team) error
	UpdateAmount(ctx context.Context, id string, amount int64) (Team, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed team repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, t Team) error {
	teamID, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO teams (id, name, issuer, description, logo, ipfs_hash, amount, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		teamID, t.Name, t.Issuer, t.Description, t.Logo, t.IPFSHash, t.Amount, t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrExists
	}
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Team, error) {
	teamID, err := uuid.Parse(id)
	if err != nil {
		return Team{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, issuer, description, logo, ipfs_hash, amount, created_at, updated_at
        FROM teams WHERE id = $1`, teamID)
	return scanTeam(row)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Team, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, issuer, description, logo, ipfs_hash, amount, created_at, updated_at
        FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, t Team) error {
	teamID, err := uuid.Parse(t.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE teams SET issuer = $1, description = $2, logo = $3, ipfs_hash = $4, updated_at = $5
        WHERE id = $6`, t.Issuer, t.Description, t.Logo, t.IPFSHash, time.Now().UTC(), teamID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateAmount(ctx context.Context, id string, amount int64) (Team, error) {
	teamID, err := uuid.Parse(id)
	if err != nil {
		return Team{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE teams SET amount = $1, updated_at = $2 WHERE id = $3
        RETURNING id, name, issuer, description, logo, ipfs_hash, amount, created_at, updated_at`,
		amount, time.Now().UTC(), teamID)
	return scanTeam(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	teamID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTeam(row pgx.Row) (Team, error) {
	var (
		id                   uuid.UUID
		createdAt, updatedAt time.Time
		t                    Team
	)
	if err := row.Scan(&id, &t.Name, &t.Issuer, &t.Description, &t.Logo, &t.IPFSHash, &t.Amount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Team{}, ErrNotFound
		}
		return Team{}, err
	}
	t.ID = id.String()
	t.CreatedAt = createdAt.UTC()
	t.UpdatedAt = updatedAt.UTC()
	return t, nil
}
