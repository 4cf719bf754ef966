package jersey

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no jersey matched the lookup.
var ErrNotFound = errors.New("jersey not found")

// Repository persists jerseys.
type Repository interface {
	Create(ctx context.Context, j Jersey) error
	Get(ctx context.Context, id string) (Jersey, error)
	List(ctx context.Context) ([]Jersey, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed jersey repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, j Jersey) error {
	jerseyID, err := uuid.Parse(j.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO jerseys (id, team_name, type, player_name, price, image, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		jerseyID, j.TeamName, j.Type, j.PlayerName, j.Price, j.Image, j.CreatedAt.UTC())
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Jersey, error) {
	jerseyID, err := uuid.Parse(id)
	if err != nil {
		return Jersey{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, team_name, type, player_name, price, image, created_at
        FROM jerseys WHERE id = $1`, jerseyID)
	return scanJersey(row)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Jersey, error) {
	rows, err := r.db.Query(ctx, `SELECT id, team_name, type, player_name, price, image, created_at
        FROM jerseys ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jerseys []Jersey
	for rows.Next() {
		j, err := scanJersey(rows)
		if err != nil {
			return nil, err
		}
		jerseys = append(jerseys, j)
	}
	return jerseys, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	jerseyID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM jerseys WHERE id = $1`, jerseyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJersey(row pgx.Row) (Jersey, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		j         Jersey
	)
	if err := row.Scan(&id, &j.TeamName, &j.Type, &j.PlayerName, &j.Price, &j.Image, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Jersey{}, ErrNotFound
		}
		return Jersey{}, err
	}
	j.ID = id.String()
	j.CreatedAt = createdAt.UTC()
	return j, nil
}
