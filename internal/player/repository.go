package player

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no player matched the lookup.
var ErrNotFound = errors.New("player not found")

// Repository persists players.
type Repository interface {
	Create(ctx context.Context, p Player) error
	Get(ctx context.Context, id string) (Player, error)
	List(ctx context.Context) ([]Player, error)
	FindByTeam(ctx context.Context, team string) ([]Player, error)
	Update(ctx context.Context, p Player) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed player repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p Player) error {
	playerID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO players (id, name, team, jersey_number, date_of_birth, image, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		playerID, p.Name, p.Team, p.JerseyNumber, p.DateOfBirth.UTC(), p.Image, p.CreatedAt.UTC())
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Player, error) {
	playerID, err := uuid.Parse(id)
	if err != nil {
		return Player{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, team, jersey_number, date_of_birth, image, created_at
        FROM players WHERE id = $1`, playerID)
	return scanPlayer(row)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Player, error) {
	return r.query(ctx, `SELECT id, name, team, jersey_number, date_of_birth, image, created_at
        FROM players ORDER BY name`)
}

// FindByTeam returns players for a team name. The reference is loose, so an
// unknown team simply yields an empty slice.
func (r *PostgresRepository) FindByTeam(ctx context.Context, team string) ([]Player, error) {
	return r.query(ctx, `SELECT id, name, team, jersey_number, date_of_birth, image, created_at
        FROM players WHERE team = $1 ORDER BY name`, team)
}

func (r *PostgresRepository) Update(ctx context.Context, p Player) error {
	playerID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE players SET name = $1, team = $2, jersey_number = $3, date_of_birth = $4, image = $5
        WHERE id = $6`, p.Name, p.Team, p.JerseyNumber, p.DateOfBirth.UTC(), p.Image, playerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	playerID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, playerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]Player, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func scanPlayer(row pgx.Row) (Player, error) {
	var (
		id             uuid.UUID
		dob, createdAt time.Time
		p              Player
	)
	if err := row.Scan(&id, &p.Name, &p.Team, &p.JerseyNumber, &dob, &p.Image, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, err
	}
	p.ID = id.String()
	p.DateOfBirth = dob.UTC()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
