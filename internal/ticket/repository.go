package ticket

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no ticket matched the lookup.
var ErrNotFound = errors.New("ticket not found")

// Repository persists tickets and their ordered ticket-type tuples.
type Repository interface {
	Create(ctx context.Context, t Ticket) error
	Get(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed ticket repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a ticket and its type rows in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, t Ticket) error {
	ticketID, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	homeID, err := uuid.Parse(t.HomeTeamID)
	if err != nil {
		return err
	}
	awayID, err := uuid.Parse(t.AwayTeamID)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO tickets (id, home_team_id, away_team_id, venue, date, time, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ticketID, homeID, awayID, t.Venue, t.Date.UTC(), t.Time, t.CreatedAt.UTC()); err != nil {
		return err
	}
	for i, tt := range t.Types {
		if _, err := tx.Exec(ctx, `INSERT INTO ticket_types (ticket_id, position, label, price, quantity)
            VALUES ($1, $2, $3, $4, $5)`, ticketID, i, tt.Label, tt.Price, tt.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Ticket, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return Ticket{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, home_team_id, away_team_id, venue, date, time, created_at
        FROM tickets WHERE id = $1`, ticketID)
	t, err := scanTicket(row)
	if err != nil {
		return Ticket{}, err
	}
	t.Types, err = r.typesFor(ctx, ticketID)
	return t, err
}

func (r *PostgresRepository) List(ctx context.Context) ([]Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, home_team_id, away_team_id, venue, date, time, created_at
        FROM tickets ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tickets {
		ticketID, _ := uuid.Parse(tickets[i].ID)
		tickets[i].Types, err = r.typesFor(ctx, ticketID)
		if err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) typesFor(ctx context.Context, ticketID uuid.UUID) ([]TicketType, error) {
	rows, err := r.db.Query(ctx, `SELECT label, price, quantity FROM ticket_types
        WHERE ticket_id = $1 ORDER BY position`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []TicketType
	for rows.Next() {
		var tt TicketType
		if err := rows.Scan(&tt.Label, &tt.Price, &tt.Quantity); err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func scanTicket(row pgx.Row) (Ticket, error) {
	var (
		id, homeID, awayID uuid.UUID
		date, createdAt    time.Time
		t                  Ticket
	)
	if err := row.Scan(&id, &homeID, &awayID, &t.Venue, &date, &t.Time, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ticket{}, ErrNotFound
		}
		return Ticket{}, err
	}
	t.ID = id.String()
	t.HomeTeamID = homeID.String()
	t.AwayTeamID = awayID.String()
	t.Date = date.UTC()
	t.CreatedAt = createdAt.UTC()
	return t, nil
}
