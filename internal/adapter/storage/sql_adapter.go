package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS events (
		seq        BIGINT       NOT NULL PRIMARY KEY,
		event_id   VARCHAR(36)  NOT NULL,
		kind       VARCHAR(64)  NOT NULL,
		actor      TEXT         NOT NULL,
		target     TEXT         NOT NULL,
		name       TEXT         NOT NULL,
		amount     BIGINT       NOT NULL DEFAULT 0,
		food_id    BIGINT       NOT NULL DEFAULT 0,
		order_id   BIGINT       NOT NULL DEFAULT 0,
		created_at TIMESTAMP    NOT NULL
	)`

// SQLAdapter journals events into a single append-only table. The same
// statements serve MySQL, PostgreSQL and SQLite; only the placeholder style
// and the duplicate-key clause differ.
type SQLAdapter struct {
	db     *sql.DB
	driver string
}

func NewSQLAdapter(db *sql.DB, driver string) *SQLAdapter {
	return &SQLAdapter{db: db, driver: driver}
}

func (a *SQLAdapter) Migrate(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, createEventsTable); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

// AppendEvents writes the batch in one transaction, so a failed batch leaves
// no partial rows behind.
func (a *SQLAdapter) AppendEvents(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, a.rebind(a.insertEvent()))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, event := range events {
		_, err := stmt.ExecContext(ctx,
			int64(event.Seq), event.ID.String(), string(event.Kind),
			string(event.Actor), string(event.Target), event.Name,
			int64(event.Amount), int64(event.FoodID), int64(event.OrderID),
			event.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", event.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit events %d-%d: %w", events[0].Seq, events[len(events)-1].Seq, err)
	}
	return nil
}

func (a *SQLAdapter) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT seq, event_id, kind, actor, target, name, amount, food_id, order_id, created_at
		FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			e                            domain.Event
			seq, amount, foodID, orderID int64
			eventID, kind, actor, target string
		)
		err := rows.Scan(&seq, &eventID, &kind, &actor, &target, &e.Name, &amount, &foodID, &orderID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if e.ID, err = uuid.Parse(eventID); err != nil {
			return nil, fmt.Errorf("parse event id at seq %d: %w", seq, err)
		}
		e.Seq = uint64(seq)
		e.Kind = domain.EventKind(kind)
		e.Actor = domain.Identity(actor)
		e.Target = domain.Identity(target)
		e.Amount = domain.Amount(amount)
		e.FoodID = uint64(foodID)
		e.OrderID = uint64(orderID)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (a *SQLAdapter) insertEvent() string {
	const columns = `events (seq, event_id, kind, actor, target, name, amount, food_id, order_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	switch a.driver {
	case DriverMySQL:
		return `INSERT IGNORE INTO ` + columns
	case DriverSQLite:
		return `INSERT OR IGNORE INTO ` + columns
	default:
		return `INSERT INTO ` + columns + ` ON CONFLICT (seq) DO NOTHING`
	}
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (a *SQLAdapter) rebind(query string) string {
	if a.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
