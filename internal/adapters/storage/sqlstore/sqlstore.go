// Package sqlstore implementa los repositorios sobre database/sql. El mismo
// SQL corre en Postgres (pgx) y en SQLite (modernc); Dialect solo cambia los
// placeholders y el DDL.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/recordstore"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate aplica el DDL del dialecto. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	ddl, err := schemaFS.ReadFile("schema/" + string(d) + ".sql")
	if err != nil {
		return fmt.Errorf("schema for %s: %w", d, err)
	}
	for _, stmt := range strings.Split(string(ddl), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", d, err)
		}
	}
	return nil
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

func (s *Store) Pets() pets.Repository                 { return &petRepo{s} }
func (s *Store) Records() medicalrecords.Repository    { return &recordRepo{s} }
func (s *Store) Diary() diary.Repository               { return &diaryRepo{s} }
func (s *Store) Appointments() appointments.Repository { return &appointmentRepo{s} }

// rebind traduce los '?' a $1..$n en Postgres.
func (s *Store) rebind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(q), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(q), args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(q), args...)
}

// deleteByID borra una fila; 0 filas afectadas es ErrNotFound.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.exec(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

// setClause acumula los "col = ?" de un update parcial.
type setClause struct {
	cols []string
	args []any
}

func (c *setClause) add(col string, v any) {
	c.cols = append(c.cols, col+" = ?")
	c.args = append(c.args, v)
}

func (c *setClause) empty() bool { return len(c.cols) == 0 }

func (c *setClause) sql() string { return strings.Join(c.cols, ", ") }

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return recordstore.ErrNotFound
	}
	return err
}

// SQLite compara created_at como texto: todo se guarda en UTC.
func utc(t time.Time) time.Time { return t.UTC() }

type scanner interface {
	Scan(dest ...any) error
}
