package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"vypiska/internal/core"

	_ "modernc.org/sqlite"
)

// TransactionRecord is the persisted row shape. Dates and amounts are kept
// textual: the importer normalizes what it can and stores the raw export
// text otherwise, so the analysis layer's tolerant parsing stays in charge.
type TransactionRecord struct {
	OperationDate string
	PaymentDate   string
	Amount        string
	PaymentAmount string
	Category      string
	Description   string
	CardNumber    string
	Status        string
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransactions appends imported rows in one transaction and returns
// how many were written.
func (r *SQLiteRepository) InsertTransactions(ctx context.Context, records []TransactionRecord) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			operation_date, payment_date, amount, payment_amount,
			category, description, card_number, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.OperationDate, rec.PaymentDate, rec.Amount, rec.PaymentAmount,
			rec.Category, rec.Description, rec.CardNumber, rec.Status,
		); err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transactions saved to SQLite", "count", inserted)
	return inserted, nil
}

// ListTransactions returns all settled rows in insertion order, wrapped into
// the core variant types so downstream analysis keeps its skip-on-failure
// semantics.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT operation_date, payment_date, amount, payment_amount,
		       category, description, card_number, status
		FROM transactions
		WHERE status = ?
		ORDER BY id`, core.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var rec TransactionRecord
		if err := rows.Scan(
			&rec.OperationDate, &rec.PaymentDate, &rec.Amount, &rec.PaymentAmount,
			&rec.Category, &rec.Description, &rec.CardNumber, &rec.Status,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, rec.ToCore())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// CountTransactions returns the number of settled rows.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE status = ?`, core.StatusOK).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// ToCore converts a stored row into the analysis model. Empty text columns
// become missing fields, not empty strings pretending to be values.
func (rec TransactionRecord) ToCore() core.Transaction {
	t := core.Transaction{
		Category:    rec.Category,
		Description: rec.Description,
		CardNumber:  rec.CardNumber,
		Status:      rec.Status,
	}
	if rec.OperationDate != "" {
		t.OperationDate = core.DateString(rec.OperationDate)
	}
	if rec.PaymentDate != "" {
		t.PaymentDate = core.DateString(rec.PaymentDate)
	}
	if rec.Amount != "" {
		t.Amount = core.AmountString(rec.Amount)
	}
	if rec.PaymentAmount != "" {
		t.PaymentAmount = core.AmountString(rec.PaymentAmount)
	}
	return t
}
