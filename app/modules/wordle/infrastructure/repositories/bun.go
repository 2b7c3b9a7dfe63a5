package wordledb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"
)

// Supported relational drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const pgUniqueViolation = "23505"

// OpenDB opens a bun handle for driver ("postgres" or "sqlite") and verifies the connection.
func OpenDB(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	var db *bun.DB
	switch driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("wordledb.OpenDB: %w", err)
		}
		// A single connection keeps in-memory databases shared and serializes writers.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("wordledb.OpenDB: unsupported driver %q", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("wordledb.OpenDB: ping %s: %w", driver, err)
	}
	return db, nil
}

// BunRepository stores results in a relational table through bun.
type BunRepository struct {
	db *bun.DB
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository wraps an open bun handle. The repository owns the handle and closes it on Close.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

// DB exposes the handle for migrations.
func (r *BunRepository) DB() *bun.DB {
	return r.db
}

func (r *BunRepository) Exists(ctx context.Context, puzzle int, player string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Result)(nil)).
		Where("puzzle = ?", puzzle).
		Where("player = ?", player).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("wordledb.Exists: %w", err)
	}
	return exists, nil
}

func (r *BunRepository) Get(ctx context.Context, puzzle int, player string) (*wordledomain.Result, error) {
	row := new(Result)
	err := r.db.NewSelect().
		Model(row).
		Where("puzzle = ?", puzzle).
		Where("player = ?", player).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("wordledb.Get: %w", err)
	}
	result, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("wordledb.Get: %w", err)
	}
	return &result, nil
}

func (r *BunRepository) Insert(ctx context.Context, result *wordledomain.Result) error {
	if result.SubmittedAt.IsZero() {
		result.SubmittedAt = time.Now().UTC()
	}
	row := resultFromDomain(result)
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("wordledb.Insert: %w", err)
	}
	return nil
}

func (r *BunRepository) ByPuzzle(ctx context.Context, puzzle int) ([]wordledomain.Result, error) {
	var rows []Result
	err := r.db.NewSelect().
		Model(&rows).
		Where("puzzle = ?", puzzle).
		Order("score ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("wordledb.ByPuzzle: %w", err)
	}
	results, err := toDomainSlice(rows)
	if err != nil {
		return nil, fmt.Errorf("wordledb.ByPuzzle: %w", err)
	}
	return results, nil
}

func (r *BunRepository) ByMonth(ctx context.Context, month time.Month, year int) ([]wordledomain.Result, error) {
	var rows []Result
	err := r.db.NewSelect().
		Model(&rows).
		Where("month = ?", month.String()).
		Where("year = ?", year).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("wordledb.ByMonth: %w", err)
	}
	results, err := toDomainSlice(rows)
	if err != nil {
		return nil, fmt.Errorf("wordledb.ByMonth: %w", err)
	}
	return results, nil
}

func (r *BunRepository) Close() error {
	return r.db.Close()
}

// isUniqueViolation recognizes a uniqueness failure from pgdriver, pgx or sqlite.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
