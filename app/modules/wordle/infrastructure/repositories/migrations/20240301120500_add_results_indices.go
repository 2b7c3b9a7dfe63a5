package wordlemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding indices for results...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_results_puzzle_player ON results(puzzle, player);
			`); err != nil {
				return fmt.Errorf("failed to add unique index to results: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_results_year_month ON results(year, month);
			`); err != nil {
				return fmt.Errorf("failed to add month index to results: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back indices for results...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_results_year_month;`); err != nil {
				return fmt.Errorf("failed to drop month index: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_results_puzzle_player;`); err != nil {
				return fmt.Errorf("failed to drop unique index: %w", err)
			}
			return nil
		})
	})
}
