package wordlemigrations

import (
	"context"
	"fmt"

	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating results table...")

		if _, err := db.NewCreateTable().Model((*wordledb.Result)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create results table: %w", err)
		}

		fmt.Println("Results table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping results table...")

		if _, err := db.NewDropTable().Model((*wordledb.Result)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Results table dropped successfully!")
		return nil
	})
}
