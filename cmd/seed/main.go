package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/repository/specification"
	"eviden-bot/internal/repository/unitofwork"
	"eviden-bot/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	created, err := seed(context.Background(), unitofwork.NewRepositoryFactory(db), segments, designators)
	if err != nil {
		color.Red("Seeding failed, nothing written: %v", err)
		os.Exit(1)
	}
	color.Cyan("Seeding completed! %d rows created", created)
}

// seed inserts the catalog rows that are missing in one transaction and reports how many it created.
func seed(ctx context.Context, factory unitofwork.RepositoryFactory, segs []*entity.Segment, desigs []*entity.Designator) (int, error) {
	created := 0
	err := unitofwork.Transact(ctx, factory, func(uow unitofwork.UnitOfWork) error {
		color.Cyan("Seeding segment catalog...")
		for _, s := range segs {
			existing, err := uow.SegmentRepository().FindOne(ctx, specification.ByID{ID: s.Id})
			if err != nil {
				return fmt.Errorf("look up segment %d: %w", s.Id, err)
			}
			if existing != nil {
				color.Yellow("  exists  %s", s.DisplayName)
				continue
			}
			row := *s
			if err := uow.SegmentRepository().Create(ctx, &row); err != nil {
				return fmt.Errorf("create segment %s: %w", s.DisplayName, err)
			}
			color.Green("  created %s", s.DisplayName)
			created++
		}

		color.Cyan("Seeding designator catalog...")
		for _, d := range desigs {
			existing, err := uow.DesignatorRepository().FindOne(ctx, specification.ByID{ID: d.Code})
			if err != nil {
				return fmt.Errorf("look up designator %s: %w", d.Code, err)
			}
			if existing != nil {
				color.Yellow("  exists  %s", d.Code)
				continue
			}
			row := *d
			if err := uow.DesignatorRepository().Create(ctx, &row); err != nil {
				return fmt.Errorf("create designator %s: %w", d.Code, err)
			}
			color.Green("  created %s", d.Code)
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
