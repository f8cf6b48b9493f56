package cli

import (
	"context"

	"github.com/yukikurage/freelance-marketplace-api/internal/config"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/repository"
)

type stores struct {
	tasks repository.TaskRepository
	bids  repository.BidRepository
}

// openStores connects the backend selected by cfg.StoreDriver.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == constants.DriverMongo {
		if err := database.ConnectMongo(ctx, cfg); err != nil {
			return nil, err
		}
		db, err := database.GetMongo()
		if err != nil {
			return nil, err
		}
		return &stores{
			tasks: repository.NewMongoTaskRepository(db),
			bids:  repository.NewMongoBidRepository(db),
		}, nil
	}

	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	return &stores{
		tasks: repository.NewTaskRepository(db),
		bids:  repository.NewBidRepository(db),
	}, nil
}

func migrateStores(ctx context.Context, cfg *config.Config) error {
	if cfg.StoreDriver == constants.DriverMongo {
		return database.MigrateMongo(ctx)
	}
	return database.Migrate()
}
