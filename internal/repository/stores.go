package repository

import (
	"context"
	"fmt"

	"feedsvc/internal/config"
	"feedsvc/internal/db"
)

// Stores bundles the record stores for the configured driver.
type Stores struct {
	Users UserRepository
	Posts PostRepository
	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the store selected by cfg.StoreDriver and prepares its
// schema or indexes.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateMySQL(gormDB); err != nil {
			return nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("mysql handle: %w", err)
		}
		return &Stores{
			Users: NewUserRepository(gormDB),
			Posts: NewPostRepository(gormDB),
			close: func(context.Context) error { return sqlDB.Close() },
		}, nil

	case config.StoreMongo:
		client, database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Stores{
			Users: NewMongoUserRepository(database),
			Posts: NewMongoPostRepository(database),
			close: client.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
