package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yukikurage/freelance-marketplace-api/internal/config"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConnected is returned when a store handle is requested before Connect
// or ConnectMongo succeeded.
var ErrNotConnected = errors.New("database: store accessed before initialization")

var (
	DB          *gorm.DB
	Mongo       *mongo.Database
	mongoClient *mongo.Client
)

// Connect opens the relational store selected by cfg.StoreDriver.
func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case constants.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	case constants.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	case constants.DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		DB = db
		log.Println("Database connection established")
		return nil
	default:
		return fmt.Errorf("database: driver %q is not a relational store", cfg.StoreDriver)
	}

	logLevel := logger.Info
	if cfg.GinMode == "release" {
		logLevel = logger.Warn
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

// OpenSQLite opens a SQLite database. In-memory databases are pinned to a
// single connection so every query sees the same data.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the relational schema.
func Migrate() error {
	db, err := GetDB()
	if err != nil {
		return err
	}
	return AutoMigrate(db)
}

func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&models.Task{}, &models.Bid{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// GetDB returns the relational handle or ErrNotConnected.
func GetDB() (*gorm.DB, error) {
	if DB == nil {
		return nil, ErrNotConnected
	}
	return DB, nil
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

// ConnectMongo connects to MongoDB and verifies the deployment with a ping.
// cfg.MongoTimeout becomes the client-wide operation timeout.
func ConnectMongo(ctx context.Context, cfg *config.Config) error {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetTimeout(cfg.MongoTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	mongoClient = client
	Mongo = client.Database(cfg.MongoDatabase)
	log.Println("Connected to MongoDB")
	return nil
}

// GetMongo returns the document store handle or ErrNotConnected.
func GetMongo() (*mongo.Database, error) {
	if Mongo == nil {
		return nil, ErrNotConnected
	}
	return Mongo, nil
}

// SetMongo sets the mongo database instance (used for testing)
func SetMongo(db *mongo.Database) {
	Mongo = db
}

// Close releases whichever store handles are open.
func Close(ctx context.Context) error {
	var errs []error
	if mongoClient != nil {
		errs = append(errs, mongoClient.Disconnect(ctx))
		mongoClient = nil
		Mongo = nil
	}
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
		DB = nil
	}
	return errors.Join(errs...)
}
