package database

import (
	"context"
	"fmt"
	"log"

	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoIndexes lists the indexes behind the query patterns of the API:
// tasks by owner, tasks sorted by deadline and bids per task by date.
var mongoIndexes = []struct {
	collection string
	name       string
	keys       bson.D
}{
	{constants.TasksCollection, "idx_tasks_user_email", bson.D{{Key: "userEmail", Value: 1}}},
	{constants.TasksCollection, "idx_tasks_deadline", bson.D{{Key: "deadline", Value: 1}}},
	{constants.BidsCollection, "idx_bids_task_date", bson.D{{Key: "taskId", Value: 1}, {Key: "date", Value: -1}}},
}

// EnsureMongoIndexes creates the document store indexes. Creating an index
// that already exists with the same definition is a no-op in MongoDB.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range mongoIndexes {
		model := mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetName(idx.name),
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Printf("Ensured index %s on %s\n", idx.name, idx.collection)
	}
	return nil
}

// MigrateMongo runs the document store migrations.
func MigrateMongo(ctx context.Context) error {
	db, err := GetMongo()
	if err != nil {
		return err
	}
	log.Println("Ensuring MongoDB indexes...")
	return EnsureMongoIndexes(ctx, db)
}
