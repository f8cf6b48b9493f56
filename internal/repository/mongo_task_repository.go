package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Category    string             `bson:"category"`
	Description string             `bson:"description"`
	Deadline    time.Time          `bson:"deadline"`
	Budget      float64            `bson:"budget"`
	UserEmail   string             `bson:"userEmail"`
	UserName    string             `bson:"userName"`
	BidsCount   int64              `bson:"bidsCount"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d taskDocument) toModel() models.Task {
	return models.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		Deadline:    d.Deadline,
		Budget:      d.Budget,
		UserEmail:   d.UserEmail,
		UserName:    d.UserName,
		BidsCount:   d.BidsCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoTaskRepository stores tasks in the tasks collection and cascades
// deletes into the bids collection.
type MongoTaskRepository struct {
	tasks *mongo.Collection
	bids  *mongo.Collection
}

// NewMongoTaskRepository creates a TaskRepository backed by MongoDB
func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &MongoTaskRepository{
		tasks: db.Collection(constants.TasksCollection),
		bids:  db.Collection(constants.BidsCollection),
	}
}

func (r *MongoTaskRepository) IsValidID(id string) bool {
	_, ok := parseObjectID(id)
	return ok
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	doc := taskDocument{
		Title:       task.Title,
		Category:    task.Category,
		Description: task.Description,
		Deadline:    task.Deadline,
		Budget:      task.Budget,
		UserEmail:   task.UserEmail,
		UserName:    task.UserName,
		BidsCount:   task.BidsCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.tasks.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("repository: unexpected inserted id type")
	}
	task.ID = oid.Hex()
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, ErrInvalidID
	}

	var doc taskDocument
	if err := r.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	task := doc.toModel()
	return &task, nil
}

func (r *MongoTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := bson.M{}
	if filter.UserEmail != "" {
		query["userEmail"] = filter.UserEmail
	}

	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.tasks.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, len(docs))
	for i, doc := range docs {
		tasks[i] = doc.toModel()
	}
	return tasks, nil
}

func (r *MongoTaskRepository) UpdateDetails(ctx context.Context, id string, details TaskDetails) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"title":       details.Title,
		"category":    details.Category,
		"description": details.Description,
		"deadline":    details.Deadline,
		"budget":      details.Budget,
		"updatedAt":   time.Now().UTC(),
	}}

	result, err := r.tasks.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the task first and its bids second. The two writes are not
// transactional; a failed cascade reports true together with the error.
func (r *MongoTaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, ErrInvalidID
	}

	result, err := r.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	if result.DeletedCount == 0 {
		return false, nil
	}

	if _, err := r.bids.DeleteMany(ctx, bson.M{"taskId": oid}); err != nil {
		return true, err
	}
	return true, nil
}

func (r *MongoTaskRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.tasks.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}

	if _, err := r.bids.DeleteMany(ctx, bson.M{}); err != nil {
		return result.DeletedCount, err
	}
	return result.DeletedCount, nil
}

// IncrementBidsCount applies $inc to bidsCount. Negative deltas carry a
// lower-bound filter so the counter never goes below zero.
func (r *MongoTaskRepository) IncrementBidsCount(ctx context.Context, id string, delta int) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return ErrInvalidID
	}

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["bidsCount"] = bson.M{"$gte": -delta}
	}

	result, err := r.tasks.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"bidsCount": delta}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// parseObjectID accepts only canonical 24-character hex identifiers.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || oid.Hex() != id {
		return primitive.NilObjectID, false
	}
	return oid, true
}
