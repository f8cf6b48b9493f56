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

type bidDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TaskID    primitive.ObjectID `bson:"taskId"`
	UserEmail string             `bson:"userEmail"`
	UserName  string             `bson:"userName,omitempty"`
	Amount    float64            `bson:"amount"`
	Message   string             `bson:"message,omitempty"`
	Date      time.Time          `bson:"date"`
}

func (d bidDocument) toModel() models.Bid {
	return models.Bid{
		ID:        d.ID.Hex(),
		TaskID:    d.TaskID.Hex(),
		UserEmail: d.UserEmail,
		UserName:  d.UserName,
		Amount:    d.Amount,
		Message:   d.Message,
		Date:      d.Date,
	}
}

// MongoBidRepository stores bids in their own collection keyed by taskId
type MongoBidRepository struct {
	bids *mongo.Collection
}

// NewMongoBidRepository creates a BidRepository backed by MongoDB
func NewMongoBidRepository(db *mongo.Database) BidRepository {
	return &MongoBidRepository{bids: db.Collection(constants.BidsCollection)}
}

func (r *MongoBidRepository) IsValidID(id string) bool {
	_, ok := parseObjectID(id)
	return ok
}

func (r *MongoBidRepository) Create(ctx context.Context, bid *models.Bid) error {
	taskOID, ok := parseObjectID(bid.TaskID)
	if !ok {
		return ErrInvalidID
	}

	doc := bidDocument{
		TaskID:    taskOID,
		UserEmail: bid.UserEmail,
		UserName:  bid.UserName,
		Amount:    bid.Amount,
		Message:   bid.Message,
		Date:      bid.Date,
	}

	result, err := r.bids.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("repository: unexpected inserted id type")
	}
	bid.ID = oid.Hex()
	return nil
}

func (r *MongoBidRepository) FindByID(ctx context.Context, id string) (*models.Bid, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, ErrInvalidID
	}

	var doc bidDocument
	if err := r.bids.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bid := doc.toModel()
	return &bid, nil
}

func (r *MongoBidRepository) ListByTask(ctx context.Context, taskID string) ([]models.Bid, error) {
	oid, ok := parseObjectID(taskID)
	if !ok {
		return nil, ErrInvalidID
	}
	return r.find(ctx, bson.M{"taskId": oid})
}

func (r *MongoBidRepository) List(ctx context.Context) ([]models.Bid, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoBidRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return false, ErrInvalidID
	}

	result, err := r.bids.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoBidRepository) find(ctx context.Context, filter bson.M) ([]models.Bid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.bids.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bidDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bids := make([]models.Bid, len(docs))
	for i, doc := range docs {
		bids[i] = doc.toModel()
	}
	return bids, nil
}
