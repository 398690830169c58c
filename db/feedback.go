package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/mo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fbbackend/core"
	"fbbackend/models"
)

type MongoFeedbackRepository struct {
	collection *mongo.Collection
}

func NewMongoFeedbackRepository(database *mongo.Database) *MongoFeedbackRepository {
	return &MongoFeedbackRepository{collection: database.Collection("feedbacks")}
}

func (r *MongoFeedbackRepository) InsertFeedback(ctx context.Context, feedback *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return &core.PersistenceError{Op: "insert feedback", Err: err}
	}
	if result.InsertedID == nil {
		return &core.PersistenceError{Op: "insert feedback returned no id"}
	}

	return nil
}

func (r *MongoFeedbackRepository) GetFeedbackByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Feedback], error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return mo.None[*models.Feedback](), nil
		}
		return mo.None[*models.Feedback](), fmt.Errorf("failed to get feedback: %w", err)
	}

	return mo.Some(&feedback), nil
}
