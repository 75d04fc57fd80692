package repository

import (
	"context"
	"errors"

	"social_network_service/internal/chat/domain"
	errprocess "social_network_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageCollection mongo collection name
const MessageCollection = "messages"

// MessageRepository definition message store
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) error
	// FindConversation 兩人之間雙向的訊息, createdAt 升冪
	FindConversation(ctx context.Context, userA, userB string) ([]domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	// SetReaction 先移除 userID 舊的 reaction 再加入新的
	SetReaction(ctx context.Context, id string, reaction domain.Reaction) error
}

type messageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{
		coll: db.Collection(MessageCollection),
	}
}

// EnsureIndexes 查詢對話用的 index
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(MessageCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sender_id", Value: 1},
			{Key: "receiver_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	})
	return err
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *messageRepository) FindConversation(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	}}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	messages := []domain.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var msg domain.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.Wrap(errprocess.ErrNotFound, "message %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) UpdateContent(ctx context.Context, id, content string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errprocess.Wrap(errprocess.ErrNotFound, "message %s", id)
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errprocess.Wrap(errprocess.ErrNotFound, "message %s", id)
	}
	return nil
}

// SetReaction 用 pipeline update 一次寫入: 已有該 user 的 reaction 就原位取代, 否則加在最後
func (r *messageRepository) SetReaction(ctx context.Context, id string, reaction domain.Reaction) error {
	entry := bson.M{"user_id": reaction.UserID, "emoji": reaction.Emoji}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"reactions": bson.M{"$let": bson.M{
				"vars": bson.M{"rs": bson.M{"$ifNull": bson.A{"$reactions", bson.A{}}}},
				"in": bson.M{"$cond": bson.A{
					bson.M{"$in": bson.A{reaction.UserID, "$$rs.user_id"}},
					bson.M{"$map": bson.M{
						"input": "$$rs",
						"in": bson.M{"$cond": bson.A{
							bson.M{"$eq": bson.A{"$$this.user_id", reaction.UserID}},
							entry,
							"$$this",
						}},
					}},
					bson.M{"$concatArrays": bson.A{"$$rs", bson.A{entry}}},
				}},
			}},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errprocess.Wrap(errprocess.ErrNotFound, "message %s", id)
	}
	return nil
}
