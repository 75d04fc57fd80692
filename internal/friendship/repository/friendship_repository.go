package repository

import (
	"context"
	"errors"

	"social_network_service/internal/friendship/domain"
	errprocess "social_network_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FriendshipCollection mongo collection name
const FriendshipCollection = "friendships"

// FriendshipRepository definition friendship edge store
type FriendshipRepository interface {
	Create(ctx context.Context, f *domain.Friendship) error
	// FindPair requester -> recipient, 沒有時回傳 nil, nil
	FindPair(ctx context.Context, requesterID, recipientID string) (*domain.Friendship, error)
	// Transition 只在狀態為 from 時改成 to
	Transition(ctx context.Context, requesterID, recipientID string, from, to domain.Status) (*domain.Friendship, error)
	// DeleteAccepted 刪除任一方向的好友關係
	DeleteAccepted(ctx context.Context, userA, userB string) error
	FindAccepted(ctx context.Context, userID string) ([]domain.Friendship, error)
	FindPending(ctx context.Context, recipientID string) ([]domain.Friendship, error)
}

type mongoFriendshipRepository struct {
	coll *mongo.Collection
}

// NewMongoFriendshipRepository create new mongo friendship repository
func NewMongoFriendshipRepository(db *mongo.Database) FriendshipRepository {
	return &mongoFriendshipRepository{
		coll: db.Collection(FriendshipCollection),
	}
}

// EnsureIndexes requester+recipient 唯一
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(FriendshipCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "requester", Value: 1}, {Key: "recipient", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "status", Value: 1}},
		},
	})
	return err
}

func (r *mongoFriendshipRepository) Create(ctx context.Context, f *domain.Friendship) error {
	_, err := r.coll.InsertOne(ctx, f)
	if mongo.IsDuplicateKeyError(err) {
		return errprocess.Wrap(errprocess.ErrValidation, "request already sent")
	}
	return err
}

func (r *mongoFriendshipRepository) FindPair(ctx context.Context, requesterID, recipientID string) (*domain.Friendship, error) {
	filter := bson.M{
		"requester": requesterID,
		"recipient": recipientID,
	}

	var f domain.Friendship
	err := r.coll.FindOne(ctx, filter).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoFriendshipRepository) Transition(ctx context.Context, requesterID, recipientID string, from, to domain.Status) (*domain.Friendship, error) {
	filter := bson.M{
		"requester": requesterID,
		"recipient": recipientID,
		"status":    from,
	}
	update := bson.M{"$set": bson.M{"status": to}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var f domain.Friendship
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.Wrap(errprocess.ErrNotFound, "request not found")
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteAccepted 雙方互相邀請都接受時會有兩條邊, 全部刪除
func (r *mongoFriendshipRepository) DeleteAccepted(ctx context.Context, userA, userB string) error {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"requester": userA, "recipient": userB},
			bson.M{"requester": userB, "recipient": userA},
		},
		"status": domain.StatusAccepted,
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errprocess.Wrap(errprocess.ErrNotFound, "friend not found")
	}
	return nil
}

func (r *mongoFriendshipRepository) FindAccepted(ctx context.Context, userID string) ([]domain.Friendship, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"requester": userID},
			bson.M{"recipient": userID},
		},
		"status": domain.StatusAccepted,
	}
	return r.find(ctx, filter)
}

func (r *mongoFriendshipRepository) FindPending(ctx context.Context, recipientID string) ([]domain.Friendship, error) {
	filter := bson.M{
		"recipient": recipientID,
		"status":    domain.StatusPending,
	}
	return r.find(ctx, filter)
}

func (r *mongoFriendshipRepository) find(ctx context.Context, filter bson.M) ([]domain.Friendship, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	friendships := []domain.Friendship{}
	for cur.Next(ctx) {
		var f domain.Friendship
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		friendships = append(friendships, f)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return friendships, nil
}
