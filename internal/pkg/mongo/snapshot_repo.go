package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepo interface {
	SaveSnapshot(ctx context.Context, snapshot *RawSnapshot) error
	GetLatest(ctx context.Context, userID uint64, platform string) (*RawSnapshot, error)
}

type snapshotRepoImpl struct {
	col *mongo.Collection
}

func NewSnapshotRepo(db *mongo.Database) SnapshotRepo {
	return &snapshotRepoImpl{
		col: db.Collection("raw_snapshot"),
	}
}

// SaveSnapshot 将原始报文存入 MongoDB
func (s *snapshotRepoImpl) SaveSnapshot(ctx context.Context, snapshot *RawSnapshot) error {
	_, err := s.col.InsertOne(ctx, snapshot)
	return err
}

// GetLatest 取某用户某平台最近一次归档
func (s *snapshotRepoImpl) GetLatest(ctx context.Context, userID uint64, platform string) (*RawSnapshot, error) {
	filter := bson.M{"user_id": userID, "platform": platform}
	opts := options.FindOne().SetSort(bson.M{"fetched_at": -1})

	var snapshot RawSnapshot
	err := s.col.FindOne(ctx, filter, opts).Decode(&snapshot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}
