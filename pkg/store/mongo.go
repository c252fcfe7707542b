package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/treeviz/pkg/errors"
)

const snapshotCollection = "snapshots"

// MongoStore persists snapshots in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name (default "treeviz").
	Database string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "treeviz"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(snapshotCollection),
	}, nil
}

// Put saves a snapshot, upserting on ID.
func (s *MongoStore) Put(ctx context.Context, snap Snapshot) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": snap.ID},
		snap,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save snapshot %s", snap.ID)
	}
	return nil
}

// Get retrieves a snapshot by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeStore, err, "load snapshot %s", id)
	}
	return snap, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
