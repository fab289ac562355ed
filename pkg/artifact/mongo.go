package artifact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	galaxyerrors "github.com/matzehuels/galaxyprofile/pkg/errors"
)

// Defaults for MongoConfig.
const (
	DefaultMongoDatabase   = "galaxyprofile"
	DefaultMongoCollection = "artifacts"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string // defaults to DefaultMongoDatabase
	Collection string // defaults to DefaultMongoCollection
}

// MongoStore keeps the latest record per username, name and format.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects, pings the primary and ensures the unique index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, galaxyerrors.New(galaxyerrors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}, {Key: "name", Value: 1}, {Key: "format", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create artifact index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, now: time.Now}, nil
}

func (s *MongoStore) Save(ctx context.Context, rec Record) error {
	if rec.Username == "" || rec.Name == "" || rec.Format == "" {
		return galaxyerrors.New(galaxyerrors.ErrCodeInvalidInput, "artifact username, name and format are required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	filter := bson.M{"username": rec.Username, "name": rec.Name, "format": rec.Format}
	_, err := s.coll.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s for %s: %w", rec.Filename(), rec.Username, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, username, name, format string) (*Record, error) {
	filter := bson.M{"username": username, "name": name, "format": format}
	var rec Record
	err := s.coll.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, galaxyerrors.New(galaxyerrors.ErrCodeNotFound, "artifact %s.%s for %s not found", name, format, username)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s.%s for %s: %w", name, format, username, err)
	}
	return &rec, nil
}

// Delete removes every record of username.
func (s *MongoStore) Delete(ctx context.Context, username string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		return 0, fmt.Errorf("delete artifacts for %s: %w", username, err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
