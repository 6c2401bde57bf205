package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/stangrad/wayfind/pkg/graph"
)

// MongoStore is a MongoDB-backed document store for server deployments.
// Each map is one record keyed by name, so saves are atomic replacements.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the connection string (mongodb://...).
	URI string

	// Database is the database name. Defaults to "wayfind".
	Database string

	// Collection is the collection name. Defaults to "maps".
	Collection string
}

// mapRecord is the stored shape: the name doubles as the primary key.
type mapRecord struct {
	Name string          `bson:"_id"`
	Doc  *graph.Document `bson:"doc"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "wayfind"
	}
	if cfg.Collection == "" {
		cfg.Collection = "maps"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Load retrieves a document by name.
func (s *MongoStore) Load(ctx context.Context, name string) (*graph.Document, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var rec mapRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", name, err)
	}
	return rec.Doc, nil
}

// Save stores a document under the given name (upsert).
func (s *MongoStore) Save(ctx context.Context, name string, doc *graph.Document) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	rec := mapRecord{Name: name, Doc: doc}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save map %q: %w", name, err)
	}
	return nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("delete map %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all stored document names, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	var names []string
	for _, id := range ids {
		if name, ok := id.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
