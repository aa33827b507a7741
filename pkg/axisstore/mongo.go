package axisstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isogrid/isogrid/pkg/pafv"
)

// MongoConfig configures the document-store backend.
type MongoConfig struct {
	URI      string // Connection string, e.g. mongodb://localhost:27017
	Database string // Database name (default "isogrid")

	// Collection names (defaults: "facets", "view_states").
	FacetCollection string
	ViewCollection  string

	// ConnectTimeout bounds the initial connection and ping (default 10s).
	ConnectTimeout time.Duration
}

func (c MongoConfig) withDefaults() MongoConfig {
	if c.Database == "" {
		c.Database = "isogrid"
	}
	if c.FacetCollection == "" {
		c.FacetCollection = "facets"
	}
	if c.ViewCollection == "" {
		c.ViewCollection = "view_states"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	return c
}

// MongoStore reads the facet table and persists view state in a document
// store. View states are upserted by their (canvas_id, view_name) key.
type MongoStore struct {
	client *mongo.Client
	facets *mongo.Collection
	views  *mongo.Collection
}

// NewMongoStore connects to the document store and verifies the connection
// with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &MongoStore{
		client: client,
		facets: db.Collection(cfg.FacetCollection),
		views:  db.Collection(cfg.ViewCollection),
	}, nil
}

// ListFacets returns the facet table ordered by sort_order.
func (s *MongoStore) ListFacets(ctx context.Context) ([]pafv.FacetRow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})
	cursor, err := s.facets.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find facets: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []pafv.FacetRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode facets: %w", err)
	}
	return rows, nil
}

func (s *MongoStore) UpsertViewState(ctx context.Context, state pafv.ViewState) error {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}
	filter := bson.D{
		{Key: "canvas_id", Value: state.CanvasID},
		{Key: "view_name", Value: state.ViewName},
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.views.ReplaceOne(ctx, filter, state, opts); err != nil {
		return fmt.Errorf("upsert view state: %w", err)
	}
	return nil
}

func (s *MongoStore) GetViewState(ctx context.Context, canvasID, viewName string) (*pafv.ViewState, error) {
	filter := bson.D{
		{Key: "canvas_id", Value: canvasID},
		{Key: "view_name", Value: viewName},
	}
	var state pafv.ViewState
	err := s.views.FindOne(ctx, filter).Decode(&state)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find view state: %w", err)
	}
	return &state, nil
}

// Close disconnects from the document store.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var (
	_ pafv.FacetStore = (*MongoStore)(nil)
	_ pafv.ViewStore  = (*MongoStore)(nil)
)
