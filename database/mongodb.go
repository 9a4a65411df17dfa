package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"mediguard-backend/config"
	"mediguard-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	chatTurnsCollection = "chat_turns"
	trackerCollection   = "symptom_tracker"
)

// MongoStore is a SessionStore backed by MongoDB. Documents carry an
// expires_at field covered by a TTL index.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	turns   *mongo.Collection
	tracker *mongo.Collection
	ttl     time.Duration
}

// ConnectMongoDB establishes connection to MongoDB
func ConnectMongoDB(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.BuildDatabaseURI()).
		SetMaxPoolSize(uint64(cfg.Database.MaxConnections)).
		SetMinPoolSize(uint64(cfg.Database.MinConnections)).
		SetMaxConnIdleTime(cfg.Database.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database.Name)
	store := &MongoStore{
		client:  client,
		db:      db,
		turns:   db.Collection(chatTurnsCollection),
		tracker: db.Collection(trackerCollection),
		ttl:     cfg.Database.SessionTTL,
	}

	slog.Info("Connected to MongoDB", "database", cfg.Database.Name)

	if err := store.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

func (s *MongoStore) Kind() string { return "mongodb" }

// createIndexes creates necessary indexes
func (s *MongoStore) createIndexes(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{s.turns, s.tracker} {
		indexes := []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "session_id", Value: 1},
					{Key: "timestamp", Value: -1},
				},
			},
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		}
		if coll == s.tracker {
			indexes[0].Keys = bson.D{
				{Key: "session_id", Value: 1},
				{Key: "created_at", Value: -1},
			}
		}

		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll.Name(), err)
		}
	}

	slog.Debug("Database indexes created successfully")
	return nil
}

func (s *MongoStore) AppendChatTurn(ctx context.Context, turn *models.ChatTurn) error {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	turn.ExpiresAt = turn.Timestamp.Add(s.ttl)

	if _, err := s.turns.InsertOne(ctx, turn); err != nil {
		return fmt.Errorf("failed to insert chat turn: %w", err)
	}
	return nil
}

// ListChatTurns returns the newest limit turns in chronological order.
func (s *MongoStore) ListChatTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	filter := bson.M{
		"session_id": sessionID,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	cursor, err := s.turns.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat turns: %w", err)
	}
	defer cursor.Close(ctx)

	turns := []models.ChatTurn{}
	if err := cursor.All(ctx, &turns); err != nil {
		return nil, fmt.Errorf("failed to decode chat turns: %w", err)
	}
	slices.Reverse(turns)
	return turns, nil
}

func (s *MongoStore) ClearSession(ctx context.Context, sessionID string) error {
	filter := bson.M{"session_id": sessionID}
	if _, err := s.turns.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete chat turns: %w", err)
	}
	if _, err := s.tracker.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete tracker entries: %w", err)
	}
	return nil
}

func (s *MongoStore) AddTrackerEntry(ctx context.Context, entry *models.TrackerEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.ExpiresAt = entry.CreatedAt.Add(s.ttl)

	if _, err := s.tracker.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert tracker entry: %w", err)
	}
	return nil
}

func (s *MongoStore) RecentTrackerEntries(ctx context.Context, sessionID string, limit int) ([]models.TrackerEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	filter := bson.M{
		"session_id": sessionID,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	cursor, err := s.tracker.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracker entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.TrackerEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode tracker entries: %w", err)
	}
	slices.Reverse(entries)
	return entries, nil
}

func (s *MongoStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the MongoDB connection
func (s *MongoStore) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	slog.Info("Disconnected from MongoDB")
	return nil
}
