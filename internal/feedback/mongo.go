// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither the config nor the URI names one.
const DefaultDatabase = "expert_study"

// DefaultCollection holds one document per session.
const DefaultCollection = "feedback"

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string

	// Timeout bounds every single operation.
	Timeout time.Duration
}

// MongoStore keeps one document per session in a MongoDB collection, in the
// same shape the study has always used:
//
//	{session_id, feedback: {article: {rec: {rating, comment, timestamp}}},
//	 sus_feedback: {...}, company}
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoStore connects, verifies connectivity and ensures the unique
// session_id index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Database == "" {
		db, err := databaseFromURI(cfg.URI)
		if err != nil {
			return nil, err
		}
		cfg.Database = db
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // already failing
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}

	_, err = s.coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // already failing
		return nil, fmt.Errorf("create session_id index: %w", err)
	}

	return s, nil
}

// databaseFromURI returns the database named in the URI path, like
// mongodb://host/expert_study, or DefaultDatabase.
func databaseFromURI(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongodb uri: %w", err)
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}

func (s *MongoStore) upsert(ctx context.Context, sessionID string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$setOnInsert": bson.M{"session_id": sessionID},
			"$set":         set,
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert feedback document: %w", err)
	}
	return nil
}

// UpsertRating sets feedback.{articleID}.{recID} on the session document.
func (s *MongoStore) UpsertRating(ctx context.Context, sessionID, articleID, recID string, entry Entry) error {
	if err := validateIDs(sessionID, articleID, recID); err != nil {
		return err
	}
	return s.upsert(ctx, sessionID, bson.M{"feedback." + articleID + "." + recID: entry})
}

// UpsertSUS replaces sus_feedback on the session document.
func (s *MongoStore) UpsertSUS(ctx context.Context, sessionID string, sus SUS) error {
	if err := validateIDs(sessionID); err != nil {
		return err
	}
	return s.upsert(ctx, sessionID, bson.M{"sus_feedback": sus})
}

// SetCompany sets company on the session document.
func (s *MongoStore) SetCompany(ctx context.Context, sessionID, company string) error {
	if err := validateIDs(sessionID); err != nil {
		return err
	}
	return s.upsert(ctx, sessionID, bson.M{"company": company})
}

// Find returns the session document.
func (s *MongoStore) Find(ctx context.Context, sessionID string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var record Record
	err := s.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find feedback document: %w", err)
	}
	return &record, nil
}

// Each streams every document of the collection.
func (s *MongoStore) Each(ctx context.Context, fn func(*Record) error) error {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("list feedback documents: %w", err)
	}
	defer cursor.Close(context.Background())

	for cursor.Next(ctx) {
		var record Record
		if err := cursor.Decode(&record); err != nil {
			return fmt.Errorf("decode feedback document: %w", err)
		}
		if err := fn(&record); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// Ping checks connectivity to the primary.
func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
