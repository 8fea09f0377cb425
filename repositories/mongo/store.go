package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// Store implements repositories.DocumentStore on one mongo collection.
// Ids are ObjectIDs exchanged as 24 character hex strings.
type Store struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewStore creates a store over the given collection
func NewStore(coll *mongo.Collection, logger *zap.Logger) *Store {
	return &Store{coll: coll, logger: logger}
}

// Insert stores doc under a fresh ObjectID
func (s *Store) Insert(ctx context.Context, doc models.Document) (string, error) {
	oid := bson.NewObjectID()
	stored := bson.M(doc.WithoutID())
	stored[models.IDField] = oid

	if _, err := s.coll.InsertOne(ctx, stored); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	s.logger.Debug("document inserted",
		zap.String("collection", s.coll.Name()),
		zap.String("id", oid.Hex()))
	return oid.Hex(), nil
}

// FindOne retrieves a document by id
func (s *Store) FindOne(ctx context.Context, id string) (models.Document, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, repositories.ErrDocumentNotFound
	}

	var raw bson.M
	if err := s.coll.FindOne(ctx, filter).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return toDocument(raw), nil
}

// FindMany retrieves every document matching filter in insertion order
func (s *Store) FindMany(ctx context.Context, filter repositories.Filter) ([]models.Document, error) {
	cursor, err := s.coll.Find(ctx, equalityFilter(filter),
		options.Find().SetSort(bson.D{{Key: models.IDField, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	docs := make([]models.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}
	return docs, nil
}

// Update applies fields with $set
func (s *Store) Update(ctx context.Context, id string, fields models.Document, upsert bool) (*repositories.UpdateResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, repositories.ErrInvalidID
	}

	update := setUpdate(fields)
	if update == nil {
		// $set rejects an empty document
		n, err := s.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		return &repositories.UpdateResult{MatchedCount: n}, nil
	}

	res, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(upsert))
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	result := &repositories.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		result.UpsertedID = idString(res.UpsertedID)
	}
	return result, nil
}

// Delete removes the document with the given id
func (s *Store) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	filter, err := idFilter(id)
	if err != nil {
		return &repositories.DeleteResult{}, nil
	}

	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}
	return &repositories.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func idFilter(id string) (bson.M, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return bson.M{models.IDField: oid}, nil
}

func equalityFilter(filter repositories.Filter) bson.M {
	out := bson.M{}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

// setUpdate returns nil when there is nothing to set
func setUpdate(fields models.Document) bson.M {
	set := fields.WithoutID()
	if len(set) == 0 {
		return nil
	}
	return bson.M{"$set": bson.M(set)}
}

func toDocument(raw bson.M) models.Document {
	doc := make(models.Document, len(raw))
	for k, v := range raw {
		doc[k] = normalize(v)
	}
	if id, ok := raw[models.IDField]; ok {
		doc[models.IDField] = idString(id)
	}
	return doc
}

// normalize converts driver types into the shapes encoding/json produces
func normalize(v any) any {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case bson.ObjectID:
		return val.Hex()
	case bson.DateTime:
		return val.Time().UTC()
	default:
		return v
	}
}

func idString(id any) string {
	switch val := id.(type) {
	case bson.ObjectID:
		return val.Hex()
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
