package adapter

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	chat "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/domain"
)

// MongoStore implements port.Store over the official mongo driver, using
// the participants and messages collections. ObjectID generation order
// keeps unsorted finds in insertion order for a single writer.
type MongoStore struct {
	client       *mongo.Client
	participants *mongo.Collection
	messages     *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:       client,
		participants: db.Collection("participants"),
		messages:     db.Collection("messages"),
	}
}

var _ port.Store = (*MongoStore)(nil)

type participantDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	LastStatus int64              `bson:"lastStatus"` // unix millis, original wire format
}

type messageDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	From string             `bson:"from"`
	To   string             `bson:"to"`
	Text string             `bson:"text"`
	Type string             `bson:"type"`
	Time string             `bson:"time"`
}

func (d participantDoc) toDomain() chat.Participant {
	return chat.Participant{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		LastStatus: time.UnixMilli(d.LastStatus),
	}
}

func (d messageDoc) toDomain() chat.Message {
	return chat.Message{
		ID:   d.ID.Hex(),
		From: d.From,
		To:   d.To,
		Text: d.Text,
		Type: chat.MessageType(d.Type),
		Time: d.Time,
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, port.ErrNotFound
	}
	return oid, nil
}

func (s *MongoStore) InsertParticipant(ctx context.Context, p chat.Participant) (string, error) {
	res, err := s.participants.InsertOne(ctx, participantDoc{
		Name:       p.Name,
		LastStatus: p.LastStatus.UnixMilli(),
	})
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) ListParticipants(ctx context.Context) ([]chat.Participant, error) {
	cur, err := s.participants.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []chat.Participant
	for cur.Next(ctx) {
		var doc participantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (s *MongoStore) FindParticipantByName(ctx context.Context, name string) (chat.Participant, error) {
	var doc participantDoc
	err := s.participants.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return chat.Participant{}, port.ErrNotFound
	}
	if err != nil {
		return chat.Participant{}, err
	}
	return doc.toDomain(), nil
}

func (s *MongoStore) TouchParticipant(ctx context.Context, id string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.participants.UpdateByID(ctx, oid,
		bson.D{{Key: "$set", Value: bson.D{{Key: "lastStatus", Value: at.UnixMilli()}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteParticipant(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.participants.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertMessage(ctx context.Context, m chat.Message) (string, error) {
	res, err := s.messages.InsertOne(ctx, messageDoc{
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: string(m.Type),
		Time: m.Time,
	})
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (s *MongoStore) ListMessages(ctx context.Context) ([]chat.Message, error) {
	cur, err := s.messages.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []chat.Message
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (s *MongoStore) FindMessageByID(ctx context.Context, id string) (chat.Message, error) {
	oid, err := objectID(id)
	if err != nil {
		return chat.Message{}, err
	}
	var doc messageDoc
	err = s.messages.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return chat.Message{}, port.ErrNotFound
	}
	if err != nil {
		return chat.Message{}, err
	}
	return doc.toDomain(), nil
}

func (s *MongoStore) UpdateMessageText(ctx context.Context, id string, text string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.messages.UpdateByID(ctx, oid,
		bson.D{{Key: "$set", Value: bson.D{{Key: "text", Value: text}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteMessage(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.messages.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
