package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/domain/rooms"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	col := db.Collection("fd_rooms")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &RoomRepository{col: col}
}

func (r *RoomRepository) ByID(ctx context.Context, id rooms.RoomID) (*rooms.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, rooms.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) ByNumber(ctx context.Context, number string) (*rooms.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"number": number}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, rooms.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]*rooms.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*rooms.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *RoomRepository) Save(ctx context.Context, room *rooms.Room) error {
	doc := newRoomDocument(room)
	filter := bson.M{"_id": doc.ID, "version": room.Version}
	doc.Version = room.Version + 1
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return rooms.ErrNumberTaken
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	room.Version = doc.Version
	return nil
}

type roomDocument struct {
	ID        string `bson:"_id"`
	Number    string `bson:"number"`
	Floor     int    `bson:"floor"`
	RateType  string `bson:"rate_type"`
	Status    string `bson:"status"`
	Notes     string `bson:"notes"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
	Version   int64  `bson:"version"`
}

func newRoomDocument(room *rooms.Room) roomDocument {
	return roomDocument{
		ID:        string(room.ID),
		Number:    room.Number,
		Floor:     room.Floor,
		RateType:  string(room.RateType),
		Status:    string(room.Status),
		Notes:     room.Notes,
		CreatedAt: room.CreatedAt.UnixMilli(),
		UpdatedAt: room.UpdatedAt.UnixMilli(),
		Version:   room.Version,
	}
}

func (d roomDocument) toAggregate() *rooms.Room {
	return &rooms.Room{
		ID:        rooms.RoomID(d.ID),
		Number:    d.Number,
		Floor:     d.Floor,
		RateType:  rooms.RateType(d.RateType),
		Status:    rooms.Status(d.Status),
		Notes:     d.Notes,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}
