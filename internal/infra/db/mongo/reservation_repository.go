package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/domain/billing"
	domainres "frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	col := db.Collection("fd_reservations")
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "room_id", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "updated_at", Value: 1}}},
	}
	_, _ = col.Indexes().CreateMany(context.Background(), idx)
	return &ReservationRepository{col: col}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainres.ReservationID) (*domainres.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainres.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) ActiveByRoom(ctx context.Context, roomID rooms.RoomID) (*domainres.Reservation, error) {
	filter := bson.M{"room_id": string(roomID), "state": string(domainres.StateCheckedIn)}
	var doc reservationDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainres.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) ListActive(ctx context.Context) ([]*domainres.Reservation, error) {
	return r.list(ctx, bson.M{"state": string(domainres.StateCheckedIn)})
}

func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domainres.Reservation, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *ReservationRepository) ListCheckedOutBetween(ctx context.Context, from, to time.Time) ([]*domainres.Reservation, error) {
	filter := bson.M{
		"state":      string(domainres.StateCheckedOut),
		"updated_at": bson.M{"$gte": from.UnixMilli(), "$lte": to.UnixMilli()},
	}
	return r.list(ctx, filter)
}

func (r *ReservationRepository) list(ctx context.Context, filter bson.M) ([]*domainres.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainres.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainres.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

type segmentDocument struct {
	RoomID   string `bson:"room_id"`
	RateType string `bson:"rate_type"`
	MovedAt  int64  `bson:"moved_at"`
}

type extraDocument struct {
	Name      string `bson:"name"`
	UnitPrice int64  `bson:"unit_price"`
	Currency  string `bson:"currency"`
	Quantity  int64  `bson:"quantity"`
}

type reservationDocument struct {
	ID         string            `bson:"_id"`
	CustomerID string            `bson:"customer_id"`
	RoomID     string            `bson:"room_id"`
	RateType   string            `bson:"rate_type"`
	Adults     int               `bson:"adults"`
	Children   int               `bson:"children"`
	CheckIn    int64             `bson:"check_in"`
	CheckOut   int64             `bson:"check_out"`
	Segments   []segmentDocument `bson:"segments"`
	Extras     []extraDocument   `bson:"extras"`
	TotalDue   int64             `bson:"total_due"`
	Currency   string            `bson:"currency"`
	State      string            `bson:"state"`
	CreatedAt  int64             `bson:"created_at"`
	UpdatedAt  int64             `bson:"updated_at"`
	Version    int64             `bson:"version"`
}

func newReservationDocument(res *domainres.Reservation) reservationDocument {
	segments := make([]segmentDocument, 0, len(res.Segments))
	for _, seg := range res.Segments {
		segments = append(segments, segmentDocument{
			RoomID:   string(seg.RoomID),
			RateType: string(seg.RateType),
			MovedAt:  seg.MovedAt.UnixMilli(),
		})
	}
	extras := make([]extraDocument, 0, len(res.Extras))
	for _, e := range res.Extras {
		extras = append(extras, extraDocument{
			Name:      e.Name,
			UnitPrice: e.UnitPrice.Amount,
			Currency:  e.UnitPrice.Currency,
			Quantity:  e.Quantity,
		})
	}
	return reservationDocument{
		ID:         string(res.ID),
		CustomerID: res.CustomerID,
		RoomID:     string(res.RoomID),
		RateType:   string(res.RateType),
		Adults:     res.Adults,
		Children:   res.Children,
		CheckIn:    res.CheckIn.UnixMilli(),
		CheckOut:   res.CheckOut.UnixMilli(),
		Segments:   segments,
		Extras:     extras,
		TotalDue:   res.TotalDue.Amount,
		Currency:   res.TotalDue.Currency,
		State:      string(res.State),
		CreatedAt:  res.CreatedAt.UnixMilli(),
		UpdatedAt:  res.UpdatedAt.UnixMilli(),
		Version:    res.Version,
	}
}

func (d reservationDocument) toAggregate() *domainres.Reservation {
	segments := make([]billing.Segment, 0, len(d.Segments))
	for _, seg := range d.Segments {
		segments = append(segments, billing.Segment{
			RoomID:   rooms.RoomID(seg.RoomID),
			RateType: rooms.RateType(seg.RateType),
			MovedAt:  timestampToTime(seg.MovedAt),
		})
	}
	extras := make([]billing.Extra, 0, len(d.Extras))
	for _, e := range d.Extras {
		extras = append(extras, billing.Extra{
			Name:      e.Name,
			UnitPrice: money.Money{Amount: e.UnitPrice, Currency: e.Currency},
			Quantity:  e.Quantity,
		})
	}
	return &domainres.Reservation{
		ID:         domainres.ReservationID(d.ID),
		CustomerID: d.CustomerID,
		RoomID:     rooms.RoomID(d.RoomID),
		RateType:   rooms.RateType(d.RateType),
		Adults:     d.Adults,
		Children:   d.Children,
		CheckIn:    timestampToTime(d.CheckIn),
		CheckOut:   timestampToTime(d.CheckOut),
		Segments:   segments,
		Extras:     extras,
		TotalDue:   money.Money{Amount: d.TotalDue, Currency: d.Currency},
		State:      domainres.State(d.State),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}
