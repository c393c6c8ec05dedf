package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/domain/shared/money"
)

// The hotel runs a single rate plan, stored as one fixed document.
const ratePlanDocID = "rate_plan"

type RatePlanRepository struct {
	col *mongo.Collection
}

func NewRatePlanRepository(db *mongo.Database) *RatePlanRepository {
	return &RatePlanRepository{col: db.Collection("fd_rate_plans")}
}

func (r *RatePlanRepository) Load(ctx context.Context) (*rooms.RatePlan, error) {
	var doc ratePlanDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": ratePlanDocID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, rooms.ErrRatePlanNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RatePlanRepository) Save(ctx context.Context, plan *rooms.RatePlan) error {
	doc := newRatePlanDocument(plan)
	filter := bson.M{"_id": ratePlanDocID, "version": plan.Version}
	doc.Version = plan.Version + 1
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	plan.Version = doc.Version
	return nil
}

type ratePlanDocument struct {
	ID        string           `bson:"_id"`
	Currency  string           `bson:"currency"`
	Nightly   map[string]int64 `bson:"nightly"`
	UpdatedAt int64            `bson:"updated_at"`
	Version   int64            `bson:"version"`
}

func newRatePlanDocument(plan *rooms.RatePlan) ratePlanDocument {
	nightly := make(map[string]int64, len(plan.Nightly))
	for rt, m := range plan.Nightly {
		nightly[string(rt)] = m.Amount
	}
	return ratePlanDocument{
		ID:        ratePlanDocID,
		Currency:  plan.Currency,
		Nightly:   nightly,
		UpdatedAt: plan.UpdatedAt.UnixMilli(),
		Version:   plan.Version,
	}
}

func (d ratePlanDocument) toAggregate() *rooms.RatePlan {
	nightly := make(map[rooms.RateType]money.Money, len(d.Nightly))
	for rt, amount := range d.Nightly {
		nightly[rooms.RateType(rt)] = money.Money{Amount: amount, Currency: d.Currency}
	}
	return &rooms.RatePlan{
		Currency:  d.Currency,
		Nightly:   nightly,
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}
