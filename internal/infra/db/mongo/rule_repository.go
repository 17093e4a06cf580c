package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/pricing"
	"staybase/internal/domain/shared/daterange"
)

const rulesCollection = "accommodation_rules"

type RuleRepository struct {
	col *mongo.Collection
}

func NewRuleRepository(db *mongo.Database) *RuleRepository {
	return &RuleRepository{col: db.Collection(rulesCollection)}
}

func (r *RuleRepository) ByID(ctx context.Context, accID domainacc.AccommodationID, id pricing.RuleID) (*pricing.Rule, error) {
	filter := bson.M{"_id": string(id), "accommodation_id": string(accID)}
	var doc ruleDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pricing.ErrRuleNotFound
		}
		return nil, err
	}
	return doc.toRule(), nil
}

func (r *RuleRepository) ListByAccommodation(ctx context.Context, accID domainacc.AccommodationID) ([]*pricing.Rule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"accommodation_id": string(accID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*pricing.Rule
	for cursor.Next(ctx) {
		var doc ruleDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRule())
	}
	return out, cursor.Err()
}

// AnyOverlapping reports whether any rule for the accommodation intersects
// the closed date interval, ignoring excludeID when set.
func (r *RuleRepository) AnyOverlapping(ctx context.Context, accID domainacc.AccommodationID, period daterange.Period, excludeID pricing.RuleID) (bool, error) {
	filter := bson.M{
		"accommodation_id": string(accID),
		"start_date":       bson.M{"$lte": period.End.UnixMilli()},
		"end_date":         bson.M{"$gte": period.Start.UnixMilli()},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": string(excludeID)}
	}
	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RuleRepository) Save(ctx context.Context, rule *pricing.Rule) error {
	doc := newRuleDocument(rule)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *RuleRepository) Delete(ctx context.Context, accID domainacc.AccommodationID, id pricing.RuleID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id), "accommodation_id": string(accID)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pricing.ErrRuleNotFound
	}
	return nil
}

type ruleDocument struct {
	ID              string   `bson:"_id"`
	AccommodationID string   `bson:"accommodation_id"`
	StartDate       int64    `bson:"start_date"`
	EndDate         int64    `bson:"end_date"`
	OverridePrice   *float64 `bson:"override_price,omitempty"`
	Multiplier      float64  `bson:"multiplier"`
	PeriodType      string   `bson:"period_type"`
	MinStayDays     int      `bson:"min_stay_days"`
	MaxStayDays     int      `bson:"max_stay_days"`
	CreatedAt       int64    `bson:"created_at"`
	UpdatedAt       int64    `bson:"updated_at"`
}

func newRuleDocument(rule *pricing.Rule) ruleDocument {
	return ruleDocument{
		ID:              string(rule.ID),
		AccommodationID: string(rule.AccommodationID),
		StartDate:       rule.Period.Start.UnixMilli(),
		EndDate:         rule.Period.End.UnixMilli(),
		OverridePrice:   rule.OverridePrice,
		Multiplier:      rule.Multiplier,
		PeriodType:      string(rule.PeriodType),
		MinStayDays:     rule.MinStayDays,
		MaxStayDays:     rule.MaxStayDays,
		CreatedAt:       rule.CreatedAt.UnixMilli(),
		UpdatedAt:       rule.UpdatedAt.UnixMilli(),
	}
}

func (d ruleDocument) toRule() *pricing.Rule {
	return &pricing.Rule{
		ID:              pricing.RuleID(d.ID),
		AccommodationID: domainacc.AccommodationID(d.AccommodationID),
		Period: daterange.Period{
			Start: timestampToTime(d.StartDate),
			End:   timestampToTime(d.EndDate),
		},
		OverridePrice: d.OverridePrice,
		Multiplier:    d.Multiplier,
		PeriodType:    pricing.PeriodType(d.PeriodType),
		MinStayDays:   d.MinStayDays,
		MaxStayDays:   d.MaxStayDays,
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
	}
}
