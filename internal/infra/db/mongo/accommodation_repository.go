package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainacc "staybase/internal/domain/accommodations"
)

// AccommodationRepository persists the aggregate root. It also owns the
// cascade: deleting an accommodation removes its rules and blocked periods.
type AccommodationRepository struct {
	col    *mongo.Collection
	rules  *mongo.Collection
	blocks *mongo.Collection
	tx     TxRunner
}

func NewAccommodationRepository(db *mongo.Database) *AccommodationRepository {
	return &AccommodationRepository{
		col:    db.Collection("accommodations"),
		rules:  db.Collection(rulesCollection),
		blocks: db.Collection(blocksCollection),
		tx:     TxRunner{DB: db},
	}
}

func (r *AccommodationRepository) ByID(ctx context.Context, id domainacc.AccommodationID) (*domainacc.Accommodation, error) {
	var doc accommodationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainacc.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *AccommodationRepository) ByHost(ctx context.Context, host domainacc.HostID) ([]*domainacc.Accommodation, error) {
	cursor, err := r.col.Find(ctx, bson.M{"host_id": string(host)})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainacc.Accommodation
	for cursor.Next(ctx) {
		var doc accommodationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *AccommodationRepository) Save(ctx context.Context, acc *domainacc.Accommodation) error {
	doc := newAccommodationDocument(acc)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

// Delete runs the whole cascade in one transaction so a failure mid-way
// never leaves orphaned rules or blocked periods behind.
func (r *AccommodationRepository) Delete(ctx context.Context, id domainacc.AccommodationID) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return domainacc.ErrNotFound
		}
		if _, err := r.rules.DeleteMany(ctx, bson.M{"accommodation_id": string(id)}); err != nil {
			return err
		}
		if _, err := r.blocks.DeleteMany(ctx, bson.M{"accommodation_id": string(id)}); err != nil {
			return err
		}
		return nil
	})
}

// Search composes the location substring filter, guest bounds and, when a
// stay window is present, excludes accommodations with a conflicting
// blocked period (open-interval test).
func (r *AccommodationRepository) Search(ctx context.Context, params domainacc.SearchParams) (domainacc.SearchResult, error) {
	params = params.Normalized()

	filter := bson.M{}
	if params.Location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(params.Location), "$options": "i"}
	}
	if params.Guests > 0 {
		filter["min_guests"] = bson.M{"$lte": params.Guests}
		filter["max_guests"] = bson.M{"$gte": params.Guests}
	}
	if params.HasStay() {
		blocked, err := r.blockedAccommodationIDs(ctx, params)
		if err != nil {
			return domainacc.SearchResult{}, err
		}
		if len(blocked) > 0 {
			filter["_id"] = bson.M{"$nin": blocked}
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainacc.SearchResult{}, err
	}

	skip := int64((params.Page - 1) * params.PageSize)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(params.PageSize))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return domainacc.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	items := make([]*domainacc.Accommodation, 0, params.PageSize)
	for cursor.Next(ctx) {
		var doc accommodationDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainacc.SearchResult{}, err
		}
		items = append(items, doc.toAggregate())
	}
	if err := cursor.Err(); err != nil {
		return domainacc.SearchResult{}, err
	}
	return domainacc.SearchResult{Items: items, Total: int(total)}, nil
}

func (r *AccommodationRepository) blockedAccommodationIDs(ctx context.Context, params domainacc.SearchParams) ([]string, error) {
	filter := bson.M{
		"start_date": bson.M{"$lt": params.CheckOut.UnixMilli()},
		"end_date":   bson.M{"$gt": params.CheckIn.UnixMilli()},
	}
	values, err := r.blocks.Distinct(ctx, "accommodation_id", filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

type accommodationDocument struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Location    string   `bson:"location"`
	Amenities   []string `bson:"amenities"`
	PhotoKeys   []string `bson:"photo_keys"`
	MinGuests   int      `bson:"min_guests"`
	MaxGuests   int      `bson:"max_guests"`
	HostID      string   `bson:"host_id"`
	AutoApprove bool     `bson:"auto_approve"`
	IsPerUnit   bool     `bson:"is_per_unit"`
	BasePrice   float64  `bson:"base_price"`
	CreatedAt   int64    `bson:"created_at"`
	UpdatedAt   int64    `bson:"updated_at"`
}

func newAccommodationDocument(acc *domainacc.Accommodation) accommodationDocument {
	return accommodationDocument{
		ID:          string(acc.ID),
		Name:        acc.Name,
		Location:    acc.Location,
		Amenities:   acc.Amenities,
		PhotoKeys:   acc.PhotoKeys,
		MinGuests:   acc.MinGuests,
		MaxGuests:   acc.MaxGuests,
		HostID:      string(acc.Host),
		AutoApprove: acc.AutoApprove,
		IsPerUnit:   acc.IsPerUnit,
		BasePrice:   acc.BasePrice,
		CreatedAt:   acc.CreatedAt.UnixMilli(),
		UpdatedAt:   acc.UpdatedAt.UnixMilli(),
	}
}

func (d accommodationDocument) toAggregate() *domainacc.Accommodation {
	photoKeys := d.PhotoKeys
	if photoKeys == nil {
		photoKeys = []string{}
	}
	return &domainacc.Accommodation{
		ID:          domainacc.AccommodationID(d.ID),
		Name:        d.Name,
		Location:    d.Location,
		Amenities:   d.Amenities,
		PhotoKeys:   photoKeys,
		MinGuests:   d.MinGuests,
		MaxGuests:   d.MaxGuests,
		Host:        domainacc.HostID(d.HostID),
		AutoApprove: d.AutoApprove,
		IsPerUnit:   d.IsPerUnit,
		BasePrice:   d.BasePrice,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
