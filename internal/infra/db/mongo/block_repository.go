package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/blocks"
	"staybase/internal/domain/shared/daterange"
)

const blocksCollection = "blocked_periods"

type BlockRepository struct {
	col *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{col: db.Collection(blocksCollection)}
}

// ManualByID only matches MANUAL blocks; reservation blocks are never
// addressable through the host-facing API.
func (r *BlockRepository) ManualByID(ctx context.Context, accID domainacc.AccommodationID, id blocks.BlockID) (*blocks.BlockedPeriod, error) {
	filter := bson.M{
		"_id":              string(id),
		"accommodation_id": string(accID),
		"reason":           string(blocks.ReasonManual),
	}
	var doc blockDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blocks.ErrBlockNotFound
		}
		return nil, err
	}
	return doc.toBlock(), nil
}

func (r *BlockRepository) ListByAccommodation(ctx context.Context, accID domainacc.AccommodationID) ([]*blocks.BlockedPeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"accommodation_id": string(accID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*blocks.BlockedPeriod
	for cursor.Next(ctx) {
		var doc blockDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toBlock())
	}
	return out, cursor.Err()
}

func (r *BlockRepository) ByReservationID(ctx context.Context, reservationID string) (*blocks.BlockedPeriod, error) {
	var doc blockDocument
	if err := r.col.FindOne(ctx, bson.M{"reservation_id": reservationID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blocks.ErrBlockNotFound
		}
		return nil, err
	}
	return doc.toBlock(), nil
}

func (r *BlockRepository) AnyReservationOverlap(ctx context.Context, accID domainacc.AccommodationID, period daterange.Period) (bool, error) {
	filter := bson.M{
		"accommodation_id": string(accID),
		"reason":           string(blocks.ReasonReservation),
		"start_date":       bson.M{"$lte": period.End.UnixMilli()},
		"end_date":         bson.M{"$gte": period.Start.UnixMilli()},
	}
	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BlockRepository) Save(ctx context.Context, block *blocks.BlockedPeriod) error {
	doc := newBlockDocument(block)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *BlockRepository) Delete(ctx context.Context, accID domainacc.AccommodationID, id blocks.BlockID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{
		"_id":              string(id),
		"accommodation_id": string(accID),
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return blocks.ErrBlockNotFound
	}
	return nil
}

func (r *BlockRepository) DeleteByReservationID(ctx context.Context, reservationID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"reservation_id": reservationID})
	return err
}

type blockDocument struct {
	ID              string `bson:"_id"`
	AccommodationID string `bson:"accommodation_id"`
	StartDate       int64  `bson:"start_date"`
	EndDate         int64  `bson:"end_date"`
	Reason          string `bson:"reason"`
	ReservationID   string `bson:"reservation_id,omitempty"`
	Notes           string `bson:"notes,omitempty"`
	CreatedAt       int64  `bson:"created_at"`
}

func newBlockDocument(block *blocks.BlockedPeriod) blockDocument {
	return blockDocument{
		ID:              string(block.ID),
		AccommodationID: string(block.AccommodationID),
		StartDate:       block.Period.Start.UnixMilli(),
		EndDate:         block.Period.End.UnixMilli(),
		Reason:          string(block.Reason),
		ReservationID:   block.ReservationID,
		Notes:           block.Notes,
		CreatedAt:       block.CreatedAt.UnixMilli(),
	}
}

func (d blockDocument) toBlock() *blocks.BlockedPeriod {
	return &blocks.BlockedPeriod{
		ID:              blocks.BlockID(d.ID),
		AccommodationID: domainacc.AccommodationID(d.AccommodationID),
		Period: daterange.Period{
			Start: timestampToTime(d.StartDate),
			End:   timestampToTime(d.EndDate),
		},
		Reason:          blocks.Reason(d.Reason),
		ReservationID:   d.ReservationID,
		Notes:           d.Notes,
		CreatedAt:       timestampToTime(d.CreatedAt),
	}
}
