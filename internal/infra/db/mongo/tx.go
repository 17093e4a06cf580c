package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTxNotConfigured = errors.New("mongo: transaction runner missing database")

// TxRunner wraps rule/block mutations in a MongoDB session transaction so
// the overlap check and the insert observe a consistent snapshot.
type TxRunner struct {
	DB *mongo.Database
}

func (r TxRunner) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.DB == nil {
		return ErrTxNotConfigured
	}
	session, err := r.DB.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(r.DB.ReadConcern()).
		SetWriteConcern(r.DB.WriteConcern())
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}, txnOpts)
	return err
}
