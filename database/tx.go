package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner runs fn as one logical unit. Writes issued through the ctx handed
// to fn belong to the same transaction when the runner supports one.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewTxRunner returns a Mongo session runner when enabled (replica set
// deployments) and a pass-through runner otherwise.
func NewTxRunner(client *mongo.Client, enabled bool) TxRunner {
	if enabled && client != nil {
		return &mongoTxRunner{client: client}
	}
	return DirectRunner{}
}

type mongoTxRunner struct {
	client *mongo.Client
}

func (r *mongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// DirectRunner calls fn without a transaction. Services compensate on
// failure, so it is also what tests use.
type DirectRunner struct{}

func (DirectRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
