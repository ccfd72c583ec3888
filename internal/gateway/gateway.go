// Package gateway exposes create-one and list-all over a single named
// collection of a document store, for any resource shape T.
//
// A Gateway is bound to its collection when constructed and never checks
// store readiness itself: the only way to build a mongo-backed Gateway is
// from a live database.Handle. Operations are independent; a ListAll racing
// a CreateOne may or may not observe the new document. Nothing is retried.
package gateway

import (
	"context"
	"time"

	"github.com/gogotex/usergateway/internal/database"
	"github.com/gogotex/usergateway/pkg/metrics"
)

// Collection is the store side of one named collection.
type Collection[T any] interface {
	// Insert writes doc and returns it as stored, store-assigned identity included.
	Insert(ctx context.Context, doc T) (T, error)
	// FindAll returns every document in store order.
	FindAll(ctx context.Context) ([]T, error)
}

// Gateway runs create/list operations against one bound collection.
type Gateway[T any] struct {
	name string
	coll Collection[T]
}

// New binds a gateway to name, backed by coll.
func New[T any](name string, coll Collection[T]) *Gateway[T] {
	return &Gateway[T]{name: name, coll: coll}
}

// NewMongo binds a gateway to the named collection of the handle's database.
// Documents missing any of the required fields are rejected before they reach the server.
func NewMongo[T any](h *database.Handle, name string, required ...string) *Gateway[T] {
	return New[T](name, NewMongoCollection[T](h.Collection(name), required...))
}

// Name returns the bound collection name.
func (g *Gateway[T]) Name() string { return g.name }

// CreateOne inserts payload as a new document and returns the stored representation.
// Failures match ErrWriteRejected.
func (g *Gateway[T]) CreateOne(ctx context.Context, payload T) (T, error) {
	start := time.Now()
	stored, err := g.coll.Insert(ctx, payload)
	if err != nil {
		gerr := g.fail(OpCreate, err)
		g.observe(OpCreate, start, gerr)
		var zero T
		return zero, gerr
	}
	g.observe(OpCreate, start, nil)
	return stored, nil
}

// ListAll returns every document of the collection, fully materialised.
// An empty collection yields an empty, non-nil slice. Failures match ErrReadFailed.
func (g *Gateway[T]) ListAll(ctx context.Context) ([]T, error) {
	start := time.Now()
	docs, err := g.coll.FindAll(ctx)
	if err != nil {
		gerr := g.fail(OpList, err)
		g.observe(OpList, start, gerr)
		return nil, gerr
	}
	g.observe(OpList, start, nil)
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

func (g *Gateway[T]) fail(op Op, err error) *Error {
	return &Error{Op: op, Collection: g.name, Kind: classify(err), Err: err}
}

func (g *Gateway[T]) observe(op Op, start time.Time, err *Error) {
	outcome := "ok"
	if err != nil {
		outcome = err.Kind.String()
	}
	metrics.GatewayOperations.WithLabelValues(g.name, string(op), outcome).Inc()
	metrics.GatewayDuration.WithLabelValues(g.name, string(op)).Observe(time.Since(start).Seconds())
}
