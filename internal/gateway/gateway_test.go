package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gogotex/usergateway/internal/models"
	"github.com/gogotex/usergateway/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newUsers(t *testing.T) *Gateway[models.User] {
	t.Helper()
	return New[models.User](t.Name(), NewMemoryCollection[models.User](models.UserRequiredFields...))
}

func TestCreateOneThenListAll(t *testing.T) {
	g := newUsers(t)
	ctx := context.Background()

	stored, err := g.CreateOne(ctx, models.User{Name: "A", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)
	require.Equal(t, "A", stored.Name)
	require.Equal(t, "a@x.com", stored.Email)
	require.Equal(t, "p", stored.Password)

	list, err := g.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, stored, list[0])
}

func TestCreateOneMissingFieldIsRejected(t *testing.T) {
	g := newUsers(t)
	ctx := context.Background()

	for _, u := range []models.User{
		{Email: "a@x.com", Password: "p"},
		{Name: "A", Password: "p"},
		{Name: "A", Email: "a@x.com"},
	} {
		_, err := g.CreateOne(ctx, u)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrWriteRejected)
		require.ErrorIs(t, err, ErrValidation)
		require.NotErrorIs(t, err, ErrReadFailed)
		require.Equal(t, KindValidation, KindOf(err))
	}

	list, err := g.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestConcurrentCreatesAreAllKept(t *testing.T) {
	g := newUsers(t)
	ctx := context.Background()
	const n = 50

	var eg errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			_, err := g.CreateOne(ctx, models.User{
				Name:     fmt.Sprintf("user-%d", i),
				Email:    fmt.Sprintf("user-%d@x.com", i),
				Password: "p",
			})
			return err
		})
	}
	require.NoError(t, eg.Wait())

	list, err := g.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)

	seen := map[string]bool{}
	ids := map[string]bool{}
	for _, u := range list {
		require.Equal(t, u.Name+"@x.com", u.Email)
		seen[u.Name] = true
		ids[u.ID] = true
	}
	require.Len(t, seen, n)
	require.Len(t, ids, n)
}

func TestListAllEmptyCollection(t *testing.T) {
	g := newUsers(t)

	list, err := g.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

type keyed struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

func TestDuplicateIdentityIsConflict(t *testing.T) {
	g := New[keyed]("keyed", NewMemoryCollection[keyed]())
	ctx := context.Background()

	_, err := g.CreateOne(ctx, keyed{ID: "k1", Value: "a"})
	require.NoError(t, err)

	_, err = g.CreateOne(ctx, keyed{ID: "k1", Value: "b"})
	require.ErrorIs(t, err, ErrWriteRejected)
	require.ErrorIs(t, err, ErrConflict)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	require.Equal(t, OpCreate, gerr.Op)
	require.Equal(t, "keyed", gerr.Collection)

	list, err := g.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []keyed{{ID: "k1", Value: "a"}}, list)
}

type failingCollection struct{ err error }

func (f failingCollection) Insert(context.Context, models.User) (models.User, error) {
	return models.User{}, f.err
}
func (f failingCollection) FindAll(context.Context) ([]models.User, error) { return nil, f.err }

func TestStoreFailuresAreInfrastructure(t *testing.T) {
	g := New[models.User]("broken", failingCollection{err: errors.New("connection reset")})
	ctx := context.Background()

	_, err := g.CreateOne(ctx, models.User{Name: "A", Email: "a@x.com", Password: "p"})
	require.ErrorIs(t, err, ErrWriteRejected)
	require.ErrorIs(t, err, ErrInfrastructure)
	require.Contains(t, err.Error(), "connection reset")

	list, err := g.ListAll(ctx)
	require.Nil(t, list)
	require.ErrorIs(t, err, ErrReadFailed)
	require.ErrorIs(t, err, ErrInfrastructure)
	require.NotErrorIs(t, err, ErrWriteRejected)
}

func TestOperationsAreCounted(t *testing.T) {
	g := newUsers(t)
	ctx := context.Background()

	_, err := g.CreateOne(ctx, models.User{Name: "A", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	_, _ = g.CreateOne(ctx, models.User{Name: "B"})
	_, err = g.ListAll(ctx)
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.GatewayOperations.WithLabelValues(g.Name(), "create", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.GatewayOperations.WithLabelValues(g.Name(), "create", "validation")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.GatewayOperations.WithLabelValues(g.Name(), "list", "ok")))
}

func TestKindOfPlainErrors(t *testing.T) {
	require.Equal(t, KindValidation, KindOf(fmt.Errorf("wrap: %w", ErrValidation)))
	require.Equal(t, KindConflict, KindOf(fmt.Errorf("wrap: %w", ErrConflict)))
	require.Equal(t, KindInfrastructure, KindOf(errors.New("boom")))
}
