package store

import (
	"context"
	"log/slog"
	"os"
	"testing"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/internal/tests/pgcontainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const skipIntegrationTests = "CATALOG_SKIP_INTEGRATION_TESTS"

// PgStoreSuite runs the shared store contract and PostgreSQL specific checks against a real database.
type PgStoreSuite struct {
	suite.Suite
	db     *pgcontainer.Database
	store  *PgStore
	logger *slog.Logger
	ctx    context.Context
}

func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.db, err = pgcontainer.Start(s.ctx, s.logger)
	require.NoError(s.T(), err)
	s.store = NewPgStore(s.db.Pool)
}

func (s *PgStoreSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close(s.ctx, s.logger)
	}
}

func (s *PgStoreSuite) SetupTest() {
	require.NoError(s.T(), s.db.Truncate(s.ctx), "Failed to truncate tables")
}

func (s *PgStoreSuite) TestContract() {
	runStoreContract(s.T(), func() Store {
		require.NoError(s.T(), s.db.Truncate(s.ctx))
		return s.store
	})
}

func (s *PgStoreSuite) TestUpdateOrder_RollsBackOnBadItem() {
	// given
	p, err := s.store.CreateProduct(s.ctx, db.CreateProductParams{Name: "Lamp", Price: 10})
	require.NoError(s.T(), err)
	order, err := s.store.CreateOrder(s.ctx, "Pending", []db.CreateOrderItemParams{{ProductID: p.ID, Quantity: 1}})
	require.NoError(s.T(), err)
	status := "Shipped"

	// when
	_, err = s.store.UpdateOrder(s.ctx, db.UpdateOrderParams{
		ID:     order.ID,
		Status: &status,
		Items:  []db.CreateOrderItemParams{{ProductID: 999, Quantity: 1}},
	})

	// then
	require.ErrorIs(s.T(), err, catalogerrors.ErrCreateOrderItem)
	stored, err := s.store.FindOrderByID(s.ctx, order.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Pending", stored.Status)
	require.Len(s.T(), stored.Items, 1)
	assert.Equal(s.T(), p.ID, stored.Items[0].ProductID)
}

func (s *PgStoreSuite) TestDeleteOrder_CascadesItems() {
	// given
	p, err := s.store.CreateProduct(s.ctx, db.CreateProductParams{Name: "Desk", Price: 99.5})
	require.NoError(s.T(), err)
	order, err := s.store.CreateOrder(s.ctx, "Pending", []db.CreateOrderItemParams{{ProductID: p.ID, Quantity: 2}})
	require.NoError(s.T(), err)

	// when
	require.NoError(s.T(), s.store.DeleteOrderByID(s.ctx, order.ID))

	// then
	var count int
	require.NoError(s.T(), s.db.Pool.QueryRow(s.ctx, "SELECT count(*) FROM order_items").Scan(&count))
	assert.Zero(s.T(), count)
}

func TestPgStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PgStoreSuite))
}
