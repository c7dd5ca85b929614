package nats

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/abgdnv/gocatalog/pkg/messaging/events"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
)

const skipIntegrationTests = "CATALOG_SKIP_INTEGRATION_TESTS"
const natsImg = "nats:2.11.6-alpine"

type PublisherSuite struct {
	suite.Suite
	ctx           context.Context
	logger        *slog.Logger
	natsContainer *tcnats.NATSContainer
	nc            *natsgo.Conn
	js            jetstream.JetStream
}

func (s *PublisherSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.natsContainer, err = tcnats.Run(s.ctx, natsImg)
	require.NoError(s.T(), err, "Failed to run NATS container")

	natsURL, err := s.natsContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)

	s.nc, err = NewClient(natsURL, 5*time.Second)
	require.NoError(s.T(), err)
	s.js, err = NewJetStreamContext(s.nc)
	require.NoError(s.T(), err)
}

func (s *PublisherSuite) TearDownSuite() {
	if s.nc != nil {
		s.nc.Close()
	}
	if err := testcontainers.TerminateContainer(s.natsContainer); err != nil {
		s.logger.Error("Failed to terminate NATS container", "error", err)
	}
}

func TestPublisherIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) TestEnsureStreamIsIdempotent() {
	s.Require().NoError(EnsureStream(s.ctx, s.js, "IDEMPOTENT", []string{"idem.>"}))
	s.Require().NoError(EnsureStream(s.ctx, s.js, "IDEMPOTENT", []string{"idem.>"}))
}

func (s *PublisherSuite) TestPublishOrderCreated() {
	// given
	s.Require().NoError(EnsureStream(s.ctx, s.js, "CATALOG", messaging.StreamSubjects))
	publisher := NewNatsPublisher(s.js)
	event := events.OrderCreatedEvent{
		OrderID:   7,
		Status:    "Pending",
		Items:     []events.OrderItem{{ProductID: 1, Quantity: 2}},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	// when
	err := publisher.Publish(s.ctx, event)

	// then
	s.Require().NoError(err)
	consumer, err := s.js.CreateOrUpdateConsumer(s.ctx, "CATALOG", jetstream.ConsumerConfig{
		FilterSubject: messaging.OrdersCreatedSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	s.Require().NoError(err)
	msg, err := consumer.Next(jetstream.FetchMaxWait(5 * time.Second))
	s.Require().NoError(err)
	s.Require().NoError(msg.Ack())

	var got events.OrderCreatedEvent
	s.Require().NoError(json.Unmarshal(msg.Data(), &got))
	s.Equal(event.OrderID, got.OrderID)
	s.Equal(event.Items, got.Items)
	s.True(event.CreatedAt.Equal(got.CreatedAt))
}
