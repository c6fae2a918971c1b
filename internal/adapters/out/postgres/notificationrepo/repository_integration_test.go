package notificationrepo_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/adapters/out/postgres/notificationrepo"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRepository
	tracker    *MockAggregateTracker

	recipient kernel.UUID
	base      time.Time
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}))
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = notificationrepo.NewGormNotificationRepository(suite.db, suite.tracker)
	suite.recipient = kernel.NewUUID()
	suite.base = time.Date(2026, time.May, 4, 12, 0, 0, 0, time.UTC)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAdd_TracksAndPersists() {
	n := suite.newNotification(suite.recipient, "Your order is on its way", suite.base)
	suite.tracker.On("TrackAggregate", n.ID(), n).Once()

	suite.Require().NoError(suite.repository.Add(context.Background(), n))

	unseen, err := suite.repository.CountUnseen(context.Background(), suite.recipient)
	suite.Require().NoError(err)
	suite.Equal(int64(1), unseen)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestFindRecent_ReturnsUnseenAndRecentlySeen() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	stale := suite.base.Add(-30 * time.Minute)
	recent := suite.base.Add(-2 * time.Minute)

	oldSeen := suite.restore(suite.recipient, "old", suite.base.Add(-time.Hour), &stale)
	recentSeen := suite.restore(suite.recipient, "recent", suite.base.Add(-20*time.Minute), &recent)
	unseen := suite.restore(suite.recipient, "unseen", suite.base.Add(-10*time.Minute), nil)
	other := suite.restore(kernel.NewUUID(), "someone else", suite.base, nil)
	for _, n := range []*notification.Notification{unseen, other, oldSeen, recentSeen} {
		suite.Require().NoError(suite.repository.Add(ctx, n))
	}

	found, err := suite.repository.FindRecent(ctx, suite.recipient, suite.base.Add(-10*time.Minute))

	suite.Require().NoError(err)
	suite.Require().Len(found, 2)
	suite.Equal("recent", found[0].Message())
	suite.True(found[0].IsSeen())
	suite.Equal("unseen", found[1].Message())
	suite.False(found[1].IsSeen())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkAllSeen_OnlyTouchesUnseenRows() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	earlier := suite.base.Add(-time.Hour)
	seen := suite.restore(suite.recipient, "seen", suite.base.Add(-2*time.Hour), &earlier)
	suite.Require().NoError(suite.repository.Add(ctx, seen))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newNotification(suite.recipient, "a", suite.base)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newNotification(suite.recipient, "b", suite.base)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newNotification(kernel.NewUUID(), "c", suite.base)))

	changed, err := suite.repository.MarkAllSeen(ctx, suite.recipient, suite.base)
	suite.Require().NoError(err)
	suite.Equal(int64(2), changed)

	again, err := suite.repository.MarkAllSeen(ctx, suite.recipient, suite.base.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Equal(int64(0), again)

	unseen, err := suite.repository.CountUnseen(ctx, suite.recipient)
	suite.Require().NoError(err)
	suite.Zero(unseen)

	found, err := suite.repository.FindRecent(ctx, suite.recipient, suite.base.Add(-2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(found, 3)
	suite.True(earlier.Equal(*found[0].SeenAt()), "already seen rows keep their timestamp")
	suite.True(suite.base.Equal(*found[1].SeenAt()))
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestRecipientsSeenBetween_DistinctWithinHalfOpenRange() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	inside := suite.base.Add(-10 * time.Minute)
	edge := suite.base
	outside := suite.base.Add(-20 * time.Minute)

	other := kernel.NewUUID()
	late := kernel.NewUUID()
	for _, n := range []*notification.Notification{
		suite.restore(suite.recipient, "1", outside, &inside),
		suite.restore(suite.recipient, "2", outside, &inside),
		suite.restore(other, "3", outside, &outside),
		suite.restore(late, "4", outside, &edge),
		suite.restore(kernel.NewUUID(), "5", outside, nil),
	} {
		suite.Require().NoError(suite.repository.Add(ctx, n))
	}

	ids, err := suite.repository.RecipientsSeenBetween(ctx, suite.base.Add(-11*time.Minute), suite.base)

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{suite.recipient}, ids)
}

func (suite *NotificationRepositoryIntegrationTestSuite) newNotification(recipient kernel.UUID, message string, at time.Time) *notification.Notification {
	n, err := notification.NewNotification(kernel.NewUUID(), recipient, message, at)
	suite.Require().NoError(err)
	return n
}

func (suite *NotificationRepositoryIntegrationTestSuite) restore(
	recipient kernel.UUID, message string, createdAt time.Time, seenAt *time.Time,
) *notification.Notification {
	n, err := notification.RestoreNotification(kernel.NewUUID(), recipient, message, createdAt, seenAt)
	suite.Require().NoError(err)
	return n
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
