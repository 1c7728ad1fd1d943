package jobrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"installation/internal/adapters/out/postgres/jobrepo"
	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"
	"installation/internal/core/ports"
	"installation/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// JobRepositoryIntegrationTestSuite provides integration tests for JobRepository
// using PostgreSQL containers to verify persistence and the conditional commit.
type JobRepositoryIntegrationTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	jobRepository *jobrepo.GormJobRepository
	tracker       *MockAggregateTracker
	jobSeq        int
}

func (suite *JobRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&jobrepo.JobDTO{}))
}

func (suite *JobRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.jobRepository = jobrepo.NewGormJobRepository(suite.db, suite.tracker)
}

func (suite *JobRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *JobRepositoryIntegrationTestSuite) TestAdd_ValidJob_Success() {
	ctx := context.Background()

	testJob := suite.createPendingJob(suite.deadline())

	suite.tracker.On("TrackAggregate", testJob.ID(), testJob).Once()

	err := suite.jobRepository.Add(ctx, testJob)
	suite.Require().NoError(err)

	suite.assertJobCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_PendingJob_RoundTrips() {
	ctx := context.Background()

	originalJob := suite.createPendingJob(suite.deadline())

	suite.tracker.On("TrackAggregate", originalJob.ID(), originalJob).Once()
	suite.Require().NoError(suite.jobRepository.Add(ctx, originalJob))

	retrievedJob, err := suite.jobRepository.Get(ctx, originalJob.ID())
	suite.Require().NoError(err)

	suite.Equal(originalJob.ID(), retrievedJob.ID())
	suite.Equal(originalJob.JobNumber(), retrievedJob.JobNumber())
	suite.Equal(originalJob.SiteArea(), retrievedJob.SiteArea())
	suite.Equal(originalJob.RequiredSpecialization(), retrievedJob.RequiredSpecialization())
	suite.True(originalJob.SchedulingDeadline().Equal(retrievedJob.SchedulingDeadline()))
	suite.Equal(job.PendingSchedule, retrievedJob.Status())
	suite.Require().NotNil(retrievedJob.Site())
	suite.InDelta(originalJob.Site().Latitude(), retrievedJob.Site().Latitude(), 1e-9)
	suite.InDelta(originalJob.Site().Longitude(), retrievedJob.Site().Longitude(), 1e-9)
	suite.Nil(retrievedJob.Crew())
	suite.Nil(retrievedJob.ScheduledDate())
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_ScheduledJob_RoundTrips() {
	ctx := context.Background()

	testJob := suite.createPendingJob(suite.deadline())
	crewID := kernel.NewUUID()
	installDay := kernel.NewDate(2026, time.March, 3)
	assignedAt := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	suite.Require().NoError(testJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, assignedAt))

	suite.tracker.On("TrackAggregate", testJob.ID(), testJob).Once()
	suite.Require().NoError(suite.jobRepository.Add(ctx, testJob))

	retrievedJob, err := suite.jobRepository.Get(ctx, testJob.ID())
	suite.Require().NoError(err)

	suite.Equal(job.Scheduled, retrievedJob.Status())
	suite.Require().NotNil(retrievedJob.Crew())
	suite.True(retrievedJob.Crew().IsEqual(crewID))
	suite.Require().NotNil(retrievedJob.ScheduledDate())
	suite.True(retrievedJob.ScheduledDate().IsEqual(installDay))
	suite.Equal("09:00", retrievedJob.ScheduledStartTime())
	suite.Equal(job.MethodAuto, retrievedJob.AssignmentMethod())
	suite.Require().NotNil(retrievedJob.AssignedAt())
	suite.True(retrievedJob.AssignedAt().Equal(assignedAt))
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_NonExistentJob_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedJob, err := suite.jobRepository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedJob)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *JobRepositoryIntegrationTestSuite) TestGetAllOverdue_MixedBacklog_ReturnsOldestFirst() {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	oldestOverdue := suite.createPendingJob(now.Add(-72 * time.Hour))
	newerOverdue := suite.createPendingJob(now.Add(-24 * time.Hour))
	futureJob := suite.createPendingJob(now.Add(48 * time.Hour))

	overdueButScheduled := suite.createPendingJob(now.Add(-24 * time.Hour))
	suite.Require().NoError(overdueButScheduled.Schedule(
		kernel.NewUUID(), kernel.NewDate(2026, time.March, 3), "09:00", job.MethodManual, now))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for _, j := range []*job.Job{newerOverdue, oldestOverdue, futureJob, overdueButScheduled} {
		suite.Require().NoError(suite.jobRepository.Add(ctx, j))
	}

	overdue, err := suite.jobRepository.GetAllOverdue(ctx, now)
	suite.Require().NoError(err)

	suite.Require().Len(overdue, 2)
	suite.Equal(oldestOverdue.ID(), overdue[0].ID())
	suite.Equal(newerOverdue.ID(), overdue[1].ID())
}

func (suite *JobRepositoryIntegrationTestSuite) TestCountCommitted_OnlyCommittedStatusesCount() {
	ctx := context.Background()
	crewID := kernel.NewUUID()
	installDay := kernel.NewDate(2026, time.March, 3)
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	scheduledJob := suite.createPendingJob(suite.deadline())
	suite.Require().NoError(scheduledJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))

	inProgressJob := suite.createPendingJob(suite.deadline())
	suite.Require().NoError(inProgressJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))
	suite.Require().NoError(inProgressJob.Start())

	completedJob := suite.createPendingJob(suite.deadline())
	suite.Require().NoError(completedJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))
	suite.Require().NoError(completedJob.Start())
	suite.Require().NoError(completedJob.Complete())

	otherDayJob := suite.createPendingJob(suite.deadline())
	suite.Require().NoError(otherDayJob.Schedule(
		crewID, installDay.AddDays(1), "09:00", job.MethodAuto, now))

	pendingJob := suite.createPendingJob(suite.deadline())

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for _, j := range []*job.Job{scheduledJob, inProgressJob, completedJob, otherDayJob, pendingJob} {
		suite.Require().NoError(suite.jobRepository.Add(ctx, j))
	}

	count, err := suite.jobRepository.CountCommitted(ctx, crewID, installDay)
	suite.Require().NoError(err)
	suite.Equal(2, count)
}

func (suite *JobRepositoryIntegrationTestSuite) TestCommitAssignment_PendingJobWithRoom_PersistsSchedule() {
	ctx := context.Background()

	testJob := suite.createPendingJob(suite.deadline())

	suite.tracker.On("TrackAggregate", testJob.ID(), testJob)
	suite.Require().NoError(suite.jobRepository.Add(ctx, testJob))

	crewID := kernel.NewUUID()
	installDay := kernel.NewDate(2026, time.March, 3)
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	suite.Require().NoError(testJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))

	err := suite.jobRepository.CommitAssignment(ctx, testJob, 2)
	suite.Require().NoError(err)

	retrievedJob, err := suite.jobRepository.Get(ctx, testJob.ID())
	suite.Require().NoError(err)
	suite.Equal(job.Scheduled, retrievedJob.Status())
	suite.Require().NotNil(retrievedJob.Crew())
	suite.True(retrievedJob.Crew().IsEqual(crewID))
}

func (suite *JobRepositoryIntegrationTestSuite) TestCommitAssignment_JobNoLongerPending_ReturnsJobNotPending() {
	ctx := context.Background()
	crewID := kernel.NewUUID()
	installDay := kernel.NewDate(2026, time.March, 3)
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	// Persist the job already scheduled by someone else
	persistedJob := suite.createPendingJob(suite.deadline())
	suite.Require().NoError(persistedJob.Schedule(
		kernel.NewUUID(), installDay, "08:00", job.MethodManual, now))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.jobRepository.Add(ctx, persistedJob))

	// Attempt a commit computed from a stale pending snapshot
	staleJob := suite.restorePending(persistedJob)
	suite.Require().NoError(staleJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))

	err := suite.jobRepository.CommitAssignment(ctx, staleJob, 2)
	suite.Require().ErrorIs(err, ports.ErrJobNotPending)

	// The stored assignment is untouched
	retrievedJob, getErr := suite.jobRepository.Get(ctx, persistedJob.ID())
	suite.Require().NoError(getErr)
	suite.Equal("08:00", retrievedJob.ScheduledStartTime())
}

func (suite *JobRepositoryIntegrationTestSuite) TestCommitAssignment_DayAtCapacity_ReturnsSlotTaken() {
	ctx := context.Background()
	crewID := kernel.NewUUID()
	installDay := kernel.NewDate(2026, time.March, 3)
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	occupyingJob := suite.createPendingJob(suite.deadline())
	suite.Require().NoError(occupyingJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))

	pendingJob := suite.createPendingJob(suite.deadline())

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.jobRepository.Add(ctx, occupyingJob))
	suite.Require().NoError(suite.jobRepository.Add(ctx, pendingJob))

	suite.Require().NoError(pendingJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))

	err := suite.jobRepository.CommitAssignment(ctx, pendingJob, 1)
	suite.Require().ErrorIs(err, ports.ErrSlotTaken)

	retrievedJob, getErr := suite.jobRepository.Get(ctx, pendingJob.ID())
	suite.Require().NoError(getErr)
	suite.Equal(job.PendingSchedule, retrievedJob.Status())
}

func (suite *JobRepositoryIntegrationTestSuite) TestCommitAssignment_ConcurrentCommits_ExactlyOneWins() {
	ctx := context.Background()
	crewID := kernel.NewUUID()
	installDay := kernel.NewDate(2026, time.March, 3)
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	firstJob := suite.createPendingJob(suite.deadline())
	secondJob := suite.createPendingJob(suite.deadline())

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.jobRepository.Add(ctx, firstJob))
	suite.Require().NoError(suite.jobRepository.Add(ctx, secondJob))

	// Both jobs target the last remaining slot of the same crew day
	suite.Require().NoError(firstJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))
	suite.Require().NoError(secondJob.Schedule(crewID, installDay, "09:00", job.MethodAuto, now))

	errors := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i, j := range []*job.Job{firstJob, secondJob} {
		go func(i int, j *job.Job) {
			defer wg.Done()
			errors[i] = suite.jobRepository.CommitAssignment(ctx, j, 1)
		}(i, j)
	}
	wg.Wait()

	winners := 0
	for _, err := range errors {
		if err == nil {
			winners++
		} else {
			suite.Require().ErrorIs(err, ports.ErrSlotTaken)
		}
	}
	suite.Equal(1, winners)

	count, err := suite.jobRepository.CountCommitted(ctx, crewID, installDay)
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

// deadline returns a scheduling deadline safely in the future for test jobs.
func (suite *JobRepositoryIntegrationTestSuite) deadline() time.Time {
	return time.Date(2026, time.March, 16, 17, 0, 0, 0, time.UTC)
}

// createPendingJob builds a valid pending job with site coordinates and a
// unique job number.
func (suite *JobRepositoryIntegrationTestSuite) createPendingJob(deadline time.Time) *job.Job {
	suite.jobSeq++
	site, err := kernel.NewGeoPoint(-31.9523, 115.8613)
	suite.Require().NoError(err)

	testJob, err := job.NewJob(
		kernel.NewUUID(),
		fmt.Sprintf("SDI-2026-%04d", suite.jobSeq),
		&site,
		"Perth Metro",
		"Residential Rooftop",
		deadline,
	)
	suite.Require().NoError(err)

	return testJob
}

// restorePending rebuilds a pending in-memory snapshot of a job that may have
// changed in storage since it was read.
func (suite *JobRepositoryIntegrationTestSuite) restorePending(persisted *job.Job) *job.Job {
	snapshot, err := job.RestoreJob(
		persisted.ID(),
		persisted.JobNumber(),
		persisted.Site(),
		persisted.SiteArea(),
		persisted.RequiredSpecialization(),
		persisted.SchedulingDeadline(),
		job.PendingSchedule,
		nil,
		nil,
		"",
		job.MethodUnknown,
		nil,
	)
	suite.Require().NoError(err)
	return snapshot
}

// assertJobCount verifies the number of jobs in the database.
func (suite *JobRepositoryIntegrationTestSuite) assertJobCount(expected int) {
	var count int64
	err := suite.db.Model(&jobrepo.JobDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestJobRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(JobRepositoryIntegrationTestSuite))
}
