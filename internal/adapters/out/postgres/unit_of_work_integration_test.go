package postgres_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	postgres_adapter "installation/internal/adapters/out/postgres"
	"installation/internal/adapters/out/postgres/crewrepo"
	"installation/internal/adapters/out/postgres/jobrepo"
	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"
	"installation/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&jobrepo.JobDTO{}, &crewrepo.CrewDTO{}, &crewrepo.AvailabilityOverrideDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE jobs, crews, availability_overrides").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	// Create multiple unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Verify instances are different
	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	// Verify both instances provide access to repositories
	suite.NotNil(uow1.JobRepository(), "First instance should provide job repository")
	suite.NotNil(uow1.CrewRepository(), "First instance should provide crew repository")
	suite.NotNil(uow2.JobRepository(), "Second instance should provide job repository")
	suite.NotNil(uow2.CrewRepository(), "Second instance should provide crew repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Test multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	// Test commit
	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Test rollback on new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test commit without begin
	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	// Test rollback without begin
	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Create test job
	testJob := createTestJob()

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add job within transaction
	err = uow.JobRepository().Add(ctx, testJob)
	suite.Require().NoError(err)

	// Verify job exists within transaction
	retrievedJob, err := uow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().NoError(err)
	suite.Equal(testJob.ID(), retrievedJob.ID())

	// Commit transaction
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify job persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrievedJob, err = newUow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().NoError(err)
	suite.Equal(testJob.ID(), retrievedJob.ID())
}

// TestUnitOfWork_AssignmentWorkflow verifies the full assignment write path:
// registering a crew and a pending job, then committing a planned assignment
// with the conditional update, all within unit of work boundaries.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentWorkflow() {
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	installDay := kernel.NewDate(2026, time.March, 3)

	// Register a crew and a pending job
	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	testCrew := createTestCrew()
	testJob := createTestJob()

	err = uow.CrewRepository().Add(ctx, testCrew)
	suite.Require().NoError(err)

	err = uow.JobRepository().Add(ctx, testJob)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Assign the job in a separate unit of work
	assignUow := suite.factory.Create()
	err = assignUow.Begin(ctx)
	suite.Require().NoError(err)

	pendingJob, err := assignUow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().NoError(err)

	err = pendingJob.Schedule(testCrew.ID(), installDay, "09:00", job.MethodAuto, now)
	suite.Require().NoError(err)

	err = assignUow.JobRepository().CommitAssignment(ctx, pendingJob, testCrew.MaxJobsPerDay())
	suite.Require().NoError(err)

	err = assignUow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify the assignment is visible to a fresh unit of work
	verifyUow := suite.factory.Create()
	assignedJob, err := verifyUow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().NoError(err)
	suite.Equal(job.Scheduled, assignedJob.Status())
	suite.Require().NotNil(assignedJob.Crew())
	suite.True(assignedJob.Crew().IsEqual(testCrew.ID()))

	count, err := verifyUow.JobRepository().CountCommitted(ctx, testCrew.ID(), installDay)
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Create test entities
	testJob := createTestJob()
	testCrew := createTestCrew()

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add entities within transaction
	err = uow.JobRepository().Add(ctx, testJob)
	suite.Require().NoError(err)

	err = uow.CrewRepository().Add(ctx, testCrew)
	suite.Require().NoError(err)

	// Verify entities exist within transaction
	_, err = uow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().NoError(err)

	_, err = uow.CrewRepository().Get(ctx, testCrew.ID())
	suite.Require().NoError(err)

	// Rollback transaction
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify entities do not exist after rollback using new unit of work
	newUow := suite.factory.Create()

	_, err = newUow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().Error(err, "Job should not exist after rollback")

	_, err = newUow.CrewRepository().Get(ctx, testCrew.ID())
	suite.Require().Error(err, "Crew should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	// Create two unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Create test jobs
	job1 := createTestJob()
	job2 := createTestJob()

	// Begin transactions on both
	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	// Add different jobs in each transaction
	err = uow1.JobRepository().Add(ctx, job1)
	suite.Require().NoError(err)

	err = uow2.JobRepository().Add(ctx, job2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.JobRepository().Get(ctx, job1.ID())
	suite.Require().NoError(err, "UOW1 should see job1")

	_, err = uow1.JobRepository().Get(ctx, job2.ID())
	suite.Require().Error(err, "UOW1 should not see job2")

	_, err = uow2.JobRepository().Get(ctx, job2.ID())
	suite.Require().NoError(err, "UOW2 should see job2")

	_, err = uow2.JobRepository().Get(ctx, job1.ID())
	suite.Require().Error(err, "UOW2 should not see job1")

	// Commit first transaction
	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	// Rollback second transaction
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only the committed job survives
	newUow := suite.factory.Create()

	_, err = newUow.JobRepository().Get(ctx, job1.ID())
	suite.Require().NoError(err)

	_, err = newUow.JobRepository().Get(ctx, job2.ID())
	suite.Require().Error(err)
}

// TestUnitOfWork_WithoutTransaction verifies repositories work against the
// main connection when no transaction has been started.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testJob := createTestJob()

	// Add without Begin executes immediately
	err := uow.JobRepository().Add(ctx, testJob)
	suite.Require().NoError(err)

	// Visible to a completely separate unit of work right away
	newUow := suite.factory.Create()
	retrievedJob, err := newUow.JobRepository().Get(ctx, testJob.ID())
	suite.Require().NoError(err)
	suite.Equal(testJob.ID(), retrievedJob.ID())
}

var testJobSeq atomic.Int64

// createTestJob builds a valid pending job with a unique job number.
func createTestJob() *job.Job {
	seq := testJobSeq.Add(1)
	site, err := kernel.NewGeoPoint(-31.9523, 115.8613)
	if err != nil {
		panic(err)
	}

	testJob, err := job.NewJob(
		kernel.NewUUID(),
		fmt.Sprintf("SDI-2026-%04d", seq),
		&site,
		"Perth Metro",
		"Residential Rooftop",
		time.Date(2026, time.March, 16, 17, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}

	return testJob
}

// createTestCrew builds a valid active crew covering the test job's area.
func createTestCrew() *crew.Crew {
	base, err := kernel.NewGeoPoint(-31.9403, 115.8422)
	if err != nil {
		panic(err)
	}

	testCrew, err := crew.NewCrew(
		kernel.NewUUID(),
		"Alpha Solar",
		[]string{"Residential Rooftop"},
		[]string{"Perth Metro"},
		2,
		&base,
	)
	if err != nil {
		panic(err)
	}

	return testCrew
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
