package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"installation/internal/core/application/usecases/commands"
	"installation/internal/core/application/usecases/queries"
	"installation/internal/core/domain/model/kernel"
	"installation/internal/core/domain/services"
	"installation/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP API for the assignment engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignJobHandler          commands.AssignJobCommandHandler
	processOverdueJobsHandler commands.ProcessOverdueJobsCommandHandler

	// Query handlers
	getPendingJobsHandler  queries.GetPendingJobsQueryHandler
	getCrewScheduleHandler queries.GetCrewScheduleQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignJobHandler commands.AssignJobCommandHandler,
	processOverdueJobsHandler commands.ProcessOverdueJobsCommandHandler,
	getPendingJobsHandler queries.GetPendingJobsQueryHandler,
	getCrewScheduleHandler queries.GetCrewScheduleQueryHandler,
) *Server {
	return &Server{
		assignJobHandler:          assignJobHandler,
		processOverdueJobsHandler: processOverdueJobsHandler,
		getPendingJobsHandler:     getPendingJobsHandler,
		getCrewScheduleHandler:    getCrewScheduleHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/jobs/:id/assign", s.AssignJob)
	e.POST("/api/v1/jobs/process-overdue", s.ProcessOverdueJobs)
	e.GET("/api/v1/jobs/pending", s.GetPendingJobs)
	e.GET("/api/v1/crews/:id/schedule", s.GetCrewSchedule)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// AssignJob handles POST /api/v1/jobs/:id/assign - runs the assignment
// pipeline for one job. A business rejection (no eligible crew, no slot in
// the horizon) is a successful HTTP response carrying the failure outcome.
func (s *Server) AssignJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid job id",
		})
	}

	cmd, err := commands.NewAssignJobCommand(jobID, time.Now())
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid assignment request: " + err.Error(),
		})
	}

	result, err := s.assignJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Job not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to assign job",
		})
	}

	return ctx.JSON(http.StatusOK, toAssignmentOutcome(result))
}

// ProcessOverdueJobs handles POST /api/v1/jobs/process-overdue - sweeps the
// overdue backlog and reports a per-job outcome breakdown.
func (s *Server) ProcessOverdueJobs(ctx echo.Context) error {
	cmd, err := commands.NewProcessOverdueJobsCommand(time.Now())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build sweep request",
		})
	}

	report, err := s.processOverdueJobsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process overdue jobs",
		})
	}

	outcomes := make([]AssignmentOutcome, len(report.Outcomes))
	for i, outcome := range report.Outcomes {
		outcomes[i] = toAssignmentOutcome(outcome)
	}

	return ctx.JSON(http.StatusOK, SweepReport{
		Processed: report.Processed,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Outcomes:  outcomes,
	})
}

// GetPendingJobs handles GET /api/v1/jobs/pending - retrieves the unassigned
// backlog with overdue flags.
func (s *Server) GetPendingJobs(ctx echo.Context) error {
	query, err := queries.NewGetPendingJobsQuery(time.Now())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build backlog query",
		})
	}

	jobs, err := s.getPendingJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve pending jobs",
		})
	}

	response := make([]PendingJob, len(jobs))
	for i, j := range jobs {
		response[i] = PendingJob{
			Id:                     j.ID.Bytes(),
			JobNumber:              j.JobNumber,
			SiteArea:               j.SiteArea,
			RequiredSpecialization: j.RequiredSpecialization,
			SchedulingDeadline:     j.SchedulingDeadline,
			Overdue:                j.Overdue,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCrewSchedule handles GET /api/v1/crews/:id/schedule - retrieves a crew's
// committed day loads. Accepts optional from (YYYY-MM-DD) and days query
// parameters; defaults are today and a seven day window.
func (s *Server) GetCrewSchedule(ctx echo.Context) error {
	crewID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid crew id",
		})
	}

	from := kernel.DateOf(time.Now())
	if raw := ctx.QueryParam("from"); raw != "" {
		parsed, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid from date, expected YYYY-MM-DD",
			})
		}
		from = kernel.DateOf(parsed)
	}

	days := 7
	if raw := ctx.QueryParam("days"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid days value",
			})
		}
		days = parsed
	}

	query, err := queries.NewGetCrewScheduleQuery(crewID, from, days)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid schedule request: " + err.Error(),
		})
	}

	schedule, err := s.getCrewScheduleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve crew schedule",
		})
	}

	response := make([]ScheduleDay, len(schedule))
	for i, day := range schedule {
		response[i] = ScheduleDay{
			Date:     day.Date.String(),
			JobCount: day.JobCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// toAssignmentOutcome maps a command result onto the wire representation.
func toAssignmentOutcome(result commands.AssignmentResult) AssignmentOutcome {
	outcome := AssignmentOutcome{
		JobId:     result.JobID.Bytes(),
		Succeeded: result.Succeeded,
		StartTime: result.StartTime,
		Reason:    result.Reason,
	}
	if result.Failure != services.FailureNone {
		outcome.Failure = result.Failure.String()
	}
	if result.CrewID != nil {
		crewID := result.CrewID.Bytes()
		outcome.CrewId = &crewID
	}
	if result.Date != nil {
		date := result.Date.String()
		outcome.Date = &date
	}
	return outcome
}
