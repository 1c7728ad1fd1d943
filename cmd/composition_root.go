package cmd

import (
	"installation/internal/adapters/out/postgres"
	"installation/internal/core/application/usecases/commands"
	"installation/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateAssignJobCommandHandler() commands.AssignJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignJobCommandHandler(f, c.configs.DefaultStartTime, c.configs.HorizonDays)
}

func (c *CompositionRoot) CreateProcessOverdueJobsCommandHandler() commands.ProcessOverdueJobsCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessOverdueJobsCommandHandler(f, c.CreateAssignJobCommandHandler())
}

func (c *CompositionRoot) CreateGetPendingJobsQueryHandler() queries.GetPendingJobsQueryHandler {
	return queries.NewGetPendingJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCrewScheduleQueryHandler() queries.GetCrewScheduleQueryHandler {
	return queries.NewGetCrewScheduleQueryHandler(c.gormDB)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
