package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"installation/cmd"
	httpadapter "installation/internal/adapters/in/http"
	"installation/internal/adapters/out/postgres/crewrepo"
	"installation/internal/adapters/out/postgres/jobrepo"
	"installation/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, db)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateProcessOverdueJobsCommandHandler(),
		configs.SweepSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		SweepSchedule:    goDotEnvVariable("SWEEP_SCHEDULE"),
		DefaultStartTime: goDotEnvVariable("DEFAULT_START_TIME"),
	}
	if raw := goDotEnvVariable("HORIZON_DAYS"); raw != "" {
		horizon, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid HORIZON_DAYS value: %v", err)
		}
		config.HorizonDays = horizon
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&jobrepo.JobDTO{},
		&crewrepo.CrewDTO{},
		&crewrepo.AvailabilityOverrideDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateAssignJobCommandHandler(),
		app.CreateProcessOverdueJobsCommandHandler(),
		app.CreateGetPendingJobsQueryHandler(),
		app.CreateGetCrewScheduleQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
