package main

import (
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/config"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/database"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()
	applyLogLevel(configuration.LogLevel)

	// Initialize database connection
	db := setupDatabase(configuration)

	// Initialize Gin router
	engine := setupRouter(db, configuration)

	// Start the server
	log.Infof("Starting server on %s%s", configuration.Addr(), configuration.BasePath)
	checkPanicErr(engine.Run(configuration.Addr()))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
		gin.SetMode(gin.ReleaseMode)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// applyLogLevel lets LOG_LEVEL override the environment default
func applyLogLevel(level string) {
	if config.GetEnvWithDefault("LOG_LEVEL", "") == "" {
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warn("Invalid LOG_LEVEL, keeping environment default")
		return
	}
	log.SetLevel(parsed)
	database.SetLogLevel(parsed)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupDatabase connects, migrates and optionally seeds the database
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(conf.Database())
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	if conf.SeedData {
		checkPanicErr(database.Seed(db))
	}
	return db
}

// setupRouter builds the Gin engine with every route and middleware
func setupRouter(db *gorm.DB, conf *config.Config) *gin.Engine {
	engine, err := router.NewRouter(db, router.Options{
		BasePath:       conf.BasePath,
		AllowedOrigins: conf.AllowedOrigins,
		SessionSecret:  conf.SessionSecret,
		SecureCookies:  conf.Environment == "production",
		BcryptCost:     conf.BcryptCost,
		FirstUserAdmin: conf.FirstUserAdmin,
	})
	checkPanicErr(err)
	return engine
}
