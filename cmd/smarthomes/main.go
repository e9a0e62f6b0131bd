package main

import (
	"strings"
	"time"

	"github.com/casahub/smarthomes/internal/alerting"
	"github.com/casahub/smarthomes/internal/api"
	"github.com/casahub/smarthomes/internal/auth"
	"github.com/casahub/smarthomes/internal/config"
	"github.com/casahub/smarthomes/internal/database"
	"github.com/casahub/smarthomes/internal/home"
	"github.com/casahub/smarthomes/internal/middleware"
	"github.com/casahub/smarthomes/internal/sensor"
	"github.com/casahub/smarthomes/internal/weather"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("Starting smarthomes api server")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := database.New(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	rdb := weather.NewRedisClientFromConfig(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	weatherClient := weather.NewClient(
		cfg.Weather.BaseURL,
		cfg.Weather.APIKey,
		time.Duration(cfg.Weather.TimeoutSeconds)*time.Second,
		rdb,
		time.Duration(cfg.Weather.CacheTTLMinutes)*time.Minute,
	)

	authService := auth.NewService(db, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.ExpirationMinutes)*time.Minute)
	homeService := home.NewService(db, weatherClient)
	sensorService := sensor.NewService(db, db)
	alertService := alerting.NewService(db, db)
	ruleService := alerting.NewRuleService(db, db)
	readingService := sensor.NewReadingService(db, db, alertService)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.Authentication(authService))
	api.New(router, api.Deps{
		Auth:     authService,
		Homes:    homeService,
		Sensors:  sensorService,
		Readings: readingService,
		Alerts:   alertService,
		Rules:    ruleService,
	})

	log.Info().Msgf("Starting server on %s", cfg.Server.BindAddr)
	if err := router.Run(cfg.Server.BindAddr); err != nil {
		log.Fatal().Err(err).Msg("start smarthomes api server failed.")
	}
	log.Info().Msg("smarthomes api server exit...")
}
