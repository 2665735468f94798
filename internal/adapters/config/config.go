package config

import (
	"fmt"
	"log"
	"os"
	"time"

	postgresStorage "github.com/ls1intum/Artemis-sub058/internal/adapters/database/postgres"
	redisStorage "github.com/ls1intum/Artemis-sub058/internal/adapters/database/redis"
	"github.com/ls1intum/Artemis-sub058/pkg/logger"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Config struct {
	Database *gorm.DB
	Redis    *redisStorage.Client
	SMTP     *gomail.Dialer
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// A config file without pool sizing must not degrade to a single worker
	// with an unbuffered queue.
	viper.SetDefault("settings.workers", 4)
	viper.SetDefault("settings.queue-size", 64)

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisClient, err := redisStorage.New(redisStorage.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	dialer := gomail.NewDialer(
		viper.GetString("service.smtp.host"),
		viper.GetInt("service.smtp.port"),
		viper.GetString("service.smtp.user"),
		viper.GetString("service.smtp.password"),
	)

	return &Config{
		Database: database,
		Redis:    redisClient,
		SMTP:     dialer,
	}
}
