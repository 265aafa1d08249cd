package config

import (
	"fmt"

	"meal-market/models"

	"github.com/caarlos0/env/v10"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"debug"`
	DBPath    string `env:"DB_PATH" envDefault:"meal_market.db"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"meal_market_super_secret_2024"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

var (
	DB  *gorm.DB
	App Config
)

// JWTSecret returns the token signing key as bytes.
func JWTSecret() []byte {
	return []byte(App.JWTSecret)
}

func Load() error {
	if err := env.Parse(&App); err != nil {
		return fmt.Errorf("parsing config from env: %w", err)
	}
	return nil
}

// InitLogger builds the global zap logger from the configured level.
func InitLogger() error {
	level, err := zap.ParseAtomicLevel(App.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", App.LogLevel, err)
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level
	log, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	return nil
}

func InitDB() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(App.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Meal{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	zap.L().Info("database connected and migrated", zap.String("path", App.DBPath))
	return nil
}
