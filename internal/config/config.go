package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config собирает все настройки бота из переменных окружения.
type Config struct {
	BotToken  string
	ManagerID int64

	DB DBConfig

	PollTimeout  int
	ReportHour   int
	ReportMinute int

	TimeZone *time.Location
}

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	Database string
}

// DSN формирует строку подключения к MySQL для GORM.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// Load читает .env (если есть) и окружение. BOT_TOKEN и MANAGER_ID обязательны.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using system environment")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	managerID, err := strconv.ParseInt(os.Getenv("MANAGER_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MANAGER_ID is not set or invalid: %w", err)
	}

	tz, err := time.LoadLocation(getEnv("TIME_ZONE", "Europe/Moscow"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}

	return &Config{
		BotToken:  token,
		ManagerID: managerID,
		DB: DBConfig{
			Username: getEnv("DB_USERNAME", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Database: getEnv("DB_DATABASE", "budget"),
		},
		PollTimeout:  getEnvInt("POLL_TIMEOUT", 60),
		ReportHour:   getEnvInt("REPORT_HOUR", 9),
		ReportMinute: getEnvInt("REPORT_MINUTE", 0),
		TimeZone:     tz,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return defaultVal
	}
	return parsed
}
