package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken   string
	TelegramDebug   bool
	BaseAdminChatID int64
	DatabaseURL     string
	LogLevel        string

	// Значения для новых профилей
	DefaultBaseShiftMinutes int
	DefaultMonthStartDay    int

	// JSON производственного календаря, загружается при старте если задан
	HolidaysFile string

	// Час напоминания о незаполненной смене, -1 - выключено
	ReminderHour     int
	ReminderInterval time.Duration
}

var instance *BotConfig
var once sync.Once

var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// GetBotConfig возвращает конфиг, при ошибке завершает процесс
func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load читает конфиг из переменных окружения
func Load() (*BotConfig, error) {
	cfg := &BotConfig{
		TelegramToken:           getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:           getEnvAsBool("TELEGRAM_DEBUG", false),
		BaseAdminChatID:         getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		DatabaseURL:             getEnv("DATABASE_URL", "shifts.db"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DefaultBaseShiftMinutes: int(getEnvAsInt("DEFAULT_BASE_SHIFT_MINUTES", 480)),
		DefaultMonthStartDay:    int(getEnvAsInt("DEFAULT_MONTH_START_DAY", 1)),
		HolidaysFile:            getEnv("HOLIDAYS_FILE", ""),
		ReminderHour:            int(getEnvAsInt("REMINDER_HOUR", -1)),
		ReminderInterval:        getEnvAsDuration("REMINDER_INTERVAL", time.Minute),
	}

	if cfg.TelegramToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "shifts.db"
	}
	if cfg.DefaultBaseShiftMinutes < 0 {
		cfg.DefaultBaseShiftMinutes = 480
	}
	if cfg.DefaultMonthStartDay < 1 || cfg.DefaultMonthStartDay > 31 {
		cfg.DefaultMonthStartDay = 1
	}
	if cfg.ReminderHour > 23 {
		cfg.ReminderHour = -1
	}
	if cfg.ReminderInterval <= 0 {
		cfg.ReminderInterval = time.Minute
	}

	return cfg, nil
}

// RemindersEnabled сообщает, включены ли ежедневные напоминания
func (c *BotConfig) RemindersEnabled() bool {
	return c.ReminderHour >= 0
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(name, "")
	if val, err := time.ParseDuration(valStr); err == nil {
		return val
	}

	return defaultVal
}
