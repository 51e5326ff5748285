package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shift-log-bot/internal/config"
	"shift-log-bot/internal/handler"
	"shift-log-bot/internal/logging"
	"shift-log-bot/internal/notify"
	"shift-log-bot/internal/repository"
	"shift-log-bot/internal/service"
	"shift-log-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const outboxSize = 256

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()

	log := logging.New(cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"database":  cfg.DatabaseURL,
		"log_level": cfg.LogLevel,
	}).Info("Config initialized")

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("Failed to get database instance")
	}

	// SQLite пишет одним соединением
	sqlDB.SetMaxOpenConns(1)

	userRepo, err := repository.NewGormUserRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create user repository")
	}

	entryRepo, err := repository.NewGormShiftEntryRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create shift entry repository")
	}

	settingsRepo, err := repository.NewGormSettingsRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create settings repository")
	}

	holidayRepo, err := repository.NewGormHolidayRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create holiday repository")
	}

	settingsService := service.NewSettingsService(settingsRepo, service.Defaults{
		BaseShiftMinutes: cfg.DefaultBaseShiftMinutes,
		MonthStartDay:    cfg.DefaultMonthStartDay,
	}, log)
	userService := service.NewUserService(userRepo, entryRepo, settingsService, log)
	holidayService := service.NewHolidayService(holidayRepo, log)
	shiftService := service.NewShiftService(entryRepo, holidayService, log)
	periodService := service.NewPeriodService(shiftService, settingsService, nil, log)
	scheduleService := service.NewScheduleService(settingsService, entryRepo, holidayRepo, userRepo, log)
	exportService := service.NewExportService(periodService, scheduleService, nil, log)

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		log.WithError(err).Warn("Failed to initialize admin")
	} else if cfg.BaseAdminChatID != 0 {
		log.WithField("chat_id", cfg.BaseAdminChatID).Info("Admin initialized")
	}

	if cfg.HolidaysFile != "" {
		year, count, err := holidayService.LoadFile(cfg.HolidaysFile)
		if err != nil {
			log.WithError(err).WithField("file", cfg.HolidaysFile).Warn("Failed to load holiday calendar")
		} else {
			log.WithFields(logrus.Fields{
				"year":  year,
				"count": count,
			}).Info("Holiday calendar loaded from config")
		}
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Telegram client")
	}

	log.Infof("Authorized on account %s", client.Bot.Self.UserName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outbox := notify.NewOutbox(client, outboxSize, log)
	outboxDone := make(chan struct{})
	go func() {
		outbox.Run(ctx)
		close(outboxDone)
	}()

	reminder := notify.NewReminder(scheduleService, outbox, cfg.ReminderHour, cfg.ReminderInterval, nil, log)
	if cfg.RemindersEnabled() {
		reminder.Start()
	}

	botHandler := handler.NewHandler(
		client,
		userService,
		settingsService,
		shiftService,
		periodService,
		scheduleService,
		holidayService,
		exportService,
		outbox,
		cfg,
		log,
	)

	// Настраиваем канал обновлений
	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем обработку сообщений
	go botHandler.HandleUpdates(updates)

	log.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Bot.StopReceivingUpdates()
	reminder.Stop()
	cancel()
	<-outboxDone

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Error closing database")
	}

	log.Info("Bot stopped gracefully")
}
