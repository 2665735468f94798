package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ls1intum/Artemis-sub058/internal/adapters/channels/email"
	"github.com/ls1intum/Artemis-sub058/internal/adapters/channels/push"
	"github.com/ls1intum/Artemis-sub058/internal/adapters/channels/webapp"
	"github.com/ls1intum/Artemis-sub058/internal/adapters/config"
	"github.com/ls1intum/Artemis-sub058/internal/adapters/database/postgres"
	"github.com/ls1intum/Artemis-sub058/internal/domain/notification"
	"github.com/ls1intum/Artemis-sub058/internal/domain/service"
	"github.com/ls1intum/Artemis-sub058/pkg/logger"
	"github.com/ls1intum/Artemis-sub058/pkg/smtp"
	"github.com/ls1intum/Artemis-sub058/pkg/taskpool"
	"github.com/spf13/viper"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()

	dispatchLogger, err := logger.Named("dispatch")
	if err != nil {
		log.Panic(err)
	}
	channelLogger, err := logger.Named("channels")
	if err != nil {
		log.Panic(err)
	}

	presets, err := notification.NewPresetRegistry(notification.DefaultPresets()...)
	if err != nil {
		logger.Log.Panicf("Failed to register notification presets: %v", err)
	}

	// Delivery tasks trigger cache invalidations, so invalidation runs on its
	// own pool. Sharing one pool would let a full queue wedge the delivery
	// workers inside their own Submit.
	dispatchPool := taskpool.New(
		viper.GetInt("settings.workers"),
		viper.GetInt("settings.queue-size"),
		dispatchLogger,
	)
	invalidationPool := taskpool.New(
		viper.GetInt("settings.workers"),
		viper.GetInt("settings.queue-size"),
		dispatchLogger,
	)

	notificationStorage := postgres.NewNotificationStorage(cfg.Database)
	statusStorage := postgres.NewStatusStorage(cfg.Database)
	selectionStorage := postgres.NewPresetSelectionStorage(cfg.Database)
	specificationStorage := postgres.NewSpecificationStorage(cfg.Database)
	userStorage := postgres.NewUserStorage(cfg.Database)

	userService := service.NewUserService(userStorage)
	settingsService := service.NewSettingsService(presets, selectionStorage, specificationStorage, cfg.Redis.Settings, dispatchLogger)
	invalidationService := service.NewInvalidationService(cfg.Redis.Notifications, invalidationPool, dispatchLogger)
	statusService := service.NewStatusService(statusStorage, invalidationService, dispatchLogger)

	hub := webapp.NewHub(channelLogger)

	mailBundle, err := email.DefaultBundle()
	if err != nil {
		logger.Log.Panicf("Failed to load email message catalogs: %v", err)
	}
	mailClient := smtp.NewClient(cfg.SMTP, viper.GetString("service.smtp.email"), viper.GetString("service.smtp.domain"))
	emailAdapter, err := email.NewAdapter(mailClient, mailBundle, channelLogger)
	if err != nil {
		logger.Log.Panicf("Failed to build email adapter: %v", err)
	}

	adapters := map[notification.Channel]service.ChannelAdapter{
		notification.ChannelWebapp: webapp.NewAdapter(hub),
		notification.ChannelEmail:  emailAdapter,
	}
	if sender := newPushSender(); sender != nil {
		adapters[notification.ChannelPush] = push.NewAdapter(sender, channelLogger)
	}

	dispatchService := service.NewDispatchService(
		notificationStorage,
		statusStorage,
		statusService,
		userService,
		settingsService,
		adapters,
		cfg.Redis.Notifications,
		dispatchPool,
		dispatchLogger,
	)
	dispatchService.StartCleanupScheduler(time.Hour)

	http.HandleFunc("/ws", hub.ServeWS)
	go func() {
		addr := viper.GetString("service.listen")
		logger.Log.Infof("Live feed listening on %s", addr)
		if errServe := http.ListenAndServe(addr, nil); errServe != nil {
			logger.Log.Panicf("Live feed server stopped: %v", errServe)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down, draining background tasks")
	// Deliveries first: they still enqueue invalidations, which the second
	// pool drains afterwards.
	dispatchPool.Stop()
	invalidationPool.Stop()
}

// newPushSender returns nil when no relay is configured; the push channel is
// then skipped during dispatch.
func newPushSender() push.Sender {
	url := viper.GetString("service.push.relay-url")
	if url == "" {
		return nil
	}
	return push.NewHTTPSender(url, 10*time.Second)
}
