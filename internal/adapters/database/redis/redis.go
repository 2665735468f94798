package redis

import (
	"context"
	"fmt"

	"github.com/ls1intum/Artemis-sub058/internal/adapters/database/redis/notifications"
	"github.com/ls1intum/Artemis-sub058/internal/adapters/database/redis/settings"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Notifications *notifications.Storage
	Settings      *settings.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	notificationStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := notificationStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping notification cache: %w", err)
	}

	settingStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := settingStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping settings cache: %w", err)
	}

	return &Client{
		Notifications: notifications.NewStorage(notificationStorage),
		Settings:      settings.NewStorage(settingStorage),
	}, nil
}
