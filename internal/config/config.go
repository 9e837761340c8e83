package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	TaskQueue TaskQueueConfig
	Redis     *RedisConfig
	Reminder  *ReminderConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string
	TargetURL       string

	GCloudProjectID     string
	GCloudLocationID    string
	GCloudQueueID       string
	GCloudTargetURL     string
	GCloudTasksEndpoint string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	targetURL := os.Getenv("TASK_QUEUE_TARGET_URL")
	if targetURL == "" {
		targetURL = "http://localhost:" + port + "/api/v1/notifications/deliver"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	reminderConfig, err := LoadReminderConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: ParseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,
			TargetURL:       targetURL,

			GCloudProjectID:     os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:    os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:       os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:     os.Getenv("GCLOUD_TARGET_URL"),
			GCloudTasksEndpoint: os.Getenv("GCLOUD_TASKS_ENDPOINT"),

			MaxRetries: maxRetries,
		},
		Redis:    redisConfig,
		Reminder: reminderConfig,
	}, nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
