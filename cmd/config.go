package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers           []string
	KafkaNotificationTopic string

	// ReminderSchedule is a six-field cron expression, seconds first.
	ReminderSchedule string
	// ReminderMinAge is how long a field change request waits before the
	// approver group is reminded about it.
	ReminderMinAge time.Duration
}
