package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"droptruck/config"
	"droptruck/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeFollowUpCall = "call:followup"

// followUpDelay gives the sales team a window before the reminder fires.
const followUpDelay = 15 * time.Minute

// FollowUpPayload describes a call that ended without a submitted booking.
type FollowUpPayload struct {
	SessionID     string   `json:"sessionId"`
	CustomerName  string   `json:"customerName"`
	Contact       string   `json:"contact"`
	MissingFields []string `json:"missingFields,omitempty"`
	EndedAt       string   `json:"endedAt"`
}

func redisQueueOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Enqueuer schedules follow-up tasks for calls that ended with a contact
// number but no submitted booking.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer() *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisQueueOpts())}
}

func (e *Enqueuer) EnqueueFollowUp(p FollowUpPayload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal follow-up payload: %w", err)
	}
	task := asynq.NewTask(TypeFollowUpCall, raw)
	if _, err := e.client.Enqueue(task, asynq.ProcessIn(followUpDelay)); err != nil {
		return fmt.Errorf("failed to enqueue follow-up: %w", err)
	}
	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// InitFollowUpWorker runs the async worker in background.
func InitFollowUpWorker() {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisQueueOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeFollowUpCall, handleFollowUpTask)

	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting follow-up worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Warn("Follow-up worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Error("Follow-up worker gave up; reminders disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleFollowUpTask surfaces the unfinished call to the sales team log.
func handleFollowUpTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p FollowUpPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Warn("Invalid follow-up payload", zap.Error(err))
		return err
	}

	logger.Info("Follow-up due for unfinished call",
		zap.String("sessionID", p.SessionID),
		zap.String("customer", p.CustomerName),
		zap.String("contact", p.Contact),
		zap.Strings("missingFields", p.MissingFields),
		zap.String("endedAt", p.EndedAt))
	return nil
}

// monitorRedisConnection pings the queue Redis periodically to detect
// failures at runtime.
func monitorRedisConnection() {
	logger := utils.GetLogger()
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Queue Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
