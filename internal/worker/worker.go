// Package worker consumes reminder events. Handling is deliberately
// side-effect free for the CRUD path: a reminder failure never touches
// todo or task state.
package worker

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"taskdeck/internal/config"
	"taskdeck/internal/models"
	"taskdeck/internal/queue"
	"taskdeck/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Run starts the Kafka consumer group and fans messages out to the
// configured number of handler goroutines. Scale further by running
// more replicas (the group shares partitions).
func Run(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info(ctx, "Reminder worker disabled (no Kafka brokers)")
		return
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  queue.Brokers(),
		Topic:    queue.Topic(),
		GroupID:  "reminder-workers",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	jobs := make(chan []byte)
	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerPoolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for payload := range jobs {
				if err := handleMessage(ctx, payload); err != nil {
					logger.Error(ctx, "Reminder handle failed", "error", err, "payload", string(payload))
				}
			}
		}()
	}

	var processed int64
	logger.Info(ctx, "Reminder consumer started", "topic", queue.Topic(), "workers", cfg.WorkerPoolSize)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				close(jobs)
				wg.Wait()
				return
			}
			logger.Error(ctx, "Reminder fetch failed", "error", err)
			continue
		}
		jobs <- msg.Value
		// Commit regardless of handler outcome so a poison message
		// cannot block the partition.
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Reminder commit failed", "error", err)
		}
		atomic.AddInt64(&processed, 1)
	}
}

func handleMessage(ctx context.Context, payload []byte) error {
	var ev models.ReminderEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	if ev.Overdue {
		logger.Warn(ctx, "Task overdue",
			"task_id", ev.TaskID, "todo_id", ev.TodoID,
			"title", ev.Title, "due_date", ev.DueDate)
		return nil
	}
	logger.Info(ctx, "Task due soon",
		"task_id", ev.TaskID, "todo_id", ev.TodoID,
		"title", ev.Title, "due_date", ev.DueDate)
	return nil
}
