package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/repository"
)

// FeedbackPersistWorker drains the feedback queue and writes each entry to
// the database. Decode and persist failures are dropped after a Nack; the
// queue is not a dead-letter setup.
type FeedbackPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.FeedbackRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFeedbackPersistWorker(conn *amqp.Connection, repo *repository.FeedbackRepository, queueName string) *FeedbackPersistWorker {
	return &FeedbackPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *FeedbackPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var feedback model.Feedback
				if err := json.Unmarshal(d.Body, &feedback); err != nil {
					log.Printf("worker decode feedback failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&feedback); err != nil {
					log.Printf("worker persist feedback failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *FeedbackPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
