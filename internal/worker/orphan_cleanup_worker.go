package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"cofflyze-api/internal/model"
)

const deleteTimeout = 10 * time.Second

type ObjectDeleter interface {
	Delete(ctx context.Context, name string) error
}

// OrphanCleanupWorker deletes images left in the bucket by failed
// prediction requests.
type OrphanCleanupWorker struct {
	conn      *amqp.Connection
	store     ObjectDeleter
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrphanCleanupWorker(conn *amqp.Connection, store ObjectDeleter, queueName string) *OrphanCleanupWorker {
	return &OrphanCleanupWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *OrphanCleanupWorker) Start(ctx context.Context) error {
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

	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
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
				if err := w.handle(workerCtx, d.Body); err != nil {
					log.Printf("orphan cleanup failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *OrphanCleanupWorker) handle(ctx context.Context, body []byte) error {
	var orphan model.OrphanedObject
	if err := json.Unmarshal(body, &orphan); err != nil {
		return fmt.Errorf("decode orphan message: %w", err)
	}
	if orphan.Object == "" {
		return fmt.Errorf("orphan message without object name")
	}

	deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()
	if err := w.store.Delete(deleteCtx, orphan.Object); err != nil {
		return err
	}
	log.Printf("deleted orphaned image %s (%s)", orphan.Object, orphan.Reason)
	return nil
}

func (w *OrphanCleanupWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
