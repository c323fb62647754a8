package services

import (
	"log"
	"sync"

	"github.com/etlasneha/greenzone/models"

	"gorm.io/gorm"
)

// Dispatcher is the best-effort notification outbox. Handlers enqueue
// intents after their own store write has committed; a single worker
// drains the queue into the notification store. A dispatch failure is
// logged and dropped; it must never roll back or fail the operation that
// produced it, and nothing is retried.
type Dispatcher struct {
	db       *gorm.DB
	queue    chan models.Notification
	inFlight sync.WaitGroup
	done     chan struct{}
	once     sync.Once
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{
		db:    db,
		queue: make(chan models.Notification, 64),
		done:  make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (d *Dispatcher) Start() {
	go func() {
		defer close(d.done)
		for notification := range d.queue {
			if err := d.db.Create(&notification).Error; err != nil {
				log.Printf("Failed to deliver %s notification to %s: %v",
					notification.Type, notification.To, err)
			}
			d.inFlight.Done()
		}
	}()
}

// Enqueue hands a notification to the worker without blocking. When the
// queue is full the notification is dropped with a log line.
func (d *Dispatcher) Enqueue(notification models.Notification) {
	d.inFlight.Add(1)
	select {
	case d.queue <- notification:
	default:
		log.Printf("Notification queue full, dropping %s notification to %s",
			notification.Type, notification.To)
		d.inFlight.Done()
	}
}

// Flush blocks until every enqueued notification has been attempted.
func (d *Dispatcher) Flush() {
	d.inFlight.Wait()
}

// Close flushes the queue and stops the worker. Enqueue must not be
// called after Close.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.Flush()
		close(d.queue)
		<-d.done
	})
}
