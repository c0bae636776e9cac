package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/rcardozo/lead-manager/internal/infra/http/middleware"
	"github.com/rcardozo/lead-manager/internal/usecase"
)

// LeadNotifier delivers a notification about a freshly captured lead.
type LeadNotifier interface {
	SendNewLead(name, email, status string) error
}

// Worker consumes lead events and notifies the sales inbox about new leads.
// Other event kinds are acknowledged and dropped.
type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
	Log      *zap.SugaredLogger
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier, log *zap.SugaredLogger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Log:      log,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Log.Fatalw("failed to register RabbitMQ consumer", "err", err)
	}

	for d := range msgs {
		var event usecase.LeadEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			w.Log.Errorw("worker received malformed event", "err", err)
			// Malformed message, reject without requeue so the queue keeps moving.
			d.Nack(false, false)
			continue
		}

		if err := w.processEvent(event); err != nil {
			w.Log.Errorw("worker failed to process event", "event", event.Event, "lead_id", event.LeadID, "err", err)
			middleware.RecordNotificationError()
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}

func (w *Worker) processEvent(event usecase.LeadEvent) error {
	switch event.Event {
	case usecase.EventLeadCreated:
		if w.Notifier == nil {
			return nil
		}
		return w.Notifier.SendNewLead(event.Name, event.Email, event.Status)

	case usecase.EventLeadUpdated, usecase.EventLeadDeleted:
		return nil

	default:
		w.Log.Warnw("unknown lead event, dropping", "event", event.Event)
		return nil
	}
}
