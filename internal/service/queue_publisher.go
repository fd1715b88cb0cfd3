// Package queue_publisher publishes reservation events to RabbitMQ.
// Errors are logged and returned so callers can ignore a broker outage
// without failing the reservation that triggered the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lfarias/sports-booking-gateway/internal/dateutil"
	"github.com/lfarias/sports-booking-gateway/internal/model"
	q "github.com/lfarias/sports-booking-gateway/internal/queue"
)

const reservationQueueName = "reservation.events"

// Publisher implements the booking flow's EventPublisher against RabbitMQ.
// The zero value is usable; every publish dials its own short-lived
// connection so a broker restart never strands a stale channel here.
type Publisher struct{}

// ReservationConfirmed publishes a confirmed event for a newly created
// reservation.  Broker failures are logged and swallowed: the reservation
// already exists and the local invalidation has already run.
func (Publisher) ReservationConfirmed(ctx context.Context, res *model.Reservation) {
	_ = publish(ctx, eventFor(q.ActionConfirmed, res))
}

// ReservationCancelled publishes a cancelled event.
func (Publisher) ReservationCancelled(ctx context.Context, res *model.Reservation) {
	_ = publish(ctx, eventFor(q.ActionCancelled, res))
}

func eventFor(action string, res *model.Reservation) q.ReservationEvent {
	ev := q.ReservationEvent{
		Action:        action,
		ReservationID: res.ID,
		UserID:        res.UserID,
		SubScenarioID: res.SubScenarioID,
		InitialDate:   res.InitialDate,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, s := range res.TimeSlots {
		ev.TimeSlotIDs = append(ev.TimeSlotIDs, s.ID)
	}
	if res.FinalDate != nil && *res.FinalDate != "" {
		ev.FinalDate = *res.FinalDate
		ev.Dates = dateutil.DatesForRange(res.InitialDate, *res.FinalDate, res.WeekDays)
	} else {
		ev.Dates = []string{res.InitialDate}
	}
	return ev
}

// publish marshals the event and sends it to the durable
// reservation.events queue.  It never panics; any error is logged and
// returned.
func publish(ctx context.Context, event q.ReservationEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(
		reservationQueueName, // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		reservationQueueName, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
