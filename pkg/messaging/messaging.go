// Package messaging carries catalog change notifications over amqp. The
// upstream publisher announces menu edits on the menu_changed topic; the
// service drops its cached catalog in response.
package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const MenuChangedTopic = "menu_changed"

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}

// MenuChanged is the event payload. Ids may be empty when the whole
// catalog was rewritten.
type MenuChanged struct {
	Ids []string `json:"ids,omitempty"`
}

func (c RabbitConfig) topicName(topic string) string {
	if c.Prefix == "" {
		return topic
	}
	return fmt.Sprintf("%s_%s", c.Prefix, topic)
}

func (c RabbitConfig) Connect() (*amqp.Connection, error) {
	return amqp.DialConfig(c.Url, amqp.Config{Vhost: c.VHost})
}

func DefineTopic(ch *amqp.Channel, cfg RabbitConfig, topic string) error {
	name := cfg.topicName(topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return nil
}

func SendChange[V any](conn *amqp.Connection, cfg RabbitConfig, topic string, data V) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := cfg.topicName(topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

func declareBindAndConsume(ch *amqp.Channel, cfg RabbitConfig, topic string) (<-chan amqp.Delivery, error) {
	name := cfg.topicName(topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenForMenuChanges consumes menu_changed events and hands each decoded
// payload to fn, acking on success.
func ListenForMenuChanges(conn *amqp.Connection, cfg RabbitConfig, fn func(MenuChanged) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	deliveries, err := declareBindAndConsume(ch, cfg, MenuChangedTopic)
	if err != nil {
		ch.Close()
		return err
	}
	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			var change MenuChanged
			if err := json.Unmarshal(d.Body, &change); err != nil {
				log.Printf("Error decoding menu change: %v", err)
				d.Nack(false, false)
				continue
			}
			if err := fn(change); err != nil {
				log.Printf("Error processing menu change: %v", err)
				continue
			}
			d.Ack(false)
		}
	}(deliveries)
	return nil
}
