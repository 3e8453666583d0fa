// Command announce publishes a menu_changed event, telling every running
// menu service to drop its cached catalog. Pass the changed item ids as
// arguments, or nothing for a full rewrite.
package main

import (
	"log"
	"os"

	"github.com/n1kyfn/restaurant/pkg/messaging"
)

func main() {
	rabbitUrl := os.Getenv("RABBIT_URL")
	if rabbitUrl == "" {
		log.Fatal("RABBIT_URL is required")
	}
	cfg := messaging.RabbitConfig{
		Url:    rabbitUrl,
		VHost:  os.Getenv("RABBIT_HOST"),
		Prefix: os.Getenv("RABBIT_PREFIX"),
	}

	conn, err := cfg.Connect()
	if err != nil {
		log.Fatalf("rabbit connect failed: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("channel failed: %v", err)
	}
	if err := messaging.DefineTopic(ch, cfg, messaging.MenuChangedTopic); err != nil {
		log.Fatalf("topic declare failed: %v", err)
	}
	ch.Close()

	change := messaging.MenuChanged{Ids: os.Args[1:]}
	if err := messaging.SendChange(conn, cfg, messaging.MenuChangedTopic, change); err != nil {
		log.Fatalf("publish failed: %v", err)
	}
	log.Printf("announced menu change (%d ids)", len(change.Ids))
}
