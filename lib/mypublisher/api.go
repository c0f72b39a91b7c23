package mypublisher

import (
	"context"

	"github.com/MarcGrol/flashcart/lib/myevents"
)

//go:generate mockgen -source=api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	Publish(c context.Context, topic string, event myevents.Event) error
}

type Subscriber interface {
	// Subscribe delivers every envelope published on topic after the call. The returned func
	// ends the subscription and closes the channel.
	Subscribe(topic string, buffer int) (<-chan myevents.EventEnvelope, func())
}
