package mypublisher

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mypubsub"
)

// Relay forwards in-process events to the external pubsub so other systems can follow them.
type Relay struct {
	subscriber Subscriber
	pubsub     mypubsub.PubSub
	logger     mylog.Logger
	wg         sync.WaitGroup
}

func NewRelay(subscriber Subscriber, pubsub mypubsub.PubSub) *Relay {
	return &Relay{
		subscriber: subscriber,
		pubsub:     pubsub,
		logger:     mylog.New("relay"),
	}
}

// Start forwards every event on topic until the context is cancelled. Wait blocks until
// all forwarding has stopped.
func (r *Relay) Start(c context.Context, topic string, buffer int) error {
	err := r.pubsub.CreateTopic(c, topic)
	if err != nil {
		return err
	}

	envelopes, cancel := r.subscriber.Subscribe(topic, buffer)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		for {
			select {
			case <-c.Done():
				return
			case envelope, ok := <-envelopes:
				if !ok {
					return
				}
				jsonBytes, err := json.Marshal(envelope)
				if err != nil {
					r.logger.Log(c, envelope.AggregateUID, mylog.SeverityError, "Error serializing event %s: %s", envelope.String(), err)
					continue
				}
				err = r.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
				if err != nil {
					r.logger.Log(c, envelope.AggregateUID, mylog.SeverityError, "Error relaying event %s: %s", envelope.String(), err)
					continue
				}
			}
		}
	}()

	return nil
}

func (r *Relay) Wait() {
	r.wg.Wait()
}
