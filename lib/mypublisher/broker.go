package mypublisher

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcGrol/flashcart/lib/myevents"
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mytime"
	"github.com/MarcGrol/flashcart/lib/myuuid"
)

type subscription struct {
	id      int
	channel chan myevents.EventEnvelope
}

// Broker fans out events to in-process subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Broker struct {
	sync.Mutex
	logger        mylog.Logger
	enveloper     enveloper
	lastID        int
	subscriptions map[string][]subscription
}

func NewBroker(nower mytime.Nower, uuider myuuid.UUIDer) *Broker {
	return &Broker{
		logger:        mylog.New("broker"),
		enveloper:     newEnveloper(nower, uuider),
		subscriptions: map[string][]subscription{},
	}
}

func (b *Broker) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := b.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	b.Lock()
	defer b.Unlock()

	for _, s := range b.subscriptions[topic] {
		select {
		case s.channel <- envelope:
		default:
			b.logger.Log(c, envelope.AggregateUID, mylog.SeverityWarn, "Subscriber %d on topic %s is full: dropped %s", s.id, topic, envelope.String())
		}
	}

	b.logger.Log(c, envelope.AggregateUID, mylog.SeverityDebug, "Published event %s to %d subscribers", envelope.String(), len(b.subscriptions[topic]))

	return nil
}

func (b *Broker) Subscribe(topic string, buffer int) (<-chan myevents.EventEnvelope, func()) {
	b.Lock()
	defer b.Unlock()

	b.lastID++
	s := subscription{
		id:      b.lastID,
		channel: make(chan myevents.EventEnvelope, buffer),
	}
	b.subscriptions[topic] = append(b.subscriptions[topic], s)

	once := sync.Once{}
	return s.channel, func() {
		once.Do(func() {
			b.unsubscribe(topic, s.id)
		})
	}
}

func (b *Broker) unsubscribe(topic string, id int) {
	b.Lock()
	defer b.Unlock()

	remaining := make([]subscription, 0, len(b.subscriptions[topic]))
	for _, s := range b.subscriptions[topic] {
		if s.id == id {
			close(s.channel)
			continue
		}
		remaining = append(remaining, s)
	}
	b.subscriptions[topic] = remaining
}
