package mypubsub

import (
	"context"
	"os"
	"sync"

	"github.com/MarcGrol/flashcart/lib/mylog"
)

// FakePubSub keeps published messages in memory, per topic
type FakePubSub struct {
	sync.Mutex
	logger    mylog.Logger
	published map[string][]string
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return NewFakePubSub(), func() {}, nil
}

func NewFakePubSub() *FakePubSub {
	return &FakePubSub{
		logger:    mylog.New("pubsub"),
		published: map[string][]string{},
	}
}

func (ps *FakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.published[topic]; !exists {
		ps.published[topic] = []string{}
	}
	return nil
}

func (ps *FakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.published[topic] = append(ps.published[topic], data)
	ps.logger.Log(c, topic, mylog.SeverityDebug, "Published on fake topic %s: %s", topic, data)

	return nil
}

// Published returns a copy of all messages published on the topic
func (ps *FakePubSub) Published(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	result := make([]string, len(ps.published[topic]))
	copy(result, ps.published[topic])
	return result
}
