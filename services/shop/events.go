package shop

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/services/promotion/promotionevents"
)

const subscriptionBuffer = 64

// Subscribe collects promotion events into the notification backlog until the context is done
func (s *service) Subscribe(c context.Context) error {
	envelopes, cancel := s.subscriber.Subscribe(promotionevents.TopicName, subscriptionBuffer)

	go func() {
		defer cancel()
		for {
			select {
			case <-c.Done():
				return
			case envelope, ok := <-envelopes:
				if !ok {
					return
				}
				err := promotionevents.DispatchEvent(c, envelope, s)
				if err != nil {
					s.logger.Log(c, envelope.AggregateUID, mylog.SeverityError, "Error handling event %s: %s", envelope.String(), err)
				}
			}
		}
	}()

	return nil
}

func (s *service) OnLightningSaleStarted(c context.Context, topic string, event promotionevents.LightningSaleStarted) error {
	n := s.notifications.add(Notification{
		Kind:        NotificationKindLightning,
		ProductUID:  event.ProductUID,
		ProductName: event.ProductName,
		Price:       event.Price,
		Message:     fmt.Sprintf("Lightning sale: %s now %d", event.ProductName, event.Price),
		CreatedAt:   s.nower.Now(),
	})
	s.logger.Log(c, event.ProductUID, mylog.SeverityInfo, "Notification %d: %s", n.Seq, n.Message)
	return nil
}

func (s *service) OnSuggestedSaleStarted(c context.Context, topic string, event promotionevents.SuggestedSaleStarted) error {
	n := s.notifications.add(Notification{
		Kind:        NotificationKindSuggested,
		ProductUID:  event.ProductUID,
		ProductName: event.ProductName,
		Price:       event.Price,
		Message:     fmt.Sprintf("You might also like %s, now %d", event.ProductName, event.Price),
		CreatedAt:   s.nower.Now(),
	})
	s.logger.Log(c, event.ProductUID, mylog.SeverityInfo, "Notification %d: %s", n.Seq, n.Message)
	return nil
}

func (s *service) notificationsAfter(c context.Context, seq int64) []Notification {
	return s.notifications.after(seq)
}

// backlog keeps the most recent notifications, numbered from 1
type backlog struct {
	sync.Mutex
	size    int
	lastSeq int64
	items   []Notification
}

func newBacklog(size int) *backlog {
	if size <= 0 {
		size = 1
	}
	return &backlog{
		size:  size,
		items: []Notification{},
	}
}

func (b *backlog) add(n Notification) Notification {
	b.Lock()
	defer b.Unlock()

	b.lastSeq++
	n.Seq = b.lastSeq
	b.items = append(b.items, n)
	if len(b.items) > b.size {
		b.items = b.items[len(b.items)-b.size:]
	}
	return n
}

func (b *backlog) after(seq int64) []Notification {
	b.Lock()
	defer b.Unlock()

	result := []Notification{}
	for _, n := range b.items {
		if n.Seq > seq {
			result = append(result, n)
		}
	}
	return result
}
