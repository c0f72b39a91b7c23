package promotionevents

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/myevents"
)

type recordingService struct {
	lightning []LightningSaleStarted
	suggested []SuggestedSaleStarted
}

func (s *recordingService) OnLightningSaleStarted(c context.Context, topic string, event LightningSaleStarted) error {
	s.lightning = append(s.lightning, event)
	return nil
}

func (s *recordingService) OnSuggestedSaleStarted(c context.Context, topic string, event SuggestedSaleStarted) error {
	s.suggested = append(s.suggested, event)
	return nil
}

func TestDispatchEvent(t *testing.T) {
	c := context.TODO()

	t.Run("Lightning", func(t *testing.T) {
		service := &recordingService{}
		err := DispatchEvent(c, myevents.EventEnvelope{
			Topic:         TopicName,
			EventTypeName: "promotion.lightning.started",
			EventPayload:  `{"ProductUID":"p2","ProductName":"Productivity Mouse","Price":16000}`,
		}, service)
		assert.NoError(t, err)
		assert.Equal(t, []LightningSaleStarted{{ProductUID: "p2", ProductName: "Productivity Mouse", Price: 16000}}, service.lightning)
	})

	t.Run("Suggested", func(t *testing.T) {
		service := &recordingService{}
		err := DispatchEvent(c, myevents.EventEnvelope{
			Topic:         TopicName,
			EventTypeName: SuggestedSaleStarted{}.GetEventTypeName(),
			EventPayload:  `{"ProductUID":"p1","ProductName":"Bug-free Keyboard","Price":9500}`,
		}, service)
		assert.NoError(t, err)
		assert.Equal(t, []SuggestedSaleStarted{{ProductUID: "p1", ProductName: "Bug-free Keyboard", Price: 9500}}, service.suggested)
	})

	t.Run("Invalid payload", func(t *testing.T) {
		err := DispatchEvent(c, myevents.EventEnvelope{
			EventTypeName: LightningSaleStarted{}.GetEventTypeName(),
			EventPayload:  `{`,
		}, &recordingService{})
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})

	t.Run("Unknown type", func(t *testing.T) {
		err := DispatchEvent(c, myevents.EventEnvelope{EventTypeName: "promotion.unknown"}, &recordingService{})
		assert.Equal(t, http.StatusNotImplemented, myerrors.GetHTTPStatus(err))
	})
}
