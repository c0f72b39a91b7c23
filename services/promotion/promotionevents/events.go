package promotionevents

import (
	"context"
	"fmt"

	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/myevents"
)

const (
	TopicName            = "promotion"
	lightningSaleStarted = TopicName + ".lightning.started"
	suggestedSaleStarted = TopicName + ".suggested.started"
)

type PromotionEventService interface {
	OnLightningSaleStarted(c context.Context, topic string, event LightningSaleStarted) error
	OnSuggestedSaleStarted(c context.Context, topic string, event SuggestedSaleStarted) error
}

func DispatchEvent(c context.Context, envelope myevents.EventEnvelope, service PromotionEventService) error {
	switch envelope.EventTypeName {
	case lightningSaleStarted:
		{
			event := LightningSaleStarted{}
			err := envelope.DecodePayload(&event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLightningSaleStarted(c, envelope.Topic, event)
		}
	case suggestedSaleStarted:
		{
			event := SuggestedSaleStarted{}
			err := envelope.DecodePayload(&event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnSuggestedSaleStarted(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}

type LightningSaleStarted struct {
	ProductUID  string
	ProductName string
	Price       int64
}

func (e LightningSaleStarted) GetEventTypeName() string {
	return lightningSaleStarted
}

func (e LightningSaleStarted) GetAggregateName() string {
	return e.ProductUID
}

type SuggestedSaleStarted struct {
	ProductUID  string
	ProductName string
	Price       int64
}

func (e SuggestedSaleStarted) GetEventTypeName() string {
	return suggestedSaleStarted
}

func (e SuggestedSaleStarted) GetAggregateName() string {
	return e.ProductUID
}
