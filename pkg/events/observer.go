package events

// PublishingObserver forwards controller state changes onto the bus. It
// satisfies the drag controller's Observer interface, so it can be passed to
// Start directly or chained after a UI-local observer.
type PublishingObserver struct {
	Bus          *EventBus
	ControllerID string
}

func (o *PublishingObserver) PositionChanged(position float64) {
	o.Bus.Publish(Event{
		Type:         PositionChanged,
		ControllerID: o.ControllerID,
		Data:         map[string]interface{}{"position": position},
	})
}

func (o *PublishingObserver) PercentageChanged(percentage float64) {
	o.Bus.Publish(Event{
		Type:         PercentageChanged,
		ControllerID: o.ControllerID,
		Data:         map[string]interface{}{"percentage": percentage},
	})
}
