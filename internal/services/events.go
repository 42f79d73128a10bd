package services

// EventPublisher pushes entity-change notifications to subscribed
// presentation clients. Implemented by the realtime hub; services tolerate a
// nil publisher so tests and scripts can run without one.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

func publish(p EventPublisher, event string, payload interface{}) {
	if p != nil {
		p.Publish(event, payload)
	}
}
