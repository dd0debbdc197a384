package events

import "context"

// NoopPublisher заглушка для конфигураций с выключенной публикацией событий
type NoopPublisher struct{}

// NewNoopPublisher создает заглушку публикации событий
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// PublishBookingEvent ничего не делает
func (p *NoopPublisher) PublishBookingEvent(_ context.Context, _ BookingEvent) error {
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
