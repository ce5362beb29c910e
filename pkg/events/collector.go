package events

// Collector is embedded in aggregates to collect domain events during state transitions.
type Collector struct {
	events []DomainEvent
}

// Record appends a domain event.
func (c *Collector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Pending returns the collected events without clearing them.
func (c *Collector) Pending() []DomainEvent {
	return c.events
}

// Drain returns the collected events and clears the collector.
func (c *Collector) Drain() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
