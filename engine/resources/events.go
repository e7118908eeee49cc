package resources

// Events is a topic keyed queue of one-shot messages. Messages published during a frame are
// readable until the end of that frame.
type Events struct {
	topics map[string][]any
}

// NewEvents creates an empty queue.
func NewEvents() *Events {
	return &Events{topics: make(map[string][]any)}
}

// Publish appends a message to topic.
func (e *Events) Publish(topic string, message any) {
	e.topics[topic] = append(e.topics[topic], message)
}

// Messages returns the messages published on topic this frame.
func (e *Events) Messages(topic string) []any {
	return e.topics[topic]
}

// Cleanup drops every message.
func (e *Events) Cleanup() {
	clear(e.topics)
}
