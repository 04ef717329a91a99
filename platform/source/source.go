package source

// Acker confirms the processing of a consumed message.
type Acker interface {
	Ack(id string) error
}
