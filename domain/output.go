package domain

// OutputWriter publishes a key/value pair on the invoking automation
// system's output channel.
type OutputWriter interface {
	Set(name, value string) error
}
