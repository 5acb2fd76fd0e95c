package publishers

import "context"

// Publisher sends events to a downstream sink (SQS, SNS, HTTP, etc).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the subset of the application logger publishers write to.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type discardLogger struct{}

func (discardLogger) DebugObj(string, string, interface{}) {}
func (discardLogger) ErrorObj(string, string, interface{}) {}

func orDiscard(log Logger) Logger {
	if log == nil {
		return discardLogger{}
	}
	return log
}
