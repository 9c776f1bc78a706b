package transport

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogTransport writes outbound messages to the application log. It stands in
// for the real messaging gateway when no webhook URL is configured, so local
// development works without any gateway running.
type LogTransport struct{}

func NewLogTransport() *LogTransport {
	return &LogTransport{}
}

func (t *LogTransport) Send(ctx context.Context, recipient string, text string) error {
	logrus.Infof("[TRANSPORT] (log only) To %s: %s", recipient, text)
	return nil
}
