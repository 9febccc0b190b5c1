package smssvc

import (
	"log"

	"github.com/trezcool/mahudhurio/core"
)

type consoleService struct{}

var _ core.SMSService = (*consoleService)(nil)

// NewConsoleService returns an SMSService that prints messages to the
// standard logger instead of sending them. Meant for local development.
func NewConsoleService() core.SMSService {
	return &consoleService{}
}

func (svc consoleService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		if msg.IsSendable() {
			log.Printf("SMS to %s: %s\n", msg.To, msg.Body)
		}
	}
}
