package smssvc

import (
	"sync"

	"github.com/trezcool/mahudhurio/core"
)

type dummyService struct {
	mu           sync.Mutex
	sentMessages []core.SMSMessage
}

var _ core.SMSService = (*dummyService)(nil)

// NewDummyService returns an SMSService that records messages in memory,
// synchronously, for tests to inspect.
func NewDummyService() *dummyService {
	return &dummyService{sentMessages: make([]core.SMSMessage, 0)}
}

func (svc *dummyService) SendMessages(messages ...*core.SMSMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, msg := range messages {
		if msg.IsSendable() {
			svc.sentMessages = append(svc.sentMessages, *msg)
		}
	}
}

func (svc *dummyService) SentMessages() []core.SMSMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.SMSMessage(nil), svc.sentMessages...)
}

func (svc *dummyService) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sentMessages = svc.sentMessages[:0]
}
