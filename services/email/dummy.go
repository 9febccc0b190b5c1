package emailsvc

import (
	"sync"

	"github.com/trezcool/mahudhurio/core"
)

type dummyService struct {
	mu           sync.Mutex
	sentMessages []core.EmailMessage
}

var _ core.EmailService = (*dummyService)(nil)

// NewDummyService returns an EmailService that records messages in memory,
// synchronously, for tests to inspect.
func NewDummyService() *dummyService {
	return &dummyService{sentMessages: make([]core.EmailMessage, 0)}
}

func (svc *dummyService) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			svc.sentMessages = append(svc.sentMessages, *msg)
		}
	}
}

func (svc *dummyService) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage(nil), svc.sentMessages...)
}

func (svc *dummyService) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sentMessages = svc.sentMessages[:0]
}
