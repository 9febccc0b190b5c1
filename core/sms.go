package core

type (
	// SMSMessage is an outbound text message.
	SMSMessage struct {
		To   string // E.164 phone number
		Body string
	}

	// SMSService is any service that can send text messages.
	SMSService interface {
		// SendMessages sends messages asynchronously, best-effort.
		// Callers must not rely on delivery; failures are logged, not returned.
		SendMessages(messages ...*SMSMessage)
	}
)

func (m *SMSMessage) IsSendable() bool { return m.To != "" && m.Body != "" }
