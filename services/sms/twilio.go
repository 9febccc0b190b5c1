package smssvc

import (
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/trezcool/mahudhurio/core"
)

type twilioService struct {
	client *twilio.RestClient
	from   string
	logger core.Logger
}

var _ core.SMSService = (*twilioService)(nil)

func NewTwilioService(conf *core.Config, logger core.Logger) core.SMSService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: conf.Twilio.AccountSID,
		Password: conf.Twilio.AuthToken,
	})
	return &twilioService{
		client: client,
		from:   conf.Twilio.FromPhone,
		logger: logger,
	}
}

func (svc twilioService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			if msg.IsSendable() {
				svc.send(*msg)
			}
		}()
	}
}

func (svc twilioService) send(msg core.SMSMessage) {
	params := new(openapi.CreateMessageParams)
	params.SetTo(msg.To)
	params.SetFrom(svc.from)
	params.SetBody(msg.Body)

	if _, err := svc.client.Api.CreateMessage(params); err != nil {
		svc.logger.Error(fmt.Sprintf("sending sms to %s: %v", msg.To, err), err)
	}
}
