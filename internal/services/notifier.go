package services

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

// Notifier delivers rent reminders to responsible managers over email
// and SMS. Either channel may be disabled by leaving its credentials
// unset; delivery failures are logged, never propagated.
type Notifier interface {
	Notify(user *models.User, subject, body string)
}

type notifier struct {
	sg        *sendgrid.Client
	fromName  string
	fromEmail string

	tw        *twilio.RestClient
	fromPhone string
}

func NewNotifier(sendgridKey, fromName, fromEmail, twilioSID, twilioToken, fromPhone string) Notifier {
	n := &notifier{fromName: fromName, fromEmail: fromEmail, fromPhone: fromPhone}
	if sendgridKey != "" {
		n.sg = sendgrid.NewSendClient(sendgridKey)
	}
	if twilioSID != "" && twilioToken != "" {
		n.tw = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: twilioSID,
			Password: twilioToken,
		})
	}
	return n
}

func (n *notifier) Notify(user *models.User, subject, body string) {
	if user == nil {
		return
	}
	n.email(user, subject, body)
	n.sms(user, body)
}

func (n *notifier) email(user *models.User, subject, body string) {
	if n.sg == nil || user.Email == "" {
		return
	}
	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(user.Name, user.Email)
	msg := mail.NewSingleEmail(from, subject, to, body, body)
	resp, err := n.sg.Send(msg)
	if err != nil {
		utils.Logger.Warnf("Failed to send email to %s: %v", user.Email, err)
		return
	}
	if resp.StatusCode >= 400 {
		utils.Logger.Warnf("SendGrid rejected email to %s: status %d", user.Email, resp.StatusCode)
	}
}

func (n *notifier) sms(user *models.User, body string) {
	if n.tw == nil || user.Phone == "" {
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(n.fromPhone)
	params.SetBody(body)
	if _, err := n.tw.Api.CreateMessage(params); err != nil {
		utils.Logger.Warnf("Failed to send SMS to %s: %v", user.Phone, err)
	}
}

// noopNotifier is used in tests and when notifications are disabled.
type noopNotifier struct{}

func (noopNotifier) Notify(*models.User, string, string) {}

func NewNoopNotifier() Notifier { return noopNotifier{} }
