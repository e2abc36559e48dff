package service

import (
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"smartparking/internal/db"
)

// NotifyConfig carries provider credentials. Empty credentials disable the
// corresponding channel.
type NotifyConfig struct {
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
}

// NotifyService sends best-effort reservation confirmations. Failures are
// logged and never surfaced to the engine; a nil receiver is a no-op.
type NotifyService struct {
	cfg NotifyConfig
	log *slog.Logger
}

func NewNotifyService(cfg NotifyConfig, log *slog.Logger) *NotifyService {
	return &NotifyService{cfg: cfg, log: log}
}

func (n *NotifyService) ReservationConfirmed(customer *db.Customer, res *db.Reservation, space *db.ParkingSpace) {
	if n == nil {
		return
	}

	subject := fmt.Sprintf("Your parking reservation %s is confirmed", res.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour parking space %s (floor %d, zone %s) is held until %s.\n\n"+
			"Reservation ID: %s\nVehicle type: %s\n\nThank you for parking with us.",
		customer.Name, space.ID, space.Floor, space.Zone,
		res.ExpiresAt.Format("02 Jan 2006 15:04 MST"),
		res.ID, res.VehicleType,
	)
	sms := fmt.Sprintf("Parking reservation %s confirmed. Space %s held until %s.",
		res.ID, space.ID, res.ExpiresAt.Format("02/01 15:04"))

	go func() {
		if err := n.sendEmail(customer.Email, customer.Name, subject, body); err != nil {
			n.log.Warn("reservation email failed", "reservation_id", res.ID, "error", err)
		}
		if err := n.sendSMS(customer.Contact, sms); err != nil {
			n.log.Warn("reservation SMS failed", "reservation_id", res.ID, "error", err)
		}
	}()
}

func (n *NotifyService) sendEmail(toEmail, toName, subject, plainBody string) error {
	if n.cfg.SendGridAPIKey == "" || n.cfg.SendGridFromEmail == "" {
		return nil
	}

	fromName := n.cfg.SendGridFromName
	if fromName == "" {
		fromName = "Smart Parking"
	}
	from := mail.NewEmail(fromName, n.cfg.SendGridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, "")

	client := sendgrid.NewSendClient(n.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (n *NotifyService) sendSMS(toNumber, body string) error {
	if n.cfg.TwilioAccountSID == "" || n.cfg.TwilioAuthToken == "" || n.cfg.TwilioFromNumber == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   n.cfg.TwilioAccountSID,
		Password:   n.cfg.TwilioAuthToken,
		AccountSid: n.cfg.TwilioAccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(n.cfg.TwilioFromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("sending SMS via Twilio: %w", err)
	}
	return nil
}
