package service

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

func (s *SenderService) sendEmail(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	if s.cfg.SendGrid.APIKey == "" {
		s.log.Warn("SENDGRID_API_KEY is not configured, email will not be sent")
		return fmt.Errorf("SENDGRID_API_KEY is not configured")
	}
	if s.cfg.SendGrid.FromEmail == "" {
		s.log.Warn("SENDGRID_FROM_EMAIL is not configured, email will not be sent")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured")
	}

	fromName := s.cfg.SendGrid.FromName
	if fromName == "" {
		fromName = s.cfg.Salon.Name
	}

	from := mail.NewEmail(fromName, s.cfg.SendGrid.FromEmail)
	to := mail.NewEmail(toName, toEmailAddress)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(s.cfg.SendGrid.APIKey)
	response, err := client.Send(message)

	if err != nil {
		s.log.Error("error sending email via SendGrid", zap.String("to", toEmailAddress), zap.Error(err))
		return fmt.Errorf("sending email through SendGrid failed: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		s.log.Info("email sent",
			zap.String("to", toEmailAddress),
			zap.String("subject", subject),
			zap.Int("status", response.StatusCode))
		return nil
	}

	s.log.Error("SendGrid returned non-success status",
		zap.String("to", toEmailAddress),
		zap.Int("status", response.StatusCode),
		zap.String("body", response.Body))
	return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
}

func (s *SenderService) sendSMS(toNumber, messageBody string) error {
	if s.cfg.Twilio.AccountSID == "" || s.cfg.Twilio.AuthToken == "" || s.cfg.Twilio.FromNumber == "" {
		s.log.Warn("Twilio credentials are not fully configured, SMS will not be sent")
		return fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		s.log.Warn("destination number is not in E.164 format, SMS may fail", zap.String("to", toNumber))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   s.cfg.Twilio.AccountSID,
		Password:   s.cfg.Twilio.AuthToken,
		AccountSid: s.cfg.Twilio.AccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.cfg.Twilio.FromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		s.log.Error("error sending SMS via Twilio", zap.String("to", toNumber), zap.Error(err))
		return fmt.Errorf("sending SMS failed: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		s.log.Info("SMS sent", zap.String("to", toNumber), zap.String("sid", *resp.Sid))
	} else {
		s.log.Warn("SMS sent but no SID returned", zap.String("to", toNumber))
	}

	return nil
}
