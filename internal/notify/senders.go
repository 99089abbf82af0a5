package notify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
)

// LogSender writes rendered messages to the log instead of delivering them.
// It stands in for a real channel when credentials are not configured.
type LogSender struct {
	channel Channel
}

// NewLogSender creates a log-only sender for a channel.
func NewLogSender(channel Channel) *LogSender {
	return &LogSender{channel: channel}
}

func (s *LogSender) Channel() Channel { return s.channel }

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	log.Printf("notify: [%s fallback] to=%s subject=%q", s.channel, msg.Recipient, msg.Subject)
	return nil
}

// SMTPSender delivers email over plain SMTP.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPSender creates an SMTP email sender.
func NewSMTPSender(host, port, username, password, from string) *SMTPSender {
	return &SMTPSender{host: host, port: port, username: username, password: password, from: from}
}

func (s *SMTPSender) Channel() Channel { return ChannelEmail }

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", s.from)
	fmt.Fprintf(&body, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&body, "Subject: %s\r\n", msg.Subject)
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	body.WriteString(msg.Body)

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{msg.Recipient}, []byte(body.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// TwilioSender delivers SMS through the Twilio REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
}

// NewTwilioSender creates a Twilio SMS sender.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		client:     &http.Client{},
	}
}

func (s *TwilioSender) Channel() Channel { return ChannelSMS }

func (s *TwilioSender) Send(ctx context.Context, msg Message) error {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	form := url.Values{}
	form.Set("To", msg.Recipient)
	form.Set("From", s.from)
	form.Set("Body", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send sms: twilio returned %s", resp.Status)
	}
	return nil
}
