package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

// emailService sends operational mail to the approvals inbox. Customer
// contact handling lives outside this backend.
type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	opsEmail string
}

func NewEmailService(host, port, username, password, from, opsEmail string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
		opsEmail: opsEmail,
	}
}

func (s *emailService) send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.opsEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendExtensionRequestNotification(ctx context.Context, reference string, rentalID int64, hours, price float64) error {
	body := fmt.Sprintf("Extension %s was requested for rental %d:\n\n  Hours: %g\n  Price: %.2f\n\nPlease review it in the back office.", reference, rentalID, hours, price)
	return s.send(fmt.Sprintf("Extension request for rental %d", rentalID), body)
}

func (s *emailService) SendExtensionDecisionNotification(ctx context.Context, reference string, rentalID int64, decision string) error {
	body := fmt.Sprintf("Extension %s for rental %d was %s.", reference, rentalID, decision)
	return s.send(fmt.Sprintf("Extension %s - rental %d", decision, rentalID), body)
}

func (s *emailService) SendPendingExtensionReminder(ctx context.Context, pendingCount int, oldestReference string) error {
	body := fmt.Sprintf("There are %d extension requests waiting for review. Oldest: %s.", pendingCount, oldestReference)
	return s.send("Pending extension requests need review", body)
}
