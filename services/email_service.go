package services

import (
	"fmt"
	"time"

	"creditsystem/config"
	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendCreditCreatedNotification отправляет уведомление о регистрации кредитной заявки
func (s *EmailService) SendCreditCreatedNotification(to, creditCode string, creditValue float64, numberOfInstallments int) error {
	subject := "Your credit request was registered"
	body := fmt.Sprintf(`
		<h2>Credit request registered</h2>
		<p>Credit code: %s</p>
		<p>Credit value: %.2f</p>
		<p>Number of installments: %d</p>
		<p>Date: %s</p>
	`, creditCode, creditValue, numberOfInstallments, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}
