package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/parcelx-next/internal/config"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// OrderConfirmationEmailInput 订单确认邮件输入
type OrderConfirmationEmailInput struct {
	TrackingID       string
	CustomerName     string
	From             string
	To               string
	ExpectedDelivery *time.Time
}

// SendOrderConfirmationEmail 发送下单确认邮件
func (s *EmailService) SendOrderConfirmationEmail(toEmail string, input OrderConfirmationEmailInput) error {
	subject, body := buildOrderConfirmationContent(input)
	return s.sendEmail(toEmail, subject, body, false)
}

// StatusUpdateEmailInput 状态更新邮件输入
type StatusUpdateEmailInput struct {
	TrackingID   string
	CustomerName string
	Status       string
	Location     string
	Notes        string
}

// SendStatusUpdateEmail 发送状态更新通知邮件
func (s *EmailService) SendStatusUpdateEmail(toEmail string, input StatusUpdateEmailInput) error {
	subject, body := buildStatusUpdateContent(input)
	return s.sendEmail(toEmail, subject, body, false)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string, isHTML bool) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "ParcelX SMTP Test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test email from ParcelX. Your SMTP configuration is working."
	}
	return s.sendEmail(toEmail, subject, body, isHTML)
}

func buildOrderConfirmationContent(input OrderConfirmationEmailInput) (string, string) {
	subject := fmt.Sprintf("Order Confirmed - %s", input.TrackingID)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = "Customer"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	b.WriteString("Your order has been placed successfully.\n\n")
	fmt.Fprintf(&b, "Tracking ID: %s\n", input.TrackingID)
	fmt.Fprintf(&b, "From: %s\n", input.From)
	fmt.Fprintf(&b, "To: %s\n", input.To)
	if input.ExpectedDelivery != nil {
		fmt.Fprintf(&b, "Expected Delivery: %s\n", input.ExpectedDelivery.Format("January 2, 2006"))
	}
	b.WriteString("\nYou can track your parcel at any time using the tracking ID above.\n\nThank you for choosing ParcelX.")
	return subject, b.String()
}

func buildStatusUpdateContent(input StatusUpdateEmailInput) (string, string) {
	subject := fmt.Sprintf("Shipment Update - %s: %s", input.TrackingID, input.Status)

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = "Customer"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Your parcel %s has a new status update.\n\n", input.TrackingID)
	fmt.Fprintf(&b, "Status: %s\n", input.Status)
	if location := strings.TrimSpace(input.Location); location != "" {
		fmt.Fprintf(&b, "Location: %s\n", location)
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	b.WriteString("\nYou can track your parcel at any time using the tracking ID above.\n\nThank you for choosing ParcelX.")
	return subject, b.String()
}

func (s *EmailService) sendEmail(toEmail, subject, body string, isHTML bool) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body, isHTML)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string, isHTML bool) string {
	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: %s; charset=UTF-8\r\n", contentType))
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
