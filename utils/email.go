package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// sendEmail delivers a single plain-text message over SMTP with STARTTLS.
// When SMTP is not configured the message is logged and dropped, so local
// setups work without a mail server.
func sendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUsername := os.Getenv("SMTP_USERNAME")
	smtpPassword := os.Getenv("SMTP_PASSWORD")
	smtpFromName := os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail := os.Getenv("SMTP_FROM_EMAIL")

	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		log.Printf("SMTP not configured, dropping mail to %s (%s)", to, subject)
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: smtpHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		smtpFromName, smtpFromEmail, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// SendResetLink emails a password reset link built from FRONTEND_URL.
func SendResetLink(to, token string) error {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:8080"
	}

	link := fmt.Sprintf("%s/auth-pages/reset-password?token=%s", frontendURL, token)
	body := fmt.Sprintf("A password reset was requested for your account.\n\n"+
		"Open the link below to choose a new password. The link expires in 15 minutes.\n\n%s\n\n"+
		"If you did not request this, ignore this email.", link)

	return sendEmail(to, "Password reset", body)
}
