package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Config holds SMTP configuration. Leave Username/Password empty to run
// without a mail server: codes are echoed to the console instead.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Mailer handles sending emails
type Mailer struct {
	config Config
}

// New creates a new Mailer instance
func New(cfg Config) *Mailer {
	return &Mailer{config: cfg}
}

// Configured reports whether SMTP credentials are present
func (m *Mailer) Configured() bool {
	return m.config.Username != "" && m.config.Password != ""
}

// SendOTP sends a verification code email. The purpose only changes the
// wording; the delivery path is identical.
func (m *Mailer) SendOTP(toEmail, name, code string, expiryMinutes int, purpose string) error {
	var subject, action string
	switch purpose {
	case "password_reset":
		subject = "Password Reset - HelpLink"
		action = "reset your password"
	case "email_verification":
		subject = "Email Verification - HelpLink"
		action = "verify your email"
	default:
		subject = "Verification Code - HelpLink"
		action = "complete your request"
	}

	htmlBody, err := renderOTPTemplate(name, code, action, expiryMinutes)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := fmt.Sprintf(
		"Hello %s,\n\nYou requested to %s. Your verification code: %s\n\n"+
			"This code is valid for %d minutes. Do not share it with anyone.\n"+
			"If you didn't request this code, please ignore this email.\n",
		name, action, code, expiryMinutes)

	return m.Send(toEmail, subject, htmlBody, textBody)
}

// Send delivers an email. Without SMTP credentials the message is echoed
// to the console and treated as delivered (development fallback).
func (m *Mailer) Send(to, subject, htmlBody, textBody string) error {
	if !m.Configured() {
		log.Println("⚠️  SMTP not configured - email not sent")
		log.Printf("📧 To: %s | Subject: %s", to, subject)
		log.Printf("📄 %s", textBody)
		return nil
	}

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	boundary := "helplink-alt-boundary"
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.config.FromName, m.config.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg.Bytes()); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}

// renderOTPTemplate returns the HTML body for a verification code email
func renderOTPTemplate(name, code, action string, expiryMinutes int) (string, error) {
	tmpl := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:20px;background-color:#f5f5f5;font-family:Arial,sans-serif;color:#333;">
    <div style="max-width:600px;margin:20px auto;background:#ffffff;border-radius:10px;overflow:hidden;box-shadow:0 2px 10px rgba(0,0,0,0.1);">
        <!-- Header -->
        <div style="background:linear-gradient(135deg,#2196F3 0%,#1976D2 100%);padding:30px 20px;text-align:center;border-bottom:3px solid #1565C0;">
            <h1 style="color:#fff;margin:0;font-size:36px;font-weight:bold;">HelpLink</h1>
        </div>

        <!-- Body -->
        <div style="padding:30px;">
            <p style="line-height:1.6;">Hello <strong>{{.Name}}</strong>,</p>
            <p style="line-height:1.6;">You requested to {{.Action}}. Please use the following verification code:</p>

            <!-- OTP Code -->
            <div style="background:linear-gradient(135deg,#2196F3 0%,#1976D2 100%);color:white;font-size:32px;font-weight:bold;text-align:center;padding:20px;border-radius:8px;letter-spacing:8px;margin:20px 0;">{{.Code}}</div>

            <div style="background-color:#E3F2FD;border-left:4px solid #2196F3;padding:15px;margin:20px 0;border-radius:4px;">
                <strong style="color:#1565C0;">Important:</strong>
                <ul style="margin:10px 0;padding-left:20px;">
                    <li style="margin:5px 0;">This code is valid for <strong>{{.ExpiryMinutes}} minutes</strong></li>
                    <li style="margin:5px 0;">Do not share this code with anyone</li>
                    <li style="margin:5px 0;">If you didn't request this code, please ignore this email</li>
                </ul>
            </div>

            <p style="line-height:1.6;">If you have any questions or need assistance, please contact our support team.</p>
        </div>

        <!-- Footer -->
        <div style="padding:20px 30px;background-color:#f5f5f5;border-top:1px solid #ddd;text-align:center;color:#666;font-size:14px;">
            <p style="margin:0;">&copy; 2025 HelpLink. All rights reserved.</p>
            <p style="font-size:12px;color:#999;margin:8px 0 0;">This is an automated message, please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>`

	t, err := template.New("otp").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, map[string]interface{}{
		"Name":          name,
		"Code":          code,
		"Action":        action,
		"ExpiryMinutes": expiryMinutes,
	})
	return buf.String(), err
}
