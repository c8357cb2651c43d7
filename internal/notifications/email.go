/*-------------------------------------------------------------------------
 *
 * email.go
 *    Email notification service
 *
 * Provides SMTP-based email delivery for approval invitations and
 * plan lifecycle events.
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/notifications/email.go
 *
 *-------------------------------------------------------------------------
 */

package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

/* EmailService provides email notification capabilities */
type EmailService struct {
	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	smtpFrom     string
	enabled      bool
}

/* NewEmailService creates a new email service */
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, smtpFrom string) *EmailService {
	return &EmailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		smtpFrom:     smtpFrom,
		enabled:      smtpHost != "" && smtpPort > 0,
	}
}

/* Enabled reports whether the service is configured for delivery */
func (e *EmailService) Enabled() bool {
	return e.enabled
}

/* SendEmail sends an email notification */
func (e *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if !e.enabled {
		return fmt.Errorf("email service not configured")
	}

	/* Validate email address */
	if !strings.Contains(to, "@") {
		return fmt.Errorf("invalid email address: %s", to)
	}

	/* Prepare message */
	msg := fmt.Sprintf("From: %s\r\n", e.smtpFrom)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n"
	msg += body

	/* SMTP authentication */
	auth := smtp.PlainAuth("", e.smtpUser, e.smtpPassword, e.smtpHost)

	/* Send email */
	addr := fmt.Sprintf("%s:%d", e.smtpHost, e.smtpPort)
	err := smtp.SendMail(addr, auth, e.smtpFrom, []string{to}, []byte(msg))
	if err != nil {
		return fmt.Errorf("email send failed: to='%s', subject='%s', error=%w", to, subject, err)
	}

	return nil
}

/* SendApprovalInvitation notifies an approver that a decision is requested */
func (e *EmailService) SendApprovalInvitation(ctx context.Context, to, planName string, approvalID string) error {
	subject := fmt.Sprintf("Approval requested for plan '%s'", planName)
	body := fmt.Sprintf(
		"You have been asked to approve the inheritance plan '%s'.\r\n"+
			"Approval ID: %s\r\n\r\n"+
			"Please review the plan and submit your decision.\r\n",
		planName, approvalID)
	return e.SendEmail(ctx, to, subject, body)
}
