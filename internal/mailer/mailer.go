// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends transactional email through Postmark. It covers
// the two flows the newsroom needs: password resets and welcome mail for
// newly created author accounts.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrz1836/postmark"
)

// Mailer sends transactional email for the admin auth flows.
type Mailer struct {
	client  *postmark.Client
	from    string
	baseURL string
}

// New creates a Postmark-backed mailer. baseURL is the public origin of
// the site, used to build links embedded in messages.
func New(serverToken, accountToken, from, baseURL string) (*Mailer, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("mailer: server token is required")
	}
	if from == "" {
		return nil, fmt.Errorf("mailer: from address is required")
	}
	return &Mailer{
		client:  postmark.NewClient(serverToken, accountToken),
		from:    from,
		baseURL: baseURL,
	}, nil
}

// SendPasswordReset emails a reset link containing the one-time token.
// The token is only ever sent here; the database stores its hash.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/admin/reset-password/%s", m.baseURL, token)

	body := fmt.Sprintf(`<p>A password reset was requested for your Daily Chronicle account.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in 10 minutes. If you did not request this, you can ignore this email.</p>`, link)

	return m.send(ctx, postmark.Email{
		From:     m.from,
		To:       to,
		Subject:  "Reset your Daily Chronicle password",
		Tag:      "password-reset",
		HTMLBody: body,
		TextBody: fmt.Sprintf("Reset your password: %s\nThe link expires in 10 minutes.", link),
	})
}

// SendAuthorWelcome notifies a newly created author and points them at
// the login page to set up their account.
func (m *Mailer) SendAuthorWelcome(ctx context.Context, to, displayName string) error {
	link := m.baseURL + "/admin/login"

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>An author account has been created for you on Daily Chronicle.</p>
<p><a href="%s">Sign in</a> with the credentials you were given, then set up two-factor authentication.</p>`, displayName, link)

	return m.send(ctx, postmark.Email{
		From:     m.from,
		To:       to,
		Subject:  "Your Daily Chronicle author account",
		Tag:      "author-welcome",
		HTMLBody: body,
		TextBody: fmt.Sprintf("Hi %s, your author account is ready. Sign in at %s", displayName, link),
	})
}

func (m *Mailer) send(ctx context.Context, email postmark.Email) error {
	resp, err := m.client.SendEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("mailer send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("mailer send: postmark error %d: %s", resp.ErrorCode, resp.Message)
	}
	slog.Info("email sent", "to", email.To, "tag", email.Tag)
	return nil
}
