// Package mailer sends transactional email through the Resend HTTP API.
// Send reports success as a boolean and never panics; a lost email must not
// fail the operation that triggered it.
package mailer

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"supergp/logging"
)

type Mailer interface {
	Send(to, subject, html string, cc ...string) bool
}

type Resend struct {
	apiKey string
	from   string
	client *http.Client
}

func NewResend(apiKey, from string) *Resend {
	return &Resend{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type resendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (r *Resend) Send(to, subject, html string, cc ...string) bool {
	if r.apiKey == "" {
		logging.Log.Warn("mailer: RESEND_API_KEY not set, skipping send")
		return false
	}
	var copies []string
	for _, addr := range cc {
		if addr != "" {
			copies = append(copies, addr)
		}
	}
	payload := resendReq{
		From:    r.from,
		To:      []string{to},
		CC:      copies,
		Subject: subject,
		HTML:    html,
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		logging.Log.WithError(err).Error("mailer: build request")
		return false
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		logging.Log.WithError(err).Error("mailer: send")
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		logging.Log.WithField("status", resp.StatusCode).Errorf("mailer: resend error: %s", respBody)
		return false
	}
	logging.Log.WithField("to", to).Info("mailer: email sent")
	return true
}
