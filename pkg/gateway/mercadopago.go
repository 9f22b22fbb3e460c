// Package gateway wraps the Mercado Pago checkout API: preference (payment
// link) creation, single payment lookup and payment search by external
// reference. The access token is passed per call because each event can run
// on the organizer's own account with the platform account as fallback.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"supergp/logging"
)

const StatusApproved = "approved"

type PreferenceRequest struct {
	Title             string
	Amount            float64
	PayerName         string
	PayerEmail        string
	ExternalReference string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
	NotificationURL   string
}

type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type Payment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
}

// Client is the narrow surface the registration flow needs; tests fake it.
type Client interface {
	CreatePreference(ctx context.Context, accessToken string, req PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, accessToken, paymentID string) (*Payment, error)
	SearchByReference(ctx context.Context, accessToken, externalRef string) ([]Payment, error)
}

type MercadoPago struct {
	baseURL string
	client  *http.Client
}

func NewMercadoPago(baseURL string) *MercadoPago {
	if baseURL == "" {
		baseURL = "https://api.mercadopago.com"
	}
	return &MercadoPago{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type mpItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type mpPayer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type mpBackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type mpPreferenceReq struct {
	Items             []mpItem   `json:"items"`
	Payer             mpPayer    `json:"payer"`
	BackURLs          mpBackURLs `json:"back_urls"`
	AutoReturn        string     `json:"auto_return,omitempty"`
	ExternalReference string     `json:"external_reference"`
	NotificationURL   string     `json:"notification_url,omitempty"`
}

func (m *MercadoPago) CreatePreference(ctx context.Context, accessToken string, req PreferenceRequest) (*Preference, error) {
	payload := mpPreferenceReq{
		Items: []mpItem{{Title: req.Title, Quantity: 1, UnitPrice: req.Amount}},
		Payer: mpPayer{Name: req.PayerName, Email: req.PayerEmail},
		BackURLs: mpBackURLs{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		AutoReturn:        "approved",
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
	}
	var out Preference
	if err := m.do(ctx, http.MethodPost, "/checkout/preferences", accessToken, payload, &out); err != nil {
		return nil, err
	}
	logging.Log.WithField("preference_id", out.ID).Debug("mercadopago: preference created")
	return &out, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, accessToken, paymentID string) (*Payment, error) {
	var out Payment
	if err := m.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type mpSearchResp struct {
	Results []Payment `json:"results"`
}

func (m *MercadoPago) SearchByReference(ctx context.Context, accessToken, externalRef string) ([]Payment, error) {
	path := "/v1/payments/search?external_reference=" + url.QueryEscape(externalRef)
	var out mpSearchResp
	if err := m.do(ctx, http.MethodGet, path, accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (m *MercadoPago) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Log.WithFields(map[string]interface{}{
			"status": resp.StatusCode,
			"path":   path,
		}).Warnf("mercadopago: error response: %s", respBody)
		return fmt.Errorf("mercadopago: %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(respBody, out)
	}
	return nil
}
