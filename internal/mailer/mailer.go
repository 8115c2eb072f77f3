// Package mailer delivers booking status notifications through the hosted
// transactional-email HTTP API the site uses. Delivery is best-effort; the
// booking workflow treats a failed send as a reportable, non-fatal error.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"venue-booking-backend/internal/env"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type Mailer interface {
	SendBookingStatusEmail(ctx context.Context, msg BookingStatusEmail) error
}

type BookingStatusEmail struct {
	Status        string
	ToEmail       string
	ToName        string
	VenueTitle    string
	EventDate     string
	EventCategory string
	AdminMessage  string
}

type Client struct {
	endpoint    string
	serviceID   string
	publicKey   string
	acceptedTpl string
	rejectedTpl string
	httpClient  *http.Client
}

func New() *Client {
	return &Client{
		endpoint:    env.GetOrDefault(env.EmailEndpoint, defaultEndpoint),
		serviceID:   env.Get(env.EmailServiceID),
		publicKey:   env.Get(env.EmailPublicKey),
		acceptedTpl: env.Get(env.EmailAcceptedTpl),
		rejectedTpl: env.Get(env.EmailRejectedTpl),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithConfig is used by tests to point the client at a stub server.
func NewWithConfig(endpoint, serviceID, publicKey, acceptedTpl, rejectedTpl string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		endpoint:    endpoint,
		serviceID:   serviceID,
		publicKey:   publicKey,
		acceptedTpl: acceptedTpl,
		rejectedTpl: rejectedTpl,
		httpClient:  httpClient,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *Client) SendBookingStatusEmail(ctx context.Context, msg BookingStatusEmail) error {
	if c.serviceID == "" || c.publicKey == "" {
		return fmt.Errorf("mailer: email service not configured")
	}

	templateID, err := c.templateFor(msg.Status)
	if err != nil {
		return err
	}

	params, err := templateParams(msg)
	if err != nil {
		return err
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("mailer: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("mailer: send failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func (c *Client) templateFor(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "accepted":
		if c.acceptedTpl == "" {
			return "", fmt.Errorf("mailer: no template configured for accepted bookings")
		}
		return c.acceptedTpl, nil
	case "rejected":
		if c.rejectedTpl == "" {
			return "", fmt.Errorf("mailer: no template configured for rejected bookings")
		}
		return c.rejectedTpl, nil
	default:
		return "", fmt.Errorf("mailer: unsupported booking status %q", status)
	}
}

func templateParams(msg BookingStatusEmail) (map[string]string, error) {
	normalise := func(value, fallback string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return fallback
		}
		return value
	}

	toEmail := strings.TrimSpace(msg.ToEmail)
	if toEmail == "" {
		return nil, fmt.Errorf("mailer: recipient email missing")
	}

	return map[string]string{
		"status":         strings.ToLower(strings.TrimSpace(msg.Status)),
		"to_email":       toEmail,
		"email":          toEmail,
		"reply_to":       toEmail,
		"to_name":        normalise(msg.ToName, "Guest"),
		"venue_title":    normalise(msg.VenueTitle, "Selected venue"),
		"event_date":     normalise(msg.EventDate, "Not provided"),
		"event_category": normalise(msg.EventCategory, "Not specified"),
		"admin_message":  strings.TrimSpace(msg.AdminMessage),
	}, nil
}
