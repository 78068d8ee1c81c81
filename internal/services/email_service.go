package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/artbranch/admin-api/internal/config"
)

// EmailService hands messages to the hosted transactional-email API. Delivery
// itself happens on the provider's side; this client only posts the payload
// and reports non-2xx responses.
type EmailService struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		httpClient: &http.Client{Timeout: cfg.EmailTimeout},
		apiURL:     cfg.EmailAPIURL,
		apiKey:     cfg.EmailAPIKey,
	}
}

type emailPayload struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Send posts one message to the delivery API.
func (s *EmailService) Send(email, message, msgType string) error {
	if s.apiURL == "" {
		return errors.New("email delivery is not configured")
	}

	body, err := json.Marshal(emailPayload{Email: email, Message: message, Type: msgType})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return nil
}

// SendGeneral delivers an ad-hoc staff message to an artist.
func (s *EmailService) SendGeneral(email, message string) error {
	return s.Send(email, message, "general")
}

// NotifyApproved implements VerificationNotifier. Failures are logged only;
// the decision has already committed.
func (s *EmailService) NotifyApproved(email string) {
	const message = "Congratulations! Your artist profile has been verified."
	if err := s.Send(email, message, "verification_approved"); err != nil {
		slog.Error("verification email failed", "error", err, "email", email)
	}
}
