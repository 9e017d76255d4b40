package auth

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/monarchmcp/monarch-mcp-server/internal/types"
	"github.com/pkg/errors"
)

const (
	loginEndpoint = "/auth/login/"

	sessionTTL = 24 * time.Hour
)

// Service handles authentication against the Monarch Money login endpoint.
type Service struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	session    *types.Session
	logger     types.Logger
}

// NewService creates a new auth service
func NewService(baseURL string, httpClient *http.Client, logger types.Logger) *Service {
	headers := map[string]string{
		"Accept":          "application/json",
		"Content-Type":    "application/json",
		"Client-Platform": "web",
		"User-Agent":      types.UserAgent,
		"Origin":          "https://app.monarchmoney.com",
		"device-uuid":     uuid.New().String(),
	}

	return &Service{
		baseURL:    baseURL,
		httpClient: httpClient,
		headers:    headers,
		logger:     logger,
	}
}

// Login performs email/password authentication.
func (s *Service) Login(ctx context.Context, email, password string) error {
	return s.login(ctx, email, password, "")
}

// LoginWithMFA performs login with a one-time MFA code.
func (s *Service) LoginWithMFA(ctx context.Context, email, password, mfaCode string) error {
	err := s.login(ctx, email, password, "")
	if err != nil && !errors.Is(err, types.ErrMFARequired) {
		return err
	}
	return s.login(ctx, email, password, mfaCode)
}

// LoginWithTOTP performs login generating the MFA code from a TOTP secret.
func (s *Service) LoginWithTOTP(ctx context.Context, email, password, totpSecret string) error {
	code, err := GenerateTOTP(totpSecret, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to generate TOTP code")
	}

	err = s.login(ctx, email, password, "")
	if err != nil && !errors.Is(err, types.ErrMFARequired) {
		return err
	}
	return s.login(ctx, email, password, code)
}

// GetSession returns the current session
func (s *Service) GetSession() (*types.Session, error) {
	if s.session == nil {
		return nil, types.ErrNotAuthenticated
	}
	return s.session, nil
}

// SetSession sets the current session
func (s *Service) SetSession(session *types.Session) {
	s.session = session
}

// login performs the login request, with an optional TOTP code.
func (s *Service) login(ctx context.Context, email, password, mfaCode string) error {
	reqBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	if mfaCode != "" {
		reqBody["totp"] = mfaCode
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to marshal login request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+loginEndpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create login request")
	}

	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	if s.logger != nil {
		s.logger.Debug("Login request", "email", email, "mfa", mfaCode != "")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "login request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read login response")
	}

	if s.logger != nil {
		s.logger.Debug("Login response", "status", resp.StatusCode)
	}

	var loginResp loginResponse
	if err := json.Unmarshal(respBody, &loginResp); err != nil {
		return errors.Wrap(err, "failed to parse login response")
	}

	if loginResp.ErrorCode != "" {
		switch loginResp.ErrorCode {
		case "MFA_REQUIRED":
			return types.ErrMFARequired
		case "INVALID_CREDENTIALS":
			return types.ErrLoginFailed
		default:
			return &types.Error{
				Code:    loginResp.ErrorCode,
				Message: loginResp.Message,
			}
		}
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return types.ErrLoginFailed
		}
		return &types.Error{
			Code:       "LOGIN_FAILED",
			Message:    fmt.Sprintf("login failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if loginResp.Token == "" {
		return errors.New("no token in login response")
	}

	s.session = &types.Session{
		Token:      loginResp.Token,
		UserID:     loginResp.UserID,
		Email:      email,
		ExpiresAt:  time.Now().Add(sessionTTL),
		DeviceUUID: s.headers["device-uuid"],
	}

	if s.logger != nil {
		s.logger.Info("Login successful", "email", email)
	}

	return nil
}

// GenerateTOTP generates a 6-digit RFC 6238 code for the given secret at the
// given time (SHA-1, 30 second step).
func GenerateTOTP(secret string, at time.Time) (string, error) {
	secret = strings.ReplaceAll(strings.ToUpper(secret), " ", "")

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return "", errors.Wrap(err, "failed to decode TOTP secret")
	}

	counter := at.Unix() / 30

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(counter))

	h := hmac.New(sha1.New, key)
	h.Write(buf)
	hash := h.Sum(nil)

	// Dynamic truncation
	offset := hash[len(hash)-1] & 0x0f
	code := binary.BigEndian.Uint32(hash[offset:offset+4]) & 0x7fffffff
	code = code % 1000000

	return fmt.Sprintf("%06d", code), nil
}

// loginResponse represents the login API response
type loginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
