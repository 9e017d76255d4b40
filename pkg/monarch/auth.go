package monarch

import (
	"context"

	"github.com/monarchmcp/monarch-mcp-server/internal/auth"
	internalTypes "github.com/monarchmcp/monarch-mcp-server/internal/types"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// newAuthService creates a new auth service
func newAuthService(client *Client) *authService {
	return &authService{
		client: client,
		service: auth.NewService(
			client.baseURL,
			client.httpClient,
			client.options.Logger,
		),
	}
}

// convertSession converts internal types.Session to monarch.Session
func (a *authService) convertSession(s *internalTypes.Session) *Session {
	if s == nil {
		return nil
	}
	return &Session{
		Token:      s.Token,
		UserID:     s.UserID,
		Email:      s.Email,
		ExpiresAt:  s.ExpiresAt,
		DeviceUUID: s.DeviceUUID,
	}
}

// adoptSession installs the freshly created session on client and transport.
func (a *authService) adoptSession() error {
	session, err := a.service.GetSession()
	if err != nil {
		return err
	}

	a.client.session = a.convertSession(session)
	a.client.transport.SetSession(session)

	return nil
}

// Login performs email/password authentication
func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := a.service.Login(ctx, email, password); err != nil {
		return err
	}
	return a.adoptSession()
}

// LoginWithMFA performs login with a one-time MFA code
func (a *authService) LoginWithMFA(ctx context.Context, email, password, mfaCode string) error {
	if err := a.service.LoginWithMFA(ctx, email, password, mfaCode); err != nil {
		return err
	}
	return a.adoptSession()
}

// LoginWithTOTP performs login deriving the MFA code from a TOTP secret
func (a *authService) LoginWithTOTP(ctx context.Context, email, password, totpSecret string) error {
	if err := a.service.LoginWithTOTP(ctx, email, password, totpSecret); err != nil {
		return err
	}
	return a.adoptSession()
}

// GetSession returns the current session
func (a *authService) GetSession() (*Session, error) {
	session, err := a.service.GetSession()
	if err != nil {
		return nil, err
	}
	return a.convertSession(session), nil
}
