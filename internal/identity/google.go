package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
	"github.com/Pavlo-fo95/ls-resort-backend/pkg/httpclient"
)

const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Federated login failure codes.
const (
	CodeExternalVerificationFailed = "EXTERNAL_VERIFICATION_FAILED"
	CodeAudienceMismatch           = "AUDIENCE_MISMATCH"
	CodeIncompleteAssertion        = "INCOMPLETE_ASSERTION"
)

// Assertion is the verified content of an identity token.
type Assertion struct {
	Email    string
	Subject  string
	Audience string
}

// Verifier checks an identity-provider assertion.
type Verifier interface {
	Verify(ctx context.Context, assertion string) (*Assertion, error)
}

// GoogleConfig configures GoogleVerifier.
type GoogleConfig struct {
	TokenInfoURL string
	// ClientID is the expected audience. Empty disables the audience check.
	ClientID string
}

// GoogleVerifier validates Google ID tokens through the tokeninfo endpoint.
type GoogleVerifier struct {
	client   *httpclient.CircuitBreakerClient
	endpoint string
	clientID string
	logger   *slog.Logger
}

func NewGoogleVerifier(client *httpclient.CircuitBreakerClient, cfg GoogleConfig, logger *slog.Logger) *GoogleVerifier {
	endpoint := cfg.TokenInfoURL
	if endpoint == "" {
		endpoint = DefaultTokenInfoURL
	}
	return &GoogleVerifier{client: client, endpoint: endpoint, clientID: cfg.ClientID, logger: logger}
}

type tokenInfo struct {
	Email string `json:"email"`
	Sub   string `json:"sub"`
	Aud   string `json:"aud"`
}

// Verify asks the provider about assertion and checks audience and claims.
func (v *GoogleVerifier) Verify(ctx context.Context, assertion string) (*Assertion, error) {
	u := v.endpoint + "?" + url.Values{"id_token": {assertion}}.Encode()

	resp, err := v.client.Get(ctx, u)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) {
			return nil, verificationFailed(se.Body)
		}
		v.logger.WarnContext(ctx, "tokeninfo request failed", slog.String("error", err.Error()))
		return nil, apperrors.New("SERVICE_UNAVAILABLE", "identity provider unavailable",
			http.StatusServiceUnavailable, fmt.Errorf("%w: %w", apperrors.ErrServiceUnavail, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, verificationFailed(httpclient.NewStatusError(resp).Body)
	}

	var info tokenInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&info); err != nil {
		return nil, apperrors.New(CodeExternalVerificationFailed, "identity token invalid: unreadable provider response",
			http.StatusUnauthorized, err)
	}

	if v.clientID != "" && info.Aud != v.clientID {
		return nil, apperrors.New(CodeAudienceMismatch, "identity token has wrong audience",
			http.StatusUnauthorized, apperrors.ErrUnauthorized)
	}
	if info.Email == "" || info.Sub == "" {
		return nil, apperrors.New(CodeIncompleteAssertion, "identity token invalid (no email/sub)",
			http.StatusUnauthorized, apperrors.ErrUnauthorized)
	}

	return &Assertion{Email: info.Email, Subject: info.Sub, Audience: info.Aud}, nil
}

func verificationFailed(body string) *apperrors.AppError {
	return apperrors.New(CodeExternalVerificationFailed, "identity token invalid: "+body,
		http.StatusUnauthorized, apperrors.ErrUnauthorized)
}
