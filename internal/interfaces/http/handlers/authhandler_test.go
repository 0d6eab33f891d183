package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	got    usecases.LoginCommand
	result *dto.TokenPairDTO
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*dto.TokenPairDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockRefreshTokenUC struct {
	result *dto.TokenPairDTO
	err    error
}

func (m *mockRefreshTokenUC) Execute(_ context.Context, _ usecases.RefreshTokenCommand) (*dto.TokenPairDTO, error) {
	return m.result, m.err
}

type mockGetMeUC struct {
	result *dto.UserDTO
	err    error
}

func (m *mockGetMeUC) Execute(_ context.Context, _ *permission.Principal) (*dto.UserDTO, error) {
	return m.result, m.err
}

type mockInitiateOAuthUC struct {
	result *usecases.InitiateOAuthLoginResult
	err    error
}

func (m *mockInitiateOAuthUC) Execute(_ context.Context) (*usecases.InitiateOAuthLoginResult, error) {
	return m.result, m.err
}

type mockHandleOAuthUC struct {
	got    usecases.OAuthCallbackCommand
	result *dto.TokenPairDTO
	err    error
}

func (m *mockHandleOAuthUC) Execute(_ context.Context, cmd usecases.OAuthCallbackCommand) (*dto.TokenPairDTO, error) {
	m.got = cmd
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type authTestDeps struct {
	loginUC     loginUseCase
	refreshUC   refreshTokenUseCase
	getMeUC     getMeUseCase
	initiateUC  initiateOAuthUseCase
	callbackUC  handleOAuthCallbackUseCase
	frontendURL string
}

func newTestAuthHandler(deps authTestDeps) *AuthHandler {
	return NewAuthHandler(
		deps.loginUC,
		deps.refreshUC,
		deps.getMeUC,
		deps.initiateUC,
		deps.callbackUC,
		testutil.NewMockLogger(),
		deps.frontendURL,
	)
}

func samplePair() *dto.TokenPairDTO {
	return &dto.TokenPairDTO{
		AccessToken:  "access.jwt",
		RefreshToken: "refresh.jwt",
		TokenType:    "Bearer",
		ExpiresIn:    900,
		User:         &dto.UserDTO{ID: "u-1", Email: "tech@example.com", Role: "technician"},
	}
}

// =====================================================================
// TestAuthHandler_Login
// =====================================================================

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUC := &mockLoginUC{result: samplePair()}
	handler := newTestAuthHandler(authTestDeps{loginUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "tech@example.com",
		Password: "correct-horse",
	})

	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tech@example.com", mockUC.got.Email)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var pair dto.TokenPairDTO
	require.NoError(t, json.Unmarshal(resp.Data, &pair))
	assert.Equal(t, "access.jwt", pair.AccessToken)
	assert.Equal(t, "Bearer", pair.TokenType)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		uc         *mockLoginUC
		wantStatus int
		wantType   string
	}{
		{
			name:       "invalid email",
			body:       map[string]string{"email": "nope", "password": "x"},
			uc:         &mockLoginUC{},
			wantStatus: http.StatusBadRequest,
			wantType:   "validation_error",
		},
		{
			name:       "wrong password",
			body:       LoginRequest{Email: "tech@example.com", Password: "wrong"},
			uc:         &mockLoginUC{err: errors.NewInvalidCredentialsError()},
			wantStatus: http.StatusUnauthorized,
			wantType:   "invalid_credentials",
		},
		{
			name:       "disabled account",
			body:       LoginRequest{Email: "tech@example.com", Password: "right"},
			uc:         &mockLoginUC{err: errors.NewAccountDisabledError()},
			wantStatus: http.StatusForbidden,
			wantType:   "account_disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAuthHandler(authTestDeps{loginUC: tt.uc})
			c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", tt.body)

			handler.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

// =====================================================================
// TestAuthHandler_RefreshToken
// =====================================================================

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := newTestAuthHandler(authTestDeps{refreshUC: &mockRefreshTokenUC{result: samplePair()}})
		c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{RefreshToken: "refresh.jwt"})

		handler.RefreshToken(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		handler := newTestAuthHandler(authTestDeps{refreshUC: &mockRefreshTokenUC{}})
		c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", map[string]string{})

		handler.RefreshToken(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		handler := newTestAuthHandler(authTestDeps{refreshUC: &mockRefreshTokenUC{err: errors.NewTokenInvalidError("token expired")}})
		c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{RefreshToken: "old"})

		handler.RefreshToken(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =====================================================================
// TestAuthHandler_GetCurrentUser
// =====================================================================

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	handler := newTestAuthHandler(authTestDeps{getMeUC: &mockGetMeUC{result: &dto.UserDTO{ID: "u-1", Name: "Tess"}}})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/me", nil)
	testutil.SetPrincipal(c, testutil.Principal("u-1", permission.RoleTechnician))

	handler.GetCurrentUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Tess"`)
}

func TestAuthHandler_GetCurrentUser_NotAuthenticated(t *testing.T) {
	handler := newTestAuthHandler(authTestDeps{getMeUC: &mockGetMeUC{}})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/me", nil)

	handler.GetCurrentUser(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// TestAuthHandler_OAuth
// =====================================================================

func TestAuthHandler_InitiateOAuth_Redirects(t *testing.T) {
	handler := newTestAuthHandler(authTestDeps{initiateUC: &mockInitiateOAuthUC{
		result: &usecases.InitiateOAuthLoginResult{AuthURL: "https://accounts.google.com/o/oauth2/auth?state=s1", State: "s1"},
	}})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/google", nil)

	handler.InitiateOAuth(c)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=s1", w.Header().Get("Location"))
}

func TestAuthHandler_InitiateOAuth_NotConfigured(t *testing.T) {
	handler := newTestAuthHandler(authTestDeps{initiateUC: &mockInitiateOAuthUC{
		err: errors.NewBadRequestError("Google sign-in is not configured"),
	}})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/google", nil)

	handler.InitiateOAuth(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_OAuthCallback_RedirectsWithTokens(t *testing.T) {
	mockUC := &mockHandleOAuthUC{result: samplePair()}
	handler := newTestAuthHandler(authTestDeps{callbackUC: mockUC, frontendURL: "https://desk.example.com/auth/callback"})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/google/callback", nil)
	testutil.SetQueryParams(c, map[string]string{"code": "c1", "state": "s1"})

	handler.HandleOAuthCallback(c)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "c1", mockUC.got.Code)
	assert.Equal(t, "s1", mockUC.got.State)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "desk.example.com", loc.Host)
	assert.Empty(t, loc.RawQuery)
	fragment, err := url.ParseQuery(loc.Fragment)
	require.NoError(t, err)
	assert.Equal(t, "access.jwt", fragment.Get("access_token"))
	assert.Equal(t, "refresh.jwt", fragment.Get("refresh_token"))
	assert.Equal(t, "900", fragment.Get("expires_in"))
}

func TestAuthHandler_OAuthCallback_ProviderError(t *testing.T) {
	mockUC := &mockHandleOAuthUC{}
	handler := newTestAuthHandler(authTestDeps{callbackUC: mockUC, frontendURL: "https://desk.example.com/login"})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/google/callback", nil)
	testutil.SetQueryParams(c, map[string]string{"error": "access_denied"})

	handler.HandleOAuthCallback(c)

	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.Contains(w.Header().Get("Location"), "#error="))
	assert.Empty(t, mockUC.got.Code)
}

func TestAuthHandler_OAuthCallback_NoFrontendReturnsJSON(t *testing.T) {
	tests := []struct {
		name       string
		uc         *mockHandleOAuthUC
		wantStatus int
	}{
		{"success", &mockHandleOAuthUC{result: samplePair()}, http.StatusOK},
		{"unknown email", &mockHandleOAuthUC{err: errors.NewForbiddenError("No account is registered for this email")}, http.StatusForbidden},
		{"unexpected", &mockHandleOAuthUC{err: stderrors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAuthHandler(authTestDeps{callbackUC: tt.uc})
			c, w := testutil.NewTestContext(http.MethodGet, "/api/auth/google/callback", nil)
			testutil.SetQueryParams(c, map[string]string{"code": "c1", "state": "s1"})

			handler.HandleOAuthCallback(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
