package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/config"
	dbm "wayfarer/internal/models/db_models"
	"wayfarer/pkg/memcache"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/utils"
)

type fakeIdentity struct {
	user *ExternalUser
	err  error
}

func (f *fakeIdentity) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (f *fakeIdentity) Exchange(_ context.Context, _ string) (*ExternalUser, error) {
	return f.user, f.err
}

func authConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{WebAppURL: "http://app.test/"},
		Auth: config.AuthConfig{
			JWTSecret:   "secret",
			SessionTTL:  time.Hour,
			AdminEmails: []string{"Boss@Example.com"},
		},
	}
}

func newAuth(idp IdentityProvider, profiles *fakeProfileRepo) AuthServiceInterface {
	cfg := authConfig()
	ps := NewProfileService(profiles, &fakeTripRepo{}, cfg)
	return NewAuthService(idp, ps, memcache.NewOAuthStates(), cfg)
}

func beginSignIn(t *testing.T, auth AuthServiceInterface, redirect string) string {
	t.Helper()
	authURL, err := auth.BeginSignIn(context.Background(), redirect)
	require.NoError(t, err)
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestSignInFlow(t *testing.T) {
	profiles := newFakeProfileRepo()
	idp := &fakeIdentity{user: &ExternalUser{ID: "g-1", Email: "boss@example.com", Name: "Boss"}}
	auth := newAuth(idp, profiles)

	state := beginSignIn(t, auth, "/dashboard")
	require.NotEmpty(t, state)

	token, redirect, err := auth.CompleteSignIn(context.Background(), state, "code")
	require.NoError(t, err)
	assert.Equal(t, "http://app.test/dashboard", redirect)

	claims, err := utils.ValidateSessionToken([]byte("secret"), token)
	require.NoError(t, err)
	assert.Equal(t, "g-1", claims.AccountID)

	require.Contains(t, profiles.profiles, "g-1")
	assert.Equal(t, dbm.RoleAdmin, profiles.profiles["g-1"].Role)

	_, _, err = auth.CompleteSignIn(context.Background(), state, "code")
	assert.ErrorIs(t, err, utils.ErrInvalidOAuthFlow, "state is single-use")
}

func TestSignInRejectsUnknownStateAndOpenRedirect(t *testing.T) {
	auth := newAuth(&fakeIdentity{user: &ExternalUser{ID: "g-1"}}, newFakeProfileRepo())

	_, _, err := auth.CompleteSignIn(context.Background(), "forged", "code")
	assert.ErrorIs(t, err, utils.ErrInvalidOAuthFlow)

	state := beginSignIn(t, auth, "//evil.example.com")
	_, redirect, err := auth.CompleteSignIn(context.Background(), state, "code")
	require.NoError(t, err)
	assert.Equal(t, "http://app.test/", redirect)
}

func TestSignInExchangeFailure(t *testing.T) {
	auth := newAuth(&fakeIdentity{err: errBoom}, newFakeProfileRepo())
	state := beginSignIn(t, auth, "/")

	_, _, err := auth.CompleteSignIn(context.Background(), state, "code")
	assert.ErrorIs(t, err, utils.ErrInvalidOAuthFlow)
}

func TestAdminGate(t *testing.T) {
	admin := dbm.Profile{AccountID: "a-1", Email: "admin@example.com", Name: "Ada", Role: dbm.RoleAdmin}
	user := dbm.Profile{AccountID: "u-1", Email: "user@example.com", Role: dbm.RoleUser}

	tests := []struct {
		name       string
		claims     *utils.SessionClaims
		wantAction GateAction
		wantCreate bool
	}{
		{"no session", nil, GateRedirectSignIn, false},
		{"admin", &utils.SessionClaims{AccountID: "a-1"}, GateAllow, false},
		{"plain user", &utils.SessionClaims{AccountID: "u-1"}, GateRedirectHome, false},
		{"missing profile becomes user", &utils.SessionClaims{AccountID: "n-1", Email: "new@example.com"}, GateRedirectHome, true},
		{"missing profile on admin list", &utils.SessionClaims{AccountID: "n-2", Email: "boss@example.com"}, GateAllow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := newFakeProfileRepo(admin, user)
			auth := newAuth(&fakeIdentity{}, profiles)

			decision, err := auth.CheckAdmin(context.Background(), tt.claims)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, decision.Action)
			assert.Equal(t, tt.wantCreate, profiles.inserted == 1)
		})
	}
}

func TestAdminGateReturnsStoredProfileUnchanged(t *testing.T) {
	admin := dbm.Profile{AccountID: "a-1", Email: "admin@example.com", Name: "Ada", Role: dbm.RoleAdmin}
	auth := newAuth(&fakeIdentity{}, newFakeProfileRepo(admin))

	decision, err := auth.CheckAdmin(context.Background(), &utils.SessionClaims{AccountID: "a-1", Name: "Someone Else"})
	require.NoError(t, err)
	require.NotNil(t, decision.Profile)
	assert.Equal(t, "Ada", decision.Profile.Name)
}

func TestAuthorizeAdmin(t *testing.T) {
	user := dbm.Profile{AccountID: "u-1", Role: dbm.RoleUser}
	auth := newAuth(&fakeIdentity{}, newFakeProfileRepo(user))

	verdict, err := auth.AuthorizeAdmin(context.Background(), &utils.SessionClaims{AccountID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, middleware.AdminNotAdmin, verdict)

	verdict, err = auth.AuthorizeAdmin(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, middleware.AdminNeedsSignIn, verdict)

	failing := newFakeProfileRepo()
	failing.findErr = errBoom
	_, err = newAuth(&fakeIdentity{}, failing).AuthorizeAdmin(context.Background(), &utils.SessionClaims{AccountID: "u-1"})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestAdminGateRejectsUnknownStoredRole(t *testing.T) {
	odd := dbm.Profile{AccountID: "o-1", Role: "owner"}
	auth := newAuth(&fakeIdentity{}, newFakeProfileRepo(odd))

	_, err := auth.CheckAdmin(context.Background(), &utils.SessionClaims{AccountID: "o-1"})
	assert.ErrorIs(t, err, utils.ErrInvalidRole)

	_, err = auth.AuthorizeAdmin(context.Background(), &utils.SessionClaims{AccountID: "o-1"})
	assert.ErrorIs(t, err, utils.ErrInvalidRole)
}

type fullStates struct{}

func (fullStates) Set(context.Context, string, string, time.Duration) error {
	return memcache.ErrStateStoreFull
}

func (fullStates) Consume(context.Context, string) (string, bool) { return "", false }

func TestBeginSignInWhenStateStoreIsFull(t *testing.T) {
	cfg := authConfig()
	ps := NewProfileService(newFakeProfileRepo(), &fakeTripRepo{}, cfg)
	auth := NewAuthService(&fakeIdentity{}, ps, fullStates{}, cfg)

	_, err := auth.BeginSignIn(context.Background(), "/")
	assert.ErrorIs(t, err, utils.ErrSignInUnavailable)
}
