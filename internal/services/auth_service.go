package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"wayfarer/internal/config"
	dbm "wayfarer/internal/models/db_models"
	"wayfarer/pkg/memcache"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/observability"
	"wayfarer/pkg/utils"
)

const oauthStateTTL = 10 * time.Minute

// ExternalUser is the identity returned by the sign-in provider.
type ExternalUser struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*ExternalUser, error)
}

type GoogleIdentityProvider struct {
	oauth2Config *oauth2.Config
}

func NewGoogleIdentityProvider(cfg *config.Config) *GoogleIdentityProvider {
	return &GoogleIdentityProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleClientSecret,
			RedirectURL:  cfg.Auth.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (g *GoogleIdentityProvider) AuthCodeURL(state string) string {
	return g.oauth2Config.AuthCodeURL(state)
}

func (g *GoogleIdentityProvider) Exchange(ctx context.Context, code string) (*ExternalUser, error) {
	start := time.Now()
	token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		observability.ObserveExternal("google", "token", 0, time.Since(start))
		return nil, err
	}
	observability.ObserveExternal("google", "token", 200, time.Since(start))

	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(g.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}

	start = time.Now()
	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		observability.ObserveExternal("google", "userinfo", 0, time.Since(start))
		return nil, err
	}
	observability.ObserveExternal("google", "userinfo", 200, time.Since(start))

	return &ExternalUser{
		ID:      info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// GateAction is the outcome of the admin gate.
type GateAction string

const (
	GateAllow          GateAction = "allow"
	GateRedirectSignIn GateAction = "redirect_sign_in"
	GateRedirectHome   GateAction = "redirect_home"
)

type GateDecision struct {
	Action  GateAction
	Profile *dbm.Profile
}

type AuthServiceInterface interface {
	BeginSignIn(ctx context.Context, redirect string) (string, error)
	CompleteSignIn(ctx context.Context, state, code string) (token string, redirect string, err error)
	CheckAdmin(ctx context.Context, claims *utils.SessionClaims) (GateDecision, error)
	AuthorizeAdmin(ctx context.Context, claims *utils.SessionClaims) (middleware.AdminVerdict, error)
}

type AuthService struct {
	provider IdentityProvider
	profiles ProfileServiceInterface
	states   memcache.StateStore
	secret   []byte
	ttl      time.Duration
	webApp   string
}

func NewAuthService(
	provider IdentityProvider,
	profiles ProfileServiceInterface,
	states memcache.StateStore,
	cfg *config.Config,
) AuthServiceInterface {
	return &AuthService{
		provider: provider,
		profiles: profiles,
		states:   states,
		secret:   []byte(cfg.Auth.JWTSecret),
		ttl:      cfg.Auth.SessionTTL,
		webApp:   strings.TrimRight(cfg.Server.WebAppURL, "/"),
	}
}

// BeginSignIn registers a one-time state and returns the provider consent URL.
func (a *AuthService) BeginSignIn(ctx context.Context, redirect string) (string, error) {
	state := uuid.New().String()
	if err := a.states.Set(ctx, state, safeRedirect(redirect), oauthStateTTL); err != nil {
		zap.L().Warn("cannot register oauth state", zap.Error(err))
		return "", fmt.Errorf("%w: %v", utils.ErrSignInUnavailable, err)
	}
	return a.provider.AuthCodeURL(state), nil
}

func (a *AuthService) CompleteSignIn(ctx context.Context, state, code string) (string, string, error) {
	redirect, ok := a.states.Consume(ctx, state)
	if !ok || code == "" {
		return "", "", utils.ErrInvalidOAuthFlow
	}

	identity, err := a.provider.Exchange(ctx, code)
	if err != nil {
		zap.L().Warn("oauth exchange failed", zap.Error(err))
		return "", "", fmt.Errorf("%w: %v", utils.ErrInvalidOAuthFlow, err)
	}
	if identity.ID == "" {
		return "", "", utils.ErrInvalidOAuthFlow
	}

	profile, err := a.profiles.EnsureProfile(ctx, *identity)
	if err != nil {
		return "", "", err
	}

	token, err := utils.CreateSessionToken(a.secret, profile.AccountID, profile.Email, profile.Name, a.ttl)
	if err != nil {
		return "", "", err
	}
	return token, a.webApp + redirect, nil
}

// CheckAdmin is the admin gate: missing profiles are created first, then the role decides.
func (a *AuthService) CheckAdmin(ctx context.Context, claims *utils.SessionClaims) (GateDecision, error) {
	if claims == nil || claims.AccountID == "" {
		return GateDecision{Action: GateRedirectSignIn}, nil
	}

	profile, err := a.profiles.EnsureProfile(ctx, ExternalUser{
		ID:    claims.AccountID,
		Email: claims.Email,
		Name:  claims.Name,
	})
	if err != nil {
		return GateDecision{}, err
	}

	if profile.Role != dbm.RoleAdmin {
		return GateDecision{Action: GateRedirectHome, Profile: profile}, nil
	}
	return GateDecision{Action: GateAllow, Profile: profile}, nil
}

func (a *AuthService) AuthorizeAdmin(ctx context.Context, claims *utils.SessionClaims) (middleware.AdminVerdict, error) {
	decision, err := a.CheckAdmin(ctx, claims)
	if err != nil {
		if errors.Is(err, utils.ErrDatabaseError) {
			return middleware.AdminNeedsSignIn, err
		}
		return middleware.AdminNeedsSignIn, errors.Join(utils.ErrDatabaseError, err)
	}

	switch decision.Action {
	case GateAllow:
		return middleware.AdminGranted, nil
	case GateRedirectHome:
		return middleware.AdminNotAdmin, nil
	default:
		return middleware.AdminNeedsSignIn, nil
	}
}

// safeRedirect keeps post-login redirects on the web app; the result is a path.
func safeRedirect(r string) string {
	if !strings.HasPrefix(r, "/") || strings.HasPrefix(r, "//") || strings.Contains(r, "\\") {
		return "/"
	}
	return r
}
