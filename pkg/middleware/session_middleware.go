package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wayfarer/pkg/utils"
)

const (
	sessionKey   = "session"
	accountIDKey = "account_id"

	SignInPage = "/sign-in"
	HomePage   = "/"
)

// Redirects holds the absolute web app URLs that page requests are sent to.
type Redirects struct {
	SignIn string
	Home   string
}

func NewRedirects(webAppURL string) Redirects {
	base := strings.TrimRight(webAppURL, "/")
	return Redirects{SignIn: base + SignInPage, Home: base + HomePage}
}

type SessionOptions struct {
	Secret     []byte
	CookieName string
	Redirects  Redirects
}

// SessionMiddleware requires a valid session cookie. API routes answer 401,
// page routes are redirected to the sign-in page.
func SessionMiddleware(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(opts.CookieName)
		if err != nil || token == "" {
			deny(c, AdminNeedsSignIn, opts.Redirects)
			return
		}

		claims, err := utils.ValidateSessionToken(opts.Secret, token)
		if err != nil {
			deny(c, AdminNeedsSignIn, opts.Redirects)
			return
		}

		c.Set(sessionKey, claims)
		c.Set(accountIDKey, claims.AccountID)
		c.Next()
	}
}

// AdminVerdict is what the admin gate decided for a session.
type AdminVerdict int

const (
	AdminGranted AdminVerdict = iota
	AdminNeedsSignIn
	AdminNotAdmin
)

// AdminAuthorizer decides whether the signed-in account may open admin pages.
type AdminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, claims *utils.SessionClaims) (AdminVerdict, error)
}

// AdminOnly must run after SessionMiddleware.
func AdminOnly(authz AdminAuthorizer, redirects Redirects) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := SessionFrom(c)
		if !ok {
			deny(c, AdminNeedsSignIn, redirects)
			return
		}

		verdict, err := authz.AuthorizeAdmin(c.Request.Context(), claims)
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}
		if verdict != AdminGranted {
			deny(c, verdict, redirects)
			return
		}

		c.Next()
	}
}

// SessionFrom returns the claims stored by SessionMiddleware.
func SessionFrom(c *gin.Context) (*utils.SessionClaims, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.SessionClaims)
	return claims, ok && claims != nil
}

func GetAccountID(c *gin.Context) string {
	return c.GetString(accountIDKey)
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func deny(c *gin.Context, verdict AdminVerdict, redirects Redirects) {
	defer c.Abort()

	if isAPIRequest(c) {
		if verdict == AdminNotAdmin {
			utils.HandleServiceError(c, utils.ErrForbidden)
		} else {
			utils.HandleServiceError(c, utils.ErrUnauthorized)
		}
		return
	}

	if verdict == AdminNotAdmin {
		c.Redirect(http.StatusFound, redirects.Home)
	} else {
		c.Redirect(http.StatusFound, redirects.SignIn)
	}
}
