// Package auth validates bearer tokens and exposes the authenticated caller
// to the rest of the request pipeline. Tokens are either minted locally by
// the login endpoint (HS256) or issued by an external provider whose keys
// are fetched over JWKS.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/config"
	"worktrack/tracker-api/internal/domain/authz"
)

type contextKey struct{}

var principalKey contextKey

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p *authz.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal, or nil when the
// request was not authenticated.
func PrincipalFromContext(ctx context.Context) *authz.Principal {
	p, _ := ctx.Value(principalKey).(*authz.Principal)
	return p
}

// Validator validates JWTs, either against the local signing secret or an
// external JWKS endpoint when one is configured.
type Validator struct {
	cfg  *config.Config
	log  zerolog.Logger
	jwks *keyfunc.JWKS
}

// NewValidator initializes JWKS fetching when an external key set is
// configured.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	if cfg.AuthJWKSURL == "" {
		return &Validator{cfg: cfg, log: log}, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}

	return &Validator{
		cfg:  cfg,
		log:  log,
		jwks: jwks,
	}, nil
}

// Middleware enforces bearer token auth and stores the caller's principal
// in the request context.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		token, err := v.parse(tokenString)
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		principal := principalFromClaims(claims)
		if principal.ID == "" {
			abortUnauthorized(c, "token has no subject")
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

func (v *Validator) parse(tokenString string) (*jwt.Token, error) {
	if v.jwks != nil {
		return jwt.Parse(tokenString, v.jwks.Keyfunc,
			jwt.WithIssuer(v.cfg.AuthIssuer),
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		)
	}
	return jwt.Parse(tokenString,
		func(_ *jwt.Token) (any, error) { return []byte(v.cfg.JWTSecret), nil },
		jwt.WithIssuer(v.cfg.AuthIssuer),
		jwt.WithAudience(v.cfg.AuthAudience),
		jwt.WithValidMethods([]string{"HS256"}),
	)
}

func principalFromClaims(claims jwt.MapClaims) *authz.Principal {
	principal := &authz.Principal{}
	principal.ID, _ = claims["sub"].(string)
	principal.Email, _ = claims["email"].(string)
	principal.Name, _ = claims["name"].(string)

	if raw, ok := claims["roles"].([]any); ok {
		for _, entry := range raw {
			if role, ok := entry.(string); ok {
				principal.Roles = append(principal.Roles, role)
			}
		}
	}
	return principal
}

// Ready indicates if the validator is prepared.
func (v *Validator) Ready() bool {
	if v == nil || v.cfg.AuthJWKSURL == "" {
		return true
	}
	return v.jwks != nil
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
