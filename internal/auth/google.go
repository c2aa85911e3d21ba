package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/users"
)

const (
	stateTTL    = 5 * time.Minute
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleService implements the Google OAuth sign-in flow: /start redirects
// the browser to Google, /callback exchanges the code and hands the UI a JWT.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	states      *stateCache
	users       *users.Service
}

// NewGoogleService builds a GoogleService.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, userSvc *users.Service) *GoogleService {
	return &GoogleService{
		users: userSvc,
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect: uiRedirect,
		states:     newStateCache(),
	}
}

// RegisterRoutes attaches the OAuth endpoints.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" &&
		s.oauthConfig.ClientSecret != "" &&
		s.oauthConfig.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.states.put(state, time.Now().Add(stateTTL))
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

func (s *GoogleService) callback(c *gin.Context) {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	if !s.states.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil || profile.Sub == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}

	userID := "google:" + profile.Sub
	s.recordSignIn(ctx, userID, profile)

	jwt, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:     userID,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}

// recordSignIn upserts the user profile. Failures do not block sign-in; the
// row catches up on the next login.
func (s *GoogleService) recordSignIn(ctx context.Context, userID string, profile googleProfile) {
	if s.users == nil {
		return
	}
	err := s.users.UpsertFromAuth(ctx, users.User{
		ID:         userID,
		Email:      profile.Email,
		FullName:   profile.Name,
		PictureURL: profile.Picture,
	})
	if err != nil {
		telemetry.Error("auth.user_upsert_failed", map[string]any{"error": err.Error()})
	}
}

type googleProfile struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	resp, err := s.oauthConfig.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return googleProfile{}, err
	}
	// Some responses use "id" instead of "sub".
	if profile.Sub == "" {
		profile.Sub = profile.ID
	}
	return profile, nil
}

// stateCache holds outstanding OAuth states until they are consumed or expire.
type stateCache struct {
	mu    sync.Mutex
	items map[string]time.Time
}

func newStateCache() *stateCache {
	return &stateCache{items: make(map[string]time.Time)}
}

func (s *stateCache) put(state string, exp time.Time) {
	s.mu.Lock()
	s.items[state] = exp
	s.mu.Unlock()
}

func (s *stateCache) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	delete(s.items, state)
	s.mu.Unlock()
	return ok && time.Now().Before(exp)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
