package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Identity is the verified (email, name, picture) tuple returned by the
// external identity provider. The email is trusted as proof of ownership.
type Identity struct {
	Email   string
	Name    string
	Picture *string
}

// IdentityProvider abstracts the OAuth exchange for handlers and tests.
type IdentityProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// GoogleProvider exchanges an authorization code for a verified identity via
// Google's OAuth2 endpoints.
type GoogleProvider struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Client       *http.Client
}

func (g *GoogleProvider) AuthURL(state string) string {
	params := url.Values{
		"client_id":     {g.ClientID},
		"redirect_uri":  {g.RedirectURI},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"access_type":   {"offline"},
		"state":         {state},
		"prompt":        {"consent"},
	}
	return googleAuthURL + "?" + params.Encode()
}

func (g *GoogleProvider) httpClient() *http.Client {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 15 * time.Second}
	}
	return g.Client
}

// Exchange trades the authorization code for an access token and fetches the
// user profile with it.
func (g *GoogleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {g.ClientID},
		"client_secret": {g.ClientSecret},
		"redirect_uri":  {g.RedirectURI},
		"grant_type":    {"authorization_code"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := g.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google token exchange failed: status %d", resp.StatusCode)
	}
	var tokenBody struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenBody); err != nil {
		return nil, err
	}
	if tokenBody.AccessToken == "" {
		return nil, fmt.Errorf("google token exchange returned no access token")
	}

	infoReq, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	infoReq.Header.Set("Authorization", "Bearer "+tokenBody.AccessToken)
	infoResp, err := g.httpClient().Do(infoReq)
	if err != nil {
		return nil, err
	}
	defer infoResp.Body.Close()
	if infoResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo failed: status %d", infoResp.StatusCode)
	}
	var info struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(infoResp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google userinfo returned no email")
	}
	ident := &Identity{Email: info.Email, Name: info.Name}
	if info.Picture != "" {
		ident.Picture = &info.Picture
	}
	return ident, nil
}
