package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// GoogleClient exchanges OAuth authorization codes for user profiles.
type GoogleClient struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type GoogleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewGoogleClient(clientID, clientSecret, redirectURL string) *GoogleClient {
	return &GoogleClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
	}
}

// FetchUserInfo runs the full authorization-code flow: code -> access token
// -> userinfo.
func (c *GoogleClient) FetchUserInfo(code string) (*GoogleUserInfo, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return nil, fmt.Errorf("google oauth credentials are not configured")
	}

	form := url.Values{
		"code":          {code},
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"redirect_uri":  {c.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	resp, err := http.PostForm(googleTokenURL, form)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("parse token response: %w", err)
	}
	if resp.StatusCode >= 300 || token.AccessToken == "" {
		return nil, fmt.Errorf("google token endpoint returned %d", resp.StatusCode)
	}

	infoURL := fmt.Sprintf("%s?alt=json&access_token=%s", googleUserInfoURL, url.QueryEscape(token.AccessToken))
	infoResp, err := http.Get(infoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer infoResp.Body.Close()

	infoBody, _ := io.ReadAll(infoResp.Body)

	var info GoogleUserInfo
	if err := json.Unmarshal(infoBody, &info); err != nil {
		return nil, fmt.Errorf("parse userinfo response: %w", err)
	}
	if infoResp.StatusCode >= 300 || info.Email == "" {
		return nil, fmt.Errorf("google userinfo endpoint returned %d", infoResp.StatusCode)
	}
	return &info, nil
}
