package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TwilioClient places automated voice calls through the Twilio REST API
// (or imitates them in dry-run mode).
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	DryRun     bool
}

type PlaceCallResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewTwilioClient(accountSID, authToken, fromNumber string, dryRun bool) *TwilioClient {
	return &TwilioClient{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		DryRun:     dryRun,
	}
}

// PlaceCall dials `to` and speaks the given TwiML.
func (c *TwilioClient) PlaceCall(to, twiml string) (*PlaceCallResponse, error) {
	// DRY-RUN: no HTTP request
	if c.DryRun {
		fmt.Printf("[twilio][dry-run] to=%s from=%q twiml=%q\n", to, c.FromNumber, twiml)
		return &PlaceCallResponse{Status: "queued"}, nil
	}
	if c.AccountSID == "" || c.AuthToken == "" || c.FromNumber == "" {
		return nil, fmt.Errorf("twilio credentials are not configured")
	}

	apiURL := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Calls.json", c.AccountSID)

	form := url.Values{
		"To":    {to},
		"From":  {c.FromNumber},
		"Twiml": {twiml},
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build call request: %w", err)
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place call request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result PlaceCallResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse call response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("twilio returned %d: %s", resp.StatusCode, result.Message)
	}
	return &result, nil
}
