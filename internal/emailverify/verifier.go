// Package emailverify checks email deliverability against the hunter.io
// email-verifier API during signup.
package emailverify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Verdict is the verifier's answer for an address.
type Verdict int

const (
	// VerdictUnknown means the verifier could not produce an answer; callers
	// decide whether to fail open.
	VerdictUnknown Verdict = iota
	// VerdictDeliverable means the address accepted mail.
	VerdictDeliverable
	// VerdictUndeliverable means the address was explicitly rejected.
	VerdictUndeliverable
)

// Verifier answers whether an email address can receive mail.
type Verifier interface {
	Verify(ctx context.Context, email string) (Verdict, error)
}

// HunterVerifier calls the hunter.io v2 email-verifier endpoint.
type HunterVerifier struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHunterVerifier creates a verifier using the given API key.
func NewHunterVerifier(apiKey string) *HunterVerifier {
	return &HunterVerifier{
		apiKey:  apiKey,
		baseURL: "https://api.hunter.io/v2/email-verifier",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewHunterVerifierWithBase is like NewHunterVerifier with a custom endpoint,
// used by tests to point at a stub server.
func NewHunterVerifierWithBase(apiKey, baseURL string) *HunterVerifier {
	v := NewHunterVerifier(apiKey)
	v.baseURL = baseURL
	return v
}

type verifierResponse struct {
	Data struct {
		Result string `json:"result"`
	} `json:"data"`
}

// Verify queries hunter.io for the address. Network or API failures return
// VerdictUnknown with the error so callers can fail open.
func (v *HunterVerifier) Verify(ctx context.Context, email string) (Verdict, error) {
	endpoint := fmt.Sprintf("%s?email=%s&api_key=%s",
		v.baseURL, url.QueryEscape(email), url.QueryEscape(v.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return VerdictUnknown, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return VerdictUnknown, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerdictUnknown, fmt.Errorf("email verifier returned status %d", resp.StatusCode)
	}

	var body verifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return VerdictUnknown, err
	}

	switch body.Data.Result {
	case "deliverable":
		return VerdictDeliverable, nil
	case "undeliverable":
		return VerdictUndeliverable, nil
	default:
		// "risky" and friends are not grounds to reject a signup.
		return VerdictUnknown, nil
	}
}
