package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nazhanhafiz/psikometrik/config"
	"github.com/rs/zerolog/log"
)

// BillplzService is a thin client over the bill-payment gateway's HTTP API:
// create a bill at checkout, verify the X-Signature on the redirect back.
type BillplzService interface {
	CreateBill(ctx context.Context, req BillRequest) (*Bill, error)
	VerifyRedirect(params map[string]string, signature string) bool
}

type BillRequest struct {
	Email       string
	Name        string
	Description string
	Reference   string
	AmountSen   int
	RedirectURL string
	CallbackURL string
}

type Bill struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type billplzService struct {
	cfg    *config.Config
	client *http.Client
}

func NewBillplzService(cfg *config.Config) BillplzService {
	return &billplzService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *billplzService) CreateBill(ctx context.Context, req BillRequest) (*Bill, error) {
	form := url.Values{}
	form.Set("collection_id", s.cfg.Billplz.CollectionID)
	form.Set("email", req.Email)
	form.Set("name", req.Name)
	form.Set("description", req.Description)
	form.Set("reference_1_label", "Reference")
	form.Set("reference_1", req.Reference)
	form.Set("amount", strconv.Itoa(req.AmountSen))
	form.Set("redirect_url", req.RedirectURL)
	form.Set("callback_url", req.CallbackURL)

	endpoint := strings.TrimRight(s.cfg.Billplz.BaseURL, "/") + "/v3/bills"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build bill request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(s.cfg.Billplz.APIKey, "")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bill creation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error().Int("status", resp.StatusCode).Str("reference", req.Reference).Msg("Billplz rejected bill creation")
		return nil, fmt.Errorf("bill creation failed with status %d", resp.StatusCode)
	}

	var bill Bill
	if err := json.NewDecoder(resp.Body).Decode(&bill); err != nil {
		return nil, fmt.Errorf("failed to decode bill response: %w", err)
	}
	log.Info().Str("billID", bill.ID).Str("reference", req.Reference).Msg("Bill created")
	return &bill, nil
}

// VerifyRedirect checks the gateway's HMAC over the redirect parameters:
// keys sorted, "key" and value concatenated, elements joined with "|",
// HMAC-SHA256 hex with the shared X-Signature key.
func (s *billplzService) VerifyRedirect(params map[string]string, signature string) bool {
	if signature == "" {
		return false
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if strings.HasSuffix(k, "x_signature]") || k == "x_signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+params[k])
	}
	source := strings.Join(parts, "|")

	mac := hmac.New(sha256.New, []byte(s.cfg.Billplz.XSignatureKey))
	mac.Write([]byte(source))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
