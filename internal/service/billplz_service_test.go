package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"testing"

	"github.com/nazhanhafiz/psikometrik/config"
)

func signParams(key string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+params[k])
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRedirect(t *testing.T) {
	cfg := &config.Config{}
	cfg.Billplz.XSignatureKey = "test-signature-key"
	svc := NewBillplzService(cfg)

	params := map[string]string{
		"billplz[id]":          "bill_abc123",
		"billplz[paid]":        "true",
		"billplz[paid_at]":     "2025-03-01 09:00:00 +0800",
		"billplz[reference_1]": "ref-xyz",
	}
	signature := signParams("test-signature-key", params)

	if !svc.VerifyRedirect(params, signature) {
		t.Error("valid signature rejected")
	}
	if !svc.VerifyRedirect(params, strings.ToUpper(signature)) {
		t.Error("signature comparison should be case-insensitive")
	}
}

func TestVerifyRedirectRejectsTampering(t *testing.T) {
	cfg := &config.Config{}
	cfg.Billplz.XSignatureKey = "test-signature-key"
	svc := NewBillplzService(cfg)

	params := map[string]string{
		"billplz[id]":          "bill_abc123",
		"billplz[paid]":        "false",
		"billplz[reference_1]": "ref-xyz",
	}
	signature := signParams("test-signature-key", params)

	params["billplz[paid]"] = "true"
	if svc.VerifyRedirect(params, signature) {
		t.Error("tampered parameters accepted")
	}
	if svc.VerifyRedirect(params, "") {
		t.Error("empty signature accepted")
	}
}

func TestVerifyRedirectExcludesSignatureParam(t *testing.T) {
	cfg := &config.Config{}
	cfg.Billplz.XSignatureKey = "test-signature-key"
	svc := NewBillplzService(cfg)

	params := map[string]string{
		"billplz[id]":   "bill_abc123",
		"billplz[paid]": "true",
	}
	signature := signParams("test-signature-key", params)

	// The signature parameter itself must not feed the HMAC.
	withSig := map[string]string{
		"billplz[id]":          "bill_abc123",
		"billplz[paid]":        "true",
		"billplz[x_signature]": signature,
	}
	if !svc.VerifyRedirect(withSig, signature) {
		t.Error("signature param should be excluded from the signed payload")
	}
}
