package gateway

import (
	"errors"
	"testing"
)

func TestNewRazorpayProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RazorpayConfig
		wantErr error
	}{
		{
			name: "valid credentials",
			cfg:  RazorpayConfig{KeyID: "rzp_test_abc123", KeySecret: "secret"},
		},
		{
			name: "explicit timeout",
			cfg:  RazorpayConfig{KeyID: "rzp_test_abc123", KeySecret: "secret", TimeoutSeconds: 45},
		},
		{
			name:    "missing key id",
			cfg:     RazorpayConfig{KeySecret: "secret"},
			wantErr: ErrMissingCredentials,
		},
		{
			name:    "missing secret",
			cfg:     RazorpayConfig{KeyID: "rzp_test_abc123"},
			wantErr: ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewRazorpayProvider(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewRazorpayProvider() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRazorpayProvider() error = %v", err)
			}
			if provider == nil {
				t.Fatal("NewRazorpayProvider() returned nil provider")
			}
		})
	}
}

func TestRazorpayConfig_IsTestMode(t *testing.T) {
	tests := []struct {
		keyID string
		want  bool
	}{
		{"rzp_test_abc123", true},
		{"rzp_live_abc123", false},
		{"", false},
		{"rzp_tes", false},
	}

	for _, tt := range tests {
		cfg := RazorpayConfig{KeyID: tt.keyID}
		if got := cfg.IsTestMode(); got != tt.want {
			t.Errorf("IsTestMode(%q) = %v, want %v", tt.keyID, got, tt.want)
		}
	}
}
