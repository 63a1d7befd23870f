package gateway

import (
	"testing"
)

// Vectors precomputed with: echo -n "order_1|pay_1" | openssl dgst -sha256 -hmac "s3cr3t" -binary | base64
func TestSignature(t *testing.T) {
	tests := []struct {
		name      string
		orderID   string
		paymentID string
		secret    string
		want      string
	}{
		{
			name:      "fixed vector",
			orderID:   "order_1",
			paymentID: "pay_1",
			secret:    "s3cr3t",
			want:      "xLp3heWVtxer2LSEfq8w6X8jrL2+G49cu/F9KNY7Bo8=",
		},
		{
			name:      "second vector",
			orderID:   "order_abc",
			paymentID: "pay_123",
			secret:    "test_secret",
			want:      "KuJlt3lOodYNK/vLa+UNngWbzmB1d66vg8EpcJCo38c=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Signature(tt.orderID, tt.paymentID, tt.secret); got != tt.want {
				t.Errorf("Signature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_1"
		paymentID = "pay_1"
		secret    = "s3cr3t"
		valid     = "xLp3heWVtxer2LSEfq8w6X8jrL2+G49cu/F9KNY7Bo8="
	)

	if !VerifySignature(orderID, paymentID, valid, secret) {
		t.Fatal("valid signature rejected")
	}

	// Any single-character mutation must be rejected.
	for i := 0; i < len(valid); i++ {
		mutated := []byte(valid)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if VerifySignature(orderID, paymentID, string(mutated), secret) {
			t.Errorf("mutated signature at index %d accepted", i)
		}
	}

	// Comparison is case-sensitive.
	if VerifySignature(orderID, paymentID, "xlp3heWVtxer2LSEfq8w6X8jrL2+G49cu/F9KNY7Bo8=", secret) {
		t.Error("case-mutated signature accepted")
	}

	// Wrong secret, order or payment id all fail.
	if VerifySignature(orderID, paymentID, valid, "other") {
		t.Error("signature accepted with wrong secret")
	}
	if VerifySignature("order_2", paymentID, valid, secret) {
		t.Error("signature accepted for wrong order id")
	}
	if VerifySignature(orderID, "pay_2", valid, secret) {
		t.Error("signature accepted for wrong payment id")
	}
}
