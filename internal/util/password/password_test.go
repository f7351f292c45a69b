package password_test

import (
	"testing"

	"github.com/mkrupp/roomledger/internal/util/password"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := password.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash == "secret123" {
		t.Error("Hash() returned the plaintext unchanged")
	}
	if !password.IsHashed(hash) {
		t.Errorf("IsHashed(%q) = false, want true", hash)
	}

	if !password.Verify("secret123", hash) {
		t.Error("Verify() rejected the correct password")
	}
	if password.Verify("wrong", hash) {
		t.Error("Verify() accepted a wrong password")
	}
}

func TestVerifyLegacyPlaintext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		plaintext string
		stored    string
		want      bool
	}{
		{name: "matching plaintext", plaintext: "admin123", stored: "admin123", want: true},
		{name: "mismatched plaintext", plaintext: "admin123", stored: "other", want: false},
		{name: "case sensitive", plaintext: "Admin123", stored: "admin123", want: false},
		{name: "empty stored", plaintext: "x", stored: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := password.Verify(tt.plaintext, tt.stored); got != tt.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tt.plaintext, tt.stored, got, tt.want)
			}
		})
	}
}

func TestIsHashed(t *testing.T) {
	t.Parallel()

	if password.IsHashed("plaintext") {
		t.Error("IsHashed() misclassified a plaintext credential")
	}
	if !password.IsHashed("$2a$10$abcdefghijklmnopqrstuv") {
		t.Error("IsHashed() misclassified a bcrypt prefix")
	}
}
