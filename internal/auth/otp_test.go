package auth

import (
	"strconv"
	"testing"
	"time"
)

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestVerifyCode(t *testing.T) {
	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-time.Second)

	cases := []struct {
		name      string
		presented string
		stored    string
		expiresAt time.Time
		want      bool
	}{
		{"match before expiry", "123456", "123456", future, true},
		{"mismatch", "123456", "654321", future, false},
		{"correct but expired", "123456", "123456", past, false},
		{"empty presented", "", "123456", future, false},
		{"empty stored", "123456", "", future, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifyCode(tc.presented, tc.stored, tc.expiresAt); got != tc.want {
				t.Fatalf("VerifyCode = %v, want %v", got, tc.want)
			}
		})
	}
}
