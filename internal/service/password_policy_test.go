package service

import (
	"errors"
	"testing"

	"github.com/sandro988/E-commerce/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}

	cases := []struct {
		name     string
		password string
		wantWeak bool
	}{
		{"valid", "sunrise42", false},
		{"valid with symbols", "sunrise42!", false},
		{"too short", "ab1", true},
		{"letters only", "sunriseonly", true},
		{"special only", "!!!!!!!!!!", true},
		{"digits satisfy charset but letters required", "12345678!", true},
		{"missing number", "sunrise!!", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(policy, tc.password)
			if tc.wantWeak && !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected weak password error, got %v", err)
			}
			if !tc.wantWeak && err != nil {
				t.Fatalf("expected valid password, got %v", err)
			}
		})
	}
}

func TestValidatePasswordUpperAndSpecialRequirements(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireSpecial: true,
	}

	if err := validatePassword(policy, "sunrise42"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected uppercase requirement to fail, got %v", err)
	}
	if err := validatePassword(policy, "Sunrise42"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected special requirement to fail, got %v", err)
	}
	if err := validatePassword(policy, "Sunrise42!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}
