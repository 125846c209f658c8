package handler

import (
	"strings"
	"testing"
)

func TestValidator_MessagesUseJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&registerRequest{
		Name:            "A",
		Email:           "a@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
		Role:            "client",
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if want := "confirm_password must match password"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestValidator_CollectsEveryField(t *testing.T) {
	err := NewValidator().Validate(&submitBidRequest{})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	for _, field := range []string{"amount", "proposal", "delivery_days"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("message %q does not mention %s", err.Error(), field)
		}
	}
}

func TestValidator_Accepts(t *testing.T) {
	req := createJobRequest{
		Title:       "t",
		Description: "d",
		Budget:      10,
		BudgetType:  "hourly",
		Deadline:    "2026-01-31",
	}
	if err := NewValidator().Validate(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToSnake(t *testing.T) {
	for in, want := range map[string]string{
		"Password":     "password",
		"DeliveryDays": "delivery_days",
		"x":            "x",
	} {
		if got := toSnake(in); got != want {
			t.Errorf("toSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
