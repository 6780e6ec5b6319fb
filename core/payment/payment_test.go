package payment

import (
	"context"
	"math/rand"
	"testing"
)

func TestMaskAccount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4242424242424242", "****4242"},
		{"4242-4242-4242-4242", "****4242"},
		{"4242 4242 4242 9999", "****9999"},
		{"1234", "****1234"},
		{"123", "****"},
		{"", "****"},
		{"abcd", "****"},
	}

	for _, tt := range tests {
		if got := MaskAccount(tt.in); got != tt.want {
			t.Errorf("MaskAccount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimulatorOutcomes(t *testing.T) {
	sim := NewSimulator(rand.NewSource(1))

	seen := make(map[Status]int)
	for i := 0; i < 300; i++ {
		auth, err := sim.Authorize(context.Background(), "credit_card", "Test User", "4242424242424242")
		if err != nil {
			t.Fatalf("authorize: %v", err)
		}

		switch auth.Status {
		case Pending, Completed, Failed:
			seen[auth.Status]++
		default:
			t.Fatalf("unexpected status %q", auth.Status)
		}

		if auth.AccountMasked != "****4242" {
			t.Fatalf("wrong masked account %q", auth.AccountMasked)
		}
		if auth.Reference == "" {
			t.Fatal("empty authorization reference")
		}
	}

	// 300 uniform draws hit every outcome.
	for _, s := range []Status{Pending, Completed, Failed} {
		if seen[s] == 0 {
			t.Errorf("outcome %q never drawn", s)
		}
	}
}

func TestStatic(t *testing.T) {
	for _, s := range []Status{Pending, Completed, Failed} {
		auth, err := Static(s).Authorize(context.Background(), "credit_card", "Test User", "4242")
		if err != nil {
			t.Fatalf("authorize: %v", err)
		}
		if auth.Status != s {
			t.Errorf("Static(%q) answered %q", s, auth.Status)
		}
	}
}
