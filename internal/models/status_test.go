package models

import (
	"testing"
	"time"
)

func TestCredentialsComplete(t *testing.T) {
	tests := []struct {
		name     string
		creds    Credentials
		expected bool
	}{
		{"all set", Credentials{ClientID: "id", ClientSecret: "secret", Username: "user"}, true},
		{"missing id", Credentials{ClientSecret: "secret", Username: "user"}, false},
		{"missing secret", Credentials{ClientID: "id", Username: "user"}, false},
		{"missing username", Credentials{ClientID: "id", ClientSecret: "secret"}, false},
		{"empty", Credentials{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Complete(); got != tt.expected {
				t.Errorf("Complete() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampScale(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{99, 100},
		{100, 100},
		{250, 250},
		{500, 500},
		{501, 500},
		{-10, 100},
	}

	for _, tt := range tests {
		if got := ClampScale(tt.in); got != tt.want {
			t.Errorf("ClampScale(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStatusSampleMode(t *testing.T) {
	tests := []struct {
		name      string
		sampledAt time.Time
		streak    int
		want      PresentationMode
	}{
		{
			name:      "streak matches day count",
			sampledAt: time.Date(2024, time.July, 25, 0, 0, 0, 0, time.UTC),
			streak:    1,
			want:      ModeAlternate,
		},
		{
			name:      "streak behind day count",
			sampledAt: time.Date(2024, time.July, 25, 0, 0, 0, 0, time.UTC),
			streak:    0,
			want:      ModeDefault,
		},
		{
			name:      "mid-day sample still counts whole days",
			sampledAt: time.Date(2024, time.July, 25, 18, 30, 0, 0, time.UTC),
			streak:    1,
			want:      ModeAlternate,
		},
		{
			name:      "epoch day with zero streak",
			sampledAt: time.Date(2024, time.July, 24, 0, 0, 0, 0, time.UTC),
			streak:    0,
			want:      ModeAlternate,
		},
		{
			name:      "long streak matching",
			sampledAt: time.Date(2024, time.August, 23, 12, 0, 0, 0, time.UTC),
			streak:    30,
			want:      ModeAlternate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := StatusSample{Streak: tt.streak, SampledAt: tt.sampledAt, Available: true}
			if got := s.Mode(); got != tt.want {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresentationModeString(t *testing.T) {
	if ModeDefault.String() != "default" || ModeAlternate.String() != "alternate" {
		t.Errorf("unexpected mode strings: %q, %q", ModeDefault, ModeAlternate)
	}
}
