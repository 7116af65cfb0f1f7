package models

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"coffee", CategoryCoffee, true},
		{" Bakery ", CategoryBakery, true},
		{"SPECIALS", CategorySpecials, true},
		{"all", "", false},
		{"tea", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategorySpecials.Label(); got != "Specials" {
		t.Fatalf("expected Specials, got %q", got)
	}
}

func TestDisplayPrice(t *testing.T) {
	item := MenuItem{Price: 6.5}
	if got := item.DisplayPrice(); got != "$6.50" {
		t.Fatalf("expected $6.50, got %q", got)
	}
}

func TestNormalizeAnalysis(t *testing.T) {
	tests := []struct {
		sentiment, priority string
		want                Analysis
	}{
		{"Positive", "High", Analysis{SentimentPositive, PriorityHigh}},
		{"negative", "low", Analysis{SentimentNegative, PriorityLow}},
		{"ecstatic", "urgent", DefaultAnalysis()},
		{"", "", DefaultAnalysis()},
		{"Negative", "whenever", Analysis{SentimentNegative, PriorityNormal}},
	}
	for _, tt := range tests {
		if got := NormalizeAnalysis(tt.sentiment, tt.priority); got != tt.want {
			t.Errorf("NormalizeAnalysis(%q, %q) = %+v, want %+v", tt.sentiment, tt.priority, got, tt.want)
		}
	}
}

func TestFormatTimeRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	msg := ContactMessage{Date: FormatTime(at)}
	if msg.Date != "2024-03-01T09:30:00.000Z" {
		t.Fatalf("unexpected date %q", msg.Date)
	}
	parsed, err := msg.Time()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(at) {
		t.Fatalf("expected %v, got %v", at, parsed)
	}
}
