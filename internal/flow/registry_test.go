package flow

import (
	"testing"

	"abctrack/internal/domain/models"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	f, ok := r.Get("flow_basic_1")
	if !ok {
		t.Fatalf("flow_basic_1 not defined, have %v", r.Names())
	}

	primary := f.PrimaryStep()
	if primary == nil {
		t.Fatal("flow has no primary step")
	}
	if primary.ID != "behavior" {
		t.Errorf("primary step id = %q, want behavior", primary.ID)
	}
	if len(primary.Options) == 0 {
		t.Error("primary step has no options")
	}
}

func TestClassify(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		answer string
		want   models.Sentiment
	}{
		{"sharing", models.SentimentPositive},
		{"Sharing", models.SentimentPositive},
		{"  helping  ", models.SentimentPositive},
		{"hitting", models.SentimentNegative},
		{"sharing toys with sister", models.SentimentPositive}, // substring
		{"refusing to listen", models.SentimentNegative},       // exact beats substring
		{"juggling", models.SentimentNegative},                 // unknown defaults negative
		{"", models.SentimentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := r.Classify(tt.answer); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.answer, got, tt.want)
			}
		})
	}
}
