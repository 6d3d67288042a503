package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"abctrack/internal/domain"
)

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestCompletionClientFetch(t *testing.T) {
	payload := `{"antecedents":[{"text":"Was told no","emoji":"x"}],"consequences":[{"text":"Stayed calm","emoji":"y"}]}`

	var gotAuth string
	var gotReq completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("```json\n" + payload + "\n```")))
	}))
	defer server.Close()

	client := NewCompletionClientWithConfig("test-key", "test-model", server.URL, 5*time.Second)

	set, err := client.Fetch(context.Background(), "hitting")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}

	if len(set.Antecedents) != 1 || set.Antecedents[0].Text != "Was told no" {
		t.Errorf("antecedents = %+v", set.Antecedents)
	}
	if len(set.Consequences) != 1 {
		t.Errorf("consequences = %+v", set.Consequences)
	}
}

func TestCompletionClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-200 status",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			"empty choices",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			"content not json",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(completionBody("sorry, I cannot help with that")))
			},
		},
		{
			"empty suggestion lists",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(completionBody(`{"antecedents":[],"consequences":[]}`)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewCompletionClientWithConfig("k", "m", server.URL, 5*time.Second)
			_, err := client.Fetch(context.Background(), "hitting")
			if !errors.Is(err, domain.ErrRemoteCall) {
				t.Errorf("Fetch() error = %v, want ErrRemoteCall", err)
			}
		})
	}
}

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripJSONFences(tt.in); got != tt.want {
			t.Errorf("stripJSONFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
