// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mockProvider is a test double implementing the Provider interface.
// It records calls and returns configurable responses.
type mockProvider struct {
	name       string
	response   string
	err        error
	callCount  int
	lastSystem string
	lastUser   string
	mu         sync.Mutex
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	return m.response, m.err
}

// structuredMock adds a native JSON mode to mockProvider.
type structuredMock struct {
	mockProvider
	lastReq StructuredRequest
}

func (m *structuredMock) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastReq = req
	return m.response, m.err
}

// stubModerator returns a fixed verdict.
type stubModerator struct {
	result *ModerationResult
	err    error
	calls  int
}

func (m *stubModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	m.calls++
	return m.result, m.err
}

func newTestRegistry(active string, providers map[string]Provider) *Registry {
	return &Registry{providers: providers, active: active}
}

func TestRegistryActive(t *testing.T) {
	t.Run("returns active provider", func(t *testing.T) {
		mock := &mockProvider{name: "test", response: "Hello from mock"}
		reg := newTestRegistry("test", map[string]Provider{"test": mock})

		p, err := reg.Active()
		if err != nil {
			t.Fatalf("Active: unexpected error: %v", err)
		}
		if p.Name() != "test" {
			t.Errorf("Name: got %q, want %q", p.Name(), "test")
		}
	})

	t.Run("no active provider", func(t *testing.T) {
		reg := newTestRegistry("missing", map[string]Provider{})
		_, err := reg.Active()
		if !errors.Is(err, ErrNoProvider) {
			t.Errorf("error: got %v, want ErrNoProvider", err)
		}
		if reg.HasProvider("missing") {
			t.Error("HasProvider(missing): got true")
		}
	})
}

func TestRegistryGenerateStructured(t *testing.T) {
	t.Run("native provider", func(t *testing.T) {
		mock := &structuredMock{mockProvider: mockProvider{name: "native", response: `{"ok":true}`}}
		reg := newTestRegistry("native", map[string]Provider{"native": mock})

		req := StructuredRequest{System: "s", Prompt: "p", Schema: draftSchema, Grounded: true}
		got, err := reg.GenerateStructured(context.Background(), req)
		if err != nil {
			t.Fatalf("GenerateStructured: %v", err)
		}
		if got != `{"ok":true}` {
			t.Errorf("result: got %q", got)
		}
		if !mock.lastReq.Grounded || mock.lastReq.Schema != draftSchema {
			t.Errorf("request not forwarded: %+v", mock.lastReq)
		}
		if mock.callCount != 0 {
			t.Error("plain Generate should not be used for native providers")
		}
		if !reg.SupportsStructuredOutput() {
			t.Error("SupportsStructuredOutput: got false")
		}
	})

	t.Run("fallback embeds schema and strips fences", func(t *testing.T) {
		mock := &mockProvider{name: "plain", response: "Sure!\n```json\n{\"title\":\"x\"}\n```"}
		reg := newTestRegistry("plain", map[string]Provider{"plain": mock})

		got, err := reg.GenerateStructured(context.Background(), StructuredRequest{System: "s", Prompt: "write", Schema: draftSchema})
		if err != nil {
			t.Fatalf("GenerateStructured: %v", err)
		}
		if got != `{"title":"x"}` {
			t.Errorf("result: got %q", got)
		}
		if !strings.HasPrefix(mock.lastUser, "write") || !strings.Contains(mock.lastUser, `"required"`) {
			t.Errorf("schema missing from fallback prompt: %q", mock.lastUser)
		}
		if reg.SupportsStructuredOutput() {
			t.Error("SupportsStructuredOutput: got true for plain provider")
		}
	})

	t.Run("no json in reply", func(t *testing.T) {
		mock := &mockProvider{name: "plain", response: "I can't help with that."}
		reg := newTestRegistry("plain", map[string]Provider{"plain": mock})

		_, err := reg.GenerateStructured(context.Background(), StructuredRequest{Prompt: "p"})
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("error: got %v, want ErrNoJSON", err)
		}
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare object", in: `{"a":1}`, want: `{"a":1}`},
		{name: "padded", in: "  \n{\"a\":1}\n ", want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain fence", in: "```\n[1,2]\n```", want: `[1,2]`},
		{name: "prose around object", in: "Here you go: {\"a\":{\"b\":2}} Enjoy.", want: `{"a":{"b":2}}`},
		{name: "array in prose", in: "Trends: [{\"topic\":\"x\"}]", want: `[{"topic":"x"}]`},
		{name: "no json", in: "nothing here", wantErr: true},
		{name: "broken json", in: "{\"a\":", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Errorf("ExtractJSON(%q): got %q, %v; want ErrNoJSON", tt.in, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestRegistryGenerateImage(t *testing.T) {
	reg := newTestRegistry("text", map[string]Provider{"text": &mockProvider{name: "text"}})
	if reg.SupportsImageGeneration() {
		t.Error("text-only provider reported image support")
	}
	if _, err := reg.GenerateImage(context.Background(), ImageRequest{Prompt: "x"}); err == nil {
		t.Error("expected error for text-only provider")
	}

	reg.Register("gemini", newGemini(ProviderConfig{APIKey: "k"}))
	if err := reg.SetActive("gemini"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if !reg.SupportsImageGeneration() {
		t.Error("gemini should support image generation")
	}
}

func TestRegistryCheckPrompt(t *testing.T) {
	reg := newTestRegistry("x", map[string]Provider{})
	res, err := reg.CheckPrompt(context.Background(), "anything")
	if err != nil || !res.Safe {
		t.Errorf("without moderator: got %+v, %v; want safe", res, err)
	}

	mod := &stubModerator{result: &ModerationResult{Safe: false, Categories: []string{"violence"}}}
	reg.SetModerator(mod)
	res, err = reg.CheckPrompt(context.Background(), "bad")
	if err != nil || res.Safe || res.Reason() != "violence" {
		t.Errorf("with moderator: got %+v, %v", res, err)
	}
	if mod.calls != 1 {
		t.Errorf("moderator calls: got %d, want 1", mod.calls)
	}
}

func TestFallbackModerator(t *testing.T) {
	primary := &stubModerator{err: errors.New("401 project key")}
	secondary := &stubModerator{result: &ModerationResult{Safe: true}}
	m := newFallbackModerator(primary, secondary)

	res, err := m.CheckSafety(context.Background(), "text")
	if err != nil || !res.Safe {
		t.Fatalf("CheckSafety: got %+v, %v", res, err)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls: primary=%d secondary=%d", primary.calls, secondary.calls)
	}

	primary.err = nil
	primary.result = &ModerationResult{Safe: true}
	if _, err := m.CheckSafety(context.Background(), "text"); err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if secondary.calls != 1 {
		t.Error("secondary used although primary succeeded")
	}
}

func TestRegistrySetActive(t *testing.T) {
	reg := newTestRegistry("a", map[string]Provider{
		"a": &mockProvider{name: "a"},
		"b": &mockProvider{name: "b"},
	})
	if err := reg.SetActive("b"); err != nil {
		t.Fatalf("SetActive(b): %v", err)
	}
	if reg.ActiveName() != "b" {
		t.Errorf("ActiveName: got %q", reg.ActiveName())
	}
	if err := reg.SetActive("missing"); err == nil {
		t.Error("SetActive(missing): expected error")
	}
	if reg.ActiveName() != "b" {
		t.Errorf("failed SetActive changed active provider to %q", reg.ActiveName())
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry("gemini", map[string]ProviderConfig{
		"gemini":  {APIKey: "g"},
		"openai":  {APIKey: "o"},
		"claude":  {APIKey: ""},
		"mistral": {APIKey: "m"},
		"unknown": {APIKey: "u"},
	})

	if diff := cmp.Diff([]string{"gemini", "mistral", "openai"}, reg.Available()); diff != "" {
		t.Errorf("Available mismatch (-want +got):\n%s", diff)
	}
	if reg.HasProvider("claude") {
		t.Error("provider without key should be skipped")
	}
	if _, ok := reg.moderator.(*fallbackModerator); !ok {
		t.Errorf("moderator: got %T, want *fallbackModerator", reg.moderator)
	}
}

func TestRegistryConcurrency(t *testing.T) {
	reg := newTestRegistry("a", map[string]Provider{
		"a": &mockProvider{name: "a", response: "A"},
		"b": &mockProvider{name: "b", response: "B"},
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = reg.SetActive("a")
			} else {
				_ = reg.SetActive("b")
			}
		}()
		go func() {
			defer wg.Done()
			p, err := reg.Active()
			if err != nil {
				t.Errorf("Active: %v", err)
				return
			}
			if _, err := p.Generate(context.Background(), "s", "u"); err != nil {
				t.Errorf("Generate: %v", err)
			}
			_ = reg.Available()
		}()
	}
	wg.Wait()
}
