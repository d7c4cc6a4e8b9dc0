package llm

import (
	"fmt"
	"sync"

	"github.com/tavolahq/tavola/internal/config"
	"github.com/tavolahq/tavola/internal/logging"
)

// Registry manages LLM provider clients and resolves model references to clients.
type Registry struct {
	mu       sync.RWMutex
	clients  map[string]Client // provider name → client
	aliases  map[string]string // model alias → provider name
	fallback string            // default provider name
	log      *logging.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		clients: make(map[string]Client),
		aliases: make(map[string]string),
		log:     log.Sub("llm.registry"),
	}
}

// Register adds a client under the given provider name.
func (r *Registry) Register(name string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	r.log.Info().Str("provider", name).Msg("registered LLM provider")
}

// Alias maps a model name to a provider, so config can name either.
func (r *Registry) Alias(model, provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[model] = provider
}

// SetFallback sets the default provider used when no model/provider match is found.
func (r *Registry) SetFallback(provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = provider
}

// Resolve returns the Client for the given model reference.
// Resolution order: exact provider name → alias → fallback.
func (r *Registry) Resolve(model string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.clients[model]; ok {
		return c, nil
	}
	if provider, ok := r.aliases[model]; ok {
		if c, ok := r.clients[provider]; ok {
			return c, nil
		}
	}
	if r.fallback != "" {
		if c, ok := r.clients[r.fallback]; ok {
			return c, nil
		}
	}

	return nil, fmt.Errorf("no LLM provider for model %q", model)
}

// List returns all registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for n := range r.clients {
		names = append(names, n)
	}
	return names
}

// NewRegistryFromConfig builds a Registry for the configured engine provider.
func NewRegistryFromConfig(cfg config.EngineConfig, log *logging.Logger) *Registry {
	reg := NewRegistry(log)

	switch cfg.Provider {
	case "openai", "":
		client := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.Endpoint)
		reg.Register("openai", client)
		reg.SetFallback("openai")
		for _, alias := range []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1", "gpt-4.1-mini"} {
			reg.Alias(alias, "openai")
		}

	case "claude":
		client := NewClaudeClient(cfg.APIKey, cfg.Model)
		reg.Register("claude", client)
		reg.SetFallback("claude")
		for _, alias := range []string{"sonnet", "haiku", "claude-sonnet", "claude-haiku"} {
			reg.Alias(alias, "claude")
		}

	case "ollama":
		client := NewOllamaClient(cfg.Endpoint, cfg.Model)
		reg.Register("ollama", client)
		reg.SetFallback("ollama")
		for _, alias := range []string{"llama3", "mistral", "qwen"} {
			reg.Alias(alias, "ollama")
		}

	case "mock":
		reg.Register("mock", &MockClient{ProviderName: "mock"})
		reg.SetFallback("mock")
	}

	return reg
}
