package cli

import (
	"github.com/tavolahq/tavola/internal/config"
	"github.com/tavolahq/tavola/internal/llm"
	"github.com/tavolahq/tavola/internal/nlu"
	"github.com/tavolahq/tavola/internal/store"
)

// newPort wires an NLU port for the configured provider.
func newPort(cfg config.Config) (nlu.Port, error) {
	registry := llm.NewRegistryFromConfig(cfg.Engine, log)
	client, err := registry.Resolve(cfg.Engine.Model)
	if err != nil {
		return nil, err
	}
	return nlu.NewLLMPort(client, cfg.Engine.Model, log), nil
}

// openHistory opens the configured call-history store, or returns nil
// when recording is disabled.
func openHistory(cfg config.Config) (store.CallStore, error) {
	if !cfg.History.RecordingEnabled() {
		return nil, nil
	}
	if cfg.History.Store == "memory" {
		return store.NewMemoryCallStore(), nil
	}
	path := cfg.History.Path
	if path == "" {
		path = paths.History
	}
	db, err := store.Open(path, log)
	if err != nil {
		return nil, err
	}
	return store.NewSQLiteCallStore(db), nil
}
