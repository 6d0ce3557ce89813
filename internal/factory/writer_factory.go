package factory

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/model"
	"context"
	"fmt"
	"log"
	"sort"
)

// WriterFactory builds a writer from its config definition.
type WriterFactory func(ctx context.Context, def config.WriterDef) (model.Writer, error)

// registry holds the mapping of writer types to their factory functions.
var registry = make(map[string]WriterFactory)

// RegisterWriter registers a new writer type with its factory function.
func RegisterWriter(name string, factory WriterFactory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("writer type '%s' already registered", name))
	}
	registry[name] = factory
}

// Types returns the registered writer types in sorted order.
func Types() []string {
	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// CreateWriters creates all enabled writers listed in cfg.
// An unknown type is a configuration error. A writer whose factory fails
// (e.g. an unreachable ClickHouse) is logged and skipped.
func CreateWriters(ctx context.Context, cfg *config.Config) ([]model.Writer, error) {
	var writers []model.Writer

	for _, def := range cfg.Writers {
		if !def.Enabled {
			continue
		}

		factory, ok := registry[def.Type]
		if !ok {
			return nil, errors.Errorf(errors.KindConfig, "unknown writer type: '%s'", def.Type)
		}

		writer, err := factory(ctx, def)
		if err != nil {
			log.Printf("Warning: failed to create writer type '%s': %v, skipping.", def.Type, err)
			continue
		}
		log.Printf("Created writer '%s'", writer.Name())
		writers = append(writers, writer)
	}

	return writers, nil
}
