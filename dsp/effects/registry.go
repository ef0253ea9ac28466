package effects

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jraju9/signaltrain/dsp/core"
)

// Factory builds one Effect for a processing configuration.
type Factory func(cfg core.ProcessorConfig) (Effect, error)

// Registry maps effect names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("empty effect name")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	err := r.Register(name, factory)
	if err != nil {
		panic("effects registry: " + err.Error())
	}
}

// Lookup returns the factory for the given name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// New builds the named effect.
func (r *Registry) New(name string, cfg core.ProcessorConfig) (Effect, error) {
	factory := r.Lookup(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}

	return factory(cfg)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// DefaultRegistry returns a registry holding every effect in this package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NameCompressor, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewCompressor(cfg.SampleRate), nil
	})
	r.MustRegister(NameCompressor4c, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewCompressor4c(cfg.SampleRate)
	})
	r.MustRegister(NameEcho, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewEcho(cfg.SampleRate), nil
	})
	r.MustRegister(NameLowPass, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewLowPass(cfg.SampleRate)
	})
	r.MustRegister(NamePitchShifter, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewPitchShifter(cfg.SampleRate)
	})
	r.MustRegister(NameDenoise, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewDenoise(cfg.SampleRate), nil
	})
	r.MustRegister(NameTimeAlign, func(cfg core.ProcessorConfig) (Effect, error) {
		return NewTimeAlign(cfg.SampleRate), nil
	})

	return r
}

// New builds the named effect from the default registry.
func New(name string, opts ...core.ProcessorOption) (Effect, error) {
	return DefaultRegistry().New(name, core.ApplyProcessorOptions(opts...))
}
