package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects config layers from highest to lowest priority.
// Layer failures are accumulated so that a single run reports every broken
// source.
type configBuilder struct {
	configs []*StructuredConfig
	err     error

	args     []string
	jsonPath string
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected layers in order. mergo only fills zero fields,
// so earlier layers take precedence over later ones.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for i, layer := range b.configs {
		if err := mergo.Merge(merged, layer); err != nil {
			return nil, fmt.Errorf("error merging config layer %d: %w", i, err)
		}
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (b *configBuilder) add(source string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) withArgs(args []string) *configBuilder {
	b.args = args
	return b
}

// withJSONPath pins the JSON file. A pinned path wins over one named by the
// environment or the flags.
func (b *configBuilder) withJSONPath(path string) *configBuilder {
	b.jsonPath = path
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	return b.add("env", envCfg, parseEnv(envCfg))
}

func (b *configBuilder) withFlags() *configBuilder {
	flagsCfg, err := ParseFlags(b.args)
	return b.add("flags", flagsCfg, err)
}

// withJSON loads the file named by withJSONPath or, failing that, by the
// first layer that sets JSONFilePath. Without a path it is a no-op.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath
	for _, cfg := range b.configs {
		if path != "" {
			break
		}
		path = cfg.JSONFilePath
	}
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	return b.add("json "+path, jsonCfg, err)
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add("defaults", defaults(), nil)
}
