package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/repodoc"
	"gopkg.in/yaml.v3"
)

// configEnv names the environment variable holding a default config file.
const configEnv = "REPODOC_CONFIG"

func configPaths() []string {
	if p := os.Getenv(configEnv); p != "" {
		return []string{p}
	}
	return nil
}

// YAMLConfig is a kong.ConfigurationLoader that resolves flag values from a
// YAML mapping. Keys are flag names; dashes may be written as underscores.
// Lists are accepted for repeatable flags.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, repodoc.Errorf(repodoc.ECONFIG, "invalid config file: %v", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := values[key]; ok {
				return configValue(v), nil
			}
		}
		return nil, nil
	}), nil
}

func configValue(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, ",")
}
