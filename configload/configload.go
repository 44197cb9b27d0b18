// Package configload reads TraceConfig tables from YAML files and keeps
// live sink networks in sync with them.
//
// The file format is a mapping of dotted namespace paths to directive
// lists, where "" configures the root namespace:
//
//	options:
//	  "":
//	    - severity: InfoF
//	  node.chaindb:
//	    - severity: DebugF
//	    - detail: DDetailed
//	  node.mempool:
//	    - privacy: Confidential
//
// The machine-interchange JSON form of a TraceConfig (the tcOptions
// object) needs no loader; it round-trips through encoding/json on the
// TraceConfig type itself.
package configload

import (
	"fmt"
	"os"

	yaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/luxas/tracing"
)

// Parse parses a YAML trace configuration.
func Parse(data []byte) (*tracing.TraceConfig, error) {
	// A "/" delimiter keeps dotted namespace keys like "node.chaindb"
	// from being split into nested paths.
	k := koanf.New("/")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing trace configuration: %w", err)
	}

	cfg := tracing.NewTraceConfig()
	raw := k.Get("options")
	if raw == nil {
		return cfg, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("options must map namespaces to directive lists, got %T", raw)
	}
	for path, entry := range table {
		opts, err := parseDirectives(entry)
		if err != nil {
			return nil, fmt.Errorf("namespace %q: %w", path, err)
		}
		cfg.Set(tracing.ParseNamespace(path), opts...)
	}
	return cfg, nil
}

func parseDirectives(entry any) ([]tracing.ConfigOption, error) {
	list, ok := entry.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a directive list, got %T", entry)
	}
	opts := make([]tracing.ConfigOption, 0, len(list))
	for _, item := range list {
		directive, ok := item.(map[string]any)
		if !ok || len(directive) != 1 {
			return nil, fmt.Errorf("each directive must be a single key-value pair, got %v", item)
		}
		for key, value := range directive {
			text, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("directive %q: expected a string value, got %T", key, value)
			}
			switch key {
			case "severity":
				f, err := tracing.ParseSeverityFilter(text)
				if err != nil {
					return nil, err
				}
				opts = append(opts, tracing.SeverityOption(f))
			case "detail":
				d, err := tracing.ParseDetailLevel(text)
				if err != nil {
					return nil, err
				}
				opts = append(opts, tracing.DetailOption(d))
			case "privacy":
				p, err := tracing.ParsePrivacy(text)
				if err != nil {
					return nil, err
				}
				opts = append(opts, tracing.PrivacyOption(p))
			default:
				return nil, fmt.Errorf("unknown directive %q", key)
			}
		}
	}
	return opts, nil
}

// Load reads and parses the YAML trace configuration at path.
func Load(path string) (*tracing.TraceConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace configuration: %w", err)
	}
	return Parse(content)
}
