package settings

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

// Load returns the effective configuration (defaults overlaid with file
// overrides if any). If anything goes wrong, it returns defaults.
func Load(path string) Config {
	cfg := defaultConfig
	if path == "" {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		// no file or other stat error -> return defaults
		return cfg
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	return Overlay(cfg, b)
}

// Overlay applies YAML overrides field by field onto base. Unknown keys and
// values of the wrong type are ignored so a partially broken file still
// yields a usable configuration.
func Overlay(base Config, raw []byte) Config {
	cfg := base
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return cfg
	}
	if v, ok := m["search_placeholder"]; ok {
		if vs, oks := v.(string); oks {
			cfg.SearchPlaceholder = vs
		}
	}
	if v, ok := m["column_filter_names"]; ok {
		if names, oka := v.([]any); oka {
			cols := make([]string, 0, len(names))
			for _, n := range names {
				if ns, oks := n.(string); oks {
					cols = append(cols, ns)
				}
			}
			cfg.ColumnFilterNames = cols
		}
	}
	if v, ok := m["items_per_page"]; ok {
		if vi, oki := v.(int); oki && vi >= 0 {
			cfg.ItemsPerPage = vi
		}
	}
	if v, ok := m["default_sort_column"]; ok {
		if vs, oks := v.(string); oks {
			cfg.DefaultSortColumn = vs
		}
	}
	if v, ok := m["default_sort_order"]; ok {
		if vs, oks := v.(string); oks && (vs == "Ascending" || vs == "Descending") {
			cfg.DefaultSortOrder = vs
		}
	}
	if v, ok := m["locale"]; ok {
		if vs, oks := v.(string); oks && vs != "" {
			cfg.Locale = vs
		}
	}
	if v, ok := m["cache_size_limit_mb"]; ok {
		if vi, oki := v.(int); oki && vi >= 1 {
			cfg.CacheSizeLimitMB = vi
		}
	}
	if v, ok := m["share_base_url"]; ok {
		if vs, oks := v.(string); oks {
			cfg.ShareBaseURL = vs
		}
	}
	if v, ok := m["table_id"]; ok {
		if vs, oks := v.(string); oks {
			cfg.TableID = vs
		}
	}
	return cfg
}
