package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOverlay(t *testing.T) {
	base := Default()

	t.Run("overrides known fields", func(t *testing.T) {
		raw := []byte(`
search_placeholder: "Find a report..."
column_filter_names:
  - Department
  - Year
items_per_page: 25
default_sort_column: Submission Date
default_sort_order: Descending
locale: de
cache_size_limit_mb: 64
`)
		cfg := Overlay(base, raw)
		if cfg.SearchPlaceholder != "Find a report..." {
			t.Errorf("SearchPlaceholder = %q", cfg.SearchPlaceholder)
		}
		if !reflect.DeepEqual(cfg.ColumnFilterNames, []string{"Department", "Year"}) {
			t.Errorf("ColumnFilterNames = %v", cfg.ColumnFilterNames)
		}
		if cfg.ItemsPerPage != 25 {
			t.Errorf("ItemsPerPage = %d", cfg.ItemsPerPage)
		}
		if cfg.DefaultSortColumn != "Submission Date" {
			t.Errorf("DefaultSortColumn = %q", cfg.DefaultSortColumn)
		}
		if cfg.DefaultSortOrder != "Descending" {
			t.Errorf("DefaultSortOrder = %q", cfg.DefaultSortOrder)
		}
		if cfg.Locale != "de" {
			t.Errorf("Locale = %q", cfg.Locale)
		}
		if cfg.CacheSizeLimitMB != 64 {
			t.Errorf("CacheSizeLimitMB = %d", cfg.CacheSizeLimitMB)
		}
	})

	t.Run("wrong types keep defaults", func(t *testing.T) {
		raw := []byte(`
items_per_page: "many"
default_sort_order: sideways
locale: 42
`)
		cfg := Overlay(base, raw)
		if cfg.ItemsPerPage != base.ItemsPerPage {
			t.Errorf("ItemsPerPage = %d, want default %d", cfg.ItemsPerPage, base.ItemsPerPage)
		}
		if cfg.DefaultSortOrder != base.DefaultSortOrder {
			t.Errorf("DefaultSortOrder = %q, want default %q", cfg.DefaultSortOrder, base.DefaultSortOrder)
		}
		if cfg.Locale != base.Locale {
			t.Errorf("Locale = %q, want default %q", cfg.Locale, base.Locale)
		}
	})

	t.Run("negative items_per_page rejected", func(t *testing.T) {
		cfg := Overlay(base, []byte("items_per_page: -5"))
		if cfg.ItemsPerPage != base.ItemsPerPage {
			t.Errorf("ItemsPerPage = %d, want default %d", cfg.ItemsPerPage, base.ItemsPerPage)
		}
	})

	t.Run("zero items_per_page disables pagination", func(t *testing.T) {
		withPaging := base
		withPaging.ItemsPerPage = 10
		cfg := Overlay(withPaging, []byte("items_per_page: 0"))
		if cfg.ItemsPerPage != 0 {
			t.Errorf("ItemsPerPage = %d, want 0", cfg.ItemsPerPage)
		}
	})

	t.Run("invalid yaml returns base untouched", func(t *testing.T) {
		cfg := Overlay(base, []byte("{{{not yaml"))
		if !reflect.DeepEqual(cfg, base) {
			t.Errorf("Overlay() = %+v, want base %+v", cfg, base)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg := Load(filepath.Join(t.TempDir(), "nope.yml"))
		if !reflect.DeepEqual(cfg, Default()) {
			t.Errorf("Load() = %+v, want defaults", cfg)
		}
	})

	t.Run("file overrides applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grid.yml")
		if err := os.WriteFile(path, []byte("items_per_page: 10\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := Load(path)
		if cfg.ItemsPerPage != 10 {
			t.Errorf("ItemsPerPage = %d, want 10", cfg.ItemsPerPage)
		}
	})
}
