package settings

// Config holds the per-table options a deployment can override.
type Config struct {
	// Placeholder text shown in the search input
	SearchPlaceholder string `yaml:"search_placeholder" json:"search_placeholder"`
	// Display names of the columns that get a multi-select filter dropdown
	ColumnFilterNames []string `yaml:"column_filter_names" json:"column_filter_names"`
	// Rows shown per page. Zero disables pagination entirely.
	ItemsPerPage int `yaml:"items_per_page" json:"items_per_page"`
	// Display name of the column to sort by on load. Empty means document order.
	DefaultSortColumn string `yaml:"default_sort_column" json:"default_sort_column"`
	// "Ascending" or "Descending"; only consulted when DefaultSortColumn is set
	DefaultSortOrder string `yaml:"default_sort_order" json:"default_sort_order"`
	// BCP 47 tag for locale-aware text comparison, e.g. "en" or "de"
	Locale string `yaml:"locale" json:"locale"`
	// Cache size limit in MB for the query result cache
	CacheSizeLimitMB int `yaml:"cache_size_limit_mb" json:"cache_size_limit_mb"`
	// Base address used when building shareable links. Empty means links are
	// emitted as a bare query string.
	ShareBaseURL string `yaml:"share_base_url,omitempty" json:"share_base_url,omitempty"`
	// ID attribute of the table element to enhance; empty picks the first table
	TableID string `yaml:"table_id,omitempty" json:"table_id,omitempty"`
}

// defaultConfig defines the built-in defaults.
var defaultConfig = Config{
	SearchPlaceholder: "Search...",
	ColumnFilterNames: []string{},
	// Pagination off unless the deployment opts in
	ItemsPerPage:     0,
	DefaultSortOrder: "Ascending",
	Locale:           "en",
	CacheSizeLimitMB: 16,
}
