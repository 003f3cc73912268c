// Package query runs the filter/sort pipeline over the cached row model and
// slices the result into pages. Stages are cached per key chain rooted at
// the table content hash, so toggling between two filter states re-executes
// nothing.
package query

import (
	"fmt"
	"log"

	"tablegrid/grid/cache"
	"tablegrid/grid/interfaces"
)

// Pipeline executes stages sequentially with per-stage result caching.
type Pipeline struct {
	tableHash string
	cache     *cache.Cache
	stages    []Stage
}

// New creates a pipeline for a table identified by its content hash.
// The cache may be nil to disable caching.
func New(tableHash string, c *cache.Cache) *Pipeline {
	return &Pipeline{tableHash: tableHash, cache: c}
}

// Add appends a stage.
func (p *Pipeline) Add(stage Stage) *Pipeline {
	p.stages = append(p.stages, stage)
	return p
}

// Execute runs all stages over the input and assigns display indices on the
// final row set. Cached stage outputs short-circuit execution of that stage.
func (p *Pipeline) Execute(input *interfaces.StageResult) (*interfaces.StageResult, error) {
	current := input
	key := "table:" + p.tableHash

	for _, stage := range p.stages {
		key = key + "|" + stage.CacheKey()

		if p.cache != nil && stage.CanCache() {
			if rows, found := p.cache.Get(key); found {
				log.Printf("[CACHE_HIT] Stage %s served from cache (%d rows)", stage.Name(), len(rows))
				current = &interfaces.StageResult{Header: current.Header, Rows: rows}
				continue
			}
		}

		result, err := stage.Execute(current)
		if err != nil {
			return nil, fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}
		log.Printf("[PIPELINE] Stage %s: %d rows in, %d rows out", stage.Name(), len(current.Rows), len(result.Rows))

		if p.cache != nil && stage.CanCache() {
			p.cache.Store(key, result.Rows)
		}
		current = result
	}

	// DisplayIndex is the 0-based position in the final ordered result set.
	for i, row := range current.Rows {
		row.DisplayIndex = i
	}

	return current, nil
}
