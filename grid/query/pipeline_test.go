package query

import (
	"testing"

	"tablegrid/grid/cache"
	"tablegrid/grid/interfaces"
)

// TestPipelineExecute tests stage chaining and display index assignment
func TestPipelineExecute(t *testing.T) {
	rows := makeRows(
		[]string{"IT", "10"},
		[]string{"HR", "2"},
		[]string{"IT", "33"},
	)

	p := New("testhash", nil).
		Add(NewFilterStage(interfaces.ActiveFilters{Columns: map[int][]string{0: {"IT"}}})).
		Add(NewSortStage(1, interfaces.SortAsc, []bool{false, false}, testCollator()))

	out, err := p.Execute(&interfaces.StageResult{Rows: rows})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(out.Rows))
	}
	if out.Rows[0].Cells[1].Text != "10" || out.Rows[1].Cells[1].Text != "33" {
		t.Errorf("unexpected order: %v", cellTexts(out.Rows, 1))
	}
	for i, row := range out.Rows {
		if row.DisplayIndex != i {
			t.Errorf("row %d has display index %d", i, row.DisplayIndex)
		}
	}
}

// TestPipelineCaching verifies the second identical run is served from cache
func TestPipelineCaching(t *testing.T) {
	rows := makeRows([]string{"IT"}, []string{"HR"})
	c := cache.New(0)

	run := func() *interfaces.StageResult {
		p := New("testhash", c).
			Add(NewFilterStage(interfaces.ActiveFilters{Columns: map[int][]string{0: {"IT"}}}))
		out, err := p.Execute(&interfaces.StageResult{Rows: rows})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out
	}

	first := run()
	second := run()

	hits, _, _ := c.Stats()
	if hits != 1 {
		t.Errorf("expected 1 cache hit on the second run, got %d", hits)
	}
	if len(first.Rows) != len(second.Rows) || first.Rows[0] != second.Rows[0] {
		t.Error("cached run must return the same row pointers")
	}
}

// TestPipelineCacheKeysDiffer verifies distinct states never collide
func TestPipelineCacheKeysDiffer(t *testing.T) {
	rows := makeRows([]string{"IT"}, []string{"HR"})
	c := cache.New(0)

	p1 := New("testhash", c).Add(NewFilterStage(interfaces.ActiveFilters{Columns: map[int][]string{0: {"IT"}}}))
	out1, _ := p1.Execute(&interfaces.StageResult{Rows: rows})

	p2 := New("testhash", c).Add(NewFilterStage(interfaces.ActiveFilters{Columns: map[int][]string{0: {"HR"}}}))
	out2, _ := p2.Execute(&interfaces.StageResult{Rows: rows})

	if out1.Rows[0].Cells[0].Text != "IT" || out2.Rows[0].Cells[0].Text != "HR" {
		t.Error("filter states must not share cached results")
	}

	// A different table hash must also miss.
	p3 := New("otherhash", c).Add(NewFilterStage(interfaces.ActiveFilters{Columns: map[int][]string{0: {"IT"}}}))
	p3.Execute(&interfaces.StageResult{Rows: rows})
	hits, _, _ := c.Stats()
	if hits != 0 {
		t.Errorf("expected no cache hits across distinct states, got %d", hits)
	}
}

// TestPipelineNoStages tests the pass-through case
func TestPipelineNoStages(t *testing.T) {
	rows := makeRows([]string{"a"}, []string{"b"})
	out, err := New("testhash", nil).Execute(&interfaces.StageResult{Rows: rows})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Errorf("expected pass-through of all rows, got %d", len(out.Rows))
	}
	if out.Rows[0].DisplayIndex != 0 || out.Rows[1].DisplayIndex != 1 {
		t.Error("display indices must be assigned even without stages")
	}
}
