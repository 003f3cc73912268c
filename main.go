package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tablegrid/grid"
	"tablegrid/grid/htmltable"
	"tablegrid/grid/settings"
)

func main() {
	var (
		configPath = flag.String("config", "tablegrid.yml", "path to the yaml configuration file")
		stateURL   = flag.String("state", "", "shared link to restore filters, sort and page from")
		search     = flag.String("search", "", "free-text search query to apply")
		sortColumn = flag.String("sort", "", "column display name to sort by")
		page       = flag.Int("page", 0, "page to show (when pagination is enabled)")
		exportPath = flag.String("export", "", "write the result set to this xlsx file and exit")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <page.html>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := settings.Load(*configPath)

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to open page: %v", err)
	}
	tbl, err := htmltable.Parse(f, cfg.TableID)
	f.Close()
	if err != nil {
		log.Fatalf("failed to parse table: %v", err)
	}

	g, err := grid.New(tbl, cfg)
	if err != nil {
		log.Fatalf("failed to build grid: %v", err)
	}

	registry := grid.NewRegistry()
	id := registry.Register(g)
	defer registry.Unregister(id)

	if *stateURL != "" {
		g.ApplyURL(*stateURL)
	}
	if *search != "" {
		g.SetSearch(*search)
	}
	if *sortColumn != "" {
		applySortFlag(g, *sortColumn)
	}
	if *page > 0 {
		g.GoToPage(*page)
	}

	if *exportPath != "" {
		if err := g.ExportXLSX(*exportPath); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		return
	}

	state, err := g.Render()
	if err != nil {
		log.Fatalf("failed to render: %v", err)
	}
	printState(state)

	link, err := g.CopyShareURL()
	if err != nil {
		// headless environments have no clipboard; the link still prints below
		log.Printf("[CLIPBOARD] %v", err)
	}
	fmt.Printf("\nshare: %s\n", link)
}

func applySortFlag(g *grid.Grid, name string) {
	for i, h := range g.Header() {
		if h == name {
			g.SortByColumn(i)
			return
		}
	}
	log.Printf("[SETTINGS] sort column %q not found in header", name)
}

func printState(state *grid.RenderState) {
	for _, h := range state.Header {
		fmt.Printf("%s\t", h)
	}
	fmt.Println()
	for _, row := range state.Rows {
		for _, cell := range row {
			fmt.Printf("%s\t", cell)
		}
		fmt.Println()
	}

	if state.NoResults {
		fmt.Println("no matching records")
		return
	}
	if state.TotalPages > 1 {
		fmt.Printf("showing %d-%d of %d (page %d/%d)\n",
			state.StartResult, state.EndResult, state.TotalResults,
			state.CurrentPage, state.TotalPages)
		for _, item := range state.Pages {
			switch {
			case item.Ellipsis:
				fmt.Print("... ")
			case item.Current:
				fmt.Printf("[%d] ", item.Page)
			default:
				fmt.Printf("%d ", item.Page)
			}
		}
		fmt.Println()
	} else {
		fmt.Printf("%d results\n", state.TotalResults)
	}
}
