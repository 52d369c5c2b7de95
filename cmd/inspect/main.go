package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/adaptivepath/progression/go-engine/internal/journal"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to progression.db")
	entity := flag.String("entity", "", "filter to one entity id")
	last := flag.Int("last", 20, "show N most recent decisions")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/progression.db [--entity id] [--last N] [--json]")
		os.Exit(2)
	}

	jnl, err := journal.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
		os.Exit(1)
	}
	defer jnl.Close()

	var entries []journal.Entry
	if *entity != "" {
		entries, err = jnl.ForEntity(*entity, *last)
	} else {
		entries, err = jnl.Recent(*last)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%-26s %-16s %-12s %-9s %6s %8s %8s %10s\n",
		"CREATED", "ENTITY", "PHASE", "ACTION", "CONF", "BEFORE", "AFTER", "ELAPSED")
	for _, e := range entries {
		fmt.Printf("%-26s %-16s %-12s %-9s %6.2f %8.4f %8.4f %10s\n",
			e.CreatedAt.Format("2006-01-02T15:04:05.000"),
			e.EntityID, e.Phase, e.Action, e.Confidence,
			e.StateBefore, e.StateAfter, e.Elapsed)
	}
	fmt.Printf("%d decisions\n", len(entries))
}

// #endregion main
