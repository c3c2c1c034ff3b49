package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"lptable/hashtable"
)

// replay runs the workload's inserts and lookups in order, then dumps every
// slot. Insert failures are reported and do not stop the replay.
func replay(cfg *Config, w io.Writer, logger *zap.Logger) *hashtable.Table[string, string] {
	hash := cfg.HashFunc()
	tbl := hashtable.New[string, string](hash, cfg.Capacity, hashtable.WithLogger(logger))

	for _, step := range cfg.Inserts {
		if err := tbl.Insert(step.Key, step.Value); err != nil {
			fmt.Fprintf(w, "insert %s: %v\n", step.Key, err)
			continue
		}
		fmt.Fprintf(w, "insert %s=%s (home %d)\n", step.Key, step.Value, hash(step.Key))
	}
	for _, k := range cfg.Lookups {
		if v, ok := tbl.Lookup(k); ok {
			fmt.Fprintf(w, "lookup %s: %s\n", k, v)
		} else {
			fmt.Fprintf(w, "lookup %s: not found\n", k)
		}
	}

	fmt.Fprintf(w, "slots (%d/%d used):\n", tbl.Len(), tbl.Capacity())
	for i := uint64(0); i < tbl.Capacity(); i++ {
		if k, v, ok := tbl.Slot(i); ok {
			fmt.Fprintf(w, "  [%d] %s=%s\n", i, k, v)
		} else {
			fmt.Fprintf(w, "  [%d] -\n", i)
		}
	}
	return tbl
}
