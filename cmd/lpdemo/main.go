// Command lpdemo replays a TOML workload of inserts and lookups against a
// fixed-capacity linear-probing table and prints where each entry landed.
//
//	capacity = 8
//	hasher = "modulo"   # or "xxhash" (default), "fnv"
//	lookup = ["12", "20", "28"]
//
//	[[insert]]
//	key = "12"
//	value = "hi"
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	configFile = flag.String("cfg", "./lpdemo.toml", "toml workload to replay")
	debug      = flag.Bool("debug", false, "log collisions and failed inserts")
)

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("load workload", zap.Error(err))
	}
	logger.Info("replaying workload",
		zap.String("file", *configFile),
		zap.Uint64("capacity", cfg.Capacity),
		zap.String("hasher", cfg.Hasher),
		zap.Int("inserts", len(cfg.Inserts)),
		zap.Int("lookups", len(cfg.Lookups)))

	replay(cfg, os.Stdout, logger)
}
