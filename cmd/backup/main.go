// Command backup snapshots all collection files into a timestamped
// directory under the configured backups dir.
package main

import (
	"flag"
	"fmt"
	"log"

	"performanceEvaluation/internal/config"
	"performanceEvaluation/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dir, n, err := store.Backup(cfg.Storage.DataDir, cfg.Storage.BackupsDir)
	if err != nil {
		log.Fatalf("backup: %v", err)
	}
	if n == 0 {
		fmt.Println("No data files found to backup.")
		return
	}
	fmt.Printf("Backup completed: %d files at %s\n", n, dir)
}
