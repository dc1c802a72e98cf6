package main

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report archive height and process health metrics",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		store := mustOpenStore(cfg)
		defer store.Close()

		height, err := store.ChainHeight()
		if err != nil {
			log.Fatalf("failed to read archive height: %v", err)
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		memoryMB := float64(m.Alloc) / (1024 * 1024)

		cpuLoad := 0.0
		if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
			cpuLoad = percents[0]
		}

		lastBlockTime := "n/a"
		if height > 0 {
			if blk, err := store.GetBlockByHeight(uint64(height - 1)); err == nil {
				lastBlockTime = blk.Timestamp.UTC().Format(time.RFC3339)
			}
		}

		fmt.Printf("archive blocks:  %d\n", height)
		fmt.Printf("last block time: %s\n", lastBlockTime)
		fmt.Printf("memory:          %.1f MB\n", memoryMB)
		fmt.Printf("cpu load:        %.1f%%\n", cpuLoad)
	},
}
