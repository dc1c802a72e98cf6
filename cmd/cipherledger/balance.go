package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var balanceAddress string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Derive an address balance by scanning the archived chain",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		store := mustOpenStore(cfg)
		defer store.Close()

		blocks, err := store.ListBlocks()
		if err != nil {
			log.Fatalf("failed to read archive: %v", err)
		}

		var balance int64
		for _, blk := range blocks {
			for _, tx := range blk.Transactions {
				if tx.FromAddress == balanceAddress && !tx.IsReward() {
					balance -= tx.Amount
				}
				if tx.ToAddress == balanceAddress {
					balance += tx.Amount
				}
			}
		}
		fmt.Printf("balance of %s: %d\n", balanceAddress, balance)
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceAddress, "address", "", "address to sum")
	balanceCmd.MarkFlagRequired("address")
}
