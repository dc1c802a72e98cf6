package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"cipherledger/core/block"
	"cipherledger/core/txledger"
)

var (
	mineAddress string
	mineFrom    string
	mineTo      string
	mineAmount  int64
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine pending transactions into a new block",
	Long:  "Optionally queues one transfer, then mines a block containing the pending transactions plus the fixed mining reward.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		ledger, store, err := openChain(cfg)
		if err != nil {
			log.Fatalf("failed to open ledger: %v", err)
		}
		if store != nil {
			defer store.Close()
		}

		txl := txledger.New(ledger,
			txledger.WithDifficulty(cfg.Difficulty),
			txledger.WithMaxAttempts(cfg.MaxMineAttempts),
			txledger.WithReward(cfg.MiningReward),
		)
		if mineTo != "" {
			txl.QueueTransaction(block.Transaction{
				FromAddress: mineFrom,
				ToAddress:   mineTo,
				Amount:      mineAmount,
			})
		}

		blk, err := txl.MineBlock(mineAddress)
		if err != nil {
			log.Fatalf("mining failed: %v", err)
		}
		if store != nil {
			if err := store.SaveBlock(blk); err != nil {
				log.Fatalf("failed to archive mined block: %v", err)
			}
		}
		fmt.Printf("mined block %d: %s (%d transactions)\n", blk.Height, blk.Hash.String(), len(blk.Transactions))
	},
}

func init() {
	mineCmd.Flags().StringVar(&mineAddress, "address", "", "address receiving the mining reward")
	mineCmd.Flags().StringVar(&mineFrom, "from", "", "optional transfer sender address")
	mineCmd.Flags().StringVar(&mineTo, "to", "", "optional transfer recipient address")
	mineCmd.Flags().Int64Var(&mineAmount, "amount", 0, "optional transfer amount")
	mineCmd.MarkFlagRequired("address")
}
