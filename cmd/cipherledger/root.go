package main

import (
	"log"

	"github.com/spf13/cobra"

	"cipherledger/core/chain"
	"cipherledger/core/config"
	"cipherledger/core/storage"
)

var rootCmd = &cobra.Command{
	Use:   "cipherledger",
	Short: "Encrypted message exchange over a hash-linked ledger",
	Long:  "A command-line tool for exchanging asymmetrically encrypted, optionally signed messages recorded on an append-only hash-chained ledger.",
}

func init() {
	rootCmd.AddCommand(exchangeCmd)
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statusCmd)
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// openChain resumes the ledger from the block archive when one is
// configured, otherwise starts fresh in memory. A newly created chain
// archives its genesis block immediately so later runs resume from it.
func openChain(cfg *config.Config) (*chain.Chain, *storage.Store, error) {
	if cfg.DBPath == "" {
		return chain.New(), nil, nil
	}
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	blocks, err := store.ListBlocks()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if len(blocks) == 0 {
		c := chain.New()
		if err := store.SaveBlock(c.Tip()); err != nil {
			store.Close()
			return nil, nil, err
		}
		return c, store, nil
	}
	c, err := chain.NewFromBlocks(blocks)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return c, store, nil
}

// mustOpenStore opens the configured archive for read-only style
// commands that are meaningless without one.
func mustOpenStore(cfg *config.Config) *storage.Store {
	if cfg.DBPath == "" {
		log.Fatal("CIPHERLEDGER_DB_PATH is not set; no block archive to read")
	}
	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open block archive: %v", err)
	}
	return store
}
