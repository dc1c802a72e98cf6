package mempool

import (
	"fmt"
	"testing"

	"cipherledger/core/block"
)

func tx(id string) block.Transaction {
	return block.Transaction{TxID: id, FromAddress: "alice", ToAddress: "bob", Amount: 1}
}

func TestAddAndOrder(t *testing.T) {
	p := New(10)
	for _, id := range []string{"a", "b", "c"} {
		if !p.Add(tx(id)) {
			t.Fatalf("expected add of %q to succeed", id)
		}
	}
	all := p.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 queued transactions, got %d", len(all))
	}
	for i, id := range []string{"a", "b", "c"} {
		if all[i].TxID != id {
			t.Errorf("expected %q at position %d, got %q", id, i, all[i].TxID)
		}
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	p := New(10)
	p.Add(tx("a"))
	if p.Add(tx("a")) {
		t.Error("expected duplicate TxID to be rejected")
	}
	if p.Size() != 1 {
		t.Errorf("expected pool size 1, got %d", p.Size())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	p := New(2)
	p.Add(tx("a"))
	p.Add(tx("b"))
	p.Add(tx("c"))

	if _, ok := p.Get("a"); ok {
		t.Error("expected oldest transaction to be evicted")
	}
	if _, ok := p.Get("c"); !ok {
		t.Error("expected newest transaction to be present")
	}
	if p.Size() != 2 {
		t.Errorf("expected pool size 2, got %d", p.Size())
	}
}

func TestDrainEmptiesPool(t *testing.T) {
	p := New(10)
	for i := 0; i < 5; i++ {
		p.Add(tx(fmt.Sprintf("tx-%d", i)))
	}
	drained := p.Drain()
	if len(drained) != 5 {
		t.Fatalf("expected 5 drained transactions, got %d", len(drained))
	}
	if p.Size() != 0 {
		t.Errorf("expected empty pool after drain, got %d", p.Size())
	}
	if drained[0].TxID != "tx-0" {
		t.Errorf("expected drain to preserve arrival order, got %q first", drained[0].TxID)
	}
}
