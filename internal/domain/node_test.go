package domain

import (
	"testing"
)

func TestWalk(t *testing.T) {
	leaf := NewAccount("1100", "cash", true, usd(10))

	count := 0
	for a := range Walk(leaf) {
		count++
		if a != leaf {
			t.Error("leaf walk should yield the account itself")
		}
	}
	if count != 1 {
		t.Fatalf("leaf walk yielded %d accounts, want 1", count)
	}

	g := NewGroup("1000", "assets", true)
	mustAdd(t, g.AddAccount(leaf))
	mustAdd(t, g.AddAccount(NewAccount("1200", "bank", true, usd(5))))

	count = 0
	for range Walk(g) {
		count++
	}
	if count != 2 {
		t.Fatalf("group walk yielded %d accounts, want 2", count)
	}
}

func TestNodeBalance(t *testing.T) {
	leaf := NewAccount("1100", "cash", true, usd(10))
	g := NewGroup("1000", "assets", true)
	mustAdd(t, g.AddAccount(leaf))
	mustAdd(t, g.AddAccount(NewAccount("1200", "bank", true, usd(5))))

	b, err := NodeBalance(leaf)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(usd(10)) {
		t.Errorf("leaf balance = %s, want 10 USD", b)
	}

	b, err = NodeBalance(g)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(usd(15)) {
		t.Errorf("group balance = %s, want 15 USD", b)
	}
}
