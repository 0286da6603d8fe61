package domain

import (
	"fmt"
	"iter"

	"github.com/iho/bookkeeper/internal/money"
)

// Node is either a leaf *Account or a *Group. The variant is sealed;
// consumers branch with a type switch rather than virtual dispatch.
type Node interface {
	node()
}

func (*Account) node() {}
func (*Group) node()   {}

// Walk yields every leaf account reachable from n: the account itself
// for a leaf, the full depth-first traversal for a group.
func Walk(n Node) iter.Seq[*Account] {
	switch v := n.(type) {
	case *Account:
		return func(yield func(*Account) bool) {
			yield(v)
		}
	case *Group:
		return v.Accounts()
	default:
		panic(fmt.Sprintf("domain: unknown node type %T", n))
	}
}

// NodeBalance computes the balance per variant: the stored balance for a
// leaf, the consolidated subtree balance for a group.
func NodeBalance(n Node) (money.Money, error) {
	switch v := n.(type) {
	case *Account:
		return v.Balance(), nil
	case *Group:
		return v.Balance()
	default:
		panic(fmt.Sprintf("domain: unknown node type %T", n))
	}
}
