package domain

import (
	"iter"

	"github.com/iho/bookkeeper/internal/money"
)

// Group is an internal node of the chart of accounts, aggregating leaf
// accounts and nested subgroups. Its consolidated balance is always
// derived from the subtree, never stored.
//
// Attachment is explicit: the caller builds children first and attaches
// them with AddAccount/AddGroup. No cycle check is performed; tree
// well-formedness is the caller's contract.
type Group struct {
	ID          ID
	Number      string
	Name        string
	DebitNormal bool

	settings settings
	accounts map[ID]*Account
	groups   map[ID]*Group
}

// NewGroup creates an empty group.
func NewGroup(number, name string, debitNormal bool, opts ...Option) *Group {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Group{
		ID:          NewID(),
		Number:      number,
		Name:        name,
		DebitNormal: debitNormal,
		settings:    s,
		accounts:    make(map[ID]*Account),
		groups:      make(map[ID]*Group),
	}
}

// AddAccount registers a leaf account under this group. A second
// registration of the same identity is handled per the duplicate policy;
// the original registration always wins and is never merged.
func (g *Group) AddAccount(a *Account) error {
	if _, ok := g.accounts[a.ID]; ok {
		return g.onDuplicate("account", string(a.ID), a.Number, ErrDuplicateAccount)
	}
	g.accounts[a.ID] = a
	return nil
}

// AddGroup attaches a child group.
func (g *Group) AddGroup(child *Group) error {
	if _, ok := g.groups[child.ID]; ok {
		return g.onDuplicate("group", string(child.ID), child.Number, ErrDuplicateGroup)
	}
	g.groups[child.ID] = child
	return nil
}

func (g *Group) onDuplicate(kind, id, number string, err error) error {
	switch g.settings.policy {
	case DuplicateError:
		return err
	case DuplicateWarn:
		g.settings.logger.Warn().
			Str("kind", kind).
			Str("id", id).
			Str("number", number).
			Str("group", g.Name).
			Msg("duplicate registration ignored, keeping original")
	}
	return nil
}

// Accounts returns a depth-first sequence of every leaf account reachable
// from this group: own accounts first, then each subgroup's leaves.
// Order across siblings follows map iteration and is not a contract.
func (g *Group) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		g.walk(yield)
	}
}

func (g *Group) walk(yield func(*Account) bool) bool {
	for _, a := range g.accounts {
		if !yield(a) {
			return false
		}
	}
	for _, child := range g.groups {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Balance returns the sum of stored balances over every reachable leaf,
// folding from the zero Position. An empty group yields zero.
func (g *Group) Balance() (money.Money, error) {
	var total money.Money
	for a := range g.Accounts() {
		sum, err := total.Add(a.Balance())
		if err != nil {
			return money.Money{}, err
		}
		total = sum
	}
	return total, nil
}

// Contains reports whether id is this group itself, one of its immediate
// accounts, or found anywhere in a subgroup.
func (g *Group) Contains(id ID) bool {
	if g.ID == id {
		return true
	}
	if _, ok := g.accounts[id]; ok {
		return true
	}
	for _, child := range g.groups {
		if child.Contains(id) {
			return true
		}
	}
	return false
}

// Children returns the immediate children, accounts before subgroups.
// Sibling order is unspecified; display code sorts as it sees fit.
func (g *Group) Children() []Node {
	nodes := make([]Node, 0, len(g.accounts)+len(g.groups))
	for _, a := range g.accounts {
		nodes = append(nodes, a)
	}
	for _, child := range g.groups {
		nodes = append(nodes, child)
	}
	return nodes
}
