package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/money"
)

// ErrNoChart is returned when no chart of accounts was configured.
var ErrNoChart = errors.New("no chart of accounts configured")

// ChartService serves read-only snapshots of the chart-of-accounts tree.
type ChartService struct {
	root   *domain.Group
	ledger *domain.Ledger
}

// NewChartService creates a ChartService. root may be nil when the
// service runs without a preloaded chart. When a ledger is given, leaf
// balances come from its posting-lock snapshot so a concurrent posting
// is seen with both legs or neither; with a nil ledger the live account
// balances are read directly.
func NewChartService(root *domain.Group, ledger *domain.Ledger) *ChartService {
	return &ChartService{root: root, ledger: ledger}
}

// Root returns the chart root group, or nil.
func (s *ChartService) Root() *domain.Group { return s.root }

// ChartNode is a display snapshot of one tree node with its computed
// balance. Children are ordered by number then name for stable output;
// the underlying traversal order is not a contract.
type ChartNode struct {
	Number      string       `json:"number,omitempty"`
	Name        string       `json:"name"`
	DebitNormal bool         `json:"debit_normal"`
	Leaf        bool         `json:"leaf"`
	Balance     money.Money  `json:"balance"`
	Children    []*ChartNode `json:"children,omitempty"`
}

// Tree computes a full snapshot of the chart with consolidated balances.
func (s *ChartService) Tree(ctx context.Context) (*ChartNode, error) {
	if s.root == nil {
		return nil, ErrNoChart
	}

	var balances map[domain.ID]money.Money
	if s.ledger != nil {
		balances = s.ledger.Balances()
	}
	return snapshot(s.root, balances)
}

func snapshot(n domain.Node, balances map[domain.ID]money.Money) (*ChartNode, error) {
	switch v := n.(type) {
	case *domain.Account:
		balance, ok := balances[v.ID]
		if !ok {
			balance = v.Balance()
		}
		return &ChartNode{
			Number:      v.Number,
			Name:        v.Name,
			DebitNormal: v.DebitNormal,
			Leaf:        true,
			Balance:     balance,
		}, nil
	case *domain.Group:
		node := &ChartNode{
			Number:      v.Number,
			Name:        v.Name,
			DebitNormal: v.DebitNormal,
		}
		// Consolidated balances fold over the snapshot, not the live
		// accounts, so the whole tree reflects one instant.
		var total money.Money
		for _, child := range v.Children() {
			c, err := snapshot(child, balances)
			if err != nil {
				return nil, err
			}
			total, err = total.Add(c.Balance)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, c)
		}
		node.Balance = total
		slices.SortFunc(node.Children, func(a, b *ChartNode) int {
			if c := strings.Compare(a.Number, b.Number); c != 0 {
				return c
			}
			return strings.Compare(a.Name, b.Name)
		})
		return node, nil
	default:
		return nil, errors.New("unknown chart node type")
	}
}
