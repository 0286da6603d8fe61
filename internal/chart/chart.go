// Package chart loads a chart of accounts from a CSV description into
// the domain group/account tree.
//
// Each row is: number,name,kind,normal,parent. kind is "group" or
// "account", normal is "debit" or "credit", parent is the number of the
// enclosing group (empty for the single root group). Parents must be
// declared before their children; lines starting with '#' are comments,
// and an optional header row ("number,...") is skipped. Account numbers
// are not unique ledger-wide, but within one chart file they must be, so
// parent references stay unambiguous.
package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/money"
)

var (
	ErrDuplicateNumber = errors.New("duplicate number in chart")
	ErrUnknownParent   = errors.New("unknown parent group")
	ErrNoRoot          = errors.New("chart has no root group")
	ErrMultipleRoots   = errors.New("chart has multiple root groups")
)

// Load reads a chart-of-accounts CSV and builds the group tree. Every
// leaf account starts at the zero balance of the given currency. Options
// are forwarded to the created groups.
func Load(r io.Reader, currency string, opts ...domain.Option) (*domain.Group, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var root *domain.Group
	groups := make(map[string]*domain.Group)
	numbers := make(map[string]bool)

	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("chart: %w", err)
		}
		line++

		number := strings.TrimSpace(record[0])
		if line == 1 && number == "number" {
			continue
		}

		name := strings.TrimSpace(record[1])
		kind := strings.TrimSpace(record[2])
		normal := strings.TrimSpace(record[3])
		parent := strings.TrimSpace(record[4])

		if number == "" {
			return nil, fmt.Errorf("chart line %d: empty number", line)
		}
		if numbers[number] {
			return nil, fmt.Errorf("chart line %d: %w: %s", line, ErrDuplicateNumber, number)
		}
		numbers[number] = true

		debitNormal, err := parseNormal(normal)
		if err != nil {
			return nil, fmt.Errorf("chart line %d: %w", line, err)
		}

		var parentGroup *domain.Group
		if parent != "" {
			parentGroup = groups[parent]
			if parentGroup == nil {
				return nil, fmt.Errorf("chart line %d: %w: %s", line, ErrUnknownParent, parent)
			}
		}

		switch kind {
		case "group":
			g := domain.NewGroup(number, name, debitNormal, opts...)
			groups[number] = g
			if parentGroup == nil {
				if root != nil {
					return nil, fmt.Errorf("chart line %d: %w", line, ErrMultipleRoots)
				}
				root = g
			} else if err := parentGroup.AddGroup(g); err != nil {
				return nil, fmt.Errorf("chart line %d: %w", line, err)
			}
		case "account":
			if parentGroup == nil {
				return nil, fmt.Errorf("chart line %d: account %s has no parent group", line, number)
			}
			a := domain.NewAccount(number, name, debitNormal, money.Zero(currency))
			if err := parentGroup.AddAccount(a); err != nil {
				return nil, fmt.Errorf("chart line %d: %w", line, err)
			}
		default:
			return nil, fmt.Errorf("chart line %d: unknown kind %q", line, kind)
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func parseNormal(s string) (bool, error) {
	switch s {
	case "debit":
		return true, nil
	case "credit":
		return false, nil
	default:
		return false, fmt.Errorf("unknown normal side %q", s)
	}
}
