package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackwell-systems/chargewatch/internal/session"
)

// GroupSort names an optional in-group session ordering. The zero value
// keeps the input order.
type GroupSort string

const (
	SortNone   GroupSort = ""
	SortStart  GroupSort = "start"
	SortEnergy GroupSort = "energy"
)

// UserNotFoundError reports a --user filter that matched no group. It
// carries the known group keys so the caller can list them as remediation.
type UserNotFoundError struct {
	User  string
	Known []string
}

func (e *UserNotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("user %q not found (no users in result set)", e.User)
	}
	return fmt.Sprintf("user %q not found; known users: %s", e.User, strings.Join(e.Known, ", "))
}

// GroupByUser partitions classified sessions by user. Every session lands
// in exactly one group; sessions without a user go to the unclaimed group,
// which is always present and always ordered last. Other groups keep
// first-seen order, and sessions within a group keep input order unless a
// sort is requested.
func GroupByUser(sessions []session.Classified, sortBy GroupSort) []UserGroup {
	index := make(map[string]*UserGroup)
	var order []string

	for _, s := range sessions {
		key := s.UserKey()
		g, ok := index[key]
		if !ok {
			g = &UserGroup{Key: key}
			index[key] = g
			order = append(order, key)
		}
		g.Sessions = append(g.Sessions, s)
	}

	// The unclaimed group exists even when empty.
	if _, ok := index[session.Unclaimed]; !ok {
		index[session.Unclaimed] = &UserGroup{Key: session.Unclaimed}
		order = append(order, session.Unclaimed)
	}

	groups := make([]UserGroup, 0, len(order))
	for _, key := range order {
		if key == session.Unclaimed {
			continue
		}
		groups = append(groups, finishGroup(index[key], sortBy))
	}
	groups = append(groups, finishGroup(index[session.Unclaimed], sortBy))

	return groups
}

// finishGroup computes derived counts and applies the requested sort.
func finishGroup(g *UserGroup, sortBy GroupSort) UserGroup {
	g.Total = len(g.Sessions)
	for _, s := range g.Sessions {
		g.TotalEnergyKWh += s.EnergyKWh
		switch s.Category {
		case session.CategoryEmpty:
			g.EmptyCount++
		case session.CategoryMicro:
			g.MicroCount++
		default:
			g.NormalCount++
		}
	}
	g.EmptyPct = pct(g.EmptyCount, g.Total)
	g.NormalPct = pct(g.NormalCount, g.Total)

	switch sortBy {
	case SortStart:
		sort.SliceStable(g.Sessions, func(i, j int) bool {
			return g.Sessions[i].StartTimeMs < g.Sessions[j].StartTimeMs
		})
	case SortEnergy:
		sort.SliceStable(g.Sessions, func(i, j int) bool {
			return g.Sessions[i].EnergyKWh > g.Sessions[j].EnergyKWh
		})
	}

	return *g
}

// FindGroup returns the group matching user (case-insensitive). When no
// group matches it returns a UserNotFoundError listing the known keys.
func FindGroup(groups []UserGroup, user string) (*UserGroup, error) {
	for i := range groups {
		if strings.EqualFold(groups[i].Key, user) {
			return &groups[i], nil
		}
	}

	known := make([]string, 0, len(groups))
	for _, g := range groups {
		known = append(known, g.Key)
	}
	return nil, &UserNotFoundError{User: user, Known: known}
}
