// Package tabulist implements the expiry-keyed forbid set the search
// orchestrator consults before applying a move: a move is tabu if any of
// its signature keys is still within its tenure window.
package tabulist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opbench/optabu/move"
)

// TabuList forbids move signatures for a fixed number of iterations after
// they are added.
type TabuList struct {
	tenure int
	expiry map[string]int
}

// New builds an empty TabuList with the given tenure (iterations a key
// remains forbidden after being added).
func New(tenure int) *TabuList {
	return &TabuList{tenure: tenure, expiry: make(map[string]int)}
}

// Tenure derives the standard tabu tenure for an instance of n vertices:
// max(3, floor(0.3*n)).
func Tenure(n int) int {
	t := int(0.3 * float64(n))
	if t < 3 {
		return 3
	}

	return t
}

// Add forbids every key in m's add-signature until currItr+tenure.
func (tl *TabuList) Add(m move.Move, currItr int) {
	for _, key := range m.TabuAddKeys() {
		tl.expiry[key] = currItr + tl.tenure
	}
}

// IsTabu reports whether any key in m's check-signature is currently forbidden.
func (tl *TabuList) IsTabu(m move.Move) bool {
	for _, key := range m.TabuCheckKeys() {
		if _, ok := tl.expiry[key]; ok {
			return true
		}
	}

	return false
}

// Update evicts every key whose tenure has expired as of currItr.
//
// Complexity: O(len(tl)).
func (tl *TabuList) Update(currItr int) {
	for key, expiry := range tl.expiry {
		if currItr > expiry {
			delete(tl.expiry, key)
		}
	}
}

// Clear empties the tabu list entirely.
func (tl *TabuList) Clear() {
	tl.expiry = make(map[string]int)
}

// String implements fmt.Stringer for debug output, with keys sorted for
// deterministic rendering.
func (tl *TabuList) String() string {
	keys := make([]string, 0, len(tl.expiry))
	for k := range tl.expiry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s:%d", k, tl.expiry[k])
	}

	return "TabuList items: {" + strings.Join(parts, ", ") + "}"
}
