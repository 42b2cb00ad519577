// Package reachability implements the "is commit X reachable from any of
// commit set S" query in both its pedestrian (walk-based) and
// bitmap-accelerated forms, per §4.5.
package reachability

import (
	"github.com/dagwalk/revwalk/identity"
)

// Checker answers reachability queries over a fixed set of starters.
// AllReachable returns a zero Identifier with ok=true when every target
// is reachable, or one target it could not prove reachable with ok=false
// (Pedestrian reports the first in targets order; Bitmapped reports any
// remaining one).
type Checker interface {
	AllReachable(targets []identity.Identifier) (unreachable identity.Identifier, ok bool, err error)
}
