package samizdat

import (
	"fmt"

	"github.com/google/uuid"
)

// Uniqlet is a content-free value useful only by identity: used for class
// access secrets and as a general-purpose access-control token (spec.md
// §3.4, glossary). It carries a uuid that DebugString prints and that
// TotalOrder uses as the tiebreak between two distinct uniqlets; equality
// stays identity-based, so a Uniqlet is equal only to itself.
type Uniqlet struct {
	Header
	id uuid.UUID
}

func (u *Uniqlet) header() *Header { return &u.Header }

// MakeUniqlet allocates a new, unique, content-free value.
func MakeUniqlet() *Uniqlet {
	u := &Uniqlet{id: uuid.New()}
	register(u, clsUniqlet)
	return u
}

func (u *Uniqlet) GCMark() {}

// TotalOrder on Uniqlets is identity order: two distinct uniqlets have no
// principled ordering beyond "not equal," so we fall back to a stable but
// otherwise arbitrary tiebreak on their minted uuid, matching the spirit
// of "ordering / equality: identity" in spec.md §3.4's type table.
func (u *Uniqlet) TotalOrder(other Value) Ordering {
	o, ok := other.(*Uniqlet)
	if !ok {
		fatalf("Uniqlet.TotalOrder: not a uniqlet: %s", DebugString(other))
	}
	if u == o {
		return OrderEqual
	}
	switch {
	case u.id.String() < o.id.String():
		return OrderLess
	case u.id.String() > o.id.String():
		return OrderGreater
	default:
		return OrderEqual
	}
}

func (u *Uniqlet) DebugString() string {
	return fmt.Sprintf("@@Uniqlet{%s}", u.id.String())
}
