package engine

// Role tells a renderer how to paint one index.
type Role uint8

const (
	RoleNone Role = iota
	RoleCompare
	RoleSwap
	RoleWrite
	RoleSorted
)

func (r Role) String() string {
	switch r {
	case RoleCompare:
		return "compare"
	case RoleSwap:
		return "swap"
	case RoleWrite:
		return "write"
	case RoleSorted:
		return "sorted"
	default:
		return "none"
	}
}

// Highlight describes the indices to emphasize at one step. The set of
// implementations is closed.
type Highlight interface {
	highlight()
}

// Comparing marks two indices being compared.
type Comparing struct{ I, J int }

// Swapping marks two indices that were just exchanged.
type Swapping struct{ I, J int }

// Writing marks the position a merge just wrote or is about to write.
type Writing struct{ Index int }

// SortedFrom marks indices >= Index as in final position.
type SortedFrom struct{ Index int }

// SortedThrough marks indices <= Index as sorted.
type SortedThrough struct{ Index int }

// CustomColors assigns explicit roles per index.
type CustomColors struct{ Colors map[int]Role }

func (Comparing) highlight()     {}
func (Swapping) highlight()      {}
func (Writing) highlight()       {}
func (SortedFrom) highlight()    {}
func (SortedThrough) highlight() {}
func (CustomColors) highlight()  {}

// Roles expands h into one role per index of an n-element array. Indices out
// of range are ignored. A nil highlight yields all RoleNone.
func Roles(h Highlight, n int) []Role {
	roles := make([]Role, n)
	set := func(i int, r Role) {
		if i >= 0 && i < n {
			roles[i] = r
		}
	}

	switch h := h.(type) {
	case nil:
	case Comparing:
		set(h.I, RoleCompare)
		set(h.J, RoleCompare)
	case Swapping:
		set(h.I, RoleSwap)
		set(h.J, RoleSwap)
	case Writing:
		set(h.Index, RoleWrite)
	case SortedFrom:
		for i := max(h.Index, 0); i < n; i++ {
			roles[i] = RoleSorted
		}
	case SortedThrough:
		for i := 0; i <= h.Index && i < n; i++ {
			roles[i] = RoleSorted
		}
	case CustomColors:
		for i, r := range h.Colors {
			set(i, r)
		}
	}
	return roles
}

// swapOverSorted paints the pair as swapped on top of a sorted range
// [from, to].
func swapOverSorted(i, j, from, to int) CustomColors {
	colors := make(map[int]Role, to-from+3)
	for k := from; k <= to; k++ {
		colors[k] = RoleSorted
	}
	colors[i] = RoleSwap
	colors[j] = RoleSwap
	return CustomColors{Colors: colors}
}
