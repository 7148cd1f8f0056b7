package shoplist

import "slices"

// Mode is the interaction mode derived from how many articles are selected.
type Mode int

const (
	ModeNone Mode = iota
	ModeOne
	ModeMany
)

// ModeFor maps a selection size to its mode.
func ModeFor(size int) Mode {
	switch {
	case size <= 0:
		return ModeNone
	case size == 1:
		return ModeOne
	default:
		return ModeMany
	}
}

func (m Mode) String() string {
	switch m {
	case ModeOne:
		return "one"
	case ModeMany:
		return "many"
	default:
		return "none"
	}
}

// Selection is the set of selected article ids, kept in the order they
// were selected. The mode is never stored; it is always ModeFor(Len()).
type Selection struct {
	ids      []int64
	onChange func(Mode)
}

// NewSelection returns an empty selection. onChange, if not nil, is called
// with the new mode after every Toggle and Clear.
func NewSelection(onChange func(Mode)) *Selection {
	return &Selection{onChange: onChange}
}

// Toggle selects id if it is not selected and deselects it otherwise.
func (s *Selection) Toggle(id int64) Mode {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	} else {
		s.ids = append(s.ids, id)
	}
	return s.notify()
}

// Clear deselects everything, forcing ModeNone.
func (s *Selection) Clear() {
	s.ids = nil
	s.notify()
}

func (s *Selection) notify() Mode {
	m := s.Mode()
	if s.onChange != nil {
		s.onChange(m)
	}
	return m
}

func (s *Selection) Mode() Mode { return ModeFor(len(s.ids)) }

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Empty() bool { return len(s.ids) == 0 }

func (s *Selection) Contains(id int64) bool { return slices.Contains(s.ids, id) }

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []int64 { return slices.Clone(s.ids) }
