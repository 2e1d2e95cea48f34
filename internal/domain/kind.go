package domain

import (
	"fmt"
	"strings"
)

// Kind identifies one of the sub-resources a submission can carry.
type Kind string

const (
	KindPYQ   Kind = "PYQ"
	KindNotes Kind = "Notes"
	KindVideo Kind = "Video"
)

// Kinds lists every sub-resource kind in display order.
var Kinds = []Kind{KindPYQ, KindNotes, KindVideo}

// ParseKind accepts the canonical spelling or any case-insensitive variant of it.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource type %q", s)
}

func (k Kind) bit() KindSet {
	switch k {
	case KindPYQ:
		return 1 << 0
	case KindNotes:
		return 1 << 1
	case KindVideo:
		return 1 << 2
	}
	return 0
}

// KindSet is the set of selected sub-resource kinds.
type KindSet uint8

// NewKindSet builds a set from the given kinds. Unknown kinds are ignored.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= k.bit()
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	b := k.bit()
	return b != 0 && s&b == b
}

// With returns a copy of the set including k.
func (s KindSet) With(k Kind) KindSet { return s | k.bit() }

// Without returns a copy of the set excluding k.
func (s KindSet) Without(k Kind) KindSet { return s &^ k.bit() }

// Empty reports whether no kind is selected.
func (s KindSet) Empty() bool { return s == 0 }

// Kinds returns the members in display order.
func (s KindSet) Kinds() []Kind {
	out := make([]Kind, 0, len(Kinds))
	for _, k := range Kinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	parts := make([]string, 0, len(Kinds))
	for _, k := range s.Kinds() {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ",")
}
