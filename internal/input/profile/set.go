package profile

import (
	"fmt"
	"slices"
)

// Set is an ordered collection of platform profiles.
type Set struct {
	profiles []*PlatformProfile
}

// NewSet creates a set from the given profiles.
func NewSet(profiles ...*PlatformProfile) *Set {
	return &Set{profiles: slices.Clone(profiles)}
}

// Add appends a profile.
func (s *Set) Add(pp *PlatformProfile) {
	s.profiles = append(s.profiles, pp)
}

// Profiles returns a copy of the profile list.
func (s *Set) Profiles() []*PlatformProfile {
	return slices.Clone(s.profiles)
}

// Len returns the number of profiles.
func (s *Set) Len() int {
	return len(s.profiles)
}

// Named returns the first profile with the given name, or nil.
func (s *Set) Named(name string) *PlatformProfile {
	for _, pp := range s.profiles {
		if pp.Name == name {
			return pp
		}
	}
	return nil
}

// Select returns the first profile for platform. If none exists, the
// first PlatformAny profile is returned, then nil.
func (s *Set) Select(platform Platform) *PlatformProfile {
	var fallback *PlatformProfile
	for _, pp := range s.profiles {
		if pp.platform == platform {
			return pp
		}
		if fallback == nil && pp.platform == PlatformAny {
			fallback = pp
		}
	}
	return fallback
}

// Clone returns a set of cloned profiles.
func (s *Set) Clone() (*Set, error) {
	out := &Set{profiles: make([]*PlatformProfile, len(s.profiles))}
	for i, pp := range s.profiles {
		c, err := pp.Clone()
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		out.profiles[i] = c
	}
	return out, nil
}
