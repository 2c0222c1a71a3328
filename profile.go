// github.com/heungwook/PDFVT - PDF/VT metadata stamping and compliance checking
// Copyright (C) 2026  The PDFVT Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfvt

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Variant identifies a PDF/VT conformance level.
type Variant int

// The conformance levels known to this package.
const (
	VariantUnknown Variant = iota

	// VariantVT1 is PDF/VT-1, built on PDF/X-4 and PDF 1.6.
	VariantVT1

	// VariantVT3 is PDF/VT-3, built on PDF/X-6 and PDF 2.0.
	VariantVT3
)

func (v Variant) String() string {
	switch v {
	case VariantVT1:
		return "PDF/VT-1"
	case VariantVT3:
		return "PDF/VT-3"
	default:
		return "unknown"
	}
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// A VersionRule restricts which PDF versions a conformance level may be
// written as.
type VersionRule interface {
	// Allows reports whether the given PDF version, in "major.minor" form,
	// satisfies the rule.
	Allows(version string) bool

	// String returns a description of the rule for use in issue messages.
	String() string
}

// AtLeast is a VersionRule which is satisfied by the given version and all
// later ones.
type AtLeast struct {
	Major, Minor int
}

// Allows implements the [VersionRule] interface.
func (r AtLeast) Allows(version string) bool {
	var major, minor int
	n, err := fmt.Sscanf(version, "%d.%d", &major, &minor)
	if err != nil || n != 2 {
		return false
	}
	return major > r.Major || major == r.Major && minor >= r.Minor
}

func (r AtLeast) String() string {
	return fmt.Sprintf("PDF %d.%d or later", r.Major, r.Minor)
}

// Exactly is a VersionRule which is satisfied by a single version only.
type Exactly struct {
	Version string
}

// Allows implements the [VersionRule] interface.
func (r Exactly) Allows(version string) bool {
	return version == r.Version
}

func (r Exactly) String() string {
	return "exactly PDF " + r.Version
}

// Profile describes one PDF/VT conformance level.
type Profile struct {
	Variant Variant

	// Marker is the value of the GTS_PDFVTVersion conformance key, for
	// example "PDF/VT-1".
	Marker string

	// Base names the PDF/X conformance level the variant is built on.
	Base string

	// Rule restricts the PDF versions files claiming this level may use.
	Rule VersionRule

	// Features describes the capabilities of the conformance level, for
	// display only.
	Features []string

	// ExtraPacketNS lists additional properties stamped into the metadata
	// packet alongside the conformance marker, keyed by XMP namespace
	// prefix.  The supported prefixes are "pdfxid" (GTS_PDFXVersion) and
	// "pdf" (PDFVersion).
	ExtraPacketNS map[string]string
}

// Registry maps conformance markers to profiles.
type Registry struct {
	profiles []*Profile
	byMarker map[string]*Profile
}

// NewRegistry creates a registry holding the given profiles.  Markers must
// be unique.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	reg := &Registry{
		byMarker: make(map[string]*Profile),
	}
	for _, p := range profiles {
		if p.Marker == "" {
			return nil, fmt.Errorf("profile %s has no marker", p.Variant)
		}
		if _, seen := reg.byMarker[p.Marker]; seen {
			return nil, fmt.Errorf("duplicate marker %q", p.Marker)
		}
		reg.profiles = append(reg.profiles, p)
		reg.byMarker[p.Marker] = p
	}
	return reg, nil
}

// ByMarker returns the profile for the given conformance marker.
func (reg *Registry) ByMarker(marker string) (*Profile, bool) {
	p, ok := reg.byMarker[marker]
	return p, ok
}

// ByVariant returns the profile for the given conformance level.
func (reg *Registry) ByVariant(v Variant) (*Profile, bool) {
	for _, p := range reg.profiles {
		if p.Variant == v {
			return p, true
		}
	}
	return nil, false
}

// All returns the profiles in the order they were registered.
func (reg *Registry) All() []*Profile {
	res := make([]*Profile, len(reg.profiles))
	copy(res, reg.profiles)
	return res
}

// Markers returns the conformance markers known to the registry, sorted
// alphabetically.
func (reg *Registry) Markers() []string {
	markers := maps.Keys(reg.byMarker)
	sort.Strings(markers)
	return markers
}

// scanOrder returns the profiles in the order markers are searched for in
// metadata packets.  Longer markers are tried first, so that a marker which
// contains another marker as a prefix wins over the shorter one.
func (reg *Registry) scanOrder() []*Profile {
	res := make([]*Profile, len(reg.profiles))
	copy(res, reg.profiles)
	sort.SliceStable(res, func(i, j int) bool {
		return len(res[i].Marker) > len(res[j].Marker)
	})
	return res
}

// DefaultRegistry returns a registry holding the PDF/VT-1 and PDF/VT-3
// profiles.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(
		&Profile{
			Variant: VariantVT1,
			Marker:  "PDF/VT-1",
			Base:    "PDF/X-4 (ISO 15930-7)",
			Rule:    AtLeast{Major: 1, Minor: 6},
			Features: []string{
				"document part hierarchy (DPart)",
				"document part metadata (DPM)",
				"encapsulated XObjects",
			},
		},
		&Profile{
			Variant: VariantVT3,
			Marker:  "PDF/VT-3",
			Base:    "PDF/X-6 (ISO 15930-9)",
			Rule:    Exactly{Version: "2.0"},
			Features: []string{
				"document part hierarchy (DPart)",
				"document part metadata (DPM)",
				"PDF 2.0 transparency and page-level output intents",
			},
			ExtraPacketNS: map[string]string{
				"pdfxid": "PDF/X-6",
				"pdf":    "2.0",
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return reg
}
