package gen

import (
	"slices"
	"strings"
)

// Section is a fixed position inside a generated document.
type Section uint8

// Sections, in serialization order.
const (
	Preamble Section = iota
	Header
	Interfaces
	PossibleTypes
	Includes
	DefinitionMethods
	Fields
	Postamble
	numSections
)

var sectionNames = [numSections]string{
	"preamble", "header", "interfaces", "possible_types",
	"includes", "definition_methods", "fields", "postamble",
}

func (s Section) String() string {
	if s < numSections {
		return sectionNames[s]
	}
	return "unknown"
}

// Artifact is the kind of a generated file.
type Artifact uint8

// Artifact kinds.
const (
	ArtifactSchema Artifact = iota
	ArtifactImplementation
	ArtifactTest
	ArtifactManifest
	ArtifactSDL
)

func (a Artifact) String() string {
	switch a {
	case ArtifactSchema:
		return "schema"
	case ArtifactImplementation:
		return "implementation"
	case ArtifactTest:
		return "test"
	case ArtifactManifest:
		return "manifest"
	case ArtifactSDL:
		return "sdl"
	}
	return "unknown"
}

// Editable reports whether files of this kind are meant to be edited by
// hand after the first generation.
func (a Artifact) Editable() bool {
	return a == ArtifactImplementation || a == ArtifactTest
}

// Document is one generated file under construction. Fragments are kept
// per section and serialized in section order.
type Document struct {
	sections [numSections][]string
}

// Append adds fragments at the end of a section.
func (d *Document) Append(s Section, frags ...string) {
	d.sections[s] = append(d.sections[s], frags...)
}

// Unshift inserts a fragment at the start of a section.
func (d *Document) Unshift(s Section, frag string) {
	d.sections[s] = slices.Insert(d.sections[s], 0, frag)
}

// Contains reports whether the section holds the fragment.
func (d *Document) Contains(s Section, frag string) bool {
	return slices.Contains(d.sections[s], frag)
}

// Fragments returns the fragments of a section.
func (d *Document) Fragments(s Section) []string {
	return d.sections[s]
}

// String joins the non-empty fragments of all sections with newlines.
func (d *Document) String() string {
	var parts []string
	for _, sec := range d.sections {
		for _, f := range sec {
			if f != "" {
				parts = append(parts, f)
			}
		}
	}
	return strings.Join(parts, "\n")
}
