// Package model defines the Atlas domain objects: contexts, UI states,
// transitions, the record wrappers the graph store persists, and workflows.
//
// All objects round-trip through JSON with stable shapes; Decode* functions
// in decode.go validate inbound payloads against these shapes.
package model

import (
	"time"
)

// Platform is the logical platform a UI state was captured on.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
	PlatformAndroid Platform = "android"
	PlatformMacOS   Platform = "macos"
	PlatformOther   Platform = "other"
)

// Valid reports whether p is a known platform value.
func (p Platform) Valid() bool {
	switch p {
	case PlatformWeb, PlatformWindows, PlatformLinux, PlatformAndroid, PlatformMacOS, PlatformOther:
		return true
	}
	return false
}

// Now returns the current UTC time in the fixed-width ISO 8601 form used
// throughout Atlas (seconds precision, trailing Z). Fixed width keeps
// lexicographic order equal to chronological order.
func Now() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// BoundingBox is the screen-space box of a UI element, in logical pixels
// relative to the top-left corner of the window or screen.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// InteractiveElement is an actionable element within a UI state: a button,
// link, input, menu item, and so on.
type InteractiveElement struct {
	ID          string         `json:"id"`
	Role        string         `json:"role"`
	Label       string         `json:"label"`
	BoundingBox *BoundingBox   `json:"bounding_box"`
	Path        string         `json:"path"`
	Enabled     bool           `json:"enabled"`
	Visible     bool           `json:"visible"`
	Metadata    map[string]any `json:"metadata"`
}

// UIState is a single observed screen configuration of an application.
//
// Fingerprints identify the state along different axes (structural, visual,
// semantic, plus driver-specific extras).
type UIState struct {
	ID            string               `json:"id"`
	AppID         string               `json:"app_id"`
	Version       string               `json:"version"`
	Platform      Platform             `json:"platform"`
	Locale        string               `json:"locale"`
	Fingerprints  map[string]string    `json:"fingerprints"`
	ScreenshotRef string               `json:"screenshot_ref"`
	Elements      []InteractiveElement `json:"interactive_elements"`
	Metadata      map[string]any       `json:"metadata"`
}

// Element returns the element with the given id, or nil.
func (s *UIState) Element(elementID string) *InteractiveElement {
	for i := range s.Elements {
		if s.Elements[i].ID == elementID {
			return &s.Elements[i]
		}
	}
	return nil
}

// ElementsByRole returns all elements whose role matches, case-insensitively.
func (s *UIState) ElementsByRole(role string) []InteractiveElement {
	key := normalize(role)
	var out []InteractiveElement
	for _, el := range s.Elements {
		if normalize(el.Role) == key {
			out = append(out, el)
		}
	}
	return out
}

// ElementsByLabel returns all elements whose label matches after trimming
// and case folding.
func (s *UIState) ElementsByLabel(label string) []InteractiveElement {
	key := normalize(label)
	var out []InteractiveElement
	for _, el := range s.Elements {
		if el.Label != "" && normalize(el.Label) == key {
			out = append(out, el)
		}
	}
	return out
}
