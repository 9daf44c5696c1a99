package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is the name of an external metadata source known to the catalog.
//
// The set of platforms is closed. Adding a platform means adding a constant
// here and a connector for it.
type Platform string

const (
	Example     Platform = "example"
	OpenML      Platform = "openml"
	HuggingFace Platform = "huggingface"
)

func (p Platform) String() string {
	return string(p)
}

func AsPlatform(s string) (Platform, error) {
	switch Platform(s) {
	case Example:
		return Example, nil
	case OpenML:
		return OpenML, nil
	case HuggingFace:
		return HuggingFace, nil
	default:
		return Platform(s), fmt.Errorf("%w: %s", ErrUnknownPlatform, s)
	}
}

// KnownPlatforms lists every platform the catalog can hold rows for.
//
// The order is fixed.
func KnownPlatforms() []Platform {
	return []Platform{Example, OpenML, HuggingFace}
}

const (
	MaxDatasetNameLength = 150
	MaxIdentifierLength  = 250
	MaxTitleLength       = 250
	MaxURLLength         = 250
)

// Dataset is a catalog row: "this dataset exists on this platform under
// this identifier".
//
// Id is a surrogate key assigned by the store on insert; zero means
// "not stored yet".
type Dataset struct {
	Id                         int
	Name                       string
	Platform                   Platform
	PlatformSpecificIdentifier string
}

func (d *Dataset) Equal(other *Dataset) bool {
	if (d == nil) || (other == nil) {
		return (d == nil) && (other == nil)
	}
	return d.Id == other.Id &&
		d.Name == other.Name &&
		d.Platform == other.Platform &&
		d.PlatformSpecificIdentifier == other.PlatformSpecificIdentifier
}

func (d *Dataset) Validate() error {
	if d.Name == "" || MaxDatasetNameLength < len(d.Name) {
		return fmt.Errorf(
			"dataset name should be 1 to %d characters: %q",
			MaxDatasetNameLength, d.Name,
		)
	}
	if _, err := AsPlatform(string(d.Platform)); err != nil {
		return err
	}
	if d.PlatformSpecificIdentifier == "" || MaxIdentifierLength < len(d.PlatformSpecificIdentifier) {
		return fmt.Errorf(
			"platform specific identifier should be 1 to %d characters: %q",
			MaxIdentifierLength, d.PlatformSpecificIdentifier,
		)
	}
	return nil
}

// Publication is a catalog row for a paper. Publications and datasets are
// related many-to-many, and the relation is mutable from either side.
type Publication struct {
	Id    int
	Title string
	URL   string
}

func (p *Publication) Equal(other *Publication) bool {
	if (p == nil) || (other == nil) {
		return (p == nil) && (other == nil)
	}
	return p.Id == other.Id && p.Title == other.Title && p.URL == other.URL
}

func (p *Publication) Validate() error {
	if p.Title == "" || MaxTitleLength < len(p.Title) {
		return fmt.Errorf(
			"publication title should be 1 to %d characters: %q",
			MaxTitleLength, p.Title,
		)
	}
	if p.URL == "" || MaxURLLength < len(p.URL) {
		return fmt.Errorf(
			"publication url should be 1 to %d characters: %q",
			MaxURLLength, p.URL,
		)
	}
	return nil
}

// Metadata is the normalized result of asking a connector for extended
// information about one dataset.
//
// It lives for a single request/response cycle and is never persisted.
type Metadata struct {
	Name             string
	Description      *string
	FileURL          string
	NumberOfSamples  int
	NumberOfFeatures int

	// not every platform reports a class count
	NumberOfClasses *int
}

func (m *Metadata) Equal(other *Metadata) bool {
	if (m == nil) || (other == nil) {
		return (m == nil) && (other == nil)
	}
	return m.Name == other.Name &&
		pointerEq(m.Description, other.Description) &&
		m.FileURL == other.FileURL &&
		m.NumberOfSamples == other.NumberOfSamples &&
		m.NumberOfFeatures == other.NumberOfFeatures &&
		pointerEq(m.NumberOfClasses, other.NumberOfClasses)
}

func pointerEq[T comparable](a, b *T) bool {
	if (a == nil) || (b == nil) {
		return (a == nil) && (b == nil)
	}
	return *a == *b
}
