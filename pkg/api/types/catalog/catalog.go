package catalog

import (
	"encoding/json"
	"fmt"
)

// Dataset is the wire form of a catalog dataset row.
type Dataset struct {
	Id                         int    `json:"id"`
	Name                       string `json:"name"`
	Platform                   string `json:"platform"`
	PlatformSpecificIdentifier string `json:"platform_specific_identifier"`

	// Publications is filled only by endpoints listing the relation.
	Publications []Publication `json:"publications,omitempty"`
}

func (d *Dataset) Equal(other *Dataset) bool {
	if (d == nil) || (other == nil) {
		return (d == nil) && (other == nil)
	}
	if len(d.Publications) != len(other.Publications) {
		return false
	}
	for nth := range d.Publications {
		if !d.Publications[nth].Equal(&other.Publications[nth]) {
			return false
		}
	}
	return d.Id == other.Id &&
		d.Name == other.Name &&
		d.Platform == other.Platform &&
		d.PlatformSpecificIdentifier == other.PlatformSpecificIdentifier
}

// Publication is the wire form of a catalog publication row.
type Publication struct {
	Id    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`

	// Datasets is filled only by endpoints listing the relation.
	Datasets []Dataset `json:"datasets,omitempty"`
}

func (p *Publication) Equal(other *Publication) bool {
	if (p == nil) || (other == nil) {
		return (p == nil) && (other == nil)
	}
	if len(p.Datasets) != len(other.Datasets) {
		return false
	}
	for nth := range p.Datasets {
		if !p.Datasets[nth].Equal(&other.Datasets[nth]) {
			return false
		}
	}
	return p.Id == other.Id && p.Title == other.Title && p.URL == other.URL
}

// Metadata is the wire form of a connector's extended-metadata result.
type Metadata struct {
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	FileURL          string  `json:"file_url"`
	NumberOfSamples  int     `json:"number_of_samples"`
	NumberOfFeatures int     `json:"number_of_features"`
	NumberOfClasses  *int    `json:"number_of_classes,omitempty"`
}

// DatasetSpec is a request body registering or replacing a dataset.
type DatasetSpec struct {
	Name                       string `json:"name"`
	Platform                   string `json:"platform"`
	PlatformSpecificIdentifier string `json:"platform_specific_identifier"`
}

func (s *DatasetSpec) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Name                       *string `json:"name"`
		Platform                   *string `json:"platform"`
		PlatformSpecificIdentifier *string `json:"platform_specific_identifier"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	for field, value := range map[string]*string{
		"name":                         f.Name,
		"platform":                     f.Platform,
		"platform_specific_identifier": f.PlatformSpecificIdentifier,
	} {
		if value == nil {
			return fmt.Errorf("required field missing: %q", field)
		}
	}

	s.Name = *f.Name
	s.Platform = *f.Platform
	s.PlatformSpecificIdentifier = *f.PlatformSpecificIdentifier
	return nil
}

// PublicationSpec is a request body registering a publication.
type PublicationSpec struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *PublicationSpec) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Title *string `json:"title"`
		URL   *string `json:"url"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Title == nil {
		return fmt.Errorf(`required field missing: "title"`)
	}
	if f.URL == nil {
		return fmt.Errorf(`required field missing: "url"`)
	}

	s.Title = *f.Title
	s.URL = *f.URL
	return nil
}
