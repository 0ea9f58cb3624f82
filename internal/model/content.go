package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PageType names a public page.
type PageType string

const (
	PageHome     PageType = "HOME"
	PageProjects PageType = "PROJECTS"
	PageAbout    PageType = "ABOUT"
	PageContact  PageType = "CONTACT"
)

func (p PageType) Valid() bool {
	switch p {
	case PageHome, PageProjects, PageAbout, PageContact:
		return true
	}
	return false
}

// SectionType names a block kind within a page.
type SectionType string

const (
	SectionHero         SectionType = "HERO"
	SectionFeatures     SectionType = "FEATURES"
	SectionGallery      SectionType = "GALLERY"
	SectionText         SectionType = "TEXT"
	SectionTestimonials SectionType = "TESTIMONIALS"
	SectionCTA          SectionType = "CTA"
)

func (s SectionType) Valid() bool {
	switch s {
	case SectionHero, SectionFeatures, SectionGallery, SectionText, SectionTestimonials, SectionCTA:
		return true
	}
	return false
}

// PageContent is a CMS block. Blocks are listed by Order ascending, ties
// broken by most recent CreatedAt.
type PageContent struct {
	ID          string      `json:"id"`
	PageType    PageType    `json:"pageType"`
	SectionType SectionType `json:"sectionType"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Content     string      `json:"content"`
	Images      []string    `json:"images"`
	Order       int         `json:"order"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	CreatedBy   string      `json:"createdBy,omitempty"`
	UpdatedBy   string      `json:"updatedBy,omitempty"`
}

// DataType governs how a SiteSetting value is interpreted.
type DataType string

const (
	DataString  DataType = "string"
	DataNumber  DataType = "number"
	DataBoolean DataType = "boolean"
	DataJSON    DataType = "json"
)

func (d DataType) Valid() bool {
	switch d {
	case DataString, DataNumber, DataBoolean, DataJSON:
		return true
	}
	return false
}

// SiteSetting is a key/value configuration entry. Value is always stored as
// text and re-interpreted according to DataType.
type SiteSetting struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	DataType    DataType  `json:"dataType"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
}

// ParseValue coerces value according to dt.
func ParseValue(dt DataType, value string) (any, error) {
	switch dt {
	case DataString, "":
		return value, nil
	case DataNumber:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", value)
		}
		return f, nil
	case DataBoolean:
		switch value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("value %q is not a boolean", value)
	case DataJSON:
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return nil, fmt.Errorf("value is not valid JSON")
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown data type %q", dt)
}

// Parsed returns the typed value, or nil when the stored text does not
// parse.
func (s *SiteSetting) Parsed() any {
	v, err := ParseValue(s.DataType, s.Value)
	if err != nil {
		return nil
	}
	return v
}
