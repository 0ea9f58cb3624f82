package model

import "time"

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyHouse      PropertyType = "HOUSE"
	PropertyCondo      PropertyType = "CONDO"
	PropertyTownhouse  PropertyType = "TOWNHOUSE"
	PropertyApartment  PropertyType = "APARTMENT"
	PropertyVilla      PropertyType = "VILLA"
	PropertyLand       PropertyType = "LAND"
	PropertyCommercial PropertyType = "COMMERCIAL"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyHouse, PropertyCondo, PropertyTownhouse, PropertyApartment,
		PropertyVilla, PropertyLand, PropertyCommercial:
		return true
	}
	return false
}

// Property is a listing. PropertyID is the external business key members
// quote at signup; Email, Phone and Address are the owner's details the
// signup form is checked against.
type Property struct {
	ID           string       `json:"id"`
	PropertyID   string       `json:"propertyId"`
	Title        string       `json:"title"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zipCode"`
	PropertyType PropertyType `json:"propertyType"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    float64      `json:"bathrooms"`
	Sqft         int          `json:"sqft"`
	Price        float64      `json:"price"`
	Description  string       `json:"description"`
	Amenities    []string     `json:"amenities"`
	Images       []string     `json:"images"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	IsAvailable  bool         `json:"isAvailable"`
	IsFeature    bool         `json:"isFeature"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
