package models

import "time"

// Item is a generic rentable listing.
type Item struct {
	ID           int64     `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year,omitempty"`
	PricePerHour float64   `json:"pricePerHour"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Status       string    `json:"status"`
	CreatedBy    int64     `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Vehicle is the second rentable variant with transport-specific attributes.
type Vehicle struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year,omitempty"`
	PricePerHour float64   `json:"pricePerHour"`
	Available    bool      `json:"available"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Seat         int       `json:"seat,omitempty"`
	Door         int       `json:"door,omitempty"`
	Luggage      string    `json:"luggage,omitempty"`
	Transmission string    `json:"transmission,omitempty"`
	Drive        string    `json:"drive,omitempty"`
	FuelType     string    `json:"fuelType,omitempty"`
	Engine       string    `json:"engine,omitempty"`
	Status       string    `json:"status"`
	CreatedBy    int64     `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ItemSummary is the joined shape embedded in booking listings.
type ItemSummary struct {
	ID           int64   `json:"id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year,omitempty"`
	PricePerHour float64 `json:"pricePerHour"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Status       string  `json:"status,omitempty"`
	CreatedBy    int64   `json:"createdBy,omitempty"`
}

type VehicleSummary struct {
	ID           int64   `json:"id"`
	Type         string  `json:"type,omitempty"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year,omitempty"`
	PricePerHour float64 `json:"pricePerHour"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Status       string  `json:"status,omitempty"`
	CreatedBy    int64   `json:"createdBy,omitempty"`
}

// ItemUpdate supports PATCH-style updates via key presence. Status stays
// editable here on purpose: direct catalog edits predate the lifecycle rule
// and the frontend still uses them.
type ItemUpdate struct {
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	PricePerHour *float64 `json:"pricePerHour"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
	Status       *string  `json:"status"`
}

type VehicleUpdate struct {
	Type         *string  `json:"type"`
	Brand        *string  `json:"brand"`
	Model        *string  `json:"model"`
	Year         *int     `json:"year"`
	PricePerHour *float64 `json:"pricePerHour"`
	Available    *bool    `json:"available"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"imageUrl"`
	Seat         *int     `json:"seat"`
	Door         *int     `json:"door"`
	Luggage      *string  `json:"luggage"`
	Transmission *string  `json:"transmission"`
	Drive        *string  `json:"drive"`
	FuelType     *string  `json:"fuelType"`
	Engine       *string  `json:"engine"`
	Status       *string  `json:"status"`
}
