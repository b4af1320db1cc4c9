package models

import "time"

// BookingStatus is transmitted as a plain string on the wire.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Rentable availability values shown in the catalog.
const (
	RentableAvailable = "Available"
	RentableRented    = "Rented"
)

// IsSettable reports whether a status may be used as a transition target.
// "pending" is the initial state only, never a target.
func (s BookingStatus) IsSettable() bool {
	switch s {
	case BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// RentableStatusFor maps a booking status to the availability the referenced
// item/vehicle must show. Only a completed transaction takes the rentable off
// the market; a confirmed-but-unfulfilled booking leaves it bookable.
func RentableStatusFor(s BookingStatus) string {
	if s == BookingCompleted {
		return RentableRented
	}
	return RentableAvailable
}

// Booking is the persisted record. Exactly one of ItemID/VehicleID is set.
type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user"`
	ItemID         *int64        `json:"item"`
	VehicleID      *int64        `json:"vehicle"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        time.Time     `json:"endDate"`
	DurationInDays int           `json:"durationInDays"`
	TotalPrice     float64       `json:"totalPrice"`
	PickupLocation string        `json:"pickupLocation"`
	Notes          string        `json:"notes,omitempty"`
	Status         BookingStatus `json:"status"`
	Source         string        `json:"source,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// BookingDetail is the read shape with the referenced documents joined in,
// mirroring what listing endpoints historically returned.
type BookingDetail struct {
	ID             int64           `json:"id"`
	User           *UserSummary    `json:"user"`
	Item           *ItemSummary    `json:"item"`
	Vehicle        *VehicleSummary `json:"vehicle"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	DurationInDays int             `json:"durationInDays"`
	TotalPrice     float64         `json:"totalPrice"`
	PickupLocation string          `json:"pickupLocation"`
	Notes          string          `json:"notes,omitempty"`
	Status         BookingStatus   `json:"status"`
	Source         string          `json:"source,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RentableRef resolves which catalog side the booking points at.
// Returns the kind ("item" or "vehicle") and the id.
func (b Booking) RentableRef() (string, int64) {
	if b.ItemID != nil {
		return "item", *b.ItemID
	}
	if b.VehicleID != nil {
		return "vehicle", *b.VehicleID
	}
	return "", 0
}
