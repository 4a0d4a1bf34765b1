package model

import "stayin/shared/model"

const (
	TableName  = "occupants"
	EntityName = "occupant"

	FieldID           = "id"
	FieldRoomNo       = "room_no"
	FieldName         = "name"
	FieldContactNo    = "contact_no"
	FieldAddress      = "address"
	FieldGender       = "gender"
	FieldCheckinDate  = "checkin_date"
	FieldCheckoutDate = "checkout_date"
)

const (
	RoomStatusOccupied = "Occupied"
	RoomStatusVacant   = "Vacant"

	// Every room shares the same flat rate and cleanliness label.
	PricePerDay = "2500"
	CleanStatus = "Clean"
)

// Rooms is the fixed set of room numbers known to the hotel.
var Rooms = []string{"101", "102", "103", "104", "105", "106"}

// Occupant is a persisted record of a guest currently assigned to a room.
type Occupant struct {
	ID           string `db:"id"`
	RoomNo       string `db:"room_no"`
	Name         string `db:"name"`
	ContactNo    string `db:"contact_no"`
	Address      string `db:"address"`
	Gender       string `db:"gender"`
	CheckinDate  string `db:"checkin_date"`
	CheckoutDate string `db:"checkout_date"`
	model.Metadata
}
