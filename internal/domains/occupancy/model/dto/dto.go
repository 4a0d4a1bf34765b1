package dto

import (
	"stayin/internal/domains/occupancy/model"
	"stayin/shared"
	"stayin/shared/constant"
	gDto "stayin/shared/dto"
	gModel "stayin/shared/model"
	"stayin/shared/timezone"

	"github.com/google/uuid"
)

type AddOccupantRequest struct {
	RoomNo       string `json:"room_no"       validate:"required,oneof=101 102 103 104 105 106"`
	Name         string `json:"name"          validate:"required,max=100"`
	ContactNo    string `json:"contact_no"    validate:"required,len=10,numeric"`
	Address      string `json:"address"       validate:"omitempty,max=255"`
	Gender       string `json:"gender"        validate:"required,oneof=Male Female Others"`
	CheckinDate  string `json:"checkin_date"  validate:"required"`
	CheckoutDate string `json:"checkout_date" validate:"required"`
}

func (r *AddOccupantRequest) ToModel(user string) model.Occupant {
	return model.Occupant{
		ID:           uuid.NewString(),
		RoomNo:       r.RoomNo,
		Name:         r.Name,
		ContactNo:    r.ContactNo,
		Address:      r.Address,
		Gender:       r.Gender,
		CheckinDate:  r.CheckinDate,
		CheckoutDate: r.CheckoutDate,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateOccupantRequest overwrites every occupant field in place.
type UpdateOccupantRequest struct {
	RoomNo       string `json:"room_no"       validate:"required,oneof=101 102 103 104 105 106"`
	Name         string `json:"name"          validate:"required,max=100"`
	ContactNo    string `json:"contact_no"    validate:"required,len=10,numeric"`
	Address      string `json:"address"       validate:"omitempty,max=255"`
	Gender       string `json:"gender"        validate:"required,oneof=Male Female Others"`
	CheckinDate  string `json:"checkin_date"  validate:"required"`
	CheckoutDate string `json:"checkout_date" validate:"required"`
}

// ToFieldMap returns the full column set, including blank values, so the
// update replaces the row rather than patching non-zero fields.
func (r *UpdateOccupantRequest) ToFieldMap(user string) map[string]any {
	return map[string]any{
		model.FieldRoomNo:        r.RoomNo,
		model.FieldName:          r.Name,
		model.FieldContactNo:     r.ContactNo,
		model.FieldAddress:       r.Address,
		model.FieldGender:        r.Gender,
		model.FieldCheckinDate:   r.CheckinDate,
		model.FieldCheckoutDate:  r.CheckoutDate,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

// ConfirmRequest gates irrevocable actions behind an explicit acknowledgement.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

type OccupantResponse struct {
	ID           string `json:"id"`
	RoomNo       string `json:"room_no"`
	Name         string `json:"name"`
	ContactNo    string `json:"contact_no"`
	Address      string `json:"address"`
	Gender       string `json:"gender"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	gDto.Metadata
}

func (r *OccupantResponse) FromModel(mod model.Occupant) {
	r.ID = mod.ID
	r.RoomNo = mod.RoomNo
	r.Name = mod.Name
	r.ContactNo = mod.ContactNo
	r.Address = mod.Address
	r.Gender = mod.Gender
	r.CheckinDate = mod.CheckinDate
	r.CheckoutDate = mod.CheckoutDate
	r.Metadata.FromModel(mod.Metadata)
}

type GetOccupantsResponse struct {
	Occupants []OccupantResponse `json:"occupants"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetOccupantsResponse) FromModels(models []model.Occupant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Occupants = make([]OccupantResponse, len(models))
	for i, mod := range models {
		r.Occupants[i].FromModel(mod)
	}
}

type CheckoutResponse struct {
	RoomNo  string `json:"room_no"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type RoomStatus struct {
	RoomNo       string `json:"room_no"`
	Status       string `json:"status"`
	PricePerDay  string `json:"price_per_day"`
	Cleanliness  string `json:"cleanliness"`
	OccupantName string `json:"occupant_name"`
	Gender       string `json:"gender"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
}

type RoomStatusViewResponse struct {
	Rooms    []RoomStatus `json:"rooms"`
	Occupied int          `json:"occupied"`
	Vacant   int          `json:"vacant"`
}

// FromModels recomputes the projection from scratch for the fixed room set.
func (r *RoomStatusViewResponse) FromModels(occupants []model.Occupant) {
	occupied := make(map[string]model.Occupant, len(occupants))
	for _, occ := range occupants {
		occupied[occ.RoomNo] = occ
	}

	r.Rooms = make([]RoomStatus, len(model.Rooms))
	r.Occupied = 0

	for i, roomNo := range model.Rooms {
		status := RoomStatus{
			RoomNo:      roomNo,
			Status:      model.RoomStatusVacant,
			PricePerDay: model.PricePerDay,
			Cleanliness: model.CleanStatus,
		}

		if occ, ok := occupied[roomNo]; ok {
			status.Status = model.RoomStatusOccupied
			status.OccupantName = occ.Name
			status.Gender = occ.Gender
			status.CheckinDate = occ.CheckinDate
			status.CheckoutDate = occ.CheckoutDate

			r.Occupied++
		}

		r.Rooms[i] = status
	}

	r.Vacant = len(model.Rooms) - r.Occupied
}
