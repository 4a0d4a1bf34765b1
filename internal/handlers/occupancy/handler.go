package occupancy

import (
	"net/http"
	"stayin/infras/otel"
	"stayin/internal/domains/occupancy/model"
	"stayin/internal/domains/occupancy/model/dto"
	"stayin/internal/domains/occupancy/service"
	"stayin/shared"
	"stayin/shared/constant"
	gDto "stayin/shared/dto"
	"stayin/shared/validator"
	"stayin/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Occupancy
	otel    otel.Otel
}

func New(service service.Occupancy, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/occupants", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddOccupant)
		routerGroup.Get("/", handler.GetOccupants)
		routerGroup.Get("/{id}", handler.GetOccupantByID)
		routerGroup.Patch("/{id}", handler.UpdateOccupant)
		routerGroup.Delete("/{id}", handler.DeleteOccupant)
		routerGroup.Post("/{id}/checkout", handler.EarlyCheckout)
	})

	router.Get("/rooms/status", handler.RoomStatus)
}

// confirmFromQuery reads the confirm query parameter. A missing or malformed
// value counts as not confirmed.
func confirmFromQuery(r *http.Request) dto.ConfirmRequest {
	req := dto.ConfirmRequest{}

	if confirm := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamConfirm)); confirm != nil {
		req.Confirm = *confirm
	}

	return req
}

// AddOccupant checks a guest into a room.
func (handler *Handler) AddOccupant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddOccupant")
	defer scope.End()

	req := dto.AddOccupantRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	occupant, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add occupant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupant added successfully")

	response.WithJSON(w, http.StatusCreated, occupant)
}

// GetOccupants lists occupants with optional room and name search.
func (handler *Handler) GetOccupants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupants")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if roomNo := r.URL.Query().Get(model.FieldRoomNo); roomNo != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomNo,
			Operator: gDto.FilterOperatorEq,
			Value:    roomNo,
			Table:    model.TableName,
		})
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	occupants, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupants")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, occupants)
}

// GetOccupantByID retrieves one occupant record.
func (handler *Handler) GetOccupantByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupantByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	occupant, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupant")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, occupant)
}

// UpdateOccupant overwrites every field of an occupant record.
func (handler *Handler) UpdateOccupant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOccupant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOccupantRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	occupant, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update occupant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupant updated successfully")

	response.WithJSON(w, http.StatusOK, occupant)
}

// DeleteOccupant permanently removes an occupant record. The confirmation is
// carried as a query parameter since DELETE requests have no body.
func (handler *Handler) DeleteOccupant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOccupant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := confirmFromQuery(r)

	if err := handler.service.Delete(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete occupant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupant deleted successfully")

	response.WithMessage(w, http.StatusOK, "Occupant deleted successfully")
}

// EarlyCheckout removes the occupant and reports the departure.
func (handler *Handler) EarlyCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EarlyCheckout")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	checkout, err := handler.service.EarlyCheckout(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out occupant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupant checked out successfully")

	response.WithJSON(w, http.StatusOK, checkout)
}

// RoomStatus returns the Occupied/Vacant projection for every room.
func (handler *Handler) RoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RoomStatus")
	defer scope.End()

	view, err := handler.service.RoomStatus(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh room status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, view)
}
