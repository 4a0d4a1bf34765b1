package billing

import (
	"net/http"
	"stayin/infras/otel"
	"stayin/internal/domains/billing/model"
	"stayin/internal/domains/billing/model/dto"
	"stayin/internal/domains/billing/service"
	"stayin/shared"
	"stayin/shared/constant"
	gDto "stayin/shared/dto"
	"stayin/shared/failure"
	"stayin/shared/validator"
	"stayin/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Billing
	otel    otel.Otel
}

func New(service service.Billing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/billing", func(routerGroup chi.Router) {
		routerGroup.Route("/tables/{id}", func(tableGroup chi.Router) {
			tableGroup.Get("/", handler.SelectTable)
			tableGroup.Post("/bill", handler.GenerateBill)
			tableGroup.Post("/items", handler.AddItem)
			tableGroup.Get("/total", handler.ComputeTotal)
			tableGroup.Post("/reset", handler.ResetBill)
			tableGroup.Post("/save", handler.SaveBill)
			tableGroup.Get("/receipt", handler.Receipt)
		})

		routerGroup.Get("/records", handler.Records)
	})
}

func (handler *Handler) tableID(r *http.Request) (int, error) {
	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("table id must be a number") //nolint:wrapcheck
	}

	return id, nil
}

// SelectTable re-renders the accumulated state of one table session.
func (handler *Handler) SelectTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectTable")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	session, err := handler.service.SelectTable(ctx, tableID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to select table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// GenerateBill fixes the customer identity on the table session and starts a
// fresh bill.
func (handler *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateBill")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.GenerateBillRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.GenerateBill(ctx, tableID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate bill")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill generated successfully")

	response.WithJSON(w, http.StatusCreated, session)
}

// AddItem appends a line item to the table's current bill.
func (handler *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddItem")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.AddItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.AddItem(ctx, tableID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, session)
}

// ComputeTotal surfaces the current grand total of the table's bill.
func (handler *Handler) ComputeTotal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ComputeTotal")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	total, err := handler.service.ComputeTotal(ctx, tableID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute total")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, total)
}

// ResetBill discards the table session and installs a fresh one.
func (handler *Handler) ResetBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetBill")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.ResetBill(ctx, tableID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset bill")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill reset successfully")

	response.WithJSON(w, http.StatusOK, session)
}

// SaveBill flushes the table's line items into the persisted ledger.
func (handler *Handler) SaveBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveBill")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	saved, err := handler.service.SaveBill(ctx, tableID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save bill")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill saved successfully")

	response.WithJSON(w, http.StatusCreated, saved)
}

// Receipt renders the table's bill receipt as a PDF document.
func (handler *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Receipt")
	defer scope.End()

	tableID, err := handler.tableID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	document, err := handler.service.Receipt(ctx, tableID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render receipt")

		response.WithError(w, err)

		return
	}

	response.WithPDF(w, document)
}

// recordsFilter builds the ledger listing filter from the table, bill_number
// and date query parameters.
func recordsFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if tableNumber := r.URL.Query().Get(constant.RequestParamTable); tableNumber != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTableNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    tableNumber,
			Table:    model.TableName,
		})
	}

	if billNumber := r.URL.Query().Get(model.FieldBillNumber); billNumber != "" {
		if billInt, err := shared.ConvertStringToInt(billNumber); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldBillNumber,
				Operator: gDto.FilterOperatorEq,
				Value:    billInt,
				Table:    model.TableName,
			})
		}
	}

	if date := r.URL.Query().Get(model.FieldDate); date != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// Records lists persisted ledger rows with optional filtering.
func (handler *Handler) Records(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Records")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	records, err := handler.service.Records(ctx, queryParams, recordsFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ledger records")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, records)
}
