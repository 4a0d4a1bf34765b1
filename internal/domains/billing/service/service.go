package service

import (
	"context"
	"errors"
	"fmt"
	"stayin/config"
	"stayin/infras/otel"
	"stayin/internal/domains/billing/model"
	"stayin/internal/domains/billing/model/dto"
	"stayin/internal/domains/billing/repository"
	"stayin/internal/domains/billing/session"
	"stayin/shared"
	"stayin/shared/cache"
	"stayin/shared/constant"
	gDto "stayin/shared/dto"
	"stayin/shared/failure"
	"stayin/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRecords = "billing:records"

	tableLabelFormat = "Table-%d"
)

type Billing interface {
	SelectTable(ctx context.Context, tableID int) (dto.TableSessionResponse, error)
	GenerateBill(ctx context.Context, tableID int, req dto.GenerateBillRequest) (dto.TableSessionResponse, error)
	AddItem(ctx context.Context, tableID int, req dto.AddItemRequest) (dto.TableSessionResponse, error)
	ComputeTotal(ctx context.Context, tableID int) (dto.ComputeTotalResponse, error)
	ResetBill(ctx context.Context, tableID int, req dto.ConfirmRequest) (dto.TableSessionResponse, error)
	SaveBill(ctx context.Context, tableID int, req dto.ConfirmRequest) (dto.SaveBillResponse, error)
	Receipt(ctx context.Context, tableID int) ([]byte, error)
	Records(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLedgerResponse, error)
}

type serviceImpl struct {
	sessions *session.Manager
	repo     repository.Billing
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(sessions *session.Manager, repo repository.Billing, redisCache cache.RedisCache, cfg *config.Config, otel otel.Otel) Billing {
	return &serviceImpl{
		sessions: sessions,
		repo:     repo,
		cache:    redisCache,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) getSession(tableID int) (session.BillSession, error) {
	sess, err := s.sessions.Get(tableID)
	if errors.Is(err, session.ErrUnknownTable) {
		return sess, failure.BadRequestFromString(fmt.Sprintf("table must be between 1 and %d", session.TableCount)) //nolint:wrapcheck
	}

	return sess, err
}

func (s *serviceImpl) SelectTable(ctx context.Context, tableID int) (res dto.TableSessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectTable")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.getSession(tableID)
	if err != nil {
		return res, err
	}

	res.FromSession(sess, renderReceipt(sess, s.today()))

	return res, nil
}

func (s *serviceImpl) GenerateBill(ctx context.Context, tableID int, req dto.GenerateBillRequest) (res dto.TableSessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GenerateBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.getSession(tableID)
	if err != nil {
		return res, err
	}

	sess.StartBill(req.CustomerName, req.CustomerContact)

	if err = s.sessions.Replace(tableID, sess); err != nil {
		return res, fmt.Errorf("failed to store session: %w", err)
	}

	res.FromSession(sess, renderReceipt(sess, s.today()))

	return res, nil
}

func (s *serviceImpl) AddItem(ctx context.Context, tableID int, req dto.AddItemRequest) (res dto.TableSessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.getSession(tableID)
	if err != nil {
		return res, err
	}

	sess.AddItem(req.ItemName, req.Quantity, req.CostPerItem)

	if err = s.sessions.Replace(tableID, sess); err != nil {
		return res, fmt.Errorf("failed to store session: %w", err)
	}

	res.FromSession(sess, renderReceipt(sess, s.today()))

	return res, nil
}

func (s *serviceImpl) ComputeTotal(ctx context.Context, tableID int) (res dto.ComputeTotalResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ComputeTotal")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.getSession(tableID)
	if err != nil {
		return res, err
	}

	if sess.GrandTotal == 0 {
		return res, failure.EmptyBill("please add items first") //nolint:wrapcheck
	}

	res.TableID = sess.TableID
	res.BillNumber = sess.BillNumber
	res.GrandTotal = sess.GrandTotal

	return res, nil
}

func (s *serviceImpl) ResetBill(ctx context.Context, tableID int, req dto.ConfirmRequest) (res dto.TableSessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Confirm {
		return res, failure.ConfirmationRequired
	}

	if _, err = s.getSession(tableID); err != nil {
		return res, err
	}

	sess, err := s.sessions.Reset(tableID)
	if err != nil {
		return res, fmt.Errorf("failed to reset session: %w", err)
	}

	res.FromSession(sess, renderReceipt(sess, s.today()))

	return res, nil
}

// SaveBill persists one ledger row per line item. The session is left
// unchanged afterwards, so saving the same table twice duplicates its rows.
func (s *serviceImpl) SaveBill(ctx context.Context, tableID int, req dto.ConfirmRequest) (res dto.SaveBillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SaveBill")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.getSession(tableID)
	if err != nil {
		return res, err
	}

	if len(sess.LineItems) == 0 {
		return res, failure.EmptyBill("no items to save") //nolint:wrapcheck
	}

	if !req.Confirm {
		return res, failure.ConfirmationRequired
	}

	date := s.today()
	rows := model.RowsFromSession(sess, fmt.Sprintf(tableLabelFormat, tableID), date, constant.Empty)

	if err = s.repo.InsertBulk(ctx, rows); err != nil {
		log.Error().Err(err).Int("table", tableID).Msg("failed to save bill")

		return res, fmt.Errorf("failed to save bill: %w", err)
	}

	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheKeyRecords)

	res.TableID = tableID
	res.BillNumber = sess.BillNumber
	res.ItemsSaved = len(rows)
	res.Date = date

	return res, nil
}

func (s *serviceImpl) Receipt(ctx context.Context, tableID int) (pdf []byte, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	sess, err := s.getSession(tableID)
	if err != nil {
		return nil, err
	}

	pdf, err = renderReceiptPDF(sess, s.today())
	if err != nil {
		log.Error().Err(err).Int("table", tableID).Msg("failed to render receipt")

		return nil, err
	}

	return pdf, nil
}

func (s *serviceImpl) Records(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Records")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheKeyRecords, params, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ledger records")

		return res, fmt.Errorf("failed to count ledger records: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get ledger records")

		return res, fmt.Errorf("failed to get ledger records: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache ledger records")
	}

	return res, nil
}

func (s *serviceImpl) today() string {
	return timezone.Format(timezone.Now(), constant.BillDateFormat)
}
