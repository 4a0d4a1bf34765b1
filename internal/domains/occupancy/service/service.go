package service

import (
	"context"
	"fmt"
	"stayin/config"
	"stayin/infras/otel"
	"stayin/internal/domains/occupancy/model"
	"stayin/internal/domains/occupancy/model/dto"
	"stayin/internal/domains/occupancy/repository"
	"stayin/shared"
	"stayin/shared/cache"
	"stayin/shared/constant"
	gDto "stayin/shared/dto"
	"stayin/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyPrefix    = "occupancy"
	cacheKeyOccupants = cacheKeyPrefix + ":occupants"
	cacheKeyRooms     = cacheKeyPrefix + ":rooms"
)

type Occupancy interface {
	Add(ctx context.Context, req dto.AddOccupantRequest) (dto.OccupantResponse, error)
	Get(ctx context.Context, id string) (dto.OccupantResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOccupantsResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateOccupantRequest) (dto.OccupantResponse, error)
	Delete(ctx context.Context, id string, req dto.ConfirmRequest) error
	EarlyCheckout(ctx context.Context, id string, req dto.ConfirmRequest) (dto.CheckoutResponse, error)
	RoomStatus(ctx context.Context) (dto.RoomStatusViewResponse, error)
}

type serviceImpl struct {
	repo  repository.Occupancy
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Occupancy, redisCache cache.RedisCache, cfg *config.Config, otel otel.Otel) Occupancy {
	return &serviceImpl{
		repo:  repo,
		cache: redisCache,
		cfg:   cfg,
		otel:  otel,
	}
}

func filterByRoom(roomNo string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomNo,
				Value:    roomNo,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddOccupantRequest) (res dto.OccupantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer scope.TraceIfError(err)

	occupied, err := s.repo.Exist(ctx, filterByRoom(req.RoomNo))
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomNo).Msg("failed to check room occupancy")

		return res, fmt.Errorf("failed to check room occupancy: %w", err)
	}

	if occupied {
		return res, failure.Conflict(fmt.Sprintf("room %s is already occupied", req.RoomNo)) //nolint:wrapcheck
	}

	occupant := req.ToModel(constant.Empty)

	if err = s.repo.Insert(ctx, occupant); err != nil {
		log.Error().Err(err).Str("room", req.RoomNo).Msg("failed to add occupant")

		return res, fmt.Errorf("failed to add occupant: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheKeyPrefix)

	res.FromModel(occupant)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OccupantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	occupant, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupant")

		return res, fmt.Errorf("failed to get occupant: %w", err)
	}

	if occupant.ID == "" {
		return res, failure.NotFound("occupant not found") //nolint:wrapcheck
	}

	res.FromModel(occupant)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOccupantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheKeyOccupants, params, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count occupants")

		return res, fmt.Errorf("failed to count occupants: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupants")

		return res, fmt.Errorf("failed to get occupants: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache occupants")
	}

	return res, nil
}

// Update overwrites every field of the occupant row. When the room number
// changes, the double-booking check runs again against the new room.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateOccupantRequest) (res dto.OccupantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupant")

		return res, fmt.Errorf("failed to get occupant: %w", err)
	}

	if current.ID == "" {
		return res, failure.NotFound("occupant not found") //nolint:wrapcheck
	}

	if req.RoomNo != current.RoomNo {
		occupied, existErr := s.repo.Exist(ctx, filterByRoom(req.RoomNo))
		if existErr != nil {
			log.Error().Err(existErr).Str("room", req.RoomNo).Msg("failed to check room occupancy")

			return res, fmt.Errorf("failed to check room occupancy: %w", existErr)
		}

		if occupied {
			return res, failure.Conflict(fmt.Sprintf("room %s is already occupied", req.RoomNo)) //nolint:wrapcheck
		}
	}

	if err = s.repo.Update(ctx, req.ToFieldMap(constant.Empty), filter); err != nil {
		log.Error().Err(err).Msg("failed to update occupant")

		return res, fmt.Errorf("failed to update occupant: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheKeyPrefix)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupant")

		return res, fmt.Errorf("failed to get occupant: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string, req dto.ConfirmRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Confirm {
		return failure.ConfirmationRequired
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if occupant exists")

		return fmt.Errorf("failed to check if occupant exists: %w", err)
	}

	if !exist {
		return failure.NotFound("occupant not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete occupant")

		return fmt.Errorf("failed to delete occupant: %w", err)
	}

	// Invalidation must complete before this returns so a follow-up room
	// status read cannot be served the stale Occupied projection.
	shared.InvalidateCaches(ctx, s.cache, cacheKeyPrefix)

	return nil
}

// EarlyCheckout removes the occupant the same way Delete does but reports
// the departure back to the caller.
func (s *serviceImpl) EarlyCheckout(ctx context.Context, id string, req dto.ConfirmRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EarlyCheckout")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Confirm {
		return res, failure.ConfirmationRequired
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	occupant, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupant")

		return res, fmt.Errorf("failed to get occupant: %w", err)
	}

	if occupant.ID == "" {
		return res, failure.NotFound("occupant not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to check out occupant")

		return res, fmt.Errorf("failed to check out occupant: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheKeyPrefix)

	res.RoomNo = occupant.RoomNo
	res.Name = occupant.Name
	res.Message = fmt.Sprintf("%s checked out! Room %s is now VACANT.", occupant.Name, occupant.RoomNo)

	return res, nil
}

// RoomStatus recomputes the Occupied/Vacant projection from scratch.
func (s *serviceImpl) RoomStatus(ctx context.Context) (res dto.RoomStatusViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if cacheErr := s.cache.Get(ctx, cacheKeyRooms, &res); cacheErr == nil {
		return res, nil
	}

	occupants, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupants")

		return res, fmt.Errorf("failed to get occupants: %w", err)
	}

	res.FromModels(occupants)

	if cacheErr := s.cache.Save(ctx, cacheKeyRooms, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("key", cacheKeyRooms).Msg("failed to cache room status")
	}

	return res, nil
}
