package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DesignCorporation/Beauty-sub004/internal/dto"
	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	"github.com/DesignCorporation/Beauty-sub004/internal/repository"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

const dateLayout = "2006-01-02"

type salonReader interface {
	GetByID(ctx context.Context, tenantID string) (*models.Salon, error)
}

type staffReader interface {
	FindByID(ctx context.Context, tenantID, staffID string) (*models.Staff, error)
}

type slotGenerator interface {
	Generate(ctx context.Context, in GenerateInput) ([]models.Slot, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// GetAvailabilityRequest is the ephemeral availability query. It is never
// persisted.
type GetAvailabilityRequest struct {
	TenantID               string `json:"tenant_id" validate:"required"`
	Date                   string `json:"date" validate:"required"`
	ServiceDurationMinutes int    `json:"service_duration_minutes" validate:"required,gt=0"`
	StaffID                string `json:"staff_id"`
	BufferMinutes          int    `json:"buffer_minutes" validate:"gte=0"`
}

// AvailabilityResult wraps the response payload with computation metadata
// surfaced to the caller, never silently swallowed.
type AvailabilityResult struct {
	Response         *dto.AvailabilityResponse
	TimezoneFallback bool
	CacheHit         bool
}

// AvailabilityService is the external-facing availability query contract:
// request validation, tenant scoping, snapshot caching and response shaping
// around the slot generator. Pure read path; it mutates nothing.
type AvailabilityService struct {
	salons     salonReader
	staff      staffReader
	generator  slotGenerator
	calendar   salonWindowResolver
	cache      snapshotCache
	normalizer *timezone.Normalizer
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(salons salonReader, staff staffReader, generator slotGenerator, calendar salonWindowResolver, cache snapshotCache, normalizer *timezone.Normalizer, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		salons:     salons,
		staff:      staff,
		generator:  generator,
		calendar:   calendar,
		cache:      cache,
		normalizer: normalizer,
		validator:  validate,
		logger:     logger,
	}
}

// GetAvailableSlots computes the labeled slot list for one salon-local date.
// Identical inputs against unchanged data yield identical output; the result
// is a snapshot, not a reservation.
func (s *AvailabilityService) GetAvailableSlots(ctx context.Context, req GetAvailabilityRequest) (*AvailabilityResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability request")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be a real calendar date in YYYY-MM-DD format")
	}

	salon, err := s.salons.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "salon not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load salon")
	}

	loc, degraded := s.normalizer.Zone(salon.Timezone)
	if degraded {
		s.logger.Warn("salon timezone unresolvable, using default zone",
			zap.String("tenant_id", salon.ID),
			zap.String("timezone", salon.Timezone),
			zap.String("fallback", loc.String()))
	}

	if req.StaffID != "" {
		if _, err := s.staff.FindByID(ctx, req.TenantID, req.StaffID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load staff member")
		}
	}

	key := repository.SnapshotKey(req.TenantID, req.Date, req.StaffID, req.ServiceDurationMinutes, req.BufferMinutes)
	if s.cache != nil {
		var cached dto.AvailabilityResponse
		hit, cacheErr := s.cache.Get(ctx, key, &cached)
		if cacheErr != nil {
			s.logger.Warn("availability cache read failed", zap.Error(cacheErr))
		} else if hit {
			return &AvailabilityResult{Response: &cached, TimezoneFallback: degraded, CacheHit: true}, nil
		}
	}

	envelope, err := s.calendar.OverallEnvelope(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	// Normalize the parsed date into the salon's zone so weekday resolution
	// matches the salon's calendar.
	localDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	slots, err := s.generator.Generate(ctx, GenerateInput{
		TenantID:        req.TenantID,
		StaffID:         req.StaffID,
		Date:            localDate,
		Location:        loc,
		DurationMinutes: req.ServiceDurationMinutes,
		BufferMinutes:   req.BufferMinutes,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		Date:     req.Date,
		Timezone: loc.String(),
		Envelope: dto.HoursEnvelopeResponse{
			EarliestStart: envelope.EarliestStart.String(),
			LatestEnd:     envelope.LatestEnd.String(),
		},
		Slots: slots,
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, key, resp); cacheErr != nil {
			s.logger.Warn("availability cache write failed", zap.Error(cacheErr))
		}
	}

	return &AvailabilityResult{Response: resp, TimezoneFallback: degraded}, nil
}
