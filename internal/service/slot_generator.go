package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

// GridStepMinutes is the fixed granularity of candidate start times.
const GridStepMinutes = 15

type salonWindowResolver interface {
	ResolveSalonWindow(ctx context.Context, tenantID string, date time.Time) (models.WorkingWindow, error)
	OverallEnvelope(ctx context.Context, tenantID string) (models.HoursEnvelope, error)
}

type staffWindowResolver interface {
	ResolveStaffWindow(ctx context.Context, staffID string, date time.Time) (models.WorkingWindow, error)
}

type overlapFinder interface {
	FindOverlaps(ctx context.Context, tenantID, staffID string, windowStart, windowEnd time.Time) ([]models.Appointment, error)
}

type staffLister interface {
	ListActiveByTenant(ctx context.Context, tenantID string) ([]models.Staff, error)
}

// GenerateInput is a resolved, validated slot request.
type GenerateInput struct {
	TenantID        string
	StaffID         string
	Date            time.Time
	Location        *time.Location
	DurationMinutes int
	BufferMinutes   int
}

// SlotGenerator builds the labeled candidate grid for one date. The output
// is a snapshot of the calendar at computation time, never a hold.
type SlotGenerator struct {
	salon        salonWindowResolver
	staff        staffWindowResolver
	appointments overlapFinder
	roster       staffLister
	normalizer   *timezone.Normalizer
	logger       *zap.Logger

	// now is injectable so past-time exclusion is testable.
	now          func() time.Time
	graceMinutes int
}

// NewSlotGenerator constructs the generator.
func NewSlotGenerator(salon salonWindowResolver, staff staffWindowResolver, appointments overlapFinder, roster staffLister, normalizer *timezone.Normalizer, graceMinutes int, logger *zap.Logger) *SlotGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotGenerator{
		salon:        salon,
		staff:        staff,
		appointments: appointments,
		roster:       roster,
		normalizer:   normalizer,
		logger:       logger,
		now:          time.Now,
		graceMinutes: graceMinutes,
	}
}

// candidate is one grid-aligned start under evaluation.
type candidate struct {
	start    timezone.Clock
	end      timezone.Clock
	startUTC time.Time
	endUTC   time.Time
}

// slotRule is one step of the classification order. Rules run top-down and
// the first blocking rule labels the slot, which keeps the priority policy
// explicit and independently testable.
type slotRule struct {
	reason  models.UnavailableReason
	blocked func(candidate) bool
}

// Generate enumerates the salon's envelope grid for the date and classifies
// every candidate. The full labeled list is returned so callers can explain
// gaps, not just render the available subset.
func (g *SlotGenerator) Generate(ctx context.Context, in GenerateInput) ([]models.Slot, error) {
	if in.DurationMinutes <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "service duration must be positive")
	}
	span := in.DurationMinutes + in.BufferMinutes

	envelope, err := g.salon.OverallEnvelope(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	salonWindow, err := g.salon.ResolveSalonWindow(ctx, in.TenantID, in.Date)
	if err != nil {
		return nil, err
	}

	staffWindow := models.WorkingWindow{}
	if in.StaffID != "" {
		staffWindow, err = g.staff.ResolveStaffWindow(ctx, in.StaffID, in.Date)
		if err != nil {
			return nil, err
		}
	}

	candidates := g.buildGrid(envelope, span, in)
	if len(candidates) == 0 {
		return []models.Slot{}, nil
	}

	rules, err := g.buildRules(ctx, in, span, salonWindow, staffWindow, candidates)
	if err != nil {
		return nil, err
	}

	slots := make([]models.Slot, 0, len(candidates))
	for _, cand := range candidates {
		slot := models.Slot{
			StartLocal: cand.start.String(),
			EndLocal:   cand.end.String(),
			StartUTC:   cand.startUTC,
			EndUTC:     cand.endUTC,
			Available:  true,
		}
		for _, rule := range rules {
			if rule.blocked(cand) {
				slot.Available = false
				slot.UnavailableReason = rule.reason
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// buildGrid emits every grid-aligned start inside the envelope whose full
// span still fits before the envelope end. An envelope shorter than one grid
// step yields an empty grid, not an error.
func (g *SlotGenerator) buildGrid(envelope models.HoursEnvelope, span int, in GenerateInput) []candidate {
	start := envelope.EarliestStart
	if rem := start.Minutes() % GridStepMinutes; rem != 0 {
		start = start.Add(GridStepMinutes - rem)
	}

	var grid []candidate
	for cursor := start; cursor.Add(span) <= envelope.LatestEnd; cursor = cursor.Add(GridStepMinutes) {
		end := cursor.Add(span)
		grid = append(grid, candidate{
			start:    cursor,
			end:      end,
			startUTC: g.normalizer.ToUTC(in.Date, cursor, in.Location),
			endUTC:   g.normalizer.ToUTC(in.Date, end, in.Location),
		})
	}
	return grid
}

// buildRules assembles the fixed-priority classification order:
// SALON_CLOSED, STAFF_OFF, OUTSIDE_WORKING_HOURS, APPOINTMENT_CONFLICT.
func (g *SlotGenerator) buildRules(ctx context.Context, in GenerateInput, span int, salonWindow, staffWindow models.WorkingWindow, candidates []candidate) ([]slotRule, error) {
	rules := []slotRule{
		{
			reason:  models.ReasonSalonClosed,
			blocked: func(candidate) bool { return !salonWindow.IsOpen },
		},
	}

	if in.StaffID != "" {
		rules = append(rules, slotRule{
			reason: models.ReasonStaffOff,
			blocked: func(c candidate) bool {
				return !staffWindow.IsOpen || c.start < staffWindow.Start || c.end > staffWindow.End
			},
		})
	}

	cutoff := g.pastCutoff(in)
	rules = append(rules, slotRule{
		reason: models.ReasonOutsideWorkingHours,
		blocked: func(c candidate) bool {
			if c.start < salonWindow.Start || c.end > salonWindow.End {
				return true
			}
			return c.startUTC.Before(cutoff)
		},
	})

	conflictRule, err := g.buildConflictRule(ctx, in, candidates)
	if err != nil {
		return nil, err
	}
	rules = append(rules, conflictRule)
	return rules, nil
}

// pastCutoff returns the instant before which candidates on a request dated
// today are no longer offered.
func (g *SlotGenerator) pastCutoff(in GenerateInput) time.Time {
	now := g.now()
	localToday, _ := g.normalizer.ToLocal(now, in.Location)
	year, month, day := in.Date.Date()
	if localToday.Year() != year || localToday.Month() != month || localToday.Day() != day {
		if localToday.After(time.Date(year, month, day, 0, 0, 0, 0, in.Location)) {
			// The whole requested date already lies in the past.
			return now
		}
		return time.Time{}
	}
	return now.Add(-time.Duration(g.graceMinutes) * time.Minute)
}

// buildConflictRule loads the day's non-cancelled appointments once and
// closes over them. With a staff member specified, any overlap blocks; with
// none, a candidate conflicts only when every active staff member of the
// salon is booked over its span.
func (g *SlotGenerator) buildConflictRule(ctx context.Context, in GenerateInput, candidates []candidate) (slotRule, error) {
	dayStart := candidates[0].startUTC
	dayEnd := candidates[len(candidates)-1].endUTC

	appointments, err := g.appointments.FindOverlaps(ctx, in.TenantID, in.StaffID, dayStart, dayEnd)
	if err != nil {
		return slotRule{}, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to read appointments")
	}

	if in.StaffID != "" {
		return slotRule{
			reason: models.ReasonAppointmentConflict,
			blocked: func(c candidate) bool {
				for _, appt := range appointments {
					if appt.Overlaps(c.startUTC, c.endUTC) {
						return true
					}
				}
				return false
			},
		}, nil
	}

	roster, err := g.roster.ListActiveByTenant(ctx, in.TenantID)
	if err != nil {
		return slotRule{}, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to read staff roster")
	}

	byStaff := make(map[string][]models.Appointment, len(roster))
	for _, appt := range appointments {
		byStaff[appt.StaffID] = append(byStaff[appt.StaffID], appt)
	}

	return slotRule{
		reason: models.ReasonAppointmentConflict,
		blocked: func(c candidate) bool {
			if len(roster) == 0 {
				return false
			}
			for _, member := range roster {
				booked := false
				for _, appt := range byStaff[member.ID] {
					if appt.Overlaps(c.startUTC, c.endUTC) {
						booked = true
						break
					}
				}
				if !booked {
					return false
				}
			}
			return true
		},
	}, nil
}
