package dto

import "github.com/DesignCorporation/Beauty-sub004/internal/models"

// HoursEnvelopeResponse bounds the rendered time grid.
type HoursEnvelopeResponse struct {
	EarliestStart string `json:"earliestStart"`
	LatestEnd     string `json:"latestEnd"`
}

// AvailabilityResponse is the payload of GET /availability. Slots is a
// snapshot: rendering it does not reserve anything.
type AvailabilityResponse struct {
	Date     string                `json:"date"`
	Timezone string                `json:"timezone"`
	Envelope HoursEnvelopeResponse `json:"envelope"`
	Slots    []models.Slot         `json:"slots"`
}

// StaffScheduleResponse groups a staff member's weekly rules and exceptions.
type StaffScheduleResponse struct {
	StaffID    string                     `json:"staff_id"`
	Rules      []models.StaffScheduleRule `json:"rules"`
	Exceptions []models.ScheduleException `json:"exceptions"`
}
