package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DesignCorporation/Beauty-sub004/internal/dto"
	"github.com/DesignCorporation/Beauty-sub004/internal/middleware"
	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	"github.com/DesignCorporation/Beauty-sub004/internal/service"
)

type fakeAvailabilitySrv struct {
	result  *service.AvailabilityResult
	err     error
	lastReq service.GetAvailabilityRequest
}

func (f *fakeAvailabilitySrv) GetAvailableSlots(_ context.Context, req service.GetAvailabilityRequest) (*service.AvailabilityResult, error) {
	f.lastReq = req
	return f.result, f.err
}

type fakeExportSrv struct {
	sheet      *service.ExportedSheet
	err        error
	lastFormat string
}

func (f *fakeExportSrv) RenderDaySheet(_ context.Context, _ service.GetAvailabilityRequest, format string) (*service.ExportedSheet, error) {
	f.lastFormat = format
	return f.sheet, f.err
}

type recordedObservation struct {
	slotCount int
	cacheHit  bool
	degraded  bool
}

type fakeMetrics struct {
	observations []recordedObservation
}

func (f *fakeMetrics) ObserveAvailability(_ time.Duration, slotCount int, cacheHit, degraded bool) {
	f.observations = append(f.observations, recordedObservation{slotCount, cacheHit, degraded})
}

func tenantContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set(middleware.ContextTenantKey, &models.TenantClaims{TenantID: "salon-1"})
	return c, rec
}

func TestAvailabilityHandlerGetSuccess(t *testing.T) {
	srv := &fakeAvailabilitySrv{result: &service.AvailabilityResult{
		Response: &dto.AvailabilityResponse{
			Date:     "2025-06-16",
			Timezone: "Europe/Warsaw",
			Slots:    []models.Slot{{StartLocal: "09:00", Available: true}},
		},
		CacheHit: true,
	}}
	metrics := &fakeMetrics{}
	handler := NewAvailabilityHandler(srv, &fakeExportSrv{}, metrics)

	c, rec := tenantContext(t, "/availability?date=2025-06-16&serviceDurationMinutes=60&bufferMinutes=15&staffId=staff-1")
	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "salon-1", srv.lastReq.TenantID)
	assert.Equal(t, "staff-1", srv.lastReq.StaffID)
	assert.Equal(t, 60, srv.lastReq.ServiceDurationMinutes)
	assert.Equal(t, 15, srv.lastReq.BufferMinutes)

	require.Len(t, metrics.observations, 1)
	assert.True(t, metrics.observations[0].cacheHit)
	assert.Equal(t, 1, metrics.observations[0].slotCount)

	var envelope struct {
		Data dto.AvailabilityResponse `json:"data"`
		Meta map[string]interface{}   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "2025-06-16", envelope.Data.Date)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestAvailabilityHandlerGetValidation(t *testing.T) {
	handler := NewAvailabilityHandler(&fakeAvailabilitySrv{}, &fakeExportSrv{}, nil)

	cases := []struct {
		name   string
		target string
	}{
		{"missing date", "/availability?serviceDurationMinutes=60"},
		{"missing duration", "/availability?date=2025-06-16"},
		{"non-numeric duration", "/availability?date=2025-06-16&serviceDurationMinutes=abc"},
		{"zero duration", "/availability?date=2025-06-16&serviceDurationMinutes=0"},
		{"negative buffer", "/availability?date=2025-06-16&serviceDurationMinutes=60&bufferMinutes=-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := tenantContext(t, tc.target)
			handler.Get(c)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAvailabilityHandlerGetRequiresTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAvailabilityHandler(&fakeAvailabilitySrv{}, &fakeExportSrv{}, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/availability?date=2025-06-16&serviceDurationMinutes=60", nil)

	handler.Get(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAvailabilityHandlerExport(t *testing.T) {
	export := &fakeExportSrv{sheet: &service.ExportedSheet{
		Content:     []byte("Start,End\n09:00,10:15\n"),
		ContentType: "text/csv",
		Filename:    "availability-2025-06-16.csv",
	}}
	handler := NewAvailabilityHandler(&fakeAvailabilitySrv{}, export, nil)

	c, rec := tenantContext(t, "/availability/export?date=2025-06-16&serviceDurationMinutes=60&format=csv")
	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", export.lastFormat)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "availability-2025-06-16.csv")
	assert.Contains(t, rec.Body.String(), "09:00")
}

func TestAvailabilityHandlerExportDefaultsToCSV(t *testing.T) {
	export := &fakeExportSrv{sheet: &service.ExportedSheet{ContentType: "text/csv", Filename: "a.csv"}}
	handler := NewAvailabilityHandler(&fakeAvailabilitySrv{}, export, nil)

	c, _ := tenantContext(t, "/availability/export?date=2025-06-16&serviceDurationMinutes=60")
	handler.Export(c)

	assert.Equal(t, "csv", export.lastFormat)
}
