package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/export"
)

type availabilityProvider interface {
	GetAvailableSlots(ctx context.Context, req GetAvailabilityRequest) (*AvailabilityResult, error)
}

// ExportService renders a day's labeled slot list as a printable front-desk
// sheet.
type ExportService struct {
	availability availabilityProvider
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	logger       *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(availability availabilityProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		availability: availability,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		logger:       logger,
	}
}

// ExportedSheet is a rendered document ready for download.
type ExportedSheet struct {
	Content     []byte
	ContentType string
	Filename    string
}

// RenderDaySheet computes availability and renders it in the requested
// format ("csv" or "pdf").
func (s *ExportService) RenderDaySheet(ctx context.Context, req GetAvailabilityRequest, format string) (*ExportedSheet, error) {
	result, err := s.availability.GetAvailableSlots(ctx, req)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: []string{"Start", "End", "Available", "Reason"}}
	for _, slot := range result.Response.Slots {
		available := "no"
		if slot.Available {
			available = "yes"
		}
		dataset.Rows = append(dataset.Rows, []string{
			slot.StartLocal,
			slot.EndLocal,
			available,
			string(slot.UnavailableReason),
		})
	}

	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportedSheet{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("availability-%s.csv", result.Response.Date),
		}, nil
	case "pdf":
		subtitle := fmt.Sprintf("%s (%s)", result.Response.Date, result.Response.Timezone)
		content, err := s.pdf.Render(dataset, "Availability day sheet", subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportedSheet{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("availability-%s.pdf", result.Response.Date),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
