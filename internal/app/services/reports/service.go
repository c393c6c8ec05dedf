package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"frontdesk/internal/domain/billing"
	"frontdesk/internal/domain/reservation"
)

// Uploader stores an exported file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// Service renders stay-ledger exports for the back office and pushes
// them to object storage.
type Service struct {
	Reservations reservation.Repository
	Uploader     Uploader
	Logger       *slog.Logger
	Clock        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// ExportStays writes every stay checked out in the period as CSV and
// uploads it. Each row carries the billing decomposition so accounting
// can audit the one-night-floor and room-change math.
func (s *Service) ExportStays(ctx context.Context, from, to time.Time) (string, error) {
	stays, err := s.Reservations.ListCheckedOutBetween(ctx, from, to)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"reservation_id", "customer_id", "room_id", "rate_type", "check_in", "check_out", "nights", "segments", "extras_total", "total_due", "currency"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, stay := range stays {
		extras := billing.ExtrasTotal(stay.Extras, stay.TotalDue.Currency)
		row := []string{
			string(stay.ID),
			stay.CustomerID,
			string(stay.RoomID),
			string(stay.RateType),
			stay.CheckIn.Format(time.RFC3339),
			stay.CheckOut.Format(time.RFC3339),
			strconv.Itoa(stay.Nights()),
			strconv.Itoa(len(stay.Segments)),
			strconv.FormatInt(extras.Amount, 10),
			strconv.FormatInt(stay.TotalDue.Amount, 10),
			stay.TotalDue.Currency,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	key := fmt.Sprintf("reports/stays-%s.csv", s.now().Format("20060102-150405"))
	url, err := s.Uploader.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "text/csv")
	if err != nil {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.Info("stay report exported", "key", key, "rows", len(stays))
	}
	return url, nil
}
