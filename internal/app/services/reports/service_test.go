package reports

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/shared/money"
	"frontdesk/internal/infra/storage/memory"
)

type captureUploader struct {
	key         string
	contentType string
	body        string
}

func (u *captureUploader) Upload(_ context.Context, key string, reader io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	u.key = key
	u.contentType = contentType
	u.body = string(data)
	return "http://storage.local/frontdesk-reports/" + key, nil
}

func TestExportStays(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewReservationRepository()

	stay, err := reservation.NewReservation(reservation.CreateParams{
		ID:         "res-1",
		CustomerID: "cust-1",
		RoomID:     "room-101",
		RateType:   "Matrimonial",
		Adults:     2,
		CheckIn:    time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
		Total:      money.Must(1500, "PEN"),
		Now:        time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewReservation: %v", err)
	}
	if err := stay.CompleteCheckOut(time.Date(2024, 1, 8, 11, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("CompleteCheckOut: %v", err)
	}
	if err := repo.Save(ctx, stay); err != nil {
		t.Fatalf("Save: %v", err)
	}

	uploader := &captureUploader{}
	service := &Service{
		Reservations: repo,
		Uploader:     uploader,
		Clock:        func() time.Time { return time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC) },
	}

	url, err := service.ExportStays(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ExportStays: %v", err)
	}

	if uploader.key != "reports/stays-20240201-093000.csv" {
		t.Errorf("key = %q", uploader.key)
	}
	if uploader.contentType != "text/csv" {
		t.Errorf("contentType = %q", uploader.contentType)
	}
	if !strings.HasSuffix(url, uploader.key) {
		t.Errorf("url = %q", url)
	}

	lines := strings.Split(strings.TrimSpace(uploader.body), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header plus one row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "reservation_id,") {
		t.Errorf("header = %q", lines[0])
	}
	row := strings.Split(lines[1], ",")
	if row[0] != "res-1" || row[6] != "3" || row[9] != "1500" || row[10] != "PEN" {
		t.Errorf("row = %v", row)
	}
}
