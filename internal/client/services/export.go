package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/water4699/donationlog/internal/client/models"
	"github.com/water4699/donationlog/internal/filex"
)

// ExportService writes the current record view to a JSON document. Fields
// not revealed this session are exported as the encrypted placeholder.
type ExportService struct {
	dir string
	now func() time.Time
}

func NewExportService(dir string) *ExportService {
	return &ExportService{dir: dir, now: time.Now}
}

// Export writes one document for the given records and returns its path.
func (s *ExportService) Export(records []models.DonationRecord) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no records to export")
	}

	exportedAt := s.now()
	out := make([]models.ExportedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, models.ExportedRecord{
			RecordID:    r.RecordID,
			Amount:      r.AmountDisplay(),
			Timestamp:   r.TimestampDisplay(),
			BlockNumber: r.SubmittingBlock,
			ExportedAt:  exportedAt.Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling export: %w", err)
	}

	dir, err := filex.EnsureSubDir(s.dir)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("donation-records-%d.json", exportedAt.Unix())
	return filex.WriteDocument(dir, name, data)
}
