package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

// SampleFullText is the raw text the mock recognizer "reads" from every image
const SampleFullText = `CỘNG HÒA XÃ HỘI CHỦ NGHĨA VIỆT NAM
Độc lập - Tự do - Hạnh phúc
GIẤY CHỨNG MINH NHÂN DÂN
Số: 0123456789
Họ và tên: NGUYỄN VĂN A
Ngày sinh: 01/01/1990
Nguyên quán: Xã A, Huyện B, Tỉnh C
Nơi ĐKHK thường trú: Số 1, Đường X, Phường Y, Quận Z, Thành phố Hà Nội
Dân tộc: Kinh Tôn giáo: Không
Dấu vân tay:
[Dấu vân tay]
Ngày cấp: 20/10/2020
GIÁM ĐỐC CÔNG AN TỈNH
`

// SampleData is the record the mock recognizer extracts. The issue date is
// month-first while the raw text is day-first; neither is converted.
var SampleData = models.ExtractedData{
	FullName:  "NGUYỄN VĂN A",
	IDNumber:  "0123456789",
	IssueDate: "10/20/2020",
	Address:   "Số 1, Đường X, Phường Y, Quận Z, Thành phố Hà Nội",
}

// MockRecognizer waits a fixed latency and returns the sample record
type MockRecognizer struct {
	Latency time.Duration
	// Fail makes every call reject with this cause
	Fail error
}

// NewMockRecognizer creates a mock recognizer with the given latency
func NewMockRecognizer(latency time.Duration) *MockRecognizer {
	return &MockRecognizer{Latency: latency}
}

func (m *MockRecognizer) ProcessImage(ctx context.Context, file *models.ImageFile) (*models.RecognitionResult, error) {
	name := ""
	if file != nil {
		name = file.Name
	}
	slog.Info("Simulating recognition", "file", name, "latency", m.Latency)

	timer := time.NewTimer(m.Latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, ctx.Err())
	case <-timer.C:
	}

	if m.Fail != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessingFailed, m.Fail)
	}

	slog.Info("Mock recognition complete", "file", name)
	return &models.RecognitionResult{
		FullText:      SampleFullText,
		ExtractedData: SampleData,
	}, nil
}
