// Package qrcode renders product QR codes.
package qrcode

import (
	"strconv"
	"strings"

	"manero/config"
	"manero/internal/domain/service"
	"manero/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	productPathSeg = "/products/"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level, baseURL := defaultSize, "M", ""
	if q := cfg.QRCode; q != nil {
		if q.Size > 0 {
			size = q.Size
		}
		level = q.ErrorCorrectionLevel
		baseURL = q.BaseURL
	}

	return newQRCodeService(size, level, baseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateProductQR encodes the product page URL as a PNG QR code.
func (s *qrcodeService) GenerateProductQR(articleNumber int64) ([]byte, error) {
	if articleNumber <= 0 {
		return nil, errors.Errorf("invalid article number: %d", articleNumber)
	}

	qrCode, err := qrcode.New(s.productURL(articleNumber), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseProductQR reads the article number back out of a product page URL.
func (s *qrcodeService) ParseProductQR(qrData string) (int64, error) {
	idx := strings.LastIndex(qrData, productPathSeg)
	if idx < 0 {
		return 0, errors.Errorf("not a product QR code: %q", qrData)
	}

	articleNumber, err := strconv.ParseInt(qrData[idx+len(productPathSeg):], 10, 64)
	if err != nil || articleNumber <= 0 {
		return 0, errors.Errorf("invalid article number in QR code: %q", qrData)
	}

	return articleNumber, nil
}

func (s *qrcodeService) productURL(articleNumber int64) string {
	return s.baseURL + productPathSeg + strconv.FormatInt(articleNumber, 10)
}
