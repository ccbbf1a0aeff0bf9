package service

// QRCodeService renders QR codes for catalog items.
type QRCodeService interface {
	// GenerateProductQR returns a PNG QR code that links to the product page.
	GenerateProductQR(articleNumber int64) ([]byte, error)

	// ParseProductQR extracts the article number from QR code content.
	ParseProductQR(qrData string) (int64, error)
}
