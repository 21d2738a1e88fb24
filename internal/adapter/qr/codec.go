package qr

import (
	"bytes"
	"fmt"
	"image"

	// Pixel decoders for the formats students actually upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	qrcodegen "github.com/skip2/go-qrcode"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
)

// EncodePNG renders the payload as a QR code PNG of the given edge size.
func EncodePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcodegen.Encode(payload, qrcodegen.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// DecodeImage scans uploaded image bytes for an embedded QR payload.
// Returns ErrImageDecode for files that are not readable images and
// ErrNoQRFound when no QR code can be located in the pixel data.
func DecodeImage(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", domainErrors.ErrImageDecode
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", domainErrors.ErrNoQRFound
	}

	result, err := zxingqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil || result.GetText() == "" {
		return "", domainErrors.ErrNoQRFound
	}
	return result.GetText(), nil
}
