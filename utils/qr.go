package utils

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// GenerateInviteQR renders the streamer onboarding link as a PNG QR code
func GenerateInviteQR(inviteURL string) ([]byte, error) {
	code, err := qr.Encode(inviteURL, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %v", err)
	}

	code, err = barcode.Scale(code, 256, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("failed to encode QR PNG: %v", err)
	}

	return buf.Bytes(), nil
}
