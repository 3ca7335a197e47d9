package utils

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// GenerateSVGQRCode renders content as an SVG QR code sized 45x45mm.
// The squares use currentColor so clients can restyle it with CSS.
func GenerateSVGQRCode(content string) string {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return ""
	}

	bitmap := qr.Bitmap()

	// Center the code within the 45mm canvas, 1mm per block
	totalSize := 45
	margin := (totalSize - len(bitmap)) / 2

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %[1]d %[1]d" width="%[1]dmm" height="%[1]dmm">`, totalSize)
	for y := range bitmap {
		for x := range bitmap[y] {
			if bitmap[y][x] {
				fmt.Fprintf(&svg, `<rect x="%d" y="%d" width="1" height="1" fill="currentColor"/>`,
					x+margin, y+margin)
			}
		}
	}
	svg.WriteString(`</svg>`)
	return svg.String()
}
