package layout

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/draw"
)

// QRStamp places a small QR code carrying the document reference in the
// bottom-right corner of the current page, next to the footer notice, so a
// recipient can quote the exact reference.
func (s *Sheet) QRStamp(content string) error {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return fmt.Errorf("layout: encoding QR stamp: %w", err)
	}
	code, err = barcode.Scale(code, 128, 128)
	if err != nil {
		return fmt.Errorf("layout: scaling QR stamp: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return fmt.Errorf("layout: encoding QR stamp: %w", err)
	}

	name := "qr-" + content
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)

	const side = 12.0
	w, _ := s.pdf.GetPageSize()
	_, _, r, _ := s.pdf.GetMargins()
	s.pdf.ImageOptions(name, w-r-side, s.limit()+2, side, side, false, opts, 0, "")
	if s.pdf.Err() {
		return fmt.Errorf("layout: placing QR stamp: %w", s.pdf.Error())
	}
	return nil
}

// maxLogoPx bounds the pixel width of an embedded logo; anything larger is
// downscaled before registration to keep documents small.
const maxLogoPx = 600

// Logo places the landlord's logo in the top-left corner of the current
// page, downscaling oversized images first.
func (s *Sheet) Logo(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("layout: opening logo: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("layout: decoding logo %s: %w", path, err)
	}
	src = shrinkToFit(src, maxLogoPx)

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return fmt.Errorf("layout: encoding logo: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader("logo", opts, &buf)

	l, _, _, _ := s.pdf.GetMargins()
	s.pdf.ImageOptions("logo", l, 8, 28, 0, false, opts, 0, "")
	if s.pdf.Err() {
		return fmt.Errorf("layout: placing logo: %w", s.pdf.Error())
	}
	return nil
}

// shrinkToFit downscales img so its width is at most maxPx, preserving the
// aspect ratio. Images already small enough are returned unchanged.
func shrinkToFit(img image.Image, maxPx int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxPx {
		return img
	}
	h := b.Dy() * maxPx / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxPx, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
