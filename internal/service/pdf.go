package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

// maxImageBytes bounds the downloaded image; generated pages are far below
// this, so anything larger is not ours.
const maxImageBytes = 20 << 20

// PDFService renders a generated image onto a printable A4 page
type PDFService struct {
	client *http.Client
}

// NewPDFService creates a new PDF service
func NewPDFService(timeout time.Duration) *PDFService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PDFService{
		client: &http.Client{Timeout: timeout},
	}
}

// Generate fetches the image and returns a single-page A4 PDF embedding it
func (s *PDFService) Generate(ctx context.Context, imageURL string) ([]byte, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, domain.ValidationError("invalid image URL", map[string]string{
			"imageUrl": "must be an absolute http(s) URL",
		})
	}

	data, err := s.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	imageType, err := detectImageType(data)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader("artwork", opts, bytes.NewReader(data))
	if pdf.Err() {
		return nil, domain.ValidationError("unable to read image data", nil)
	}

	// Fit the image inside the printable area, centered, preserving aspect
	// ratio. A4 is 210x297mm; keep a 15mm margin all around.
	const (
		pageW  = 210.0
		pageH  = 297.0
		margin = 15.0
	)
	availW := pageW - 2*margin
	availH := pageH - 2*margin

	w := availW
	h := w * info.Height() / info.Width()
	if h > availH {
		h = availH
		w = h * info.Width() / info.Height()
	}
	x := (pageW - w) / 2
	y := (pageH - h) / 2

	pdf.ImageOptions("artwork", x, y, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *PDFService) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.UpstreamError("failed to fetch image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.UpstreamError(fmt.Sprintf("image fetch returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, domain.UpstreamError("failed to read image body", err)
	}
	if len(data) > maxImageBytes {
		return nil, domain.ValidationError("image too large", map[string]string{
			"imageUrl": "image exceeds the 20MB limit",
		})
	}

	return data, nil
}

func detectImageType(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	default:
		return "", domain.ValidationError("unsupported image format", map[string]string{
			"imageUrl": "only PNG and JPEG images are supported",
		})
	}
}
