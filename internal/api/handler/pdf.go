package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/colorkit/coloring-book-api/internal/api/response"
	"github.com/colorkit/coloring-book-api/internal/service"
)

var fileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._ -]{1,100}$`)

// PDFHandler turns a generated image into a printable PDF download
type PDFHandler struct {
	pdfService *service.PDFService
}

// NewPDFHandler creates a new PDF handler
func NewPDFHandler(pdfService *service.PDFService) *PDFHandler {
	return &PDFHandler{pdfService: pdfService}
}

type generatePDFRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url,max=2048"`
	FileName string `json:"fileName" validate:"omitempty,max=100"`
}

// GeneratePDF fetches the image and streams back a single-page PDF
func (h *PDFHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req generatePDFRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "coloring-page.pdf"
	}
	if !fileNamePattern.MatchString(fileName) {
		response.ValidationFailed(w, "invalid file name", map[string]string{
			"fileName": "may only contain letters, digits, spaces, dots, underscores and dashes",
		})
		return
	}
	if !strings.HasSuffix(fileName, ".pdf") {
		fileName += ".pdf"
	}

	data, err := h.pdfService.Generate(r.Context(), req.ImageURL)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
