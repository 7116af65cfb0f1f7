package menu

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"brewbliss/models"
)

const qrSize = 256

// MenuQR encodes the public menu address as a PNG QR code.
func MenuQR(menuURL string) ([]byte, error) {
	png, err := qrcode.Encode(menuURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode QR code: %w", err)
	}
	return png, nil
}

// RenderPDF lays out an A4 menu grouped by category, with the QR code in the corner.
func RenderPDF(items []models.MenuItem, menuURL string) ([]byte, error) {
	qrPNG, err := MenuQR(menuURL)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Brew & Bliss Menu", true)
	pdf.AddPage()

	pdf.SetFont("Times", "B", 24)
	pdf.Cell(0, 12, "Brew & Bliss")
	pdf.Ln(10)
	pdf.SetFont("Times", "I", 11)
	pdf.Cell(0, 8, "Artisan coffee & bakery")
	pdf.Ln(14)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	for _, cat := range models.Categories() {
		var section []models.MenuItem
		for _, it := range items {
			if it.Category == cat {
				section = append(section, it)
			}
		}
		if len(section) == 0 {
			continue
		}

		pdf.SetFont("Times", "B", 16)
		pdf.Cell(0, 10, tr(cat.Label()))
		pdf.Ln(10)

		for _, it := range section {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(150, 7, tr(it.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, it.DisplayPrice(), "", 1, "R", false, 0, "")
			if it.Description != "" {
				pdf.SetFont("Arial", "", 10)
				pdf.MultiCell(150, 5, tr(it.Description), "", "L", false)
			}
			pdf.Ln(3)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 8, tr("Scan the code for today's menu: "+menuURL))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func PrintMenu(items func() []models.MenuItem, menuURL string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := RenderPDF(items(), menuURL)
		if err != nil {
			http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename=brew-and-bliss-menu.pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func ServeQR(menuURL string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := MenuQR(menuURL)
		if err != nil {
			http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}
