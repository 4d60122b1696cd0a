package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ProfileSection is one titled block of label/value pairs on a printed
// profile.
type ProfileSection struct {
	Title string
	Rows  [][2]string
}

// ProfileHeader decorates the top of the printed profile. When Image is
// present it is drawn as the school letterhead; AcademicYear is printed
// under the document title.
type ProfileHeader struct {
	Image        []byte
	ImageType    string
	AcademicYear string
}

// ProfileSignature is the committee sign-off block printed under the
// sections. The block is omitted when Title and Name are both empty.
type ProfileSignature struct {
	Place string
	Date  string
	Title string
	Name  string
	IDs   []string
}

// ProfilePDFExporter renders a printable single-record profile.
type ProfilePDFExporter struct{}

// NewProfilePDFExporter constructs a profile PDF exporter.
func NewProfilePDFExporter() *ProfilePDFExporter {
	return &ProfilePDFExporter{}
}

// Render creates an A4 document with the letterhead, a heading,
// sectioned label/value rows and the sign-off block.
func (e *ProfilePDFExporter) Render(header ProfileHeader, title, subtitle string, sections []ProfileSection, signature ProfileSignature) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if len(header.Image) > 0 {
		imageType := header.ImageType
		if imageType == "" {
			imageType = "PNG"
		}
		opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("letterhead", opts, bytes.NewReader(header.Image))
		pdf.ImageOptions("letterhead", 15, 15, 180, 0, true, opts, 0, "")
		pdf.Ln(3)
		left, _, right, _ := pdf.GetMargins()
		width, _ := pdf.GetPageSize()
		y := pdf.GetY()
		pdf.SetLineWidth(0.8)
		pdf.Line(left, y, width-right, y)
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
	if header.AcademicYear != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Tahun Ajaran %s", header.AcademicYear), "", 1, "C", false, 0, "")
	}
	if subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range sections {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 8, section.Title, "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, row := range section.Rows {
			pdf.CellFormat(70, 7, row[0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(110, 7, row[1], "1", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if signature.Title != "" || signature.Name != "" {
		renderSignature(pdf, signature)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render profile pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderSignature(pdf *gofpdf.Fpdf, signature ProfileSignature) {
	const blockX, blockWidth = 120.0, 75.0
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)

	placeDate := signature.Date
	if signature.Place != "" {
		placeDate = fmt.Sprintf("%s, %s", signature.Place, signature.Date)
	}
	pdf.SetX(blockX)
	pdf.CellFormat(blockWidth, 6, placeDate, "", 1, "C", false, 0, "")
	if signature.Title != "" {
		pdf.SetX(blockX)
		pdf.CellFormat(blockWidth, 6, signature.Title, "", 1, "C", false, 0, "")
	}
	pdf.Ln(18)
	if signature.Name != "" {
		pdf.SetFont("Arial", "BU", 10)
		pdf.SetX(blockX)
		pdf.CellFormat(blockWidth, 6, strings.ToUpper(signature.Name), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
	for _, id := range signature.IDs {
		pdf.SetX(blockX)
		pdf.CellFormat(blockWidth, 5, id, "", 1, "C", false, 0, "")
	}
}
