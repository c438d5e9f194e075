package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	dateLayout   = "02.01.2006 15:04"
	notSpecified = "Belirtilmemis"
)

// EmbryoReport is the data printed on a single embryo analysis report.
type EmbryoReport struct {
	ID               uint
	CreatedAt        time.Time
	PatientName      string
	DoctorName       string
	Result           string
	Confidence       *float64
	Morphology       string
	DevelopmentStage string
	Notes            string
}

// RecordEntry is one report line of a medical record.
type RecordEntry struct {
	ReportID   uint
	CreatedAt  time.Time
	DoctorName string
	Result     string
	Confidence *float64
}

// MedicalRecord is a patient's profile with their report history.
type MedicalRecord struct {
	PatientID        uint
	PatientName      string
	Email            string
	Age              *int
	Phone            string
	BloodType        string
	Allergies        string
	MedicalHistory   string
	EmergencyContact string
	GeneratedAt      time.Time
	Reports          []RecordEntry
}

// doc is a PDF whose text goes through the cp1252 translator of the core fonts.
type doc struct {
	*gofpdf.Fpdf
	tr func(string) string
}

// text folds s to ASCII where possible and encodes the rest as cp1252; unmapped runes print as '.'.
func (d *doc) text(s string) string {
	return d.tr(ToASCII(s))
}

func newDocument(title string) *doc {
	f := gofpdf.New("P", "mm", "A4", "")
	pdf := &doc{Fpdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 128, 128)
	pdf.CellFormat(0, 12, pdf.text(title), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
	return pdf
}

func infoLine(pdf *doc, text string) {
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, pdf.text(text), "", 1, "L", false, 0, "")
}

func heading(pdf *doc, text string) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, pdf.text(text), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func tableHeader(pdf *doc, widths []float64, cols ...string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(0, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 10, pdf.text(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func addDetail(pdf *doc, label, value string) {
	pdf.SetFillColor(245, 245, 220)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 10, pdf.text(label), "1", 0, "L", true, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, pdf.text(orDefault(value)), "1", 1, "C", true, 0, "")
}

func orDefault(v string) string {
	if v == "" {
		return notSpecified
	}
	return v
}

func formatConfidence(c *float64) string {
	if c == nil {
		return notSpecified
	}
	return fmt.Sprintf("%%%.2f", *c)
}

func output(pdf *doc) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderEmbryoReport renders the analysis report of one embryo image.
func RenderEmbryoReport(r EmbryoReport) ([]byte, error) {
	pdf := newDocument("Embriyo Analiz Raporu")

	infoLine(pdf, fmt.Sprintf("Rapor ID: %d", r.ID))
	infoLine(pdf, "Tarih: "+r.CreatedAt.Format(dateLayout))
	pdf.Ln(3)
	infoLine(pdf, "Hasta: "+orDefault(r.PatientName))
	infoLine(pdf, "Doktor: "+orDefault(r.DoctorName))

	heading(pdf, "Embriyo Analiz Sonuclari")
	tableHeader(pdf, []float64{80, 100}, "Parametre", "Deger")
	addDetail(pdf, "Embriyo Sinifi", r.Result)
	addDetail(pdf, "Guven Skoru", formatConfidence(r.Confidence))
	addDetail(pdf, "Morfolojik Degerlendirme", r.Morphology)
	addDetail(pdf, "Gelisim Asamasi", r.DevelopmentStage)

	if r.Notes != "" {
		heading(pdf, "Doktor Notlari:")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 6, pdf.text(r.Notes), "", "L", false)
	}
	return output(pdf)
}

// RenderMedicalRecord renders a patient's profile and report history.
func RenderMedicalRecord(m MedicalRecord) ([]byte, error) {
	pdf := newDocument("Medikal Kayit")

	infoLine(pdf, fmt.Sprintf("Kayit ID: %d", m.PatientID))
	infoLine(pdf, "Tarih: "+m.GeneratedAt.Format(dateLayout))
	pdf.Ln(3)
	infoLine(pdf, "Hasta: "+orDefault(m.PatientName))

	heading(pdf, "Hasta Bilgileri")
	tableHeader(pdf, []float64{80, 100}, "Parametre", "Deger")
	age := ""
	if m.Age != nil {
		age = fmt.Sprintf("%d", *m.Age)
	}
	addDetail(pdf, "E-posta", m.Email)
	addDetail(pdf, "Yas", age)
	addDetail(pdf, "Telefon", m.Phone)
	addDetail(pdf, "Kan Grubu", m.BloodType)
	addDetail(pdf, "Alerjiler", m.Allergies)
	addDetail(pdf, "Acil Durum Kisisi", m.EmergencyContact)

	if m.MedicalHistory != "" {
		heading(pdf, "Tibbi Gecmis")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 6, pdf.text(m.MedicalHistory), "", "L", false)
	}

	heading(pdf, "Embriyo Raporlari")
	widths := []float64{20, 40, 55, 35, 30}
	tableHeader(pdf, widths, "ID", "Tarih", "Doktor", "Sinif", "Guven")
	pdf.SetFont("Arial", "", 11)
	if len(m.Reports) == 0 {
		pdf.CellFormat(0, 9, "Kayitli rapor yok", "1", 1, "C", false, 0, "")
	}
	for _, r := range m.Reports {
		pdf.CellFormat(widths[0], 9, fmt.Sprintf("%d", r.ReportID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 9, r.CreatedAt.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 9, pdf.text(orDefault(r.DoctorName)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 9, pdf.text(orDefault(r.Result)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 9, formatConfidence(r.Confidence), "1", 1, "C", false, 0, "")
	}
	return output(pdf)
}
