package invoice

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/shared"
)

// TextFormatter renders a plain-text invoice. The layout is fixed width so
// downstream mailers can embed it verbatim.
type TextFormatter struct {
	tmpl *template.Template
}

const invoiceTemplate = `INVOICE {{.InvoiceNumber}}
Issued: {{.IssuedAt}}

Billed to: {{.GuestName}} <{{.GuestEmail}}>

Hotel:     {{.HotelName}} ({{.HotelCity}})
Room:      {{.RoomNumber}}
Stay:      {{.StartDate}} to {{.EndDate}} ({{.Nights}} night{{if ne .Nights 1}}s{{end}})

Room charge:       {{printf "%12s" .Original}}
{{- if .Discount}}
Offer discount:    {{printf "%12s" .Discount}}
{{- end}}
Total charged:     {{printf "%12s" .Total}}

Payment reference: {{.AuthorizationID}}
Status: PAID
`

func NewTextFormatter() (*TextFormatter, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, errs.Wrap(err, "failed to parse invoice template")
	}
	return &TextFormatter{tmpl: tmpl}, nil
}

type invoiceData struct {
	InvoiceNumber   string
	IssuedAt        string
	GuestName       string
	GuestEmail      string
	HotelName       string
	HotelCity       string
	RoomNumber      string
	StartDate       string
	EndDate         string
	Nights          int
	Original        string
	Discount        string
	Total           string
	AuthorizationID string
}

func (f *TextFormatter) Render(b shared.BookingSnapshot, guest shared.GuestSnapshot, hotel shared.HotelSnapshot) ([]byte, error) {
	nights := int(b.EndDate.Sub(b.StartDate).Hours() / 24)

	data := invoiceData{
		InvoiceNumber:   "INV-" + b.ID.String()[:8],
		IssuedAt:        time.Now().UTC().Format(time.RFC3339),
		GuestName:       guest.FullName,
		GuestEmail:      guest.Email,
		HotelName:       hotel.Name,
		HotelCity:       hotel.City,
		RoomNumber:      b.RoomNumber,
		StartDate:       b.StartDate.Format(time.DateOnly),
		EndDate:         b.EndDate.Format(time.DateOnly),
		Nights:          nights,
		Original:        formatCents(b.OriginalCents),
		Total:           formatCents(b.DiscountedCents),
		AuthorizationID: b.AuthorizationID,
	}
	if b.DiscountedCents < b.OriginalCents {
		data.Discount = "-" + formatCents(b.OriginalCents-b.DiscountedCents)
	}

	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return nil, errs.Wrap(err, "failed to execute invoice template")
	}
	return buf.Bytes(), nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
