package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"busconductor/internal/domain/models"
	"busconductor/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable e-tickets.
type DocsService struct {
	Tickets   TicketStore
	RequestID string
}

// TicketPDF returns the e-ticket for ticketNumber and a download filename.
func (s DocsService) TicketPDF(ctx context.Context, ticketNumber string) ([]byte, string, error) {
	t, err := TicketService{Tickets: s.Tickets}.GetTicket(ctx, ticketNumber)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "ticket_pdf", "ticket="+t.TicketNumber)
	return buildTicketPDF(t)
}

func buildTicketPDF(t models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("E-Ticket "+t.TicketNumber, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	seat := "-"
	if t.SeatNumber != nil {
		seat = safe(*t.SeatNumber, "-")
	}

	// Core fonts are cp1252, hence "Rs" rather than the rupee sign.
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket No      : %s", t.TicketNumber),
		fmt.Sprintf("Route          : %s", safe(t.RouteNumber, "-")),
		fmt.Sprintf("From -> To     : %s -> %s", safe(t.Origin, "-"), safe(t.Destination, "-")),
		fmt.Sprintf("Passenger      : %s", safe(t.PassengerName, "-")),
		fmt.Sprintf("Type / Count   : %s x %d", strings.ToUpper(safe(t.PassengerType, "-")), t.PassengerCount),
		fmt.Sprintf("Seat           : %s", seat),
		fmt.Sprintf("Fare           : Rs %s", t.FareAmount.StringFixed(2)),
		fmt.Sprintf("Payment        : %s", strings.ToUpper(safe(t.PaymentMethod, "-"))),
		fmt.Sprintf("Issued         : %s", utils.FormatDateTime(t.TicketDate)),
		fmt.Sprintf("Conductor ID   : %d", t.ConductorID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket to the conductor on request.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "ETICKET_" + safeFilenamePart(t.TicketNumber) + ".pdf", nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
