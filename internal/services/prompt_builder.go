package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"busconductor/internal/domain/models"
	"busconductor/internal/utils"
)

const (
	// recentTicketLimit is how many of the newest tickets go into a context bundle.
	recentTicketLimit = 100
	sampleTicketLimit = 10

	conversationAcknowledgement = "I understand. I will help answer questions about the bus ticket system using the provided data."
)

// ContextBundle is the snapshot of store data a prompt is built from.
type ContextBundle struct {
	Routes     []models.Route
	Tickets    []models.Ticket
	Conductors []models.Conductor
}

// QuestionPrompt builds the one-shot prompt for a standalone question.
func QuestionPrompt(bundle ContextBundle, question string) string {
	stats := Aggregate(bundle.Tickets)

	var b strings.Builder
	b.WriteString("You are a helpful bus ticket system assistant. Answer questions based on the following data:\n\n")

	b.WriteString("**ROUTES INFORMATION:**\n")
	for _, r := range bundle.Routes {
		fmt.Fprintf(&b, "- Route %s: %s to %s, Base Fare: %s, Distance: %skm, Duration: %dmin\n",
			r.RouteNumber, r.Origin, r.Destination, utils.FormatRupee(r.BaseFare),
			formatDistance(r.DistanceKm), r.DurationMinutes)
	}

	fmt.Fprintf(&b, "\n**RECENT TICKETS (Last %d):**\n", recentTicketLimit)
	fmt.Fprintf(&b, "Total Tickets: %d\n", stats.Count)
	fmt.Fprintf(&b, "Total Revenue: %s\n", utils.FormatRupeeFixed(stats.TotalRevenue))
	fmt.Fprintf(&b, "Tickets by Type: %s\n", indentJSON(stats.ByType))
	fmt.Fprintf(&b, "Tickets by Route: %s\n", indentJSON(stats.ByRoute))

	b.WriteString("\n**CONDUCTORS:**\n")
	for _, c := range bundle.Conductors {
		fmt.Fprintf(&b, "- %s (%s) - Employee ID: %s, Route: %s\n", c.Name, c.Username, c.EmployeeID, c.RouteNumber)
	}

	b.WriteString("\n**SAMPLE RECENT TICKETS:**\n")
	for i, t := range bundle.Tickets {
		if i == sampleTicketLimit {
			break
		}
		fmt.Fprintf(&b, "- Ticket %s: Route %s, %s → %s, Passenger: %s (%s), Fare: %s, Date: %s\n",
			t.TicketNumber, t.RouteNumber, t.Origin, t.Destination, t.PassengerName, t.PassengerType,
			utils.FormatRupee(t.FareAmount), t.TicketDate.Format(time.RFC3339))
	}

	fmt.Fprintf(&b, "\n**USER QUESTION:** %s\n\n", question)
	b.WriteString("Please provide a clear, concise, and helpful answer based on the data above. ")
	b.WriteString("If the question requires specific calculations or comparisons, perform them. ")
	b.WriteString("If you cannot answer with the available data, politely explain what information is missing.")
	return b.String()
}

// ConversationContext is the first turn replayed into a chat session.
func ConversationContext(bundle ContextBundle) string {
	stats := Aggregate(bundle.Tickets)

	var b strings.Builder
	b.WriteString("You are a helpful bus ticket system assistant. You have access to the following data:\n\n")

	fmt.Fprintf(&b, "**ROUTES (%d total):**\n", len(bundle.Routes))
	for _, r := range bundle.Routes {
		fmt.Fprintf(&b, "Route %s: %s to %s, Fare: %s\n", r.RouteNumber, r.Origin, r.Destination, utils.FormatRupee(r.BaseFare))
	}

	b.WriteString("\n**STATISTICS:**\n")
	fmt.Fprintf(&b, "- Total Tickets: %d\n", stats.Count)
	fmt.Fprintf(&b, "- Total Revenue: %s\n", utils.FormatRupeeFixed(stats.TotalRevenue))
	fmt.Fprintf(&b, "- Tickets by Type: %s\n", compactJSON(stats.ByType))
	fmt.Fprintf(&b, "- Tickets by Route: %s\n", compactJSON(stats.ByRoute))

	fmt.Fprintf(&b, "\n**CONDUCTORS (%d total):**\n", len(bundle.Conductors))
	for _, c := range bundle.Conductors {
		fmt.Fprintf(&b, "%s (%s) - Route %s\n", c.Name, c.Username, c.RouteNumber)
	}

	b.WriteString("\nAnswer questions clearly and concisely based on this data.")
	return b.String()
}

// ExtractionPrompt asks the model to turn a free-text booking request into
// the ticket JSON object parsed by parseExtraction.
func ExtractionPrompt(routes []models.Route, request string) string {
	var b strings.Builder
	b.WriteString("You are a bus ticket generation assistant. Extract ticket information from natural language requests.\n\n")

	b.WriteString("Available Routes:\n")
	for _, r := range routes {
		fmt.Fprintf(&b, "- Route %s: %s to %s, Fare: %s\n", r.RouteNumber, r.Origin, r.Destination, utils.FormatRupee(r.BaseFare))
	}

	b.WriteString(`
Passenger Types and Discounts:
- adult: Full fare (100%)
- child: Half fare (50%)
- student: Student discount (60%)
- senior: Senior discount (75%)

Payment Methods: cash, card, upi

`)
	fmt.Fprintf(&b, "User request: %q\n", request)
	b.WriteString(`
Extract and return ONLY a valid JSON object with these fields (no markdown, no explanations, just pure JSON):
{
  "routeNumber": "route number from available routes",
  "origin": "origin station name",
  "destination": "destination station name",
  "passengerName": "passenger name if mentioned, otherwise 'Passenger'",
  "passengerType": "adult/child/student/senior (default: adult)",
  "passengerCount": number (default: 1),
  "paymentMethod": "cash/card/upi (default: cash)",
  "seatNumber": "seat number if mentioned, otherwise null"
}

Rules:
1. If route not specified, use conductor's route
2. Match origin/destination to available routes
3. Default passenger type is "adult"
4. Default payment is "cash"
5. Return only the JSON object, no other text`)
	return b.String()
}

// ConfirmationMessage is the receipt shown after the assistant issues a ticket.
func ConfirmationMessage(t models.Ticket) string {
	var b strings.Builder
	b.WriteString("✅ **Ticket Generated Successfully!**\n\n---\n\n")
	fmt.Fprintf(&b, "**Ticket Number:** %s\n\n", t.TicketNumber)

	b.WriteString("**Route Details:**\n")
	fmt.Fprintf(&b, "- Route: %s\n- From: %s\n- To: %s\n\n", t.RouteNumber, t.Origin, t.Destination)

	b.WriteString("**Passenger Information:**\n")
	fmt.Fprintf(&b, "- Name: %s\n- Type: %s\n- Count: %d passenger(s)\n",
		t.PassengerName, strings.ToUpper(t.PassengerType), t.PassengerCount)
	if t.SeatNumber != nil && *t.SeatNumber != "" {
		fmt.Fprintf(&b, "- Seat: %s\n", *t.SeatNumber)
	}

	b.WriteString("\n**Payment Details:**\n")
	fmt.Fprintf(&b, "- Fare Amount: %s\n- Payment Method: %s\n\n", utils.FormatRupee(t.FareAmount), strings.ToUpper(t.PaymentMethod))

	b.WriteString("**Booking Information:**\n")
	fmt.Fprintf(&b, "- Date: %s\n- Conductor ID: %d\n\n", utils.FormatDateTime(t.TicketDate), t.ConductorID)

	b.WriteString("---\n\n✅ Ticket saved to database successfully!")
	return b.String()
}

func formatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

func indentJSON(v map[string]int) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func compactJSON(v map[string]int) string {
	out, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(out)
}
