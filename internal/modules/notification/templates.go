package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"staylix/internal/domain"
)

const dateLayout = "2006-01-02"

var htmlTemplates = template.Must(template.New("booking").Parse(`
{{define "created"}}<p>Hi {{.Name}},</p>
<p>Your booking <b>#{{.ID}}</b> at <b>{{.Hotel}}</b> ({{.Room}}) is {{.Status}}.</p>
<p>Check-in: {{.CheckIn}}<br>Check-out: {{.CheckOut}} ({{.Nights}} {{if eq .Nights 1}}night{{else}}nights{{end}})<br>Guests: {{.Guests}}</p>
<p>Total: {{.Total}}{{if .Discount}} (discount {{.Discount}} applied){{end}}</p>{{end}}
{{define "cancelled"}}<p>Hi {{.Name}},</p>
<p>Your booking <b>#{{.ID}}</b> at <b>{{.Hotel}}</b> for {{.CheckIn}} to {{.CheckOut}} has been cancelled.</p>{{end}}
`))

type emailData struct {
	Name     string
	ID       int64
	Hotel    string
	Room     string
	Status   string
	CheckIn  string
	CheckOut string
	Nights   int
	Guests   int
	Total    string
	Discount string
}

func newEmailData(ev domain.BookingEvent) emailData {
	b := ev.Booking
	d := emailData{
		Name:     ev.TravelerName,
		ID:       b.ID,
		Hotel:    ev.HotelName,
		Room:     ev.RoomTitle,
		Status:   string(b.BookingStatus),
		CheckIn:  b.CheckIn.Format(dateLayout),
		CheckOut: b.CheckOut.Format(dateLayout),
		Nights:   b.Nights(),
		Guests:   b.Guests,
		Total:    b.TotalAmount.StringFixed(2),
	}
	if d.Name == "" {
		d.Name = "there"
	}
	if d.Hotel == "" {
		d.Hotel = "your hotel"
	}
	if b.DiscountCode != nil && b.DiscountAmount.IsPositive() {
		d.Discount = fmt.Sprintf("%s, -%s", *b.DiscountCode, b.DiscountAmount.StringFixed(2))
	}
	return d
}

// RenderEmail builds the traveler email for ev. ok is false for events that
// carry no recipient.
func RenderEmail(ev domain.BookingEvent) (Email, bool, error) {
	if ev.TravelerEmail == "" {
		return Email{}, false, nil
	}
	d := newEmailData(ev)

	var name, subject, text string
	switch ev.Type {
	case domain.EventBookingCreated:
		name = "created"
		subject = fmt.Sprintf("Booking #%d at %s", d.ID, d.Hotel)
		text = fmt.Sprintf("Hi %s,\n\nYour booking #%d at %s (%s) is %s.\nCheck-in: %s\nCheck-out: %s\nNights: %d\nGuests: %d\nTotal: %s\n",
			d.Name, d.ID, d.Hotel, d.Room, d.Status, d.CheckIn, d.CheckOut, d.Nights, d.Guests, d.Total)
		if d.Discount != "" {
			text += "Discount: " + d.Discount + "\n"
		}
	case domain.EventBookingCancelled:
		name = "cancelled"
		subject = fmt.Sprintf("Booking #%d cancelled", d.ID)
		text = fmt.Sprintf("Hi %s,\n\nYour booking #%d at %s for %s to %s has been cancelled.\n",
			d.Name, d.ID, d.Hotel, d.CheckIn, d.CheckOut)
	default:
		return Email{}, false, nil
	}

	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, d); err != nil {
		return Email{}, false, fmt.Errorf("render %s email: %w", name, err)
	}
	return Email{To: ev.TravelerEmail, Subject: subject, Text: text, HTML: buf.String()}, true, nil
}
