package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// BuildConfirmation renders the confirmation email for the guest who made
// the booking.  The shop's notification inbox is BCC'd so staff see every
// confirmed booking.  The caller must ensure b.Email is set.
func BuildConfirmation(b *model.Booking, shop config.ShopConfig) Message {
	return Message{
		To:      deref(b.Email),
		ToName:  b.FullName,
		Subject: fmt.Sprintf("Booking confirmed: %s", shop.Name),
		HTML:    renderHTML(b, shop, "Your table is booked"),
		Text:    renderText(b, shop, "Your table is booked"),
		BCC:     shop.NotifyEmail,
	}
}

// BuildShopAlert renders the new-booking notification sent to the shop inbox
// when the guest did not leave an email address.
func BuildShopAlert(b *model.Booking, shop config.ShopConfig) Message {
	return Message{
		To:      shop.NotifyEmail,
		ToName:  shop.Name,
		Subject: fmt.Sprintf("New booking: %s", shop.Name),
		HTML:    renderHTML(b, shop, "New booking received"),
		Text:    renderText(b, shop, "New booking received"),
	}
}

func renderHTML(b *model.Booking, shop config.ShopConfig, title string) string {
	esc := html.EscapeString
	var sb strings.Builder
	sb.WriteString("<div style='font-family:Tahoma,Arial,sans-serif;font-size:14px;color:#111'>")
	fmt.Fprintf(&sb, "<h2 style='margin:0 0 10px'>%s</h2>", esc(title))
	fmt.Fprintf(&sb, "<p style='margin:0 0 12px'><b>%s</b></p>", esc(shop.Name))
	sb.WriteString("<table cellpadding='6' style='border-collapse:collapse'>")
	row := func(k, v string) { fmt.Fprintf(&sb, "<tr><td><b>%s</b></td><td>%s</td></tr>", k, esc(v)) }
	row("Reference", b.Ref)
	row("Name", b.FullName)
	row("Phone", b.Phone)
	row("Date", b.BookingDate)
	row("Time", displayTime(b.BookingTime))
	row("Party size", fmt.Sprintf("%d", b.PartySize))
	if b.Notes != nil && *b.Notes != "" {
		row("Notes", *b.Notes)
	}
	sb.WriteString("</table>")
	if shop.Address != "" {
		fmt.Fprintf(&sb, "<p style='margin:14px 0 0;color:#555'>Address: %s</p>", esc(shop.Address))
	}
	sb.WriteString("</div>")
	return sb.String()
}

func renderText(b *model.Booking, shop config.ShopConfig, title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", title)
	fmt.Fprintf(&sb, "Shop: %s\n", shop.Name)
	fmt.Fprintf(&sb, "Reference: %s\n", b.Ref)
	fmt.Fprintf(&sb, "Name: %s\n", b.FullName)
	fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	fmt.Fprintf(&sb, "Date: %s\n", b.BookingDate)
	fmt.Fprintf(&sb, "Time: %s\n", displayTime(b.BookingTime))
	fmt.Fprintf(&sb, "Party size: %d\n", b.PartySize)
	if b.Notes != nil && *b.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", *b.Notes)
	}
	if shop.Address != "" {
		fmt.Fprintf(&sb, "Address: %s\n", shop.Address)
	}
	return sb.String()
}

// displayTime trims stored HH:MM:SS down to the HH:MM shown to people.
func displayTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
