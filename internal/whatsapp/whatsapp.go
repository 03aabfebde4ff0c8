// Package whatsapp builds wa.me links and the order summary text the sales
// team receives.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

// Link returns a wa.me chat link for number with text prefilled.
func Link(number, text string) string {
	n := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if text == "" {
		return "https://wa.me/" + n
	}
	return "https://wa.me/" + n + "?text=" + escape(text)
}

// InterestLink is the "ask about this product" link shown on product cards.
func InterestLink(number string, p catalog.Product) string {
	return Link(number, fmt.Sprintf("Hi, I'm interested in %s", p.Name))
}

// escape matches browser encodeURIComponent for the characters we emit.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

type OrderDetails struct {
	OrderID       uint
	CustomerName  string
	PhoneNumber   string
	OS            string
	PaymentMethod string
	Notes         string
	Product       catalog.Product
}

var paymentLabels = map[string]string{
	"vodafone_cash": "Vodafone Cash",
	"instapay":      "InstaPay",
	"binance":       "Binance",
}

var osLabels = map[string]string{
	"linux":   "Linux",
	"windows": "Windows",
}

func label(m map[string]string, v string) string {
	if l, ok := m[strings.ToLower(v)]; ok {
		return l
	}
	return v
}

// Describe renders the plain text order summary stored with the order and
// sent over WhatsApp.
func Describe(d OrderDetails) string {
	p := d.Product
	var b strings.Builder

	if d.OrderID > 0 {
		fmt.Fprintf(&b, "New hosting order #%d\n", d.OrderID)
	} else {
		b.WriteString("New hosting order\n")
	}
	fmt.Fprintf(&b, "Customer: %s\n", d.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", d.PhoneNumber)
	fmt.Fprintf(&b, "OS: %s\n", label(osLabels, d.OS))
	fmt.Fprintf(&b, "Payment method: %s\n", label(paymentLabels, d.PaymentMethod))

	kind := "VPS"
	if p.Kind == catalog.KindDedicated {
		kind = "Dedicated server"
	}
	fmt.Fprintf(&b, "Product: %s (%s)\n", p.Name, kind)
	fmt.Fprintf(&b, "Specs: %d cores / %dGB RAM / %s\n", p.Cores, p.RAMGB, p.Storage)
	if p.Kind == catalog.KindDedicated && p.Processor != "" {
		fmt.Fprintf(&b, "CPU: %s\n", p.Processor)
	}
	if p.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", p.Region)
	}
	if p.ConnectionSpeed != "" {
		fmt.Fprintf(&b, "Connection: %s\n", p.ConnectionSpeed)
	}
	if p.Bandwidth != "" {
		fmt.Fprintf(&b, "Bandwidth: %s\n", p.Bandwidth)
	}
	if p.HasPrice() {
		fmt.Fprintf(&b, "Price: $%.2f / month\n", p.Price)
	} else {
		b.WriteString("Price: on request\n")
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	return strings.TrimRight(b.String(), "\n")
}
