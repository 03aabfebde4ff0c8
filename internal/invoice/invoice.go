// Package invoice renders order invoices as PDF.
package invoice

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
)

// Issuer is the seller block printed in the header.
type Issuer struct {
	Name    string
	Contact string
}

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
)

var paymentLabels = map[string]string{
	models.PaymentVodafoneCash: "Vodafone Cash",
	models.PaymentInstapay:     "InstaPay",
	models.PaymentBinance:      "Binance",
}

// Render returns the PDF bytes for o.
func Render(o models.Order, issuer Issuer) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	heading := func(h float64, s string, size float64) {
		m.Row(h, func() {
			m.Col(12, func() {
				m.Text(s, props.Text{Size: size, Style: consts.Bold, Color: darkGray})
			})
		})
	}
	pair := func(left, right string) {
		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(left, props.Text{Size: 9, Color: mediumGray})
			})
			m.Col(6, func() {
				m.Text(right, props.Text{Size: 9, Color: darkGray, Align: consts.Right})
			})
		})
	}

	heading(15, "INVOICE", 24)
	heading(10, strings.ToUpper(issuer.Name), 16)
	if issuer.Contact != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(issuer.Contact, props.Text{Size: 9, Color: mediumGray})
			})
		})
	}
	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("BILL TO", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text("INVOICE DETAILS", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	pair(o.CustomerName, fmt.Sprintf("Invoice #%06d", o.ID))
	pair(o.PhoneNumber, "Date: "+o.CreatedAt.Format("Jan 02, 2006"))
	pair("OS: "+o.OS, "Status: "+string(o.Status))
	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(8, func() {
			m.Text("Description", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(4, func() {
			m.Text("Monthly price", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	m.Row(6, func() {
		m.Col(8, func() {
			m.Text(fmt.Sprintf("%s (%s)", o.ProductName, o.ProductKind()), props.Text{Size: 9, Color: darkGray})
		})
		m.Col(4, func() {
			m.Text(fmt.Sprintf("$%.2f", o.Price), props.Text{Size: 9, Color: darkGray, Align: consts.Right})
		})
	})
	m.Row(8, func() {})

	method := paymentLabels[o.PaymentMethod]
	if method == "" {
		method = o.PaymentMethod
	}
	m.Row(5, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Paid via", props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(method, props.Text{Size: 9, Color: darkGray, Align: consts.Right})
		})
	})
	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(fmt.Sprintf("$%.2f", o.Price), props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	m.Row(12, func() {})

	if notes := strings.TrimSpace(o.Notes); notes != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Notes: "+notes, props.Text{Size: 8, Color: mediumGray})
			})
		})
	}
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thank you for your business!", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", o.ID, err)
	}
	return buf.Bytes(), nil
}
