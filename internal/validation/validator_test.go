package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type orderForm struct {
	Name          string `json:"customerName" validate:"required,min=2,no_xss"`
	Phone         string `json:"phoneNumber" validate:"required,eg_phone"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=vodafone_cash instapay binance"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		in     orderForm
		fields []string
	}{
		{"valid", orderForm{"Mona", "01012345678", "instapay"}, nil},
		{"bad phone prefix", orderForm{"Mona", "01312345678", "instapay"}, []string{"phoneNumber"}},
		{"short phone", orderForm{"Mona", "0101234567", "instapay"}, []string{"phoneNumber"}},
		{"unknown method", orderForm{"Mona", "01512345678", "paypal"}, []string{"paymentMethod"}},
		{"script in name", orderForm{"<script>x</script>", "01112345678", "binance"}, []string{"customerName"}},
		{"everything missing", orderForm{}, []string{"customerName", "phoneNumber", "paymentMethod"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(tt.in)
			if tt.fields == nil {
				assert.Nil(t, errs)
				return
			}
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
			assert.Len(t, errs, len(tt.fields))
		})
	}
}

func TestMessage(t *testing.T) {
	errs := Struct(orderForm{Name: "Mona", Phone: "123", PaymentMethod: "cash"})
	assert.Equal(t, []string{"must be a valid Egyptian mobile number"}, errs["phoneNumber"])
	assert.Equal(t, []string{"must be one of: vodafone_cash, instapay, binance"}, errs["paymentMethod"])
}
