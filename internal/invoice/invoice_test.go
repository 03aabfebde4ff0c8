package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
)

func TestRender(t *testing.T) {
	vpsID := uint(3)
	o := models.Order{
		ID:            42,
		CustomerName:  "Mona",
		PhoneNumber:   "01012345678",
		PaymentMethod: models.PaymentInstapay,
		OS:            "linux",
		VPSID:         &vpsID,
		ProductName:   "VPS 2 vCPU / 4GB RAM",
		Price:         9.99,
		Notes:         "call first",
		Status:        models.OrderConfirmed,
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := Render(o, Issuer{Name: "Hosting Store", Contact: "+201063194547"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 500)
}
