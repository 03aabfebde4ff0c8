package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var body any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

const pascalRecords = `[
	{"Id": 1, "Price": "$50", "Cores": 2, "RamGB": 4, "StorageType": "ssd", "Brand": "Intel", "Category": "LowSpace"},
	{"Id": 2, "Price": "40", "Cores": "4", "RAM": 8, "Storage": "1TB NVMe", "CpuModel": "AMD Ryzen 9 5950X"},
	{"Id": 3, "Price": 30, "Cores": 8, "ram": "16GB", "Brand": "Intel", "Category": "HighSpace"}
]`

func TestExtractRecords_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind catalog.Kind
		want int
	}{
		{"bare array", pascalRecords, catalog.KindVPS, 3},
		{"data envelope", `{"success": true, "data": ` + pascalRecords + `}`, catalog.KindVPS, 3},
		{"result envelope", `{"result": ` + pascalRecords + `}`, catalog.KindVPS, 3},
		{"items envelope", `{"items": ` + pascalRecords + `}`, catalog.KindVPS, 3},
		{"nested data object", `{"data": {"items": ` + pascalRecords + `}}`, catalog.KindVPS, 3},
		{"dedicated servers key", `{"servers": ` + pascalRecords + `}`, catalog.KindDedicated, 3},
		{"first array property", `{"count": 3, "zeta": [{}], "alpha": ` + pascalRecords + `}`, catalog.KindVPS, 3},
		{"empty data array", `{"data": [], "items": [{}]}`, catalog.KindVPS, 0},
		{"no list at all", `{"message": "ok"}`, catalog.KindVPS, 0},
		{"scalar body", `42`, catalog.KindVPS, 0},
		{"null body", `null`, catalog.KindVPS, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := catalog.ExtractRecords(decode(t, tt.body), tt.kind)
			require.NotNil(t, recs)
			assert.Len(t, recs, tt.want)
		})
	}
}

func TestNormalize_PreservesResponseOrder(t *testing.T) {
	got := catalog.NormalizeJSON([]byte(`{"data": `+pascalRecords+`}`), catalog.KindVPS)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestNormalize_FieldSynonyms(t *testing.T) {
	got := catalog.NormalizeJSON([]byte(pascalRecords), catalog.KindVPS)
	require.Len(t, got, 3)

	assert.Equal(t, 50.0, got[0].Price)
	assert.Equal(t, 2, got[0].Cores)
	assert.Equal(t, 4, got[0].RAMGB)
	assert.Equal(t, "SSD", got[0].StorageType)
	assert.Equal(t, "Intel", got[0].Brand)
	assert.Equal(t, "LowSpace", got[0].Category)

	assert.Equal(t, 40.0, got[1].Price)
	assert.Equal(t, 4, got[1].Cores)
	assert.Equal(t, 8, got[1].RAMGB)
	assert.Equal(t, "NVMe", got[1].StorageType)
	assert.Equal(t, 1000, got[1].StorageGB)
	assert.Equal(t, "AMD Ryzen 9 5950X", got[1].Processor)
	assert.Equal(t, "Generic", got[1].Brand)

	assert.Equal(t, 16, got[2].RAMGB)
}

func TestNormalize_CamelWinsOverPascal(t *testing.T) {
	got := catalog.Normalize([]any{map[string]any{"price": 10.0, "Price": 99.0, "cores": 2.0, "Cores": 16.0}}, catalog.KindVPS)
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].Price)
	assert.Equal(t, 2, got[0].Cores)
}

func TestNormalize_NullFallsThroughToNextKey(t *testing.T) {
	got := catalog.Normalize([]any{map[string]any{"ramGB": nil, "RamGB": 32.0}}, catalog.KindVPS)
	require.Len(t, got, 1)
	assert.Equal(t, 32, got[0].RAMGB)
}

func TestNormalize_DefaultsForMalformedRecords(t *testing.T) {
	got := catalog.NormalizeJSON([]byte(`[{}, "garbage", {"price": "N/A"}]`), catalog.KindDedicated)
	require.Len(t, got, 3, "malformed records are defaulted, never dropped")

	d := got[0]
	assert.Equal(t, "dedicated-1", d.ID)
	assert.Equal(t, "Generic", d.Brand)
	assert.Equal(t, "SSD", d.StorageType)
	assert.Equal(t, "500GB", d.Storage)
	assert.Equal(t, "Unknown", d.Processor)
	assert.Equal(t, "Unlimited", d.Bandwidth)
	assert.Equal(t, 1, d.Cores)
	assert.Equal(t, 1, d.RAMGB)
	assert.True(t, d.InStock)
	assert.False(t, d.HasPrice())

	assert.Equal(t, "dedicated-2", got[1].ID)
	assert.Equal(t, catalog.UnavailablePrice, got[2].Price)
}

func TestNormalize_VPSComposesStorageAndName(t *testing.T) {
	got := catalog.Normalize([]any{map[string]any{
		"id": 9.0, "region": "Frankfurt", "cores": 4.0, "ramGB": 8.0,
		"storageGB": 160.0, "storageType": "NVMe", "connectionSpeed": "1 Gbps",
		"price": 12.5, "category": "HighSpace",
	}}, catalog.KindVPS)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "9", p.ID)
	assert.Equal(t, "160GB NVMe", p.Storage)
	assert.Equal(t, "VPS 4 vCPU / 8GB RAM", p.Name)
	assert.Equal(t, "Frankfurt", p.Region)
	assert.Equal(t, "1 Gbps", p.ConnectionSpeed)
	assert.Empty(t, p.Processor)
}

func TestNormalize_Idempotent(t *testing.T) {
	shapes := map[string]string{
		"bare array": pascalRecords,
		"data":       `{"data": ` + pascalRecords + `}`,
		"result":     `{"result": ` + pascalRecords + `}`,
		"defaults":   `[{}, {"Price": "oops"}, {"storage": 250, "OldPrice": "$80"}]`,
	}

	for name, raw := range shapes {
		for _, kind := range []catalog.Kind{catalog.KindVPS, catalog.KindDedicated} {
			t.Run(name+"/"+string(kind), func(t *testing.T) {
				first := catalog.NormalizeJSON([]byte(raw), kind)

				records := make([]any, 0, len(first))
				for _, p := range first {
					records = append(records, p.Record())
				}
				second := catalog.Normalize(records, kind)

				assert.Equal(t, first, second)
			})
		}
	}
}

func TestNormalizeJSON_InvalidBody(t *testing.T) {
	got := catalog.NormalizeJSON([]byte(`{not json`), catalog.KindVPS)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"dollar string", "$19.99", 19.99},
		{"plain string", "19.99", 19.99},
		{"thousands separator", "1,299", 1299},
		{"currency suffix", "250 EGP", 250},
		{"empty", "", catalog.UnavailablePrice},
		{"not available", "N/A", catalog.UnavailablePrice},
		{"nil", nil, catalog.UnavailablePrice},
		{"zero", 0.0, catalog.UnavailablePrice},
		{"negative", "-5", catalog.UnavailablePrice},
		{"double minus", "--5", catalog.UnavailablePrice},
		{"two dots", "1.2.3", catalog.UnavailablePrice},
		{"number", 42.5, 42.5},
		{"int", 7, 7},
		{"json number", json.Number("15"), 15},
		{"bool", true, catalog.UnavailablePrice},
		{"object", map[string]any{"amount": 5}, catalog.UnavailablePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got float64
			require.NotPanics(t, func() { got = catalog.ParsePrice(tt.in) })
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestSavePercent(t *testing.T) {
	assert.Equal(t, 25, catalog.SavePercent(30, 40))
	assert.Equal(t, 33, catalog.SavePercent(20, 30))
	assert.Equal(t, 0, catalog.SavePercent(40, 30))
	assert.Equal(t, 0, catalog.SavePercent(30, 0))
	assert.Equal(t, 0, catalog.SavePercent(catalog.UnavailablePrice, 40))
}
