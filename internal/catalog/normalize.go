package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Field synonyms in resolution order: lower camel, Pascal, then aliases.
var (
	idKeys          = []string{"id", "Id", "ID", "_id", "vpsId", "VpsId", "dedicatedId", "DedicatedId"}
	nameKeys        = []string{"name", "Name", "title", "Title", "planName", "PlanName", "serverName", "ServerName"}
	priceKeys       = []string{"price", "Price", "monthlyPrice", "MonthlyPrice", "cost", "Cost"}
	oldPriceKeys    = []string{"oldPrice", "OldPrice", "originalPrice", "OriginalPrice", "old_price"}
	coreKeys        = []string{"cores", "Cores", "cpuCores", "CpuCores", "vcpu", "vCPU", "vcpus", "cpuCount"}
	ramKeys         = []string{"ramGB", "RamGB", "RAMGB", "RAM", "ram", "Ram", "memory", "Memory", "memoryGB"}
	storageGBKeys   = []string{"storageGB", "StorageGB", "diskGB", "DiskGB"}
	storageKeys     = []string{"storage", "Storage", "disk", "Disk"}
	storageTypeKeys = []string{"storageType", "StorageType", "diskType", "DiskType"}
	processorKeys   = []string{"processor", "Processor", "cpuModel", "CpuModel", "CPUModel", "cpu", "Cpu", "CPU"}
	brandKeys       = []string{"brand", "Brand", "cpuBrand", "CpuBrand", "vendor", "Vendor"}
	categoryKeys    = []string{"category", "Category", "planType", "PlanType", "type", "Type"}
	regionKeys      = []string{"region", "Region"}
	locationKeys    = []string{"location", "Location", "datacenter", "Datacenter"}
	bandwidthKeys   = []string{"bandwidth", "Bandwidth", "traffic", "Traffic"}
	speedKeys       = []string{"connectionSpeed", "ConnectionSpeed", "networkSpeed", "NetworkSpeed", "port", "Port"}
	descKeys        = []string{"description", "Description", "details", "Details"}
	featuredKeys    = []string{"featured", "Featured", "isFeatured", "IsFeatured"}
	limitedKeys     = []string{"limited", "Limited", "isLimited", "IsLimited", "limitedOffer"}
	inStockKeys     = []string{"inStock", "InStock", "available", "Available", "isAvailable", "IsAvailable"}
)

const (
	defaultBrand       = "Generic"
	defaultStorageType = "SSD"
	defaultProcessor   = "Unknown"
	defaultBandwidth   = "Unlimited"
	defaultDedicatedGB = "500GB"
)

// kindListKeys are the type specific container keys tried after data/result/items.
var kindListKeys = map[Kind][]string{
	KindVPS:       {"vps", "Vps", "plans", "Plans"},
	KindDedicated: {"servers", "Servers", "dedicated", "Dedicated"},
}

var (
	priceStrip = regexp.MustCompile(`[^0-9.\-]`)
	firstInt   = regexp.MustCompile(`\d+`)
)

// NormalizeJSON decodes a raw response body and normalizes it. Undecodable
// bodies yield an empty list.
func NormalizeJSON(data []byte, kind Kind) []Product {
	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return []Product{}
	}
	return Normalize(body, kind)
}

// Normalize maps an arbitrarily shaped response onto canonical products,
// preserving response order.
func Normalize(body any, kind Kind) []Product {
	records := ExtractRecords(body, kind)
	out := make([]Product, 0, len(records))
	for i, rec := range records {
		out = append(out, NormalizeRecord(rec, kind, i))
	}
	return out
}

// ExtractRecords locates the product list inside a response body.
func ExtractRecords(body any, kind Kind) []map[string]any {
	return extract(body, kind, 0)
}

func extract(body any, kind Kind, depth int) []map[string]any {
	switch v := body.(type) {
	case []map[string]any:
		return v
	case []any:
		return toRecords(v)
	case map[string]any:
		if depth > 1 {
			return []map[string]any{}
		}
		if data, ok := v["data"]; ok && data != nil {
			if recs := extract(data, kind, depth+1); len(recs) > 0 || isList(data) {
				return recs
			}
		}
		keys := append([]string{"result", "items"}, kindListKeys[kind]...)
		for _, k := range keys {
			if list, ok := v[k].([]any); ok {
				return toRecords(list)
			}
		}
		names := make([]string, 0, len(v))
		for k := range v {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			if list, ok := v[k].([]any); ok {
				return toRecords(list)
			}
		}
	}
	return []map[string]any{}
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []map[string]any:
		return true
	}
	return false
}

func toRecords(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			rec = map[string]any{}
		}
		out = append(out, rec)
	}
	return out
}

// NormalizeRecord maps one raw record. pos is the record's position in its
// response and is only used to synthesize a missing id.
func NormalizeRecord(rec map[string]any, kind Kind, pos int) Product {
	p := Product{Kind: kind}

	p.ID = asString(lookup(rec, idKeys))
	if p.ID == "" {
		p.ID = fmt.Sprintf("%s-%d", kind, pos+1)
	}

	p.Price = ParsePrice(lookup(rec, priceKeys))
	if old := ParsePrice(lookup(rec, oldPriceKeys)); old < UnavailablePrice {
		p.OldPrice = old
	}

	p.Cores = atLeastOne(asInt(lookup(rec, coreKeys)))
	p.RAMGB = atLeastOne(asInt(lookup(rec, ramKeys)))

	p.StorageGB = asInt(lookup(rec, storageGBKeys))
	switch s := lookup(rec, storageKeys).(type) {
	case string:
		p.Storage = strings.TrimSpace(s)
	case nil:
	default:
		if p.StorageGB == 0 {
			p.StorageGB = asInt(s)
		}
	}
	if p.Storage == "" && p.StorageGB == 0 && kind == KindDedicated {
		p.Storage = defaultDedicatedGB
	}
	p.StorageType = canonicalStorageType(asString(lookup(rec, storageTypeKeys)))
	if p.StorageType == "" {
		p.StorageType = storageTypeFrom(p.Storage)
	}
	if p.StorageGB == 0 {
		p.StorageGB = storageSizeFrom(p.Storage)
	}
	if p.Storage == "" && p.StorageGB > 0 {
		p.Storage = fmt.Sprintf("%dGB %s", p.StorageGB, p.StorageType)
	}

	p.Processor = asString(lookup(rec, processorKeys))
	p.Brand = asString(lookup(rec, brandKeys))
	if p.Brand == "" {
		p.Brand = defaultBrand
	}
	p.Category = asString(lookup(rec, categoryKeys))
	p.Region = asString(lookup(rec, regionKeys))
	p.Location = asString(lookup(rec, locationKeys))
	p.Bandwidth = asString(lookup(rec, bandwidthKeys))
	p.ConnectionSpeed = asString(lookup(rec, speedKeys))
	p.Description = asString(lookup(rec, descKeys))

	p.Featured = asBool(lookup(rec, featuredKeys), false)
	p.Limited = asBool(lookup(rec, limitedKeys), false)
	p.InStock = asBool(lookup(rec, inStockKeys), true)

	if kind == KindDedicated {
		if p.Processor == "" {
			p.Processor = defaultProcessor
		}
		if p.Bandwidth == "" {
			p.Bandwidth = defaultBandwidth
		}
	}

	p.Name = asString(lookup(rec, nameKeys))
	if p.Name == "" {
		p.Name = defaultName(p)
	}
	return p
}

func defaultName(p Product) string {
	if p.Kind == KindDedicated {
		if p.Processor != "" && p.Processor != defaultProcessor {
			return p.Processor
		}
		return "Dedicated Server " + p.ID
	}
	return fmt.Sprintf("VPS %d vCPU / %dGB RAM", p.Cores, p.RAMGB)
}

// ParsePrice parses a price from a number or a currency formatted string.
// Anything missing, non-positive or unparseable maps to UnavailablePrice.
func ParsePrice(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return UnavailablePrice
		}
		f = parsed
	case string:
		cleaned := priceStrip.ReplaceAllString(t, "")
		if cleaned == "" {
			return UnavailablePrice
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return UnavailablePrice
		}
		f = parsed
	default:
		return UnavailablePrice
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > UnavailablePrice {
		return UnavailablePrice
	}
	return f
}

func lookup(rec map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'f', 0, 64)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(t)
	case float32:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint64:
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case string:
		m := firstInt.FindString(strings.ReplaceAll(t, ",", ""))
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}

func asBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y":
			return true
		case "false", "0", "no", "n":
			return false
		}
	}
	return def
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func canonicalStorageType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ""
	case "nvme", "nvme ssd":
		return "NVMe"
	case "ssd":
		return "SSD"
	case "hdd", "sata":
		return "HDD"
	}
	return strings.TrimSpace(s)
}

func storageTypeFrom(descriptor string) string {
	d := strings.ToLower(descriptor)
	switch {
	case strings.Contains(d, "nvme"):
		return "NVMe"
	case strings.Contains(d, "ssd"):
		return "SSD"
	case strings.Contains(d, "hdd"), strings.Contains(d, "sata"):
		return "HDD"
	}
	return defaultStorageType
}

func storageSizeFrom(descriptor string) int {
	d := strings.ToLower(descriptor)
	n := asInt(d)
	if n == 0 {
		return 0
	}
	if strings.Contains(d, "tb") {
		return n * 1000
	}
	if strings.Contains(d, "gb") {
		return n
	}
	return 0
}
