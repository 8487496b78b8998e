// Package registry reads and writes the semi-structured lot document. Old
// records nest their data under additionalDetails and may be missing or
// malformed, so parsing is tolerant by contract: bad input degrades to empty
// results, never to an error.
package registry

import (
	"encoding/json"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/ledger"
)

// Document keys. "qrCodes" is the historical name of the binding ledger.
const (
	keyVariants    = "variants"
	keyQRCodes     = "qrCodes"
	keyScanHistory = "scanHistory"
	keyLegacy      = "additionalDetails"
)

// Parse extracts the variant list, binding ledger and scan history from a lot
// document. Canonical top-level keys win; the legacy additionalDetails
// nesting is the fallback. Entries that do not have the expected shape are
// skipped.
func Parse(doc entity.JSONB) ([]entity.Variant, ledger.Ledger, []entity.ScanRecord) {
	variants := parseVariants(lookup(doc, keyVariants))
	bindings := parseLedger(lookup(doc, keyQRCodes))
	history := parseHistory(lookup(doc, keyScanHistory))
	return variants, bindings, history
}

// ResolveBoundCode returns the QR code bound to a variant, checking in order:
// the ledger entry, the variant's own boundCode field, then the newest scan
// history record for the variant. The order is a compatibility contract with
// records written by older versions; keep it exactly as is.
func ResolveBoundCode(v entity.Variant, l ledger.Ledger, history []entity.ScanRecord) string {
	if e, ok := l[v.ID]; ok && e.Code != "" {
		return e.Code
	}
	if v.BoundCode != "" {
		return v.BoundCode
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].VariantID == v.ID && history[i].Code != "" {
			return history[i].Code
		}
	}
	return ""
}

// Merge writes variants, ledger and history back into doc under the
// canonical top-level keys, preserving any unrelated keys the document
// already carries. Legacy additionalDetails copies are left in place; Parse
// shadows them once the top-level keys exist.
func Merge(doc entity.JSONB, variants []entity.Variant, l ledger.Ledger, history []entity.ScanRecord) entity.JSONB {
	if doc == nil {
		doc = entity.JSONB{}
	}
	doc[keyVariants] = toJSONValue(variants)
	doc[keyQRCodes] = toJSONValue(l)
	doc[keyScanHistory] = toJSONValue(history)
	return doc
}

// lookup returns doc[key], falling back to doc.additionalDetails[key].
func lookup(doc entity.JSONB, key string) interface{} {
	if doc == nil {
		return nil
	}
	if v, ok := doc[key]; ok && v != nil {
		return v
	}
	if nested, ok := doc[keyLegacy].(map[string]interface{}); ok {
		if v, ok := nested[key]; ok {
			return v
		}
	}
	return nil
}

func parseVariants(raw interface{}) []entity.Variant {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var variants []entity.Variant
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		v := entity.Variant{
			ID:             getString(m, "id"),
			Model:          getString(m, "model"),
			Color:          getString(m, "color"),
			Size:           getString(m, "size"),
			TargetQuantity: getInt(m, "targetQuantity"),
			BoundCode:      getString(m, "boundCode"),
		}
		if v.ID == "" {
			continue
		}
		variants = append(variants, v)
	}
	return variants
}

func parseLedger(raw interface{}) ledger.Ledger {
	l := ledger.Ledger{}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return l
	}
	for variantID, value := range m {
		entry, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		code := getString(entry, "code")
		if code == "" {
			continue
		}
		l[variantID] = ledger.Entry{Code: code, Quantity: getInt(entry, "quantity")}
	}
	return l
}

func parseHistory(raw interface{}) []entity.ScanRecord {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var history []entity.ScanRecord
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		r := entity.ScanRecord{
			Code:      getString(m, "code"),
			VariantID: getString(m, "variantId"),
			Stage:     getString(m, "stage"),
			Timestamp: getString(m, "timestamp"),
		}
		if r.Code == "" && r.VariantID == "" {
			continue
		}
		history = append(history, r)
	}
	return history
}

// toJSONValue round-trips a typed value through encoding/json so the document
// holds the same plain maps/slices a DB read would produce.
func toJSONValue(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}
