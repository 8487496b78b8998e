package registry

import (
	"testing"

	"github.com/TAHAKARAHAN/sockproduction/internal/production/entity"
	"github.com/TAHAKARAHAN/sockproduction/internal/production/ledger"
)

func sampleDoc() entity.JSONB {
	return entity.JSONB{
		"variants": []interface{}{
			map[string]interface{}{
				"id": "v1", "model": "M100", "color": "Siyah", "size": "42",
				"targetQuantity": float64(40),
			},
			map[string]interface{}{
				"id": "v2", "model": "M100", "color": "Beyaz", "size": "43",
				"targetQuantity": float64(30), "boundCode": "FALLBACK1",
			},
		},
		"qrCodes": map[string]interface{}{
			"v1": map[string]interface{}{"code": "ABC123", "quantity": float64(40)},
		},
		"scanHistory": []interface{}{
			map[string]interface{}{
				"code": "ABC123", "variantId": "v1", "stage": entity.StageUretim,
				"timestamp": "2025-03-01T08:00:00Z",
			},
		},
	}
}

func TestParseCanonicalDocument(t *testing.T) {
	variants, bindings, history := Parse(sampleDoc())

	if len(variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(variants))
	}
	if variants[0].ID != "v1" || variants[0].TargetQuantity != 40 {
		t.Errorf("unexpected first variant: %+v", variants[0])
	}
	if e, ok := bindings["v1"]; !ok || e.Code != "ABC123" || e.Quantity != 40 {
		t.Errorf("unexpected binding: %+v", bindings)
	}
	if len(history) != 1 || history[0].Code != "ABC123" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestParseLegacyNesting(t *testing.T) {
	// Old records nest everything under additionalDetails.
	legacy := entity.JSONB{
		"additionalDetails": map[string]interface{}{
			"variants": []interface{}{
				map[string]interface{}{"id": "v1", "model": "M100", "targetQuantity": float64(40)},
			},
			"qrCodes": map[string]interface{}{
				"v1": map[string]interface{}{"code": "ABC123", "quantity": float64(40)},
			},
		},
	}

	variants, bindings, _ := Parse(legacy)
	if len(variants) != 1 || variants[0].ID != "v1" {
		t.Fatalf("legacy variants not parsed: %+v", variants)
	}
	if e := bindings["v1"]; e.Code != "ABC123" {
		t.Errorf("legacy ledger not parsed: %+v", bindings)
	}
}

func TestParseTopLevelShadowsLegacy(t *testing.T) {
	doc := entity.JSONB{
		"variants": []interface{}{
			map[string]interface{}{"id": "v-new"},
		},
		"additionalDetails": map[string]interface{}{
			"variants": []interface{}{
				map[string]interface{}{"id": "v-old"},
			},
		},
	}

	variants, _, _ := Parse(doc)
	if len(variants) != 1 || variants[0].ID != "v-new" {
		t.Errorf("top-level variants must win over legacy copy: %+v", variants)
	}
}

func TestParseTolerantOfMalformedInput(t *testing.T) {
	cases := []entity.JSONB{
		nil,
		{},
		{"variants": "not a list"},
		{"variants": []interface{}{"not a map", float64(7)}},
		{"qrCodes": []interface{}{"wrong shape"}},
		{"qrCodes": map[string]interface{}{"v1": "not an entry"}},
		{"scanHistory": map[string]interface{}{"wrong": "shape"}},
		{"additionalDetails": "not a map"},
	}
	for i, doc := range cases {
		variants, bindings, history := Parse(doc)
		if len(variants) != 0 || len(bindings) != 0 || len(history) != 0 {
			t.Errorf("case %d: malformed input must degrade to empty results", i)
		}
	}
}

func TestParseSkipsEntriesWithoutID(t *testing.T) {
	doc := entity.JSONB{
		"variants": []interface{}{
			map[string]interface{}{"model": "no-id"},
			map[string]interface{}{"id": "v1"},
		},
		"qrCodes": map[string]interface{}{
			"v1": map[string]interface{}{"quantity": float64(5)}, // no code
			"v2": map[string]interface{}{"code": "OK1"},
		},
	}
	variants, bindings, _ := Parse(doc)
	if len(variants) != 1 || variants[0].ID != "v1" {
		t.Errorf("variant without id must be skipped: %+v", variants)
	}
	if len(bindings) != 1 || bindings["v2"].Code != "OK1" {
		t.Errorf("ledger entry without code must be skipped: %+v", bindings)
	}
}

func TestResolveBoundCodeOrder(t *testing.T) {
	history := []entity.ScanRecord{
		{Code: "HIST-OLD", VariantID: "v1", Stage: entity.StageUretim},
		{Code: "HIST-NEW", VariantID: "v1", Stage: entity.StageYikama},
	}

	// Ledger entry wins over everything.
	v := entity.Variant{ID: "v1", BoundCode: "FIELD1"}
	l := ledger.Ledger{"v1": {Code: "LEDGER1", Quantity: 1}}
	if got := ResolveBoundCode(v, l, history); got != "LEDGER1" {
		t.Errorf("ledger entry must win, got %q", got)
	}

	// Variant field wins over history.
	if got := ResolveBoundCode(v, ledger.Ledger{}, history); got != "FIELD1" {
		t.Errorf("variant boundCode must win over history, got %q", got)
	}

	// Newest history record is the last resort.
	v.BoundCode = ""
	if got := ResolveBoundCode(v, ledger.Ledger{}, history); got != "HIST-NEW" {
		t.Errorf("newest history record must win, got %q", got)
	}

	// Nothing anywhere resolves to empty.
	if got := ResolveBoundCode(entity.Variant{ID: "v9"}, ledger.Ledger{}, history); got != "" {
		t.Errorf("unbound variant must resolve empty, got %q", got)
	}
}

func TestMergeRoundTrip(t *testing.T) {
	variants := []entity.Variant{{ID: "v1", Model: "M100", TargetQuantity: 40}}
	l := ledger.Ledger{"v1": {Code: "ABC123", Quantity: 40}}
	history := []entity.ScanRecord{{Code: "ABC123", VariantID: "v1", Stage: entity.StageUretim, Timestamp: "2025-03-01T08:00:00Z"}}

	doc := Merge(entity.JSONB{"notes": "keep me"}, variants, l, history)

	if doc["notes"] != "keep me" {
		t.Error("Merge must preserve unrelated keys")
	}

	gotVariants, gotLedger, gotHistory := Parse(doc)
	if len(gotVariants) != 1 || gotVariants[0].ID != "v1" || gotVariants[0].TargetQuantity != 40 {
		t.Errorf("variants did not survive merge: %+v", gotVariants)
	}
	if e := gotLedger["v1"]; e.Code != "ABC123" || e.Quantity != 40 {
		t.Errorf("ledger did not survive merge: %+v", gotLedger)
	}
	if len(gotHistory) != 1 || gotHistory[0].Code != "ABC123" {
		t.Errorf("history did not survive merge: %+v", gotHistory)
	}
}

func TestMergeNilDocument(t *testing.T) {
	doc := Merge(nil, nil, ledger.Ledger{}, nil)
	if doc == nil {
		t.Fatal("Merge(nil, ...) must allocate a document")
	}
	if _, ok := doc["variants"]; !ok {
		t.Error("merged document must carry the variants key")
	}
}
