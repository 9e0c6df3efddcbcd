package record

import "testing"

func TestValidateDropsCollectionValues(t *testing.T) {
	records := []Raw{
		{
			{Name: "startTime", Value: String("2023-01-01T00:00")},
			{Name: "priceArea", Value: String("NO1")},
			{Name: "productionGroup", Value: String("hydro")},
			{Name: "quantityKwh", Value: Number(100)},
		},
		{
			{Name: "startTime", Value: Collection([]Value{String("bad")})},
			{Name: "priceArea", Value: String("NO1")},
			{Name: "productionGroup", Value: String("wind")},
			{Name: "quantityKwh", Value: Number(5)},
		},
	}

	valid, rejected := Validate(records, ProductionScalarFields)
	if len(valid) != 1 {
		t.Fatalf("expected 1 valid record, got %d", len(valid))
	}
	if rejected != 1 {
		t.Fatalf("expected rejected count 1, got %d", rejected)
	}

	group, _ := valid[0].Get("productionGroup")
	if s, _ := group.Str(); s != "hydro" {
		t.Fatalf("wrong record survived validation: %q", s)
	}
}

func TestValidatePreservesTotalCount(t *testing.T) {
	var records []Raw
	for i := 0; i < 10; i++ {
		r := Raw{
			{Name: "priceArea", Value: String("NO2")},
			{Name: "quantityKwh", Value: Number(float64(i))},
		}
		if i%3 == 0 {
			r = append(r, Field{Name: "endTime", Value: Collection(nil)})
		}
		records = append(records, r)
	}

	valid, rejected := Validate(records, ProductionScalarFields)
	if len(valid)+rejected != len(records) {
		t.Fatalf("valid (%d) + rejected (%d) != input (%d)", len(valid), rejected, len(records))
	}
	if rejected != 4 {
		t.Fatalf("expected 4 rejected, got %d", rejected)
	}
}

func TestValidateIgnoresUnlistedFields(t *testing.T) {
	records := []Raw{
		{
			{Name: "startTime", Value: String("2023-01-01T00:00")},
			{Name: "tags", Value: Collection([]Value{String("a"), String("b")})},
		},
	}

	valid, rejected := Validate(records, ProductionScalarFields)
	if len(valid) != 1 || rejected != 0 {
		t.Fatalf("collection in unlisted field must not reject the record: valid=%d rejected=%d", len(valid), rejected)
	}
}
