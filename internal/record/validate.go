package record

// ProductionScalarFields are the production-document fields that must hold
// scalar values. A collection in any of them signals an upstream schema
// inconsistency; such records are dropped rather than repaired.
var ProductionScalarFields = []string{
	"startTime",
	"endTime",
	"lastUpdatedTime",
	"priceArea",
	"productionGroup",
	"quantityKwh",
}

// Validate filters records whose listed fields all hold scalar values.
// Records with a collection in any listed field are rejected; the caller
// gets the surviving records plus the rejected count for a one-line warning.
// len(valid) + rejected always equals len(records).
func Validate(records []Raw, scalarFields []string) (valid []Raw, rejected int) {
	valid = make([]Raw, 0, len(records))
	for _, r := range records {
		if violatesScalarContract(r, scalarFields) {
			rejected++
			continue
		}
		valid = append(valid, r)
	}
	return valid, rejected
}

func violatesScalarContract(r Raw, scalarFields []string) bool {
	for _, name := range scalarFields {
		if v, ok := r.Get(name); ok && v.IsCollection() {
			return true
		}
	}
	return false
}
