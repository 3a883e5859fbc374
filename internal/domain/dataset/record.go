package dataset

// Columns is the declared column order of an import record. Statement building,
// row decoding and dataset readers all follow this order.
var Columns = []string{
	"application_id",
	"candidate_name",
	"father_name",
	"mother_name",
	"guardian_name",
	"gender",
	"date_of_birth",
	"category",
	"sub_category",
	"nationality",
	"religion",
	"marital_status",
	"email",
	"mobile",
	"alternate_mobile",
	"identity_number",
	"address_line1",
	"address_line2",
	"city",
	"district",
	"state",
	"pincode",
	"country",
	"domicile_state",
	"qualification",
	"board",
	"passing_year",
	"percentage",
	"university",
	"college",
	"course_applied",
	"specialization",
	"exam_center",
	"exam_date",
	"exam_shift",
	"roll_number",
	"score",
	"rank",
	"result_status",
	"application_status",
	"payment_status",
	"payment_reference",
	"fee_amount",
	"disability_status",
	"photo_url",
	"signature_url",
	"guardian_mobile",
	"submitted_at",
	"source_updated_at",
	"remarks",
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(Columns))
	for i, c := range Columns {
		idx[c] = i
	}
	return idx
}()

// ColumnIndex reports the position of name in Columns.
func ColumnIndex(name string) (int, bool) {
	i, ok := columnIndex[name]
	return i, ok
}

// Record is one row of the import dataset. Values are positional per Columns;
// a nil entry is a missing or null field.
type Record struct {
	Values []*string
}

func NewRecord() Record {
	return Record{Values: make([]*string, len(Columns))}
}

// Set stores value under the named column. Unknown columns are ignored.
func (r Record) Set(column string, value *string) bool {
	i, ok := columnIndex[column]
	if !ok || i >= len(r.Values) {
		return false
	}
	r.Values[i] = value
	return true
}

func (r Record) Get(column string) *string {
	i, ok := columnIndex[column]
	if !ok || i >= len(r.Values) {
		return nil
	}
	return r.Values[i]
}

func (r Record) ApplicationID() string {
	if v := r.Get("application_id"); v != nil {
		return *v
	}
	return ""
}

func StringPtr(s string) *string {
	return &s
}
