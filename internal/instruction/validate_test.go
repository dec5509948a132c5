package instruction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

func validDebitPayload() map[string]any {
	return map[string]any{
		"name":                   "Jane Doe",
		"amount":                 float64(123),
		"bic":                    "DABAIE2D",
		"iban":                   "AL90208110080000001039531801",
		"eref":                   "test-debit-1",
		"mandate_id":             "M-0001",
		"mandate_signature_date": float64(1700000000),
	}
}

func validCreditPayload() map[string]any {
	return map[string]any{
		"name":                   "Jane Doe",
		"amount":                 float64(123),
		"bic":                    "DABAIE2D",
		"iban":                   "AL90208110080000001039531801",
		"eref":                   "test-credit-1",
		"remittance_information": "invoice 42",
	}
}

func TestValidateDebitOK(t *testing.T) {
	d, errs := ValidatePayload(validDebitPayload(), entity.TypeDebit)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if d.Name != "Jane Doe" || d.BIC != "DABAIE2D" || d.ERef != "test-debit-1" {
		t.Fatalf("draft fields wrong: %+v", d)
	}
	if !d.Amount.Equal(decimal.NewFromInt(123)) {
		t.Fatalf("amount=%s want 123", d.Amount)
	}
	if d.MandateID != "M-0001" {
		t.Fatalf("mandate_id=%q", d.MandateID)
	}
	if d.MandateSignatureDate == nil || !d.MandateSignatureDate.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("mandate_signature_date=%v", d.MandateSignatureDate)
	}
	if d.RequestedDate != nil {
		t.Fatalf("requested_date should stay unset, got %v", d.RequestedDate)
	}
}

func TestValidateCreditOK(t *testing.T) {
	d, errs := ValidatePayload(validCreditPayload(), entity.TypeCredit)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if d.RemittanceInformation != "invoice 42" {
		t.Fatalf("remittance=%q", d.RemittanceInformation)
	}
}

func TestValidateCollectsEveryMissingField(t *testing.T) {
	_, errs := ValidatePayload(map[string]any{"some": "data"}, entity.TypeDebit)
	if errs == nil {
		t.Fatal("expected errors")
	}
	want := []string{"name", "amount", "bic", "iban", "eref", "mandate_id", "mandate_signature_date"}
	if len(errs) != len(want) {
		t.Fatalf("got %d error keys %v, want %d", len(errs), errs, len(want))
	}
	for _, k := range want {
		if len(errs[k]) == 0 {
			t.Fatalf("missing error for %q: %v", k, errs)
		}
	}
}

func TestValidateCreditDoesNotRequireMandate(t *testing.T) {
	payload := validCreditPayload()
	_, errs := ValidatePayload(payload, entity.TypeCredit)
	if errs != nil {
		t.Fatalf("credit must not require mandate fields: %v", errs)
	}
	delete(payload, "remittance_information")
	_, errs = ValidatePayload(payload, entity.TypeCredit)
	if len(errs["remittance_information"]) == 0 {
		t.Fatalf("want remittance_information error, got %v", errs)
	}
}

func TestValidateFieldTypes(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value any
	}{
		{"amount bool", "amount", true},
		{"amount word", "amount", "lots"},
		{"name empty", "name", "   "},
		{"name number", "name", float64(7)},
		{"signature fractional", "mandate_signature_date", 12.5},
		{"signature word", "mandate_signature_date", "soon"},
		{"signature overflows int64", "mandate_signature_date", 1e20},
		{"signature negative overflow", "mandate_signature_date", -1e20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payload := validDebitPayload()
			payload[c.key] = c.value
			d, errs := ValidatePayload(payload, entity.TypeDebit)
			if d != nil {
				t.Fatal("no draft may be built on failure")
			}
			if len(errs[c.key]) == 0 {
				t.Fatalf("want error for %q, got %v", c.key, errs)
			}
		})
	}
}

func TestValidateAmountAsNumericString(t *testing.T) {
	payload := validCreditPayload()
	payload["amount"] = "123.45"
	d, errs := ValidatePayload(payload, entity.TypeCredit)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !d.Amount.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("amount=%s want 123.45", d.Amount)
	}
}

func TestValidateRequestedDatePassesThrough(t *testing.T) {
	payload := validCreditPayload()
	payload["requested_date"] = float64(1800000000)
	d, errs := ValidatePayload(payload, entity.TypeCredit)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if d.RequestedDate == nil || !d.RequestedDate.Equal(time.Unix(1800000000, 0)) {
		t.Fatalf("requested_date=%v want 1800000000", d.RequestedDate)
	}

	for _, bad := range []any{"not-a-date", 1e20} {
		payload["requested_date"] = bad
		if _, errs = ValidatePayload(payload, entity.TypeCredit); len(errs["requested_date"]) == 0 {
			t.Fatalf("requested_date %v: want error, got %v", bad, errs)
		}
	}
}
