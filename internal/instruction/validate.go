package instruction

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

// MsgValidationFailed is the fixed top-level message for any payload failure.
const MsgValidationFailed = "Validation of your request's payload failed!"

// FieldErrors collects per-field validation failures. Every failing field is
// reported; validation never stops at the first problem.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Draft is a validated, normalized instruction payload. RequestedDate stays
// nil when absent from the input so defaulting can tell the cases apart.
type Draft struct {
	Name                  string
	Amount                decimal.Decimal
	BIC                   string
	IBAN                  string
	ERef                  string
	RequestedDate         *time.Time
	MandateID             string
	MandateSignatureDate  *time.Time
	RemittanceInformation string
}

// ValidatePayload checks a raw JSON object against the schema of the given
// instruction type. It returns either a draft or the full set of field errors;
// never both.
func ValidatePayload(raw map[string]any, typ entity.Type) (*Draft, FieldErrors) {
	errs := FieldErrors{}
	d := &Draft{}

	d.Name = stringField(raw, "name", errs)
	d.Amount = amountField(raw, "amount", errs)
	d.BIC = stringField(raw, "bic", errs)
	d.IBAN = stringField(raw, "iban", errs)
	d.ERef = stringField(raw, "eref", errs)

	switch typ {
	case entity.TypeDebit:
		d.MandateID = stringField(raw, "mandate_id", errs)
		if t, ok := requiredTimeField(raw, "mandate_signature_date", errs); ok {
			d.MandateSignatureDate = &t
		}
	case entity.TypeCredit:
		d.RemittanceInformation = stringField(raw, "remittance_information", errs)
	}

	// requested_date is optional for both types; when present it is carried
	// through untouched and defaulting leaves it alone.
	if v, present := raw["requested_date"]; present {
		if t, ok := parseTimestamp(v); ok {
			d.RequestedDate = &t
		} else {
			errs.add("requested_date", "must be a timestamp")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return d, nil
}

func stringField(raw map[string]any, key string, errs FieldErrors) string {
	v, present := raw[key]
	if !present {
		errs.add(key, "is required")
		return ""
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		errs.add(key, "must be a non-empty string")
		return ""
	}
	return s
}

func amountField(raw map[string]any, key string, errs FieldErrors) decimal.Decimal {
	v, present := raw[key]
	if !present {
		errs.add(key, "is required")
		return decimal.Zero
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		if dec, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return dec
		}
	}
	errs.add(key, "must be a number")
	return decimal.Zero
}

func requiredTimeField(raw map[string]any, key string, errs FieldErrors) (time.Time, bool) {
	v, present := raw[key]
	if !present {
		errs.add(key, "is required")
		return time.Time{}, false
	}
	t, ok := parseTimestamp(v)
	if !ok {
		errs.add(key, "must be a timestamp")
		return time.Time{}, false
	}
	return t, true
}

// parseTimestamp accepts integer epoch seconds, either as a JSON number or a
// string of digits.
func parseTimestamp(v any) (time.Time, bool) {
	switch n := v.(type) {
	case float64:
		// reject fractional seconds and values that would overflow int64
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return time.Time{}, false
		}
		return time.Unix(int64(n), 0).UTC(), true
	case string:
		sec, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(sec, 0).UTC(), true
	}
	return time.Time{}, false
}
