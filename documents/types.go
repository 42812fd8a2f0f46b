// Package documents holds the template registry: one descriptor per
// document type, each pairing a prepare-data transform (validated, typed
// payload out of raw records) with a renderer targeting the layout engine.
// Adding a document type means adding one file and one init registration;
// existing types are never touched.
package documents

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Type identifies a document type. The set is closed; unknown values are
// rejected at dispatch.
type Type string

const (
	TypeReceipt              Type = "receipt"
	TypePaymentNotice        Type = "payment_notice"
	TypeFormalNotice         Type = "formal_notice"
	TypeCAFCertificate       Type = "caf_certificate"
	TypeAnnualCertificate    Type = "annual_certificate"
	TypeLandlordTermination  Type = "landlord_termination"
	TypeTenantTermination    Type = "tenant_termination"
	TypeSaleNotice           Type = "sale_notice"
	TypeIndexationLetter     Type = "indexation_letter"
	TypeChargeReconciliation Type = "charge_reconciliation"
	TypePaymentPlan          Type = "payment_plan"
	TypeLeaseContract        Type = "lease_contract"
)

// Money is an amount in euros. Optional additive fields tolerate sloppy
// input: a numeric string is parsed, anything non-numeric (including null)
// decodes to 0 instead of failing, so a missing "other income" never blocks
// a generation. Fields central to a legal formula must NOT use Money; they
// stay float64 so malformed input fails fast.
type Money float64

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*m = 0
			return nil
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}

// Date is a calendar date decoded from "2006-01-02" or RFC 3339 strings.
// Empty and null decode to the zero time, which the formatting layer
// renders as an empty string.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("documents: invalid date %s: %w", b, err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layoutStr := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layoutStr, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("documents: unparseable date %q", s)
}

// Party identifies a landlord or tenant. Built once per generation from
// externally validated records and read-only afterwards.
type Party struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
}

// CityLine returns the postal code and city on one line.
func (p Party) CityLine() string {
	return strings.TrimSpace(p.PostalCode + " " + p.City)
}

// LastName returns the last space-separated component of the name, used by
// the contract filename policy.
func (p Party) LastName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// PropertyDesignation describes the rented premises.
type PropertyDesignation struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	PostalCode string  `json:"postalCode"`
	Label      string  `json:"label"`
	Surface    float64 `json:"surface,omitempty"` // m²
	Rooms      int     `json:"rooms,omitempty"`
}

// LeaseType distinguishes furnished from unfurnished tenancies; the
// statutory notice periods depend on it.
type LeaseType string

const (
	LeaseFurnished   LeaseType = "furnished"
	LeaseUnfurnished LeaseType = "unfurnished"
)

// Furnished reports whether the lease type is the furnished regime.
// Anything other than "furnished" is treated as unfurnished, the common
// law regime.
func (lt LeaseType) Furnished() bool { return lt == LeaseFurnished }

// LeaseTerms carries the financial terms of a lease. All monetary fields
// are non-negative.
type LeaseTerms struct {
	RentAmount    Money     `json:"rentAmount"`
	ChargesAmount Money     `json:"chargesAmount"`
	DepositAmount Money     `json:"depositAmount,omitempty"`
	StartDate     Date      `json:"startDate"`
	EndDate       Date      `json:"endDate,omitempty"`
	LeaseType     LeaseType `json:"leaseType"`
}

// CustomClause is an operator-configured contract clause injected at
// generation time.
type CustomClause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
