package documents

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/owenchateau/locadoc/calc"
)

var testLandlord = Party{
	Name:       "Jean Bailleur",
	Address:    "12 rue des Lilas",
	City:       "Lyon",
	PostalCode: "69003",
	Email:      "jean@example.org",
}

var testTenant = Party{
	Name:       "Marie Locataire",
	Address:    "8 avenue de la République",
	City:       "Lyon",
	PostalCode: "69007",
}

var testProperty = PropertyDesignation{
	Address:    "8 avenue de la République",
	City:       "Lyon",
	PostalCode: "69007",
	Label:      "Appartement T2 - Lot 14",
	Surface:    44.5,
	Rooms:      2,
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return b
}

func testContext() RenderContext {
	return RenderContext{
		Number:      "QUI-20260901-AB12",
		GeneratedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRegistryComplete(t *testing.T) {
	wantPrefix := map[Type]string{
		TypeReceipt:              "QUI",
		TypePaymentNotice:        "AVE",
		TypeFormalNotice:         "MED",
		TypeCAFCertificate:       "CAF",
		TypeAnnualCertificate:    "ATT",
		TypeLandlordTermination:  "CGB",
		TypeTenantTermination:    "CGL",
		TypeSaleNotice:           "AMV",
		TypeIndexationLetter:     "REV",
		TypeChargeReconciliation: "REG",
		TypePaymentPlan:          "ECH",
		TypeLeaseContract:        "BAI",
	}
	if got := len(Types()); got != len(wantPrefix) {
		t.Fatalf("registry has %d types, want %d", got, len(wantPrefix))
	}
	for typ, prefix := range wantPrefix {
		d, ok := Get(typ)
		if !ok {
			t.Fatalf("type %q not registered", typ)
		}
		if d.Prefix != prefix {
			t.Errorf("type %q: prefix = %q, want %q", typ, d.Prefix, prefix)
		}
		if d.Title == "" {
			t.Errorf("type %q: empty title", typ)
		}
		if d.Prepare == nil {
			t.Errorf("type %q: nil prepare", typ)
		}
	}
}

func TestGetUnknownType(t *testing.T) {
	if _, ok := Get(Type("postcard")); ok {
		t.Fatal("unknown type resolved")
	}
}

func TestPrepareRejectsEmptyPayload(t *testing.T) {
	for _, typ := range Types() {
		d, _ := Get(typ)
		if _, err := d.Prepare(nil); err == nil {
			t.Errorf("type %q: nil payload accepted", typ)
		}
		if _, err := d.Prepare([]byte("null")); err == nil {
			t.Errorf("type %q: null payload accepted", typ)
		}
	}
}

func TestPrepareFailsFastOnMissingFields(t *testing.T) {
	cases := []struct {
		typ     Type
		payload any
		field   string
	}{
		{TypeReceipt, ReceiptPayload{Tenant: testTenant, Property: testProperty}, "landlord.name"},
		{TypeReceipt, ReceiptPayload{Landlord: testLandlord, Tenant: testTenant, Property: testProperty,
			Period: Date{time.Now()}}, "rentAmount"},
		{TypePaymentNotice, PaymentNoticePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty}, "period"},
		{TypeFormalNotice, FormalNoticePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty}, "debts"},
		{TypeAnnualCertificate, AnnualCertificatePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Lease: LeaseTerms{RentAmount: 700}}, "year"},
		{TypeSaleNotice, SaleNoticePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty}, "salePrice"},
		{TypeLandlordTermination, LandlordTerminationPayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, LeaseEndDate: Date{time.Now()}}, "reason"},
		{TypePaymentPlan, PaymentPlanPayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty}, "debts"},
		{TypeChargeReconciliation, ChargeReconciliationPayload{Landlord: testLandlord,
			Tenant: testTenant, Property: testProperty}, "year"},
	}
	for _, tc := range cases {
		d, _ := Get(tc.typ)
		_, err := d.Prepare(mustJSON(t, tc.payload))
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Errorf("type %q: error = %v, want *FieldError", tc.typ, err)
			continue
		}
		if fe.Field != tc.field {
			t.Errorf("type %q: field = %q, want %q", tc.typ, fe.Field, tc.field)
		}
	}
}

func TestMoneyUnmarshalTolerant(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{`750.5`, 750.5},
		{`"820,82"`, 820.82},
		{`"1234.56"`, 1234.56},
		{`null`, 0},
		{`"not a number"`, 0},
		{`{"bad": true}`, 0},
	}
	for _, tc := range cases {
		var m Money
		if err := m.UnmarshalJSON([]byte(tc.in)); err != nil {
			t.Fatalf("Money(%s): unexpected error %v", tc.in, err)
		}
		if m != tc.want {
			t.Errorf("Money(%s) = %v, want %v", tc.in, m, tc.want)
		}
	}
}

func TestDateUnmarshal(t *testing.T) {
	var d Date
	if err := d.UnmarshalJSON([]byte(`"2026-03-15"`)); err != nil {
		t.Fatalf("ISO date: %v", err)
	}
	if d.Day() != 15 || d.Month() != time.March || d.Year() != 2026 {
		t.Fatalf("ISO date parsed as %v", d.Time)
	}
	if err := d.UnmarshalJSON([]byte(`"15/03/2026"`)); err != nil {
		t.Fatalf("French date: %v", err)
	}
	if d.Day() != 15 {
		t.Fatalf("French date parsed as %v", d.Time)
	}
	if err := d.UnmarshalJSON([]byte(`null`)); err != nil {
		t.Fatalf("null date: %v", err)
	}
	if !d.IsZero() {
		t.Fatal("null date should decode to zero time")
	}
	if err := d.UnmarshalJSON([]byte(`"tomorrow"`)); err == nil {
		t.Fatal("unparseable date accepted")
	}
}

func TestReceiptFullVsPartial(t *testing.T) {
	base := ReceiptPayload{
		Landlord:      testLandlord,
		Tenant:        testTenant,
		Property:      testProperty,
		Period:        Date{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		RentAmount:    800,
		ChargesAmount: 100,
	}

	full := base
	full.AmountReceived = 900
	d, _ := Get(TypeReceipt)
	r, err := d.Prepare(mustJSON(t, full))
	if err != nil {
		t.Fatalf("prepare full receipt: %v", err)
	}
	p := r.(*ReceiptPayload)
	if p.Partial() {
		t.Fatal("full payment classified partial")
	}
	if got := p.RemainingDue(); got != 0 {
		t.Fatalf("RemainingDue = %v, want 0", got)
	}

	partial := base
	partial.AmountReceived = 500
	r, err = d.Prepare(mustJSON(t, partial))
	if err != nil {
		t.Fatalf("prepare partial receipt: %v", err)
	}
	p = r.(*ReceiptPayload)
	if !p.Partial() {
		t.Fatal("partial payment classified full")
	}
	if got := p.RemainingDue(); got != 400 {
		t.Fatalf("RemainingDue = %v, want 400", got)
	}
}

func TestReceiptCityDefaultsToLandlord(t *testing.T) {
	d, _ := Get(TypeReceipt)
	r, err := d.Prepare(mustJSON(t, ReceiptPayload{
		Landlord:       testLandlord,
		Tenant:         testTenant,
		Property:       testProperty,
		Period:         Date{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		RentAmount:     800,
		AmountReceived: 800,
	}))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if got := r.(*ReceiptPayload).City; got != "Lyon" {
		t.Fatalf("city = %q, want landlord's city", got)
	}
}

func TestTenantTerminationNoticeMonths(t *testing.T) {
	cases := []struct {
		leaseType LeaseType
		ground    string
		want      int
	}{
		{LeaseUnfurnished, "", 3},
		{LeaseFurnished, "", 1},
		{LeaseUnfurnished, "mutation professionnelle", 1},
		{LeaseFurnished, "mutation professionnelle", 1},
	}
	for _, tc := range cases {
		p := &TenantTerminationPayload{LeaseType: tc.leaseType, ShortNoticeGround: tc.ground}
		if got := p.NoticeMonths(); got != tc.want {
			t.Errorf("NoticeMonths(%s, ground=%q) = %d, want %d", tc.leaseType, tc.ground, got, tc.want)
		}
	}
}

func TestTenantTerminationEffectiveDate(t *testing.T) {
	p := &TenantTerminationPayload{
		LeaseType:  LeaseUnfurnished,
		NoticeDate: Date{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	want := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	if got := p.EffectiveDate(); !got.Equal(want) {
		t.Fatalf("EffectiveDate = %v, want %v", got, want)
	}
}

func TestLandlordTerminationNoticeMonths(t *testing.T) {
	unfurnished := &LandlordTerminationPayload{LeaseType: LeaseUnfurnished}
	if got := unfurnished.NoticeMonths(); got != 6 {
		t.Fatalf("unfurnished landlord notice = %d, want 6", got)
	}
	furnished := &LandlordTerminationPayload{LeaseType: LeaseFurnished}
	if got := furnished.NoticeMonths(); got != 3 {
		t.Fatalf("furnished landlord notice = %d, want 3", got)
	}
}

func TestLandlordTerminationRejectsConvenience(t *testing.T) {
	d, _ := Get(TypeLandlordTermination)
	_, err := d.Prepare(mustJSON(t, LandlordTerminationPayload{
		Landlord:     testLandlord,
		Tenant:       testTenant,
		Property:     testProperty,
		LeaseEndDate: Date{time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)},
		Reason:       ReasonConvenience,
	}))
	if err == nil {
		t.Fatal("convenience accepted as landlord termination reason")
	}
}

func TestIndexationLetterRejectsBadIndex(t *testing.T) {
	d, _ := Get(TypeIndexationLetter)
	_, err := d.Prepare(mustJSON(t, IndexationLetterPayload{
		Landlord:       testLandlord,
		Tenant:         testTenant,
		Property:       testProperty,
		OldRent:        750,
		OldIndex:       0,
		NewIndex:       103,
		OldIndexPeriod: "2e trimestre 2025",
		NewIndexPeriod: "2e trimestre 2026",
		EffectiveDate:  Date{time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
	}))
	if err == nil {
		t.Fatal("zero reference index accepted")
	}
}

func TestIndexationLetterComputesRevision(t *testing.T) {
	d, _ := Get(TypeIndexationLetter)
	r, err := d.Prepare(mustJSON(t, IndexationLetterPayload{
		Landlord:       testLandlord,
		Tenant:         testTenant,
		Property:       testProperty,
		OldRent:        750,
		OldIndex:       100,
		NewIndex:       103,
		OldIndexPeriod: "2e trimestre 2025",
		NewIndexPeriod: "2e trimestre 2026",
		EffectiveDate:  Date{time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
	}))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	res := r.(*IndexationLetterPayload).Result()
	if res.NewRent != 772.50 {
		t.Fatalf("NewRent = %v, want 772.50", res.NewRent)
	}
	if res.VariationPercent != 3.00 {
		t.Fatalf("VariationPercent = %v, want 3.00", res.VariationPercent)
	}
}

func TestChargeReconciliationEstimatedFallback(t *testing.T) {
	d, _ := Get(TypeChargeReconciliation)
	r, err := d.Prepare(mustJSON(t, ChargeReconciliationPayload{
		Landlord:       testLandlord,
		Tenant:         testTenant,
		Property:       testProperty,
		Year:           2025,
		ProvisionsPaid: 1200,
		ActualCharges:  950,
	}))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	res := r.(*ChargeReconciliationPayload).Result()
	if !res.Estimated {
		t.Fatal("breakdown should be flagged estimated")
	}
	if res.Balance != 250 {
		t.Fatalf("Balance = %v, want 250", res.Balance)
	}
}

func TestPaymentPlanSchedule(t *testing.T) {
	d, _ := Get(TypePaymentPlan)
	r, err := d.Prepare(mustJSON(t, PaymentPlanPayload{
		Landlord: testLandlord,
		Tenant:   testTenant,
		Property: testProperty,
		Debts: []calc.LedgerEntry{
			{Label: "Loyer juin 2026", Amount: 500},
			{Label: "Loyer juillet 2026", Amount: 500},
		},
		Installments: 3,
		StartDate:    Date{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	p := r.(*PaymentPlanPayload)
	sched := p.Schedule()
	if len(sched) != 3 {
		t.Fatalf("schedule has %d entries, want 3", len(sched))
	}
	if sched[0].Amount != 334 || sched[1].Amount != 334 || sched[2].Amount != 332 {
		t.Fatalf("amounts = [%v %v %v], want [334 334 332]",
			sched[0].Amount, sched[1].Amount, sched[2].Amount)
	}
	if sched[2].RemainingBalance != 0 {
		t.Fatalf("final balance = %v, want 0", sched[2].RemainingBalance)
	}
}

func TestContractFilename(t *testing.T) {
	p := &LeaseContractPayload{
		Tenant:   Party{Name: "Marie Hélène Lefèvre"},
		Property: PropertyDesignation{Label: "Appartement T2 - Lot 14"},
	}
	want := "lease_contract_lefevre_appartement_t2_lot_14.pdf"
	if got := p.Filename(); got != want {
		t.Fatalf("Filename = %q, want %q", got, want)
	}
}

func TestArtifactName(t *testing.T) {
	contract := &LeaseContractPayload{
		Tenant:   Party{Name: "Durand"},
		Property: PropertyDesignation{Label: "Lot 3"},
	}
	if got := ArtifactName(contract, "BAI-20260901-AB12"); got != "lease_contract_durand_lot_3.pdf" {
		t.Fatalf("contract artifact name = %q", got)
	}
	receipt := &ReceiptPayload{}
	if got := ArtifactName(receipt, "QUI-20260901-AB12"); got != "QUI-20260901-AB12.pdf" {
		t.Fatalf("receipt artifact name = %q", got)
	}
}

func TestRenderAllTypesProducePDF(t *testing.T) {
	period := Date{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	start := Date{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}
	lease := LeaseTerms{
		RentAmount:    750,
		ChargesAmount: 80,
		DepositAmount: 750,
		StartDate:     start,
		LeaseType:     LeaseUnfurnished,
	}
	debts := []calc.LedgerEntry{{Label: "Loyer août 2026", Amount: 830}}

	payloads := map[Type]any{
		TypeReceipt: ReceiptPayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Period: period, RentAmount: 750, ChargesAmount: 80,
			AmountReceived: 830},
		TypePaymentNotice: PaymentNoticePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Period: period, RentAmount: 750, ChargesAmount: 80,
			DueDate: start},
		TypeFormalNotice: FormalNoticePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Debts: debts, City: "Lyon"},
		TypeCAFCertificate: CAFCertificatePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Lease: lease, CAFNumber: "1234567"},
		TypeAnnualCertificate: AnnualCertificatePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Lease: lease, Year: 2025},
		TypeTenantTermination: TenantTerminationPayload{Tenant: testTenant, Landlord: testLandlord,
			Property: testProperty, LeaseType: LeaseUnfurnished, NoticeDate: period},
		TypeLandlordTermination: LandlordTerminationPayload{Landlord: testLandlord,
			Tenant: testTenant, Property: testProperty, LeaseType: LeaseUnfurnished,
			LeaseEndDate: Date{time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)},
			Reason:       ReasonSale, ReasonDetail: "vente au prix de 180 000 €"},
		TypeSaleNotice: SaleNoticePayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, SalePrice: 180000},
		TypeIndexationLetter: IndexationLetterPayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, OldRent: 750, OldIndex: 100, NewIndex: 103,
			OldIndexPeriod: "2e trimestre 2025", NewIndexPeriod: "2e trimestre 2026",
			ChargesAmount: 80, EffectiveDate: start},
		TypeChargeReconciliation: ChargeReconciliationPayload{Landlord: testLandlord,
			Tenant: testTenant, Property: testProperty, Year: 2025,
			ProvisionsPaid: 960, ActualCharges: 1100},
		TypePaymentPlan: PaymentPlanPayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Debts: debts, Installments: 4, StartDate: start},
		TypeLeaseContract: LeaseContractPayload{Landlord: testLandlord, Tenant: testTenant,
			Property: testProperty, Lease: lease,
			Diagnostics: []string{"diagnostic de performance énergétique"}},
	}
	for typ, payload := range payloads {
		raw := mustJSON(t, payload)
		d, ok := Get(typ)
		if !ok {
			t.Fatalf("type %q not registered", typ)
		}
		r, err := d.Prepare(raw)
		if err != nil {
			t.Fatalf("prepare %q: %v", typ, err)
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, testContext()); err != nil {
			t.Fatalf("render %q: %v", typ, err)
		}
		if !strings.HasPrefix(buf.String(), "%PDF") {
			t.Errorf("type %q: output is not a PDF", typ)
		}
	}
}

func TestContractAnnexMissingFileIsSkipped(t *testing.T) {
	d, _ := Get(TypeLeaseContract)
	r, err := d.Prepare(mustJSON(t, LeaseContractPayload{
		Landlord: testLandlord,
		Tenant:   testTenant,
		Property: testProperty,
		Lease: LeaseTerms{
			RentAmount: 750,
			StartDate:  Date{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		},
	}))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	ctx := testContext()
	ctx.Annexes = []string{"/nonexistent/annex.pdf"}
	var buf bytes.Buffer
	if err := r.Render(&buf, ctx); err != nil {
		t.Fatalf("render with broken annex: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Fatal("output is not a PDF")
	}
}
