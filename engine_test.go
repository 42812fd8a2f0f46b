package locadoc

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/owenchateau/locadoc/documents"
)

const receiptPayload = `{
	"landlord": {"name": "Jean Bailleur", "address": "12 rue des Lilas", "city": "Lyon", "postalCode": "69003"},
	"tenant": {"name": "Marie Locataire", "address": "8 avenue de la République", "city": "Lyon", "postalCode": "69007"},
	"property": {"address": "8 avenue de la République", "city": "Lyon", "postalCode": "69007", "label": "Lot 14"},
	"period": "2026-08-01",
	"rentAmount": 750,
	"chargesAmount": 80,
	"amountReceived": 830
}`

const contractPayload = `{
	"landlord": {"name": "Jean Bailleur", "address": "12 rue des Lilas", "city": "Lyon", "postalCode": "69003"},
	"tenant": {"name": "Marie Locataire", "address": "8 avenue de la République", "city": "Lyon", "postalCode": "69007"},
	"property": {"address": "8 avenue de la République", "city": "Lyon", "postalCode": "69007", "label": "Lot 14"},
	"lease": {"rentAmount": 750, "chargesAmount": 80, "startDate": "2026-09-01", "leaseType": "unfurnished"}
}`

func TestGenerateReceipt(t *testing.T) {
	e := New()
	art, err := e.Generate(documents.TypeReceipt, []byte(receiptPayload))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !regexp.MustCompile(`^QUI-\d{8}-[A-Z0-9]{4}$`).MatchString(art.Number) {
		t.Errorf("number %q does not match the reference format", art.Number)
	}
	if art.Filename != art.Number+".pdf" {
		t.Errorf("filename = %q, want %q", art.Filename, art.Number+".pdf")
	}
	if !strings.HasPrefix(string(art.Data), "%PDF") {
		t.Error("artifact data is not a PDF")
	}
}

func TestGenerateUnknownType(t *testing.T) {
	e := New()
	_, err := e.Generate(documents.Type("postcard"), []byte(`{}`))
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("error = %v, want ErrUnknownType", err)
	}
}

func TestGenerateWrapsPrepareError(t *testing.T) {
	e := New()
	_, err := e.Generate(documents.TypeReceipt, []byte(`{"landlord": {"name": "X"}}`))
	if err == nil {
		t.Fatal("incomplete payload accepted")
	}
	var de *DocError
	if !errors.As(err, &de) {
		t.Fatalf("error = %T, want *DocError", err)
	}
	if de.Op != "prepare" {
		t.Errorf("Op = %q, want %q", de.Op, "prepare")
	}
	var fe *documents.FieldError
	if !errors.As(err, &fe) {
		t.Errorf("prepare error does not wrap the field error: %v", err)
	}
}

func TestGenerateContractWithClauses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clauses.json")
	content := `{"contract_custom_clauses": [{"title": "Animaux", "content": "Les animaux de compagnie sont admis."}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing clause file: %v", err)
	}

	e := New(WithClauseLoader(FileClauseLoader(path)))
	art, err := e.Generate(documents.TypeLeaseContract, []byte(contractPayload))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if art.Filename != "lease_contract_locataire_lot_14.pdf" {
		t.Errorf("filename = %q", art.Filename)
	}
	if !strings.HasPrefix(string(art.Data), "%PDF") {
		t.Error("artifact data is not a PDF")
	}
}

func TestGenerateContractSurvivesClauseLoaderFailure(t *testing.T) {
	e := New(WithClauseLoader(FileClauseLoader("/nonexistent/clauses.json")))
	art, err := e.Generate(documents.TypeLeaseContract, []byte(contractPayload))
	if err != nil {
		t.Fatalf("Generate with broken clause loader: %v", err)
	}
	if !strings.HasPrefix(string(art.Data), "%PDF") {
		t.Error("artifact data is not a PDF")
	}
}

func TestFileClauseLoaderBareArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clauses.json")
	content := `[{"title": "Jardin", "content": "L'entretien du jardin incombe au locataire."}]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing clause file: %v", err)
	}
	clauses, err := FileClauseLoader(path)()
	if err != nil {
		t.Fatalf("loading clauses: %v", err)
	}
	if len(clauses) != 1 || clauses[0].Title != "Jardin" {
		t.Fatalf("clauses = %+v", clauses)
	}
}

func TestEngineTypes(t *testing.T) {
	e := New()
	types := e.Types()
	if len(types) != 12 {
		t.Fatalf("engine knows %d types, want 12", len(types))
	}
}
