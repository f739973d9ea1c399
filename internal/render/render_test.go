package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/identifier"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/pipeline"
)

func sampleTable(rows ...model.Row) *model.Table {
	return &model.Table{
		Dataset: model.InstitutionalHoldings,
		Columns: []model.Column{
			{Key: "nameOfIssuer", Label: "Issuer", Type: model.StringColumn},
			{Key: "value", Label: "Value ($)", Type: model.NumberColumn},
		},
		Rows: rows,
	}
}

func TestText(t *testing.T) {
	table := sampleTable(
		model.Row{model.Str("ALPHA"), model.Number(decimal.NewFromInt(10))},
		model.Row{model.Str("B"), {}},
	)

	var buf bytes.Buffer
	if err := Text(&buf, table); err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	want := "Issuer  Value ($)\n" +
		"ALPHA   10\n" +
		"B       -\n"
	if buf.String() != want {
		t.Errorf("Text() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestText_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleTable()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got, want := buf.String(), "Issuer  Value ($)\n"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestLookup(t *testing.T) {
	r := pipeline.Result{
		Dataset:    model.InsiderTransactions,
		Status:     pipeline.StatusFailed,
		Identifier: identifier.Normalize("tsla", identifier.TickerSymbol),
		Query: model.Query{
			Method: "POST",
			Path:   "/insider-trading",
			Filter: model.Filter{Terms: []model.Term{{Field: "issuer.tradingSymbol", Value: "TSLA"}}},
		},
		Outcome:  api.OutcomeAuthError,
		Err:      &pipeline.StageError{Stage: pipeline.StageFetch, Err: errors.New("sec-api auth error 401: bad key")},
		Duration: 1500 * time.Microsecond,
	}

	resp := Lookup(r)

	if resp.Identifier != "TSLA" {
		t.Errorf("Identifier = %q, want %q", resp.Identifier, "TSLA")
	}
	if resp.Query != "POST /insider-trading issuer.tradingSymbol:TSLA" {
		t.Errorf("Query = %q", resp.Query)
	}
	if resp.Outcome != "auth_error" {
		t.Errorf("Outcome = %q, want %q", resp.Outcome, "auth_error")
	}
	if resp.Error == nil || resp.Error.Stage != "fetch" {
		t.Fatalf("Error = %+v, want fetch stage", resp.Error)
	}
	if resp.Table != nil {
		t.Error("failed lookup has a table")
	}
	if resp.DurationMS != 2 {
		t.Errorf("DurationMS = %d, want 2", resp.DurationMS)
	}
}

func TestLookup_OmitsOutcomeWithoutFetch(t *testing.T) {
	r := pipeline.Result{
		Dataset:    model.InstitutionalHoldings,
		Status:     pipeline.StatusFailed,
		Identifier: identifier.Normalize("1067983", identifier.RegistryID),
		Err:        &pipeline.StageError{Stage: pipeline.StageBuild, Err: errors.New("invalid period")},
	}

	var buf bytes.Buffer
	if err := JSON(&buf, Lookup(r)); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if strings.Contains(buf.String(), `"outcome"`) {
		t.Errorf("lookup without a fetch reports an outcome:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"stage": "build"`) {
		t.Errorf("missing build stage:\n%s", buf.String())
	}
}

func TestLookup_JSON(t *testing.T) {
	r := pipeline.Result{
		Dataset:    model.PoliticianTrades,
		Status:     pipeline.StatusSuccess,
		Identifier: identifier.Normalize("Nancy Pelosi", identifier.PersonName),
		Query: model.Query{
			Method: "GET",
			Path:   "/beta/bulk/congresstrading",
			Params: []model.Param{{Key: "representative", Value: "Nancy Pelosi"}},
		},
		Table: sampleTable(model.Row{model.Str("ALPHA"), {}}),
	}

	var buf bytes.Buffer
	if err := JSON(&buf, Lookup(r)); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["status"] != "success" {
		t.Errorf("status = %v, want success", decoded["status"])
	}
	if decoded["query"] != "GET /beta/bulk/congresstrading?representative=Nancy+Pelosi" {
		t.Errorf("query = %v", decoded["query"])
	}
	if _, ok := decoded["error"]; ok {
		t.Error("successful lookup has an error field")
	}
	if !strings.Contains(buf.String(), `"type": "number"`) {
		t.Errorf("column types not encoded as text:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "null") {
		t.Errorf("missing value not encoded as null:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	noQuery := pipeline.Result{Dataset: model.InstitutionalHoldings, Status: pipeline.StatusNoQuery}
	var buf bytes.Buffer
	if err := Summary(&buf, noQuery); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got, want := buf.String(), "enter a cik to look up holdings\n"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	buf.Reset()
	ok := pipeline.Result{
		Dataset:    model.InstitutionalHoldings,
		Status:     pipeline.StatusSuccess,
		Identifier: identifier.Normalize("0001067983", identifier.RegistryID),
		Query:      model.Query{PageCap: 50},
		Truncated:  true,
		Table:      sampleTable(model.Row{model.Str("ALPHA"), model.Number(decimal.NewFromInt(1))}),
	}
	if err := Summary(&buf, ok); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"holdings for 0001067983: 1 rows", "truncated at 50", "ALPHA"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() missing %q:\n%s", want, out)
		}
	}
}
