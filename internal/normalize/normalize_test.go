package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/disclosure-data/internal/model"
)

func rawResult(kind model.DatasetKind, records ...string) model.RawResult {
	r := model.RawResult{Dataset: kind}
	for _, rec := range records {
		r.Records = append(r.Records, json.RawMessage(rec))
	}
	r.Body = []byte("[" + strings.Join(records, ",") + "]")
	return r
}

func columnKeys(t *model.Table) []string {
	keys := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Key
	}
	return keys
}

func holding(i int, value string) string {
	return fmt.Sprintf(`{"nameOfIssuer":"ISSUER %d","titleOfClass":"COM","cusip":"C%04d",`+
		`"value":%s,"shrsOrPrnAmt":{"sshPrnamt":%d,"sshPrnamtType":"SH"},`+
		`"investmentDiscretion":"SOLE","votingAuthority":{"Sole":1,"Shared":0,"None":0}}`,
		i, i, value, i*10)
}

func TestNormalize_Holdings(t *testing.T) {
	var records []string
	for i := 0; i < 41; i++ {
		records = append(records, holding(i, fmt.Sprint((i*37)%101*1000)))
	}

	table := Normalize(rawResult(model.InstitutionalHoldings, records...), model.InstitutionalHoldings)

	require.Equal(t, 41, table.Len())
	assert.Equal(t, model.InstitutionalHoldings, table.Dataset)
	assert.Equal(t, "value", table.SortedBy)
	assert.Equal(t, []string{
		"nameOfIssuer", "titleOfClass", "value",
		"shrsOrPrnAmt.sshPrnamt", "shrsOrPrnAmt.sshPrnamtType",
		"investmentDiscretion", "cusip",
	}, columnKeys(table))
	assert.Nil(t, table.Diagnostics)

	for i := 1; i < table.Len(); i++ {
		prev := table.Cell(i-1, "value").Num
		cur := table.Cell(i, "value").Num
		assert.True(t, prev.GreaterThanOrEqual(cur), "row %d: %s before %s", i, prev, cur)
	}
	assert.Equal(t, model.NumberValue, table.Cell(0, "shrsOrPrnAmt.sshPrnamt").Kind)
	assert.Equal(t, "SH", table.Cell(0, "shrsOrPrnAmt.sshPrnamtType").String())
}

func TestNormalize_EmptyIsHeaderOnly(t *testing.T) {
	for _, kind := range model.DatasetKinds {
		t.Run(kind.String(), func(t *testing.T) {
			table := Normalize(model.RawResult{Dataset: kind}, kind)
			assert.Equal(t, SchemaFor(kind).Columns, table.Columns)
			assert.Empty(t, table.Rows)
			assert.NotNil(t, table.Rows)
		})
	}
}

func TestNormalize_EmptyObjectsAreHeaderOnly(t *testing.T) {
	var logs bytes.Buffer
	raw := rawResult(model.InstitutionalHoldings, `{}`, `{}`)

	table := Normalize(raw, model.InstitutionalHoldings,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))), WithDiagnostics(true))

	assert.Equal(t, SchemaFor(model.InstitutionalHoldings).Columns, table.Columns)
	assert.Empty(t, table.Rows)
	assert.NotNil(t, table.Rows)
	require.NotNil(t, table.Diagnostics)
	assert.False(t, table.Diagnostics.Fallback)
	assert.Empty(t, logs.String())
}

func TestNormalize_OversizedNumberIsMissing(t *testing.T) {
	raw := rawResult(model.InstitutionalHoldings,
		`{"nameOfIssuer":"HUGE","value":1e50000000}`,
		`{"nameOfIssuer":"NORMAL","value":1200}`,
	)

	table := Normalize(raw, model.InstitutionalHoldings)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, "NORMAL", table.Cell(0, "nameOfIssuer").String())
	assert.True(t, table.Cell(1, "value").IsMissing())
}

func TestNormalize_SchemaDriftDropsColumns(t *testing.T) {
	raw := rawResult(model.InstitutionalHoldings,
		`{"cusip":"A1","extra":"x","value":10,"nameOfIssuer":"ALPHA"}`,
		`{"nameOfIssuer":"BETA","value":20}`,
	)

	table := Normalize(raw, model.InstitutionalHoldings)

	assert.Equal(t, []string{"nameOfIssuer", "value", "cusip"}, columnKeys(table))
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "BETA", table.Cell(0, "nameOfIssuer").String())
	assert.True(t, table.Cell(0, "cusip").IsMissing())
	assert.Equal(t, "A1", table.Cell(1, "cusip").String())
}

func TestNormalize_MissingSortsLast(t *testing.T) {
	raw := rawResult(model.InstitutionalHoldings,
		`{"nameOfIssuer":"NOVALUE"}`,
		`{"nameOfIssuer":"BAD","value":"n/a"}`,
		`{"nameOfIssuer":"SMALL","value":"$1,000"}`,
		`{"nameOfIssuer":"BIG","value":5000}`,
	)

	table := Normalize(raw, model.InstitutionalHoldings)

	var order []string
	for i := range table.Rows {
		order = append(order, table.Cell(i, "nameOfIssuer").String())
	}
	assert.Equal(t, []string{"BIG", "SMALL", "NOVALUE", "BAD"}, order)
	assert.True(t, table.Cell(3, "value").IsMissing())
	assert.Equal(t, "1000", table.Cell(1, "value").String())
}

func TestNormalize_InsiderExplodesTransactions(t *testing.T) {
	raw := rawResult(model.InsiderTransactions,
		`{"filedAt":"2024-02-14T16:05:07-05:00","issuer":{"tradingSymbol":"TSLA"},
		  "reportingOwner":{"name":"Musk Elon","relationship":{"isOfficer":true,"officerTitle":"CEO"}},
		  "nonDerivativeTable":{"transactions":[
		    {"securityTitle":"Common Stock","transactionDate":"2024-02-12","coding":{"code":"S"},
		     "amounts":{"shares":1000,"pricePerShare":"190.55"}},
		    {"securityTitle":"Common Stock","transactionDate":"2024-02-13","coding":{"code":"S"},
		     "amounts":{"shares":500,"pricePerShare":191.2}},
		    "not-an-object"
		  ]}}`,
		`{"filedAt":"2024-01-05","reportingOwner":{"name":"Kirkhorn Zachary"}}`,
	)

	table := Normalize(raw, model.InsiderTransactions)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{
		"filedAt", "transaction.transactionDate", "reportingOwner.name",
		"reportingOwner.relationship.officerTitle", "transaction.coding.code",
		"transaction.amounts.shares", "transaction.amounts.pricePerShare",
		"transaction.securityTitle",
	}, columnKeys(table))

	assert.Equal(t, "Musk Elon", table.Cell(0, "reportingOwner.name").String())
	assert.Equal(t, "2024-02-14", table.Cell(0, "filedAt").String())
	assert.Equal(t, "2024-02-12", table.Cell(0, "transaction.transactionDate").String())
	assert.Equal(t, "190.55", table.Cell(0, "transaction.amounts.pricePerShare").String())
	assert.Equal(t, "500", table.Cell(1, "transaction.amounts.shares").String())

	assert.Equal(t, "Kirkhorn Zachary", table.Cell(2, "reportingOwner.name").String())
	assert.True(t, table.Cell(2, "transaction.amounts.shares").IsMissing())
	assert.Empty(t, table.SortedBy)
}

func TestNormalize_PoliticianTrades(t *testing.T) {
	raw := rawResult(model.PoliticianTrades,
		`{"Representative":"Nancy Pelosi","BioGuideID":"P000197","ReportDate":"2024-01-10",
		  "TransactionDate":"2023-12-20","Ticker":"NVDA","Transaction":"Purchase",
		  "Range":"$1,000,001 - $5,000,000","House":"Representatives","Amount":"1000001.0","Party":"D"}`,
	)

	table := Normalize(raw, model.PoliticianTrades)

	require.Equal(t, 1, table.Len())
	assert.Len(t, table.Columns, 9)
	assert.Equal(t, model.DateValue, table.Cell(0, "TransactionDate").Kind)
	assert.Equal(t, "2023-12-20", table.Cell(0, "TransactionDate").String())
	assert.Equal(t, "$1,000,001 - $5,000,000", table.Cell(0, "Range").String())
	assert.Equal(t, "1000001", table.Cell(0, "Amount").String())
	assert.Equal(t, -1, table.ColumnIndex("BioGuideID"))
}

func TestNormalize_FallbackToPresentKeys(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	raw := rawResult(model.InstitutionalHoldings,
		`{"issuer":"ALPHA","amount":10}`,
		`{"issuer":"BETA","amount":null,"note":{"text":"late"}}`,
	)

	table := Normalize(raw, model.InstitutionalHoldings, WithLogger(logger), WithDiagnostics(true))

	assert.Equal(t, []model.Column{
		{Key: "issuer", Label: "issuer", Type: model.StringColumn},
		{Key: "amount", Label: "amount", Type: model.NumberColumn},
		{Key: "note.text", Label: "note.text", Type: model.StringColumn},
	}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.True(t, table.Cell(1, "amount").IsMissing())
	assert.Equal(t, "late", table.Cell(1, "note.text").String())

	require.NotNil(t, table.Diagnostics)
	assert.True(t, table.Diagnostics.Fallback)
	assert.Contains(t, logs.String(), "no recognized columns")
}

func TestNormalize_Diagnostics(t *testing.T) {
	raw := rawResult(model.InstitutionalHoldings,
		`{"nameOfIssuer":"ALPHA","value":10,"votingAuthority":{"Sole":10}}`,
	)

	table := Normalize(raw, model.InstitutionalHoldings, WithDiagnostics(true))

	d := table.Diagnostics
	require.NotNil(t, d)
	assert.Equal(t, 1, d.RawRecords)
	assert.Equal(t, []string{"nameOfIssuer", "value", "votingAuthority.Sole"}, d.PresentKeys)
	assert.Equal(t, []string{"votingAuthority.Sole"}, d.Unrecognized)
	assert.Equal(t, []string{
		"titleOfClass", "shrsOrPrnAmt.sshPrnamt", "shrsOrPrnAmt.sshPrnamtType",
		"investmentDiscretion", "cusip",
	}, d.AbsentKeys)
	assert.False(t, d.Fallback)
	assert.JSONEq(t, string(raw.Body), string(d.Payload))
}

func TestNormalize_ArraysKeptWhole(t *testing.T) {
	raw := rawResult(model.InstitutionalHoldings,
		`{"tags":["a","b"],"count":2}`,
	)

	table := Normalize(raw, model.InstitutionalHoldings)

	assert.Equal(t, `["a","b"]`, table.Cell(0, "tags").String())
	assert.Equal(t, model.NumberColumn, table.Columns[table.ColumnIndex("count")].Type)
}

func TestSchemaFor_ReturnsCopy(t *testing.T) {
	s := SchemaFor(model.InstitutionalHoldings)
	s.Columns[0].Label = "changed"

	assert.Equal(t, "Issuer", SchemaFor(model.InstitutionalHoldings).Columns[0].Label)
	assert.True(t, s.Recognized("cusip"))
	assert.False(t, s.Recognized("votingAuthority.Sole"))
}
