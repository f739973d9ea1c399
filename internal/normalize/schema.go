package normalize

import "github.com/rickgao/disclosure-data/internal/model"

// Schema describes the recognized columns for a dataset.
type Schema struct {
	Dataset model.DatasetKind
	Columns []model.Column

	// SortBy is a NumberColumn key the table is sorted on, descending.
	SortBy string

	// Explode names an array of child objects. Each element becomes its own
	// row, with its fields under ExplodeAs.
	Explode   string
	ExplodeAs string
}

// Recognized reports whether key is one of the schema's columns.
func (s Schema) Recognized(key string) bool {
	for _, c := range s.Columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

var holdingsSchema = Schema{
	Dataset: model.InstitutionalHoldings,
	Columns: []model.Column{
		{Key: "nameOfIssuer", Label: "Issuer", Type: model.StringColumn},
		{Key: "titleOfClass", Label: "Class", Type: model.StringColumn},
		{Key: "value", Label: "Value ($)", Type: model.NumberColumn},
		{Key: "shrsOrPrnAmt.sshPrnamt", Label: "Shares/Principal", Type: model.NumberColumn},
		{Key: "shrsOrPrnAmt.sshPrnamtType", Label: "Type", Type: model.StringColumn},
		{Key: "investmentDiscretion", Label: "Discretion", Type: model.StringColumn},
		{Key: "cusip", Label: "CUSIP", Type: model.StringColumn},
	},
	SortBy: "value",
}

var insiderSchema = Schema{
	Dataset: model.InsiderTransactions,
	Columns: []model.Column{
		{Key: "filedAt", Label: "Filed", Type: model.DateColumn},
		{Key: "transaction.transactionDate", Label: "Transaction Date", Type: model.DateColumn},
		{Key: "reportingOwner.name", Label: "Owner", Type: model.StringColumn},
		{Key: "reportingOwner.relationship.officerTitle", Label: "Title", Type: model.StringColumn},
		{Key: "transaction.coding.code", Label: "Type", Type: model.StringColumn},
		{Key: "transaction.amounts.shares", Label: "Shares", Type: model.NumberColumn},
		{Key: "transaction.amounts.pricePerShare", Label: "Price", Type: model.NumberColumn},
		{Key: "transaction.securityTitle", Label: "Security", Type: model.StringColumn},
	},
	Explode:   "nonDerivativeTable.transactions",
	ExplodeAs: "transaction",
}

var politicianSchema = Schema{
	Dataset: model.PoliticianTrades,
	Columns: []model.Column{
		{Key: "Representative", Label: "Representative", Type: model.StringColumn},
		{Key: "Ticker", Label: "Ticker", Type: model.StringColumn},
		{Key: "Transaction", Label: "Transaction", Type: model.StringColumn},
		{Key: "TransactionDate", Label: "Traded", Type: model.DateColumn},
		{Key: "ReportDate", Label: "Reported", Type: model.DateColumn},
		{Key: "Range", Label: "Range", Type: model.StringColumn},
		{Key: "Amount", Label: "Amount", Type: model.NumberColumn},
		{Key: "House", Label: "Chamber", Type: model.StringColumn},
		{Key: "Party", Label: "Party", Type: model.StringColumn},
	},
}

// SchemaFor returns the recognized-column schema for kind.
func SchemaFor(kind model.DatasetKind) Schema {
	var s Schema
	switch kind {
	case model.InstitutionalHoldings:
		s = holdingsSchema
	case model.InsiderTransactions:
		s = insiderSchema
	case model.PoliticianTrades:
		s = politicianSchema
	default:
		return Schema{Dataset: kind}
	}
	s.Columns = append([]model.Column(nil), s.Columns...)
	return s
}
