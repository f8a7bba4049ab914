package printing

import (
	"bytes"
	"fmt"
	"html/template"
)

// ReceiptLineData is one charge line on a printed receipt
type ReceiptLineData struct {
	Label  string
	Amount string
}

// ReceiptDocument holds everything the receipt template renders. All
// money fields are pre-formatted strings; formatting decisions live in
// the application layer.
type ReceiptDocument struct {
	ReceiptNumber string
	Period        string
	IssuedDate    string
	Status        string

	PropertyName string
	UnitNumber   string
	TenantName   string
	TenantPhone  string

	Lines      []ReceiptLineData
	Total      string
	AmountPaid string
	Balance    string
	Currency   string

	PreviousWaterReading string
	CurrentWaterReading  string
	ShowWaterReadings    bool

	Notes string
}

// ContractDocument holds everything the rental contract template renders
type ContractDocument struct {
	ContractNumber string
	PropertyName   string
	UnitNumber     string
	UnitType       string

	TenantName     string
	TenantPhone    string
	TenantIDNumber string

	StartDate  string
	EndDate    string
	Duration   string
	BillingDay int

	RentAmount string
	Deposit    string
	Currency   string

	Notes     string
	PrintedAt string
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1a1a1a; margin: 0; padding: 24px; font-size: 13px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; }
  .header h1 { margin: 0; font-size: 22px; }
  .header .meta { text-align: right; font-size: 12px; color: #555; }
  .status { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 11px; text-transform: uppercase; border: 1px solid #1a1a1a; }
  .parties { margin: 18px 0; display: flex; justify-content: space-between; }
  .parties div { line-height: 1.5; }
  .parties .label { font-size: 11px; color: #888; text-transform: uppercase; }
  table.charges { width: 100%; border-collapse: collapse; margin-top: 8px; }
  table.charges th { text-align: left; font-size: 11px; text-transform: uppercase; color: #888; border-bottom: 1px solid #ccc; padding: 6px 4px; }
  table.charges th.amount, table.charges td.amount { text-align: right; }
  table.charges td { padding: 6px 4px; border-bottom: 1px solid #eee; }
  .totals { margin-top: 12px; width: 45%; margin-left: auto; }
  .totals div { display: flex; justify-content: space-between; padding: 3px 4px; }
  .totals .grand { font-weight: bold; border-top: 2px solid #1a1a1a; font-size: 15px; }
  .readings { margin-top: 16px; font-size: 12px; color: #555; }
  .notes { margin-top: 20px; font-size: 12px; color: #555; border-top: 1px dashed #ccc; padding-top: 8px; }
  .footer { margin-top: 32px; font-size: 10px; color: #aaa; text-align: center; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <h1>Rent Receipt</h1>
      <div>{{.PropertyName}}{{if .UnitNumber}} &mdash; Unit {{.UnitNumber}}{{end}}</div>
    </div>
    <div class="meta">
      <div><strong>{{.ReceiptNumber}}</strong></div>
      <div>Period: {{.Period}}</div>
      <div>Issued: {{.IssuedDate}}</div>
      <div class="status">{{.Status}}</div>
    </div>
  </div>

  <div class="parties">
    <div>
      <div class="label">Tenant</div>
      <div>{{.TenantName}}</div>
      {{if .TenantPhone}}<div>{{.TenantPhone}}</div>{{end}}
    </div>
  </div>

  <table class="charges">
    <thead>
      <tr><th>Description</th><th class="amount">Amount ({{.Currency}})</th></tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr><td>{{.Label}}</td><td class="amount">{{.Amount}}</td></tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div class="grand"><span>Total</span><span>{{.Total}}</span></div>
    <div><span>Amount Paid</span><span>{{.AmountPaid}}</span></div>
    <div><span>Balance Due</span><span>{{.Balance}}</span></div>
  </div>

  {{if .ShowWaterReadings}}
  <div class="readings">
    Water meter: {{.PreviousWaterReading}} &rarr; {{.CurrentWaterReading}}
  </div>
  {{end}}

  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}

  <div class="footer">This is a system generated receipt.</div>
</body>
</html>`))

var contractTemplate = template.Must(template.New("contract").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, 'Times New Roman', serif; color: #1a1a1a; margin: 0; padding: 32px; font-size: 13px; line-height: 1.6; }
  h1 { text-align: center; font-size: 20px; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 4px; }
  .subtitle { text-align: center; color: #666; font-size: 12px; margin-bottom: 24px; }
  h2 { font-size: 14px; border-bottom: 1px solid #ccc; padding-bottom: 4px; margin-top: 24px; }
  table.facts { width: 100%; border-collapse: collapse; }
  table.facts td { padding: 5px 4px; vertical-align: top; }
  table.facts td.label { width: 35%; color: #666; }
  .signatures { margin-top: 48px; display: flex; justify-content: space-between; }
  .signatures div { width: 40%; border-top: 1px solid #1a1a1a; padding-top: 6px; font-size: 12px; text-align: center; }
  .footer { margin-top: 32px; font-size: 10px; color: #aaa; text-align: center; }
</style>
</head>
<body>
  <h1>Rental Agreement</h1>
  <div class="subtitle">Contract {{.ContractNumber}}</div>

  <h2>Premises</h2>
  <table class="facts">
    <tr><td class="label">Property</td><td>{{.PropertyName}}</td></tr>
    <tr><td class="label">Unit</td><td>{{.UnitNumber}}{{if .UnitType}} ({{.UnitType}}){{end}}</td></tr>
  </table>

  <h2>Tenant</h2>
  <table class="facts">
    <tr><td class="label">Name</td><td>{{.TenantName}}</td></tr>
    {{if .TenantPhone}}<tr><td class="label">Phone</td><td>{{.TenantPhone}}</td></tr>{{end}}
    {{if .TenantIDNumber}}<tr><td class="label">ID Number</td><td>{{.TenantIDNumber}}</td></tr>{{end}}
  </table>

  <h2>Term and Rent</h2>
  <table class="facts">
    <tr><td class="label">Commencement Date</td><td>{{.StartDate}}</td></tr>
    <tr><td class="label">Expiry Date</td><td>{{.EndDate}}</td></tr>
    <tr><td class="label">Duration</td><td>{{.Duration}}</td></tr>
    <tr><td class="label">Monthly Rent</td><td>{{.Currency}} {{.RentAmount}}, due on day {{.BillingDay}} of each month</td></tr>
    <tr><td class="label">Security Deposit</td><td>{{.Currency}} {{.Deposit}}</td></tr>
  </table>

  {{if .Notes}}
  <h2>Additional Terms</h2>
  <p>{{.Notes}}</p>
  {{end}}

  <div class="signatures">
    <div>Landlord / Agent</div>
    <div>Tenant</div>
  </div>

  <div class="footer">Generated {{.PrintedAt}}</div>
</body>
</html>`))

// RenderReceiptHTML renders the receipt document to HTML suitable for
// PDF conversion
func RenderReceiptHTML(doc *ReceiptDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("receipt document is nil")
	}
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render receipt template: %w", err)
	}
	return buf.String(), nil
}

// RenderContractHTML renders the rental contract document to HTML
func RenderContractHTML(doc *ContractDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("contract document is nil")
	}
	var buf bytes.Buffer
	if err := contractTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render contract template: %w", err)
	}
	return buf.String(), nil
}
