// Package export renders ledger records as CSV files for tax preparation.
// Money columns are plain two-decimal numbers and dates are YYYY-MM-DD so
// the files import cleanly into spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/models"
	"bookkeeper/internal/services"
)

const dateLayout = "2006-01-02"

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ExpensesFilename returns the download filename for a year's expense export.
func ExpensesFilename(year int) string {
	return fmt.Sprintf("expenses-%d.csv", year)
}

// IncomeFilename returns the download filename for a year's income export.
func IncomeFilename(year int) string {
	return fmt.Sprintf("income-%d.csv", year)
}

// DonationsFilename returns the download filename for a year's donation export.
func DonationsFilename(year int) string {
	return fmt.Sprintf("donations-%d.csv", year)
}

// SummaryFilename returns the download filename for a year's summary export.
func SummaryFilename(year int) string {
	return fmt.Sprintf("summary-%d.csv", year)
}

// InventorySalesFilename returns the download filename for a windowed
// inventory sales export.
func InventorySalesFilename(start, end time.Time) string {
	return fmt.Sprintf("inventory-sales-%s-to-%s.csv",
		start.Format(dateLayout), end.Format(dateLayout))
}

// WriteExpenses renders expense transactions as CSV. The payment_method
// column is kept for compatibility with accountant templates but is always
// empty; payment methods are not tracked on expenses.
func WriteExpenses(w io.Writer, transactions []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "description", "amount", "category", "payment_method", "notes"}); err != nil {
		return err
	}
	for _, tx := range transactions {
		record := []string{
			tx.Date.Format(dateLayout),
			tx.Description,
			money(tx.Amount),
			tx.Category,
			"",
			tx.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteIncome renders income transactions as CSV. The notes column carries
// the transaction description, which is where income detail lives.
func WriteIncome(w io.Writer, transactions []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "source", "amount", "notes"}); err != nil {
		return err
	}
	for _, tx := range transactions {
		record := []string{
			tx.Date.Format(dateLayout),
			string(tx.IncomeSource),
			money(tx.Amount),
			tx.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDonations renders donations as CSV.
func WriteDonations(w io.Writer, donations []models.Donation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "charity", "amount", "donation_type", "receipt_url"}); err != nil {
		return err
	}
	for _, d := range donations {
		record := []string{
			d.Date.Format(dateLayout),
			d.Charity,
			money(d.Amount),
			string(d.DonationType),
			d.ReceiptURL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary renders a yearly financial summary as a single data row.
func WriteSummary(w io.Writer, summary services.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "total_income", "total_expenses", "total_donations", "net_profit_after_donations"}); err != nil {
		return err
	}
	record := []string{
		fmt.Sprintf("%d", summary.Year),
		money(summary.TotalIncome),
		money(summary.TotalExpenses),
		money(summary.TotalDonations),
		money(summary.NetProfitAfterDonations),
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteInventorySales renders an inventory sales report as CSV with a
// per-row profit margin.
func WriteInventorySales(w io.Writer, report services.SalesReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Item", "Quantity", "Sale Price", "Revenue", "COGS", "Profit", "Margin", "Notes"}); err != nil {
		return err
	}
	for _, sale := range report.Sales {
		itemName := ""
		if sale.Purchase != nil {
			itemName = sale.Purchase.ItemName
		}
		margin := decimal.Zero
		if sale.Revenue.IsPositive() {
			margin = sale.Profit.Div(sale.Revenue).Mul(decimal.NewFromInt(100)).Round(1)
		}
		record := []string{
			sale.SaleDate.Format(dateLayout),
			itemName,
			fmt.Sprintf("%d", sale.QuantitySold),
			money(sale.SalePrice),
			money(sale.Revenue),
			money(sale.COGS),
			money(sale.Profit),
			margin.StringFixed(1) + "%",
			sale.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
