package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/models"
	"bookkeeper/internal/pagination"
	"bookkeeper/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", label, got.String(), want)
	}
}

func TestComputeBatchStock(t *testing.T) {
	purchase := models.InventoryPurchase{
		Quantity:     10,
		UnitCost:     dec("2.00"),
		ShippingCost: dec("5.00"),
		TotalCost:    dec("25.00"),
		Sales: []models.InventorySale{
			{QuantitySold: 3},
			{QuantitySold: 2},
		},
	}

	stock := computeBatchStock(purchase)

	assertDecimal(t, stock.UnitCost, "2.50", "unit cost")
	if stock.SoldCount != 5 {
		t.Errorf("sold count = %d, want 5", stock.SoldCount)
	}
	if stock.RemainingStock != 5 {
		t.Errorf("remaining stock = %d, want 5", stock.RemainingStock)
	}
	assertDecimal(t, stock.TotalValue, "12.50", "total value")
}

func TestComputeBatchStockZeroQuantity(t *testing.T) {
	// Legacy rows with zero quantity must not divide by zero.
	purchase := models.InventoryPurchase{
		Quantity:  0,
		TotalCost: dec("25.00"),
	}

	stock := computeBatchStock(purchase)

	assertDecimal(t, stock.UnitCost, "0", "unit cost")
	if stock.RemainingStock != 0 {
		t.Errorf("remaining stock = %d, want 0", stock.RemainingStock)
	}
}

func TestComputeBatchStockOversold(t *testing.T) {
	// Oversold batches surface negative stock rather than clamping it.
	purchase := models.InventoryPurchase{
		Quantity:  4,
		TotalCost: dec("10.00"),
		Sales: []models.InventorySale{
			{QuantitySold: 6},
		},
	}

	stock := computeBatchStock(purchase)
	if stock.RemainingStock != -2 {
		t.Errorf("remaining stock = %d, want -2", stock.RemainingStock)
	}
}

func TestSaleFigures(t *testing.T) {
	revenue, cogs, profit := saleFigures(4, dec("6.00"), dec("2.50"))

	assertDecimal(t, revenue, "24.00", "revenue")
	assertDecimal(t, cogs, "10.00", "cogs")
	assertDecimal(t, profit, "14.00", "profit")
	assertDecimal(t, marginPct(profit, revenue), "58.3", "margin")
}

func TestMarginPctZeroRevenue(t *testing.T) {
	assertDecimal(t, marginPct(decimal.Zero, decimal.Zero), "0", "margin")
}

func TestCreatePurchase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase, err := svc.CreatePurchase(user.ID, CreatePurchaseInput{
		ItemName:     "Paperback",
		PurchaseDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Quantity:     10,
		UnitCost:     dec("2.00"),
		ShippingCost: dec("5.00"),
	})
	testutil.AssertNoError(t, err)
	assertDecimal(t, purchase.TotalCost, "25.00", "total cost")
}

func TestCreatePurchaseRejectsZeroQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	_, err := svc.CreatePurchase(user.ID, CreatePurchaseInput{
		ItemName: "Paperback",
		Quantity: 0,
		UnitCost: dec("2.00"),
	})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestRecordSale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 10, dec("2.00"), dec("5.00"))

	sale, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		QuantitySold: 4,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertNoError(t, err)

	assertDecimal(t, sale.Revenue, "24.00", "revenue")
	assertDecimal(t, sale.COGS, "10.00", "cogs")
	assertDecimal(t, sale.Profit, "14.00", "profit")

	// The matching income transaction must exist with source "Book Sales".
	var income models.Transaction
	err = db.Where("user_id = ? AND income_source = ?", user.ID, models.IncomeSourceBookSales).
		First(&income).Error
	testutil.AssertNoError(t, err)
	assertDecimal(t, income.Amount, "24.00", "income amount")
	if income.Type != models.TransactionTypeIncome {
		t.Errorf("income type = %s, want Income", income.Type)
	}
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 3, dec("2.00"), decimal.Zero)

	_, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Now(),
		QuantitySold: 4,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertAppError(t, err, "INSUFFICIENT_STOCK")

	// Failed sale must not leave an income transaction behind.
	var count int64
	db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("transaction count after failed sale = %d, want 0", count)
	}
}

func TestRecordSaleDepletesBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 5, dec("2.00"), decimal.Zero)

	_, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Now(),
		QuantitySold: 5,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertNoError(t, err)

	available, err := svc.ListAvailableBatches(user.ID)
	testutil.AssertNoError(t, err)
	if len(available) != 0 {
		t.Errorf("available batches = %d, want 0", len(available))
	}
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 5, dec("2.00"), decimal.Zero)

	sale, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Now(),
		QuantitySold: 5,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteSale(user.ID, sale.ID))

	stock, err := svc.GetPurchase(user.ID, purchase.ID)
	testutil.AssertNoError(t, err)
	if stock.RemainingStock != 5 {
		t.Errorf("remaining stock after sale deletion = %d, want 5", stock.RemainingStock)
	}

	// The income transaction the sale created must go with it.
	var count int64
	db.Model(&models.Transaction{}).
		Where("user_id = ? AND income_source = ?", user.ID, models.IncomeSourceBookSales).
		Count(&count)
	if count != 0 {
		t.Errorf("income transactions after sale deletion = %d, want 0", count)
	}
}

func TestDeletePurchaseWithSalesRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 5, dec("2.00"), decimal.Zero)
	_, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Now(),
		QuantitySold: 1,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertNoError(t, err)

	err = svc.DeletePurchase(user.ID, purchase.ID)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestListPurchasesScopedToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	testutil.CreateTestPurchase(t, db, owner.ID, 5, dec("2.00"), decimal.Zero)

	page, err := svc.ListPurchases(other.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if len(page.Data) != 0 {
		t.Errorf("other user sees %d purchases, want 0", len(page.Data))
	}

	_, err = svc.GetPurchase(other.ID, 1)
	testutil.AssertAppError(t, err, "PURCHASE_NOT_FOUND")
}

func TestGetSalesReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 10, dec("2.00"), dec("5.00"))
	_, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		QuantitySold: 4,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertNoError(t, err)

	report, err := svc.GetSalesReport(user.ID,
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
	testutil.AssertNoError(t, err)

	if report.TotalUnits != 4 {
		t.Errorf("total units = %d, want 4", report.TotalUnits)
	}
	assertDecimal(t, report.TotalRevenue, "24.00", "total revenue")
	assertDecimal(t, report.TotalCOGS, "10.00", "total cogs")
	assertDecimal(t, report.TotalProfit, "14.00", "total profit")
	assertDecimal(t, report.MarginPct, "58.3", "margin pct")
}

func TestGetSalesReportIncludesEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewInventoryService(db)

	purchase := testutil.CreateTestPurchase(t, db, user.ID, 10, dec("2.00"), decimal.Zero)
	_, err := svc.RecordSale(user.ID, RecordSaleInput{
		PurchaseID:   purchase.ID,
		SaleDate:     time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		QuantitySold: 2,
		SalePrice:    dec("6.00"),
	})
	testutil.AssertNoError(t, err)

	// A report "to April 30" covers sales dated April 30.
	report, err := svc.GetSalesReport(user.ID,
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC))
	testutil.AssertNoError(t, err)
	if len(report.Sales) != 1 {
		t.Fatalf("sales in window = %d, want 1", len(report.Sales))
	}
	if report.TotalUnits != 2 {
		t.Errorf("total units = %d, want 2", report.TotalUnits)
	}
}
