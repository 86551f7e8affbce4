package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookkeeper/internal/models"
)

var fixtureCounter atomic.Int64

// TestPassword is the plaintext password used by all fixture users.
const TestPassword = "test-password-123"

// CreateTestUser inserts a user with a unique email and a bcrypt-hashed
// password of TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := fixtureCounter.Add(1)
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := &models.User{
		Email:     fmt.Sprintf("user%d@example.com", n),
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create fixture user: %v", err)
	}
	return user
}

// CreateTestPurchase inserts a purchase batch with the given quantity and
// costs. TotalCost is derived the same way the service derives it.
func CreateTestPurchase(t *testing.T, db *gorm.DB, userID uint, quantity int, unitCost, shippingCost decimal.Decimal) *models.InventoryPurchase {
	t.Helper()

	n := fixtureCounter.Add(1)
	purchase := &models.InventoryPurchase{
		UserID:       userID,
		ItemName:     fmt.Sprintf("Item %d", n),
		PurchaseDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Quantity:     quantity,
		UnitCost:     unitCost,
		ShippingCost: shippingCost,
		TotalCost:    unitCost.Mul(decimal.NewFromInt(int64(quantity))).Add(shippingCost),
	}
	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("failed to create fixture purchase: %v", err)
	}
	return purchase
}

// CreateTestTransaction inserts a transaction with the given type, amount,
// and date. Income transactions get the given source; expenses get a
// category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, source models.IncomeSource, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID: userID,
		Type:   txType,
		Amount: amount,
		Date:   date,
	}
	if txType == models.TransactionTypeIncome {
		tx.IncomeSource = source
	} else {
		tx.Category = "Supplies"
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create fixture transaction: %v", err)
	}
	return tx
}

// CreateTestDonation inserts a donation with the given amount and date.
func CreateTestDonation(t *testing.T, db *gorm.DB, userID uint, amount decimal.Decimal, date time.Time) *models.Donation {
	t.Helper()

	donation := &models.Donation{
		UserID:       userID,
		Date:         date,
		Amount:       amount,
		Charity:      "Local Food Bank",
		DonationType: models.DonationTypeCash,
	}
	if err := db.Create(donation).Error; err != nil {
		t.Fatalf("failed to create fixture donation: %v", err)
	}
	return donation
}
