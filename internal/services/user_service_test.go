package services

import (
	"testing"
	"time"

	"bookkeeper/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("alice@example.com", "secret-pass", "Alice", "Smith")
	testutil.AssertNoError(t, err)
	if user.Password == "secret-pass" {
		t.Error("password stored in plaintext")
	}

	_, err = svc.CreateUser("alice@example.com", "other-pass", "Alice", "Smith")
	testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewUserService(db)

	got, err := svc.AttemptLogin(user.Email, testutil.TestPassword)
	testutil.AssertNoError(t, err)
	if got.ID != user.ID {
		t.Errorf("logged in user ID = %d, want %d", got.ID, user.ID)
	}
	if got.LastLoginAt == nil {
		t.Error("last login timestamp not set")
	}
}

func TestAttemptLoginWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewUserService(db)

	_, err := svc.AttemptLogin(user.Email, "wrong-password")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

	// Unknown email returns the same error
	_, err = svc.AttemptLogin("nobody@example.com", "whatever")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
}

func TestAttemptLoginLockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewUserService(db)

	for i := 0; i < maxFailedLoginAttempts; i++ {
		_, err := svc.AttemptLogin(user.Email, "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	}

	// Locked now, even with the correct password
	_, err := svc.AttemptLogin(user.Email, testutil.TestPassword)
	testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
}

func TestAttemptLoginLockoutExpires(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewUserService(db)

	// Simulate an expired lockout
	past := time.Now().Add(-time.Minute)
	err := db.Model(user).Updates(map[string]interface{}{
		"failed_login_attempts": maxFailedLoginAttempts,
		"locked_until":          past,
	}).Error
	testutil.AssertNoError(t, err)

	got, err := svc.AttemptLogin(user.Email, testutil.TestPassword)
	testutil.AssertNoError(t, err)
	if got.FailedLoginAttempts != 0 {
		t.Errorf("failed attempts after successful login = %d, want 0", got.FailedLoginAttempts)
	}
}

func TestRefreshTokenHashRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewUserService(db)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "abc123"))

	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "abc123" {
		t.Errorf("refresh token hash = %s, want abc123", hash)
	}

	testutil.AssertNoError(t, svc.ClearRefreshToken(user.ID))
	hash, err = svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "" {
		t.Errorf("refresh token hash after clear = %s, want empty", hash)
	}
}
