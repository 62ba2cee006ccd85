package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StockReservation{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestAddQuantityCreatesThenIncrements(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	firstExpiry := time.Now().Add(10 * time.Minute)

	if err := repo.AddQuantity(1, 7, 2, firstExpiry); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	laterExpiry := firstExpiry.Add(20 * time.Minute)
	if err := repo.AddQuantity(1, 7, 3, laterExpiry); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	reservation, err := repo.GetByOwnerAndProduct(1, 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reservation == nil {
		t.Fatalf("reservation missing after add")
	}
	if reservation.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", reservation.Quantity)
	}
	if !reservation.ExpiresAt.After(firstExpiry) {
		t.Fatalf("expiry not renewed: %v vs %v", reservation.ExpiresAt, firstExpiry)
	}
}

func TestReleaseQuantityDeletesAtZero(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	expiry := time.Now().Add(10 * time.Minute)
	if err := repo.AddQuantity(1, 7, 3, expiry); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.ReleaseQuantity(1, 7, 1); err != nil {
		t.Fatalf("partial release failed: %v", err)
	}
	reservation, err := repo.GetByOwnerAndProduct(1, 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reservation == nil || reservation.Quantity != 2 {
		t.Fatalf("reservation after partial release = %+v, want quantity 2", reservation)
	}

	if err := repo.ReleaseQuantity(1, 7, 5); err != nil {
		t.Fatalf("full release failed: %v", err)
	}
	reservation, err = repo.GetByOwnerAndProduct(1, 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reservation != nil {
		t.Fatalf("reservation should be deleted when released to zero")
	}

	// 无记录时释放是空操作
	if err := repo.ReleaseQuantity(1, 7, 1); err != nil {
		t.Fatalf("release on missing row failed: %v", err)
	}
}

func TestSetQuantityReplacesOrDeletes(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	expiry := time.Now().Add(10 * time.Minute)

	if err := repo.SetQuantity(1, 7, 4, expiry); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	reservation, err := repo.GetByOwnerAndProduct(1, 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reservation == nil || reservation.Quantity != 4 {
		t.Fatalf("reservation = %+v, want quantity 4", reservation)
	}

	if err := repo.SetQuantity(1, 7, 0, expiry); err != nil {
		t.Fatalf("set zero failed: %v", err)
	}
	reservation, err = repo.GetByOwnerAndProduct(1, 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reservation != nil {
		t.Fatalf("reservation should be deleted when set to zero")
	}
}

func TestReservedByProductExcludesExpired(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	now := time.Now()

	if err := repo.AddQuantity(1, 7, 2, now.Add(10*time.Minute)); err != nil {
		t.Fatalf("add active failed: %v", err)
	}
	if err := repo.AddQuantity(2, 7, 3, now.Add(-time.Minute)); err != nil {
		t.Fatalf("add expired failed: %v", err)
	}
	if err := repo.AddQuantity(1, 8, 9, now.Add(10*time.Minute)); err != nil {
		t.Fatalf("add other product failed: %v", err)
	}

	reserved, err := repo.ReservedByProduct(7, now)
	if err != nil {
		t.Fatalf("reserved failed: %v", err)
	}
	if reserved != 2 {
		t.Fatalf("reserved = %d, want 2", reserved)
	}
}

func TestDeleteExpiredKeepsActiveRows(t *testing.T) {
	repo := NewReservationRepository(newTestDB(t))
	now := time.Now()

	if err := repo.AddQuantity(1, 7, 2, now.Add(-time.Minute)); err != nil {
		t.Fatalf("add expired failed: %v", err)
	}
	if err := repo.AddQuantity(2, 7, 3, now.Add(10*time.Minute)); err != nil {
		t.Fatalf("add active failed: %v", err)
	}

	removed, err := repo.DeleteExpired(now)
	if err != nil {
		t.Fatalf("delete expired failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	remaining, err := repo.GetByOwnerAndProduct(2, 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if remaining == nil {
		t.Fatalf("active reservation should survive sweep")
	}
}
