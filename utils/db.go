package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db *gorm.DB
	mu sync.RWMutex
)

// InitDB stores the connection opened at boot. The first call wins; a
// running process never swaps its store.
func InitDB(database *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		db = database
	}
}

// GetDB returns the shared connection, nil before InitDB.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
