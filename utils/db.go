package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// InitDB guarda a conexao do banco local de configuracao (sqlite)
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB devolve a conexao do banco local
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
