package test

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"tasknotes/internal/adapter/database/sqlite"
	"tasknotes/internal/core/util"
)

func init() {
	util.PasswordCost = bcrypt.MinCost
}

// InitTestDB returns a fresh in-memory database with every migration applied.
func InitTestDB() *sqlite.DB {
	db, err := sqlite.NewDB(sqlite.Options{Path: sqlite.MemoryPath})

	if err != nil {
		log.Fatal(err)
	}

	return db
}
