package orm

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func WithSqlite(path string) gorm.Dialector {
	return sqlite.Open(path)
}

func WithSqliteInMemory() gorm.Dialector {
	return sqlite.Open(":memory:")
}
