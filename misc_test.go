package gocriteria

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type account struct {
	ID   uint
	Name string
	Age  int
}

var _sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

// renderSQL renders the SELECT produced by build with all parameters inlined.
func renderSQL(t *testing.T, db *gorm.DB, build func(tx *gorm.DB) (*gorm.DB, error)) string {
	t.Helper()

	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q, err := build(tx.Table("accounts a"))
		require.NoError(t, err)

		return q.Find(&[]account{})
	})
}
