package gocriteria

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_QueryPager_PageResults(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		perPage       int
		total         int64
		expectedQuery string
		expectedRows  func() *sqlmock.Rows
		want          []account
	}{
		{
			name:          "first page has no offset",
			page:          1,
			perPage:       2,
			total:         5,
			expectedQuery: `^SELECT \* FROM accounts a WHERE a\.age > (?:\$\d|\?) ORDER BY a\.name ASC LIMIT 2$`,
			expectedRows: func() *sqlmock.Rows {
				return sqlmock.NewRows([]string{"id", "name", "age"}).
					AddRow(1, "Anna", 20).
					AddRow(2, "Bob", 30)
			},
			want: []account{{ID: 1, Name: "Anna", Age: 20}, {ID: 2, Name: "Bob", Age: 30}},
		},
		{
			name:          "second page is offset",
			page:          2,
			perPage:       2,
			total:         5,
			expectedQuery: `^SELECT \* FROM accounts a WHERE a\.age > (?:\$\d|\?) ORDER BY a\.name ASC LIMIT 2 OFFSET 2$`,
			expectedRows: func() *sqlmock.Rows {
				return sqlmock.NewRows([]string{"id", "name", "age"}).
					AddRow(3, "Carl", 40).
					AddRow(4, "Dora", 50)
			},
			want: []account{{ID: 3, Name: "Carl", Age: 40}, {ID: 4, Name: "Dora", Age: 50}},
		},
		{
			name:          "unlimited page",
			page:          1,
			perPage:       NoLimit,
			total:         1,
			expectedQuery: `^SELECT \* FROM accounts a WHERE a\.age > (?:\$\d|\?) ORDER BY a\.name ASC$`,
			expectedRows: func() *sqlmock.Rows {
				return sqlmock.NewRows([]string{"id", "name", "age"}).
					AddRow(1, "Anna", 20)
			},
			want: []account{{ID: 1, Name: "Anna", Age: 20}},
		},
	}

	for _, sqlMockFn := range _sqlMockFnList {
		for _, tt := range tests {
			dialect, db, dbMock, err := sqlMockFn()
			t.Run(fmt.Sprintf("%s %s", dialect, tt.name), func(t *testing.T) {
				require.NoError(t, err)

				dbMock.ExpectQuery(`^SELECT count\(\*\) FROM accounts a WHERE a\.age > (?:\$\d|\?)$`).
					WithArgs(18).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.total))
				dbMock.ExpectQuery(tt.expectedQuery).
					WithArgs(18).
					WillReturnRows(tt.expectedRows())

				query, err := ApplyCriteria(db.Table("accounts a"), "a", Criteria{
					{Property: "age", Operator: OperatorGT, Value: 18},
				})
				require.NoError(t, err)
				query, err = Orderings{{Column: "name", Direction: DirectionASC}}.ApplyAliased(query, "a")
				require.NoError(t, err)

				got, err := NewQueryPager[account](query).
					WithMaxPerPage(tt.perPage).
					PageResults(context.Background(), tt.page)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				assert.NoError(t, dbMock.ExpectationsWereMet())
			})
		}
	}
}

func Test_QueryPager_OutOfRangeSkipsSelect(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM accounts a$`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

			_, err = NewQueryPager[account](db.Table("accounts a")).
				WithMaxPerPage(2).
				PageResults(context.Background(), 3)
			require.ErrorIs(t, err, ErrPageOutOfRange)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_QueryAdapter_CountSubquery(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery(
				`^SELECT count\(\*\) FROM \(SELECT \* FROM accounts a WHERE a\.name = (?:\$\d|\?)\) AS count_subquery$`,
			).
				WithArgs("Bob").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

			query, err := ApplyEqualities(db.Table("accounts a"), "a", Equalities{Eq("name", "Bob")})
			require.NoError(t, err)

			total, err := NewQueryAdapter[account](query, WithCountSubquery(true)).Count(context.Background())
			require.NoError(t, err)
			assert.EqualValues(t, 2, total)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_QueryAdapter_CountAndSliceDoNotShareClauses(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			ctx := context.Background()
			adapter := NewQueryAdapter[account](db.Table("accounts a").Order("a.id DESC"))

			dbMock.ExpectQuery(`^SELECT \* FROM accounts a ORDER BY a\.id DESC LIMIT 1 OFFSET 1$`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			dbMock.ExpectQuery(`^SELECT count\(\*\) FROM accounts a$`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
			dbMock.ExpectQuery(`^SELECT \* FROM accounts a ORDER BY a\.id DESC LIMIT 3$`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9).AddRow(8).AddRow(7))

			items, err := adapter.Slice(ctx, 1, 1)
			require.NoError(t, err)
			assert.Len(t, items, 1)

			total, err := adapter.Count(ctx)
			require.NoError(t, err)
			assert.EqualValues(t, 9, total)

			items, err = adapter.Slice(ctx, 0, 3)
			require.NoError(t, err)
			assert.Len(t, items, 3)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_QueryAdapter_Errors(t *testing.T) {
	_, db, dbMock, err := newGORMPostgresMock()
	require.NoError(t, err)

	dbMock.ExpectQuery(`^SELECT count\(\*\) FROM accounts a$`).
		WillReturnError(errors.New("connection reset"))

	_, err = NewQueryPager[account](db.Table("accounts a")).CurrentPageResults(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}
