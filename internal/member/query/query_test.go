package query

import (
	"strings"
	"sync"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/member_search/internal/member/model"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func renderWhere(t *testing.T, cond model.SearchCondition) (string, []interface{}) {
	t.Helper()
	where, ok := Where(cond)
	require.True(t, ok)
	sql, args, err := goqu.From("x").Where(where).Prepared(true).ToSQL()
	require.NoError(t, err)
	return sql, args
}

func TestFieldPredicates(t *testing.T) {
	t.Run("absent fields yield nothing", func(t *testing.T) {
		_, ok := UsernameEq(nil)
		assert.False(t, ok)
		_, ok = TeamNameEq(nil)
		assert.False(t, ok)
		_, ok = AgeGoe(nil)
		assert.False(t, ok)
		_, ok = AgeLoe(nil)
		assert.False(t, ok)
	})

	t.Run("present fields yield a predicate", func(t *testing.T) {
		tests := []struct {
			name    string
			build   func() (exp.Expression, bool)
			wantSQL string
			wantArg interface{}
		}{
			{
				name:    "username",
				build:   func() (exp.Expression, bool) { return UsernameEq(strPtr("member1")) },
				wantSQL: `"m"."username" = ?`,
				wantArg: "member1",
			},
			{
				name:    "team name",
				build:   func() (exp.Expression, bool) { return TeamNameEq(strPtr("teamB")) },
				wantSQL: `"t"."name" = ?`,
				wantArg: "teamB",
			},
			{
				name:    "age lower bound",
				build:   func() (exp.Expression, bool) { return AgeGoe(intPtr(20)) },
				wantSQL: `"m"."age" >= ?`,
				wantArg: 20,
			},
			{
				name:    "age upper bound",
				build:   func() (exp.Expression, bool) { return AgeLoe(intPtr(30)) },
				wantSQL: `"m"."age" <= ?`,
				wantArg: 30,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				predicate, ok := tt.build()
				require.True(t, ok)
				require.NotNil(t, predicate)

				sql, args, err := goqu.From("x").Where(predicate).Prepared(true).ToSQL()
				require.NoError(t, err)
				assert.Contains(t, sql, tt.wantSQL)
				require.Len(t, args, 1)
				assert.EqualValues(t, tt.wantArg, args[0])
			})
		}
	})

	t.Run("zero age is a real bound", func(t *testing.T) {
		predicate, ok := AgeGoe(intPtr(0))
		require.True(t, ok)

		_, args, err := goqu.From("x").Where(predicate).Prepared(true).ToSQL()
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.EqualValues(t, 0, args[0])
	})

	t.Run("empty username is a real filter", func(t *testing.T) {
		_, ok := UsernameEq(strPtr(""))
		assert.True(t, ok)
	})
}

func TestPredicates(t *testing.T) {
	t.Run("empty condition yields empty set", func(t *testing.T) {
		predicates := Predicates(model.SearchCondition{})
		assert.NotNil(t, predicates)
		assert.Empty(t, predicates)
	})

	t.Run("one predicate per present field", func(t *testing.T) {
		assert.Len(t, Predicates(model.SearchCondition{Username: strPtr("a")}), 1)
		assert.Len(t, Predicates(model.SearchCondition{AgeGoe: intPtr(1), AgeLoe: intPtr(2)}), 2)
		assert.Len(t, Predicates(model.SearchCondition{
			Username: strPtr("a"),
			TeamName: strPtr("b"),
			AgeGoe:   intPtr(1),
			AgeLoe:   intPtr(2),
		}), 4)
	})

	t.Run("field order is fixed", func(t *testing.T) {
		sql, args := renderWhere(t, model.SearchCondition{
			AgeLoe:   intPtr(40),
			AgeGoe:   intPtr(10),
			TeamName: strPtr("teamA"),
			Username: strPtr("member1"),
		})

		assert.Less(t, strings.Index(sql, `"m"."username"`), strings.Index(sql, `"t"."name"`))
		assert.Less(t, strings.Index(sql, `"t"."name"`), strings.Index(sql, `"m"."age" >=`))
		assert.Less(t, strings.Index(sql, `"m"."age" >=`), strings.Index(sql, `"m"."age" <=`))
		require.Len(t, args, 4)
		assert.Equal(t, "member1", args[0])
		assert.Equal(t, "teamA", args[1])
		assert.EqualValues(t, 10, args[2])
		assert.EqualValues(t, 40, args[3])
	})

	t.Run("pure", func(t *testing.T) {
		cond := model.SearchCondition{Username: strPtr("member1"), AgeGoe: intPtr(5)}

		first, _ := renderWhere(t, cond)
		second, _ := renderWhere(t, cond)

		assert.Equal(t, first, second)
	})
}

func TestWhere(t *testing.T) {
	t.Run("empty condition matches all", func(t *testing.T) {
		where, ok := Where(model.SearchCondition{})
		assert.False(t, ok)
		assert.Nil(t, where)
	})

	t.Run("conjunction", func(t *testing.T) {
		sql, args := renderWhere(t, model.SearchCondition{AgeGoe: intPtr(20), AgeLoe: intPtr(30)})

		assert.Contains(t, sql, `"m"."age" >= ?`)
		assert.Contains(t, sql, " AND ")
		assert.Contains(t, sql, `"m"."age" <= ?`)
		assert.Len(t, args, 2)
	})
}

func TestSearchSQL(t *testing.T) {
	t.Run("no filters renders no where clause", func(t *testing.T) {
		sql, args, err := SearchSQL(model.SearchCondition{})

		require.NoError(t, err)
		assert.Contains(t, sql, `FROM "members" AS "m"`)
		assert.Contains(t, sql, `LEFT JOIN "teams" AS "t"`)
		assert.Contains(t, sql, `"t"."name" AS "team_name"`)
		assert.NotContains(t, sql, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("filters render placeholders", func(t *testing.T) {
		sql, args, err := SearchSQL(model.SearchCondition{TeamName: strPtr("teamB")})

		require.NoError(t, err)
		assert.Contains(t, sql, "WHERE")
		assert.Contains(t, sql, `"t"."name" = ?`)
		assert.NotContains(t, sql, "teamB")
		assert.Equal(t, []interface{}{"teamB"}, args)
	})
}

func TestConcurrentUse(t *testing.T) {
	cond := model.SearchCondition{Username: strPtr("member1"), AgeLoe: intPtr(30)}
	want, _, err := SearchSQL(cond)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _, err := SearchSQL(cond)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
