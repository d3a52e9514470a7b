package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// InsertRace makes inserts into one table lose against a concurrent writer.
type InsertRace struct {
	// Inserts counts the insert attempts into the table, the winner's excluded.
	Inserts int

	table     string
	winner    interface{}
	lost      bool
	committed bool
	writing   bool
}

// LoseFirstInsert fails the first insert into table with gorm.ErrDuplicatedKey, as if
// another writer had inserted the same unique key first. The winner row is written
// before the next read of table, inside whatever transaction that read runs in.
// With a nil winner every insert into table fails.
func LoseFirstInsert(t *testing.T, db *gorm.DB, table string, winner interface{}) *InsertRace {
	t.Helper()

	race := &InsertRace{table: table, winner: winner}

	err := db.Callback().Create().Before("gorm:create").Register("dbtest:lose_insert", race.loseInsert)
	require.NoError(t, err, "failed to register create callback")

	err = db.Callback().Query().Before("gorm:query").Register("dbtest:commit_winner", race.commitWinner)
	require.NoError(t, err, "failed to register query callback")

	return race
}

func (r *InsertRace) loseInsert(tx *gorm.DB) {
	if tx.Statement.Table != r.table || r.writing {
		return
	}

	r.Inserts++

	if r.winner == nil || !r.lost {
		r.lost = true
		_ = tx.AddError(gorm.ErrDuplicatedKey)
	}
}

func (r *InsertRace) commitWinner(tx *gorm.DB) {
	if tx.Statement.Table != r.table || r.winner == nil || !r.lost || r.committed {
		return
	}

	r.committed = true
	r.writing = true

	defer func() { r.writing = false }()

	if err := tx.Session(&gorm.Session{NewDB: true}).Create(r.winner).Error; err != nil {
		_ = tx.AddError(err)
	}
}
