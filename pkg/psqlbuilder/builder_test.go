package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("slots").
		Where(squirrel.Eq{"instructor_id": 7}).
		Where(squirrel.GtOrEq{"start_time": "a"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM slots WHERE instructor_id = $1 AND start_time >= $2", query)
	assert.Equal(t, []interface{}{7, "a"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("slots").
		Set("reservation_id", int64(3)).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": int64(1), "version": 0}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE slots SET reservation_id = $1, version = version + 1 WHERE id = $2 AND version = $3", query)
	assert.Equal(t, []interface{}{int64(3), int64(1), 0}, args)
}
