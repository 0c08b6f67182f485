package sqlclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Single(t *testing.T) {
	stmts, err := Parse("SELECT 1")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, DQL, stmts[0].Class)
	assert.Equal(t, ReadOnly, RequiredAccessForStatements(stmts))

	assert.False(t, CheckAccess(RequiredAccessForStatements(stmts), Anonymous))
	assert.True(t, CheckAccess(RequiredAccessForStatements(stmts), ReadOnly))
}

func TestParse_Compound(t *testing.T) {
	stmts, err := Parse("INSERT INTO x (a,b,c) VALUES (1,2,3); SELECT * FROM x")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, DML, stmts[0].Class)
	assert.Equal(t, DQL, stmts[1].Class)
	assert.Equal(t, ReadWrite, RequiredAccessForStatements(stmts))
}

func TestParse_TrailingSemicolon(t *testing.T) {
	stmts, err := Parse("SELECT 1;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
}

func TestParse_EmptyString(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}

func TestParse_StraySeparator(t *testing.T) {
	_, err := Parse(";")
	require.Error(t, err)
}

func TestParse_TrailingKeyword(t *testing.T) {
	_, err := Parse("SELECT 1; UPDATE")
	require.Error(t, err)
}

func TestParse_UnrecognizedKind(t *testing.T) {
	_, err := Parse("VACUUM")
	require.Error(t, err)
}

func TestParse_SemicolonInsideStringLiteral(t *testing.T) {
	stmts, err := Parse("INSERT INTO x (a) VALUES ('a;b')")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, DML, stmts[0].Class)
}

func TestCreateTableIsAdmin(t *testing.T) {
	stmts, err := Parse("CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	assert.Equal(t, Admin, RequiredAccessForStatements(stmts))
}

func TestOffendingStatement(t *testing.T) {
	stmts, err := Parse("SELECT 1; DROP TABLE x")
	require.NoError(t, err)

	idx, found := OffendingStatement(stmts, ReadOnly)
	require.True(t, found)
	assert.Equal(t, 1, idx)

	_, found = OffendingStatement(stmts, Admin)
	assert.False(t, found)
}
