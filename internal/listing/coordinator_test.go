package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatorStartsIdle(t *testing.T) {
	var c Coordinator
	assert.Equal(t, ModeIdle, c.Mode())
	assert.Equal(t, Query{Kind: QueryNone}, c.Query())
	assert.Empty(t, c.Query().Expression("name"))
}

func TestCoordinatorKeywordThenFilterIsExclusive(t *testing.T) {
	var c Coordinator

	assert.True(t, c.SubmitKeyword("an"))
	assert.Equal(t, ModeBasic, c.Mode())
	assert.Equal(t, "name~'*an*'", c.Query().Expression("name"))

	assert.True(t, c.SubmitFilter("status:'Vacant'"))
	assert.Equal(t, ModeAdvanced, c.Mode())
	assert.Empty(t, c.Keyword())
	assert.Equal(t, "status:'Vacant'", c.Query().Expression("name"))

	assert.True(t, c.SubmitKeyword("lan"))
	assert.Equal(t, ModeBasic, c.Mode())
	assert.Empty(t, c.Expression())
}

func TestCoordinatorResubmitIsNoChange(t *testing.T) {
	var c Coordinator
	assert.True(t, c.SubmitKeyword("an"))
	assert.False(t, c.SubmitKeyword(" an "))

	assert.True(t, c.SubmitFilter("cic:'1'"))
	assert.False(t, c.SubmitFilter("cic:'1'"))
}

func TestCoordinatorBlankInputs(t *testing.T) {
	var c Coordinator
	assert.False(t, c.SubmitKeyword("   "))
	assert.Equal(t, ModeIdle, c.Mode())

	assert.True(t, c.SubmitKeyword("an"))
	assert.True(t, c.SubmitKeyword(""))
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestCoordinatorEmptyFilterClears(t *testing.T) {
	var c Coordinator
	assert.True(t, c.SubmitFilter("status:'Vacant'"))
	assert.True(t, c.SubmitFilter(""))
	assert.Equal(t, ModeIdle, c.Mode())
	assert.False(t, c.ClearFilter())
}

func TestClearFilterKeepsKeyword(t *testing.T) {
	var c Coordinator
	c.SubmitKeyword("an")
	assert.False(t, c.ClearFilter())
	assert.Equal(t, "an", c.Keyword())
	assert.Equal(t, ModeBasic, c.Mode())
}
