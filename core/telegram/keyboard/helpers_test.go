package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	rows := Chunk(items, 2)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
	assert.Equal(t, []string{"e"}, rows[2])
}

func TestChunkSingleColumn(t *testing.T) {
	rows := Chunk([]string{"a", "b"}, 0)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a"}, rows[0])
}

func TestChunkEmpty(t *testing.T) {
	assert.Empty(t, Chunk(nil, 3))
}

func TestReplyGrid(t *testing.T) {
	markup := ReplyGrid([]string{"32GB", "64GB", "128GB", "256GB"}, 3)
	require.Len(t, markup.ReplyKeyboard, 2)
	assert.Len(t, markup.ReplyKeyboard[0], 3)
	assert.Len(t, markup.ReplyKeyboard[1], 1)
	assert.True(t, markup.ResizeKeyboard)
	assert.Equal(t, "32GB", markup.ReplyKeyboard[0][0].Text)
}

func TestInlineColumn(t *testing.T) {
	markup := InlineColumn(
		InlineBtn{Text: "✅ Confirm", Unique: "confirm", Data: "ORD-1"},
		InlineBtn{Text: "❌ Out of Stock", Unique: "out", Data: "ORD-1"},
	)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "✅ Confirm", markup.InlineKeyboard[0][0].Text)
}
