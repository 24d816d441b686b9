// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/users/auth"
)

func tokens(list auth.RefreshTokenList) []string {
	var out []string
	for _, entry := range list.Entries() {
		out = append(out, entry.Token)
	}
	return out
}

/*
TestRefreshTokenList_PushEvictsOldest verifies the list never exceeds five entries.
*/
func TestRefreshTokenList_PushEvictsOldest(t *testing.T) {
	var list auth.RefreshTokenList
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 7; i++ {
		list.Push(fmt.Sprintf("t%d", i), base.Add(time.Duration(i)*time.Minute))
		assert.LessOrEqual(t, list.Len(), 5)
	}

	assert.Equal(t, []string{"t3", "t4", "t5", "t6", "t7"}, tokens(list))
	assert.False(t, list.Contains("t1"))
	assert.True(t, list.Contains("t7"))
}

/*
TestRefreshTokenList_RemoveAndClear verifies exact-match removal.
*/
func TestRefreshTokenList_RemoveAndClear(t *testing.T) {
	list := auth.NewRefreshTokenList(
		auth.RefreshToken{Token: "a"},
		auth.RefreshToken{Token: "b"},
		auth.RefreshToken{Token: "c"},
	)

	assert.True(t, list.Remove("b"))
	assert.False(t, list.Remove("b"))
	assert.False(t, list.Remove("a-prefix"))
	assert.Equal(t, []string{"a", "c"}, tokens(list))

	list.Clear()
	assert.Equal(t, 0, list.Len())
	assert.False(t, list.Contains("a"))
}

/*
TestRefreshTokenList_JSON verifies storage encoding and capacity on load.
*/
func TestRefreshTokenList_JSON(t *testing.T) {
	var empty auth.RefreshTokenList
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	stored := `[{"token":"1"},{"token":"2"},{"token":"3"},{"token":"4"},{"token":"5"},{"token":"6"}]`
	var loaded auth.RefreshTokenList
	require.NoError(t, json.Unmarshal([]byte(stored), &loaded))
	assert.Equal(t, []string{"2", "3", "4", "5", "6"}, tokens(loaded))

	assert.Error(t, json.Unmarshal([]byte(`{"token":"x"}`), &loaded))
}

/*
TestRefreshTokenList_EntriesIsCopy verifies callers cannot mutate the list through Entries.
*/
func TestRefreshTokenList_EntriesIsCopy(t *testing.T) {
	list := auth.NewRefreshTokenList(auth.RefreshToken{Token: "a"})
	entries := list.Entries()
	entries[0].Token = "mutated"

	assert.True(t, list.Contains("a"))
}
