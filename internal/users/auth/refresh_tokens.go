// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// RefreshToken is one live session of an account.
type RefreshToken struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
}

// RefreshTokenList is the ordered, fixed-capacity set of an account's sessions.
//
// Entries are kept oldest first. Pushing beyond [constants.MaxRefreshTokens]
// evicts from the front, so the newest sessions always survive.
// The zero value is an empty list ready to use.
type RefreshTokenList struct {
	entries []RefreshToken
}

// NewRefreshTokenList builds a list from stored entries, keeping only the newest ones.
func NewRefreshTokenList(entries ...RefreshToken) RefreshTokenList {
	list := RefreshTokenList{entries: slices.Clone(entries)}
	list.trim()
	return list
}

// Push appends a session and evicts the oldest ones over capacity.
func (list *RefreshTokenList) Push(token string, createdAt time.Time) {
	list.entries = append(list.entries, RefreshToken{Token: token, CreatedAt: createdAt})
	list.trim()
}

// Remove drops every entry equal to token and reports whether anything was removed.
func (list *RefreshTokenList) Remove(token string) bool {
	before := len(list.entries)
	list.entries = slices.DeleteFunc(list.entries, func(entry RefreshToken) bool {
		return entry.Token == token
	})
	return len(list.entries) != before
}

// Clear drops all sessions.
func (list *RefreshTokenList) Clear() {
	list.entries = nil
}

// Contains reports whether token is an exact member of the list.
func (list RefreshTokenList) Contains(token string) bool {
	return slices.ContainsFunc(list.entries, func(entry RefreshToken) bool {
		return entry.Token == token
	})
}

// Len returns the number of live sessions.
func (list RefreshTokenList) Len() int {
	return len(list.entries)
}

// Entries returns a copy of the sessions, oldest first.
func (list RefreshTokenList) Entries() []RefreshToken {
	return slices.Clone(list.entries)
}

func (list *RefreshTokenList) trim() {
	if overflow := len(list.entries) - constants.MaxRefreshTokens; overflow > 0 {
		list.entries = slices.Delete(list.entries, 0, overflow)
	}
}

// MarshalJSON encodes the list as a plain array (never null) for JSONB storage.
func (list RefreshTokenList) MarshalJSON() ([]byte, error) {
	if list.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(list.entries)
}

// UnmarshalJSON decodes a stored array, enforcing the capacity on the way in.
func (list *RefreshTokenList) UnmarshalJSON(data []byte) error {
	var entries []RefreshToken
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*list = NewRefreshTokenList(entries...)
	return nil
}
