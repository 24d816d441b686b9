// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/inkwell/internal/core/post"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// Fixtures is the document shape of data/seed.yaml.
type Fixtures struct {
	Users []UserFixture `yaml:"users"`
	Posts []PostFixture `yaml:"posts"`
}

// UserFixture is one seeded account. Key is only used to link posts.
type UserFixture struct {
	Key      string `yaml:"key"`
	FullName string `yaml:"fullName"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
	Avatar   string `yaml:"avatar"`
}

// PostFixture is one seeded post, owned by the user with Author as key.
type PostFixture struct {
	Author    string   `yaml:"author"`
	Title     string   `yaml:"title"`
	Body      string   `yaml:"body"`
	Category  string   `yaml:"category"`
	Tags      []string `yaml:"tags"`
	Published *bool    `yaml:"published"`
	ReadTime  int      `yaml:"readTime"`
	Likes     int      `yaml:"likes"`
	Views     int      `yaml:"views"`
}

// LoadFixtures decodes and checks a fixture document, filling post defaults.
func LoadFixtures(reader io.Reader) (*Fixtures, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var fixtures Fixtures
	if err := decoder.Decode(&fixtures); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode fixtures: %w", err)
	}

	keys := make(map[string]bool, len(fixtures.Users))
	for index, user := range fixtures.Users {
		switch {
		case user.Key == "" || user.Email == "" || user.Password == "":
			return nil, fmt.Errorf("seed: user #%d needs key, email and password", index+1)
		case keys[user.Key]:
			return nil, fmt.Errorf("seed: duplicate user key %q", user.Key)
		}
		if user.Role == "" {
			fixtures.Users[index].Role = string(sec.RoleUser)
		}
		if !sec.UserRole(fixtures.Users[index].Role).Valid() {
			return nil, fmt.Errorf("seed: user %q has unknown role %q", user.Key, user.Role)
		}
		keys[user.Key] = true
	}

	for index := range fixtures.Posts {
		item := &fixtures.Posts[index]
		if !keys[item.Author] {
			return nil, fmt.Errorf("seed: post %q references unknown author %q", item.Title, item.Author)
		}
		if item.Category == "" {
			item.Category = string(post.CategoryOther)
		}
		if !post.Category(item.Category).IsValid() {
			return nil, fmt.Errorf("seed: post %q has unknown category %q", item.Title, item.Category)
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		if item.Published == nil {
			published := true
			item.Published = &published
		}
		if item.ReadTime == 0 {
			item.ReadTime = 5
		}
	}

	return &fixtures, nil
}
