// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed wipes the database and loads the sample accounts and posts.
//
// Usage:
//
//	go run ./cmd/seed [-file data/seed.yaml]
//
// It reads the same environment as the API server. Every seeded account
// uses the password given in the fixture file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/migration"
	pgstore "github.com/taibuivan/inkwell/internal/platform/postgres"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

func main() {
	file := flag.String("file", "data/seed.yaml", "fixture document to load")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "inkwell-seed"))

	if err := run(*file, log); err != nil {
		log.Error("seed_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(file string, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		return errors.New("seed: refusing to wipe a production database")
	}

	reader, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("seed: open fixtures: %w", err)
	}
	defer reader.Close()

	fixtures, err := LoadFixtures(reader)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// ── 1. Fresh schema ───────────────────────────────────────────────────
	if err := migration.Reset(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	// ── 2. Rows ───────────────────────────────────────────────────────────
	err = pgstore.InTx(ctx, pool, func(tx pgx.Tx) error {
		userIDs, err := insertUsers(ctx, tx, fixtures.Users)
		if err != nil {
			return err
		}
		return insertPosts(ctx, tx, fixtures.Posts, userIDs)
	})
	if err != nil {
		return err
	}

	log.Info("seed_completed",
		slog.Int("users", len(fixtures.Users)),
		slog.Int("posts", len(fixtures.Posts)),
	)
	for _, user := range fixtures.Users {
		log.Info("seed_account", slog.String("email", strings.ToLower(user.Email)), slog.String("role", user.Role))
	}
	return nil
}

// insertUsers stores the accounts and returns fixture key to id.
func insertUsers(ctx context.Context, tx pgx.Tx, users []UserFixture) (map[string]string, error) {
	account := schema.UserAccount
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.Table, account.ID, account.FullName, account.Email, account.Password, account.Role, account.Bio, account.AvatarURL,
	)

	ids := make(map[string]string, len(users))
	for _, user := range users {
		hash, err := sec.HashPassword(user.Password)
		if err != nil {
			return nil, fmt.Errorf("seed: hash password for %q: %w", user.Key, err)
		}

		id := uuid.New()
		if _, err := tx.Exec(ctx, query, id, user.FullName, strings.ToLower(strings.TrimSpace(user.Email)), hash, user.Role, user.Bio, user.Avatar); err != nil {
			return nil, fmt.Errorf("seed: insert user %q: %w", user.Key, err)
		}
		ids[user.Key] = id
	}
	return ids, nil
}

// insertPosts stores the posts in document order, oldest first.
func insertPosts(ctx context.Context, tx pgx.Tx, posts []PostFixture, userIDs map[string]string) error {
	content := schema.ContentPost
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		content.Table, content.ID, content.Title, content.Body, content.AuthorID, content.Category,
		content.Tags, content.Published, content.ReadTime, content.Likes, content.Views,
		content.CreatedAt, content.UpdatedAt,
	)

	start := time.Now().Add(-time.Duration(len(posts)) * time.Hour)
	for index, item := range posts {
		createdAt := start.Add(time.Duration(index) * time.Hour)
		_, err := tx.Exec(ctx, query,
			uuid.New(), item.Title, item.Body, userIDs[item.Author], item.Category,
			item.Tags, *item.Published, item.ReadTime, item.Likes, item.Views, createdAt,
		)
		if err != nil {
			return fmt.Errorf("seed: insert post %q: %w", item.Title, err)
		}
	}
	return nil
}
