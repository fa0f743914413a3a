package services

import (
	"testing"

	"passlink/internal/db"
	"passlink/internal/models"
)

// Scenario: 重复收藏同一文章 → 计数仍为 1，收藏状态为 true
func TestFavoriteIdempotent(t *testing.T) {
	setupTestDB(t)
	x := createUser(t, "x")
	y := createUser(t, "y")
	article := createArticle(t, x, "foo")

	if err := Favorite(y.ID, article.ID); err != nil {
		t.Fatalf("first favorite failed: %v", err)
	}
	if err := Favorite(y.ID, article.ID); err != nil {
		t.Fatalf("second favorite failed: %v", err)
	}

	if got := favoritesCountOf(t, article.ID); got != 1 {
		t.Errorf("expected favoritesCount 1, got %d", got)
	}
	if !IsFavorited(y.ID, article.ID) {
		t.Error("expected article to be favorited by y")
	}
}

func TestUnfavoriteAbsentIsNoop(t *testing.T) {
	setupTestDB(t)
	x := createUser(t, "x")
	y := createUser(t, "y")
	article := createArticle(t, x, "bar")

	if err := Unfavorite(y.ID, article.ID); err != nil {
		t.Fatalf("unfavorite of absent favorite failed: %v", err)
	}
	if got := favoritesCountOf(t, article.ID); got != 0 {
		t.Errorf("expected favoritesCount 0, got %d", got)
	}
}

// 收藏数在每次变更后都等于 favorites 表里该文章的行数
func TestFavoritesCountTracksRelation(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author")
	article := createArticle(t, author, "tracked")
	users := []*models.User{
		createUser(t, "a"),
		createUser(t, "b"),
		createUser(t, "c"),
	}

	for _, u := range users {
		if err := Favorite(u.ID, article.ID); err != nil {
			t.Fatalf("favorite failed: %v", err)
		}
	}
	assertCountMatches(t, article.ID)
	if got := favoritesCountOf(t, article.ID); got != 3 {
		t.Errorf("expected favoritesCount 3, got %d", got)
	}

	if err := Unfavorite(users[1].ID, article.ID); err != nil {
		t.Fatalf("unfavorite failed: %v", err)
	}
	assertCountMatches(t, article.ID)
	if got := favoritesCountOf(t, article.ID); got != 2 {
		t.Errorf("expected favoritesCount 2, got %d", got)
	}
}

func TestFollowIdempotent(t *testing.T) {
	setupTestDB(t)
	follower := createUser(t, "follower")
	target := createUser(t, "target")

	if err := Follow(follower.ID, target.ID); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}
	if err := Follow(follower.ID, target.ID); err != nil {
		t.Fatalf("second follow failed: %v", err)
	}

	var count int64
	db.DB.Model(&models.Follow{}).
		Where("user_id = ? AND target_id = ?", follower.ID, target.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("expected 1 follow row, got %d", count)
	}
	if !IsFollowing(follower.ID, target.ID) {
		t.Error("expected follower to be following target")
	}

	if err := Unfollow(follower.ID, target.ID); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if IsFollowing(follower.ID, target.ID) {
		t.Error("expected follow to be removed")
	}
}

func assertCountMatches(t *testing.T, articleID uint) {
	t.Helper()
	var rows int64
	db.DB.Model(&models.Favorite{}).Where("article_id = ?", articleID).Count(&rows)
	if got := favoritesCountOf(t, articleID); int64(got) != rows {
		t.Fatalf("favoritesCount %d does not match %d favorite rows", got, rows)
	}
}
