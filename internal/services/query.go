package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"passlink/internal/db"
	"passlink/internal/models"

	"gorm.io/gorm"
)

const DefaultLimit = 20

// ArticleFilter 文章列表的组合过滤条件，全部可选，AND 连接
type ArticleFilter struct {
	Author    string // 作者用户名
	Favorited string // 收藏者用户名
	Tag       string
	BBox      *BBox
}

// BBox 经纬度轴对齐矩形，单位为度
type BBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

// ParseBBox 解析 "west,south,east,north"，角点顺序颠倒时归一化
func ParseBBox(s string) (BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BBox{}, fmt.Errorf("bbox expects 4 comma-separated values, got %d", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BBox{}, fmt.Errorf("bbox value %q is not a number", p)
		}
		vals[i] = v
	}
	box := BBox{West: vals[0], South: vals[1], East: vals[2], North: vals[3]}
	if box.West > box.East {
		box.West, box.East = box.East, box.West
	}
	if box.South > box.North {
		box.South, box.North = box.North, box.South
	}
	return box, nil
}

// ParsePagination 解析 limit/offset，缺省 20/0，非数字或负数视为非法输入
func ParsePagination(limitStr, offsetStr string) (limit, offset int, err error) {
	limit, offset = DefaultLimit, 0
	if limitStr != "" {
		v, convErr := strconv.Atoi(limitStr)
		if convErr != nil || v < 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", limitStr)
		}
		limit = v
	}
	if offsetStr != "" {
		v, convErr := strconv.Atoi(offsetStr)
		if convErr != nil || v < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", offsetStr)
		}
		offset = v
	}
	return limit, offset, nil
}

// ListArticles 过滤 + 分页查询文章，返回分页前的总数。
// 排序固定 created_at DESC，id DESC 兜底保证分页确定性。
func ListArticles(f ArticleFilter, limit, offset int) ([]models.Article, int64, error) {
	query := db.DB.Model(&models.Article{})

	if f.Author != "" {
		var author models.User
		if err := db.DB.Where("username = ?", f.Author).First(&author).Error; err == nil {
			query = query.Where("articles.user_id = ?", author.ID)
		}
		// 作者不存在时不加约束，与参照行为一致
	}

	if f.Favorited != "" {
		var favoriter models.User
		if err := db.DB.Where("username = ?", f.Favorited).First(&favoriter).Error; err != nil {
			// 收藏者不存在 → 空结果，不是错误
			return []models.Article{}, 0, nil
		}
		query = query.Where("articles.id IN (?)",
			db.DB.Model(&models.Favorite{}).Select("article_id").Where("user_id = ?", favoriter.ID))
	}

	if f.Tag != "" {
		query = query.Where("articles.id IN (?)",
			db.DB.Model(&models.Tag{}).Select("article_id").Where("name = ?", f.Tag))
	}

	if f.BBox != nil {
		query = query.Where("longitude BETWEEN ? AND ? AND latitude BETWEEN ? AND ?",
			f.BBox.West, f.BBox.East, f.BBox.South, f.BBox.North)
	}

	return findPage(query, limit, offset)
}

// ListFeed 关注流：作者属于当前用户关注集合的文章
func ListFeed(userID uint, limit, offset int) ([]models.Article, int64, error) {
	query := db.DB.Model(&models.Article{}).
		Where("articles.user_id IN (?)",
			db.DB.Model(&models.Follow{}).Select("target_id").Where("user_id = ?", userID))
	return findPage(query, limit, offset)
}

func findPage(query *gorm.DB, limit, offset int) ([]models.Article, int64, error) {
	// Session 使查询可以在 Count 之后安全复用
	query = query.Session(&gorm.Session{})

	// 总数取分页前的匹配数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := query.Preload("User").Preload("Tags").
		Order("articles.created_at DESC, articles.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	return articles, total, err
}

// ListComments 文章评论，新的在前
func ListComments(articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

// ListPasswords 文章的口令条目，按评分降序；同分条目稳定保持创建顺序
func ListPasswords(articleID uint) ([]models.Password, error) {
	var passwords []models.Password
	if err := db.DB.Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Find(&passwords).Error; err != nil {
		return nil, err
	}

	if err := fillRatings(passwords); err != nil {
		return nil, err
	}

	sort.SliceStable(passwords, func(i, j int) bool {
		return passwords[i].Rating > passwords[j].Rating
	})
	return passwords, nil
}

// fillRatings 批量填充条目评分
func fillRatings(passwords []models.Password) error {
	if len(passwords) == 0 {
		return nil
	}

	ids := make([]uint, len(passwords))
	for i, p := range passwords {
		ids[i] = p.ID
	}

	type ratingResult struct {
		PasswordID uint
		Rating     int
	}
	var results []ratingResult
	if err := db.DB.Model(&models.PasswordVote{}).
		Select("password_id, COALESCE(SUM(value), 0) as rating").
		Where("password_id IN ?", ids).
		Group("password_id").
		Scan(&results).Error; err != nil {
		return err
	}

	ratingMap := make(map[uint]int)
	for _, r := range results {
		ratingMap[r.PasswordID] = r.Rating
	}
	for i := range passwords {
		passwords[i].Rating = ratingMap[passwords[i].ID]
	}
	return nil
}
