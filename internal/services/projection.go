package services

import (
	"time"

	"passlink/internal/db"
	"passlink/internal/models"
	"passlink/internal/utils"
)

// 投影层：实体 + 观察者的个人关系 → 响应结构，只读不写。
// 未登录观察者的所有关系布尔值一律为 false。

type ProfileView struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	BodyHTML       string      `json:"bodyHtml"`
	TagList        []string    `json:"tagList"`
	Longitude      float64     `json:"longitude"`
	Latitude       float64     `json:"latitude"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         ProfileView `json:"author"`
}

type CommentView struct {
	ID        uint        `json:"id"`
	Body      string      `json:"body"`
	BodyHTML  string      `json:"bodyHtml"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    ProfileView `json:"author"`
}

type PasswordView struct {
	ID         uint        `json:"id"`
	Value      string      `json:"value"`
	Rating     int         `json:"rating"`
	ViewerVote int         `json:"viewerVote"` // 1 赞成、-1 反对、0 中立
	CreatedAt  time.Time   `json:"createdAt"`
	Author     ProfileView `json:"author"`
}

func NewProfileView(u *models.User, viewer *models.User) ProfileView {
	view := ProfileView{Username: u.Username, Bio: u.Bio, Image: u.Image}
	if viewer != nil {
		view.Following = IsFollowing(viewer.ID, u.ID)
	}
	return view
}

func NewArticleView(a *models.Article, viewer *models.User) ArticleView {
	view := ArticleView{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		BodyHTML:       utils.RenderMarkdown(a.Body),
		TagList:        a.TagList(),
		Longitude:      a.Longitude,
		Latitude:       a.Latitude,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		FavoritesCount: a.FavoritesCount,
		Author:         NewProfileView(&a.User, viewer),
	}
	if viewer != nil {
		view.Favorited = IsFavorited(viewer.ID, a.ID)
	}
	return view
}

// NewArticleViews 列表投影，批量取收藏/关注状态避免逐行查询
func NewArticleViews(articles []models.Article, viewer *models.User) []ArticleView {
	views := make([]ArticleView, len(articles))
	if len(articles) == 0 {
		return views
	}

	var favorited, following map[uint]bool
	if viewer != nil {
		articleIDs := make([]uint, len(articles))
		authorIDs := make([]uint, len(articles))
		for i, a := range articles {
			articleIDs[i] = a.ID
			authorIDs[i] = a.UserID
		}
		favorited = favoritedSet(viewer.ID, articleIDs)
		following = followingSet(viewer.ID, authorIDs)
	}

	for i := range articles {
		a := &articles[i]
		views[i] = ArticleView{
			Slug:           a.Slug,
			Title:          a.Title,
			Description:    a.Description,
			Body:           a.Body,
			BodyHTML:       utils.RenderMarkdown(a.Body),
			TagList:        a.TagList(),
			Longitude:      a.Longitude,
			Latitude:       a.Latitude,
			CreatedAt:      a.CreatedAt,
			UpdatedAt:      a.UpdatedAt,
			Favorited:      favorited[a.ID],
			FavoritesCount: a.FavoritesCount,
			Author: ProfileView{
				Username:  a.User.Username,
				Bio:       a.User.Bio,
				Image:     a.User.Image,
				Following: following[a.UserID],
			},
		}
	}
	return views
}

func NewCommentView(c *models.Comment, viewer *models.User) CommentView {
	return CommentView{
		ID:        c.ID,
		Body:      c.Body,
		BodyHTML:  utils.RenderMarkdown(c.Body),
		CreatedAt: c.CreatedAt,
		Author:    NewProfileView(&c.User, viewer),
	}
}

func NewCommentViews(comments []models.Comment, viewer *models.User) []CommentView {
	views := make([]CommentView, len(comments))
	var following map[uint]bool
	if viewer != nil && len(comments) > 0 {
		authorIDs := make([]uint, len(comments))
		for i, c := range comments {
			authorIDs[i] = c.UserID
		}
		following = followingSet(viewer.ID, authorIDs)
	}
	for i := range comments {
		c := &comments[i]
		views[i] = CommentView{
			ID:        c.ID,
			Body:      c.Body,
			BodyHTML:  utils.RenderMarkdown(c.Body),
			CreatedAt: c.CreatedAt,
			Author: ProfileView{
				Username:  c.User.Username,
				Bio:       c.User.Bio,
				Image:     c.User.Image,
				Following: following[c.UserID],
			},
		}
	}
	return views
}

func NewPasswordView(p *models.Password, viewer *models.User) PasswordView {
	view := PasswordView{
		ID:        p.ID,
		Value:     p.Value,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		Author:    NewProfileView(&p.User, viewer),
	}
	if viewer != nil {
		view.ViewerVote = VoteState(viewer.ID, p.ID)
	}
	return view
}

// NewPasswordViews 保持传入顺序（查询层已按评分排好）
func NewPasswordViews(passwords []models.Password, viewer *models.User) []PasswordView {
	views := make([]PasswordView, len(passwords))
	var following map[uint]bool
	var votes map[uint]int
	if viewer != nil && len(passwords) > 0 {
		authorIDs := make([]uint, len(passwords))
		passwordIDs := make([]uint, len(passwords))
		for i, p := range passwords {
			authorIDs[i] = p.UserID
			passwordIDs[i] = p.ID
		}
		following = followingSet(viewer.ID, authorIDs)
		votes = voteStates(viewer.ID, passwordIDs)
	}
	for i := range passwords {
		p := &passwords[i]
		views[i] = PasswordView{
			ID:         p.ID,
			Value:      p.Value,
			Rating:     p.Rating,
			ViewerVote: votes[p.ID],
			CreatedAt:  p.CreatedAt,
			Author: ProfileView{
				Username:  p.User.Username,
				Bio:       p.User.Bio,
				Image:     p.User.Image,
				Following: following[p.UserID],
			},
		}
	}
	return views
}

func favoritedSet(viewerID uint, articleIDs []uint) map[uint]bool {
	var favs []models.Favorite
	db.DB.Where("user_id = ? AND article_id IN ?", viewerID, articleIDs).Find(&favs)
	set := make(map[uint]bool, len(favs))
	for _, f := range favs {
		set[f.ArticleID] = true
	}
	return set
}

func followingSet(viewerID uint, targetIDs []uint) map[uint]bool {
	var follows []models.Follow
	db.DB.Where("user_id = ? AND target_id IN ?", viewerID, targetIDs).Find(&follows)
	set := make(map[uint]bool, len(follows))
	for _, f := range follows {
		set[f.TargetID] = true
	}
	return set
}

func voteStates(viewerID uint, passwordIDs []uint) map[uint]int {
	var votes []models.PasswordVote
	db.DB.Where("user_id = ? AND password_id IN ?", viewerID, passwordIDs).Find(&votes)
	states := make(map[uint]int, len(votes))
	for _, v := range votes {
		states[v.PasswordID] = v.Value
	}
	return states
}
