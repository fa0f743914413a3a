package models

// Tag 文章标签，一行一个 (article, name) 对
type Tag struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArticleID uint   `gorm:"not null;index;uniqueIndex:idx_article_tag" json:"article_id"`
	Name      string `gorm:"size:64;not null;index;uniqueIndex:idx_article_tag" json:"name"`
}
