package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
