package domain

import "time"

type Review struct {
	ID          string    `json:"id"`
	ProductSlug string    `json:"productSlug"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	IsApproved  bool      `json:"isApproved"`
	CreatedAt   time.Time `json:"createdAt"`
}
