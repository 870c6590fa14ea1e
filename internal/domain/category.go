package domain

type Category struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Image        string `json:"image,omitempty"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"productCount"`
}
