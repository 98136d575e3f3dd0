package dto

type SubscribeDTO struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

// DigestItemDTO 简报中的单篇文章
type DigestItemDTO struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	URL     string `json:"url"`
}
