package entity

import "time"

// BlogPost shares the Project lifecycle; Published gates the public read paths.
type BlogPost struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	Content          string    `json:"content"`
	PublishDate      string    `json:"publishDate"`
	Published        bool      `json:"published"`
	Tags             []string  `json:"tags"`
	CoverImage       AssetRef  `json:"coverImage,omitempty"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (b *BlogPost) MapAssets(fn AssetMapper) {
	b.CoverImage = fn(b.CoverImage)
}

type BlogPostPatch struct {
	Title            *string
	ShortDescription *string
	Content          *string
	PublishDate      *string
	Published        *bool
	Tags             *[]string
	CoverImage       *AssetRef
	Order            *int
}

func (bp BlogPostPatch) Apply(b *BlogPost) {
	if bp.Title != nil {
		b.Title = *bp.Title
	}
	if bp.ShortDescription != nil {
		b.ShortDescription = *bp.ShortDescription
	}
	if bp.Content != nil {
		b.Content = *bp.Content
	}
	if bp.PublishDate != nil {
		b.PublishDate = *bp.PublishDate
	}
	if bp.Published != nil {
		b.Published = *bp.Published
	}
	if bp.Tags != nil {
		b.Tags = append([]string(nil), (*bp.Tags)...)
	}
	if bp.CoverImage != nil {
		b.CoverImage = *bp.CoverImage
	}
	if bp.Order != nil {
		b.Order = *bp.Order
	}
}
