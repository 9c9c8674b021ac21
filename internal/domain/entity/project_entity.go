package entity

import "time"

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

// Project is a portfolio entry.
type Project struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"shortDescription"`
	LongDescription  string     `json:"longDescription"`
	Category         string     `json:"category,omitempty"`
	Tags             []string   `json:"tags"`
	Thumbnail        AssetRef   `json:"thumbnail"`
	Visibility       Visibility `json:"visibility"`
	Order            int        `json:"order"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (p *Project) MapAssets(fn AssetMapper) {
	p.Thumbnail = fn(p.Thumbnail)
}

// ProjectPatch carries the fields of a partial update; nil means "leave as is".
type ProjectPatch struct {
	Title            *string
	ShortDescription *string
	LongDescription  *string
	Category         *string
	Tags             *[]string
	Thumbnail        *AssetRef
	Visibility       *Visibility
	Order            *int
}

// Apply shallow-merges the non-nil fields onto p.
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.ShortDescription != nil {
		p.ShortDescription = *pp.ShortDescription
	}
	if pp.LongDescription != nil {
		p.LongDescription = *pp.LongDescription
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Tags != nil {
		p.Tags = append([]string(nil), (*pp.Tags)...)
	}
	if pp.Thumbnail != nil {
		p.Thumbnail = *pp.Thumbnail
	}
	if pp.Visibility != nil {
		p.Visibility = *pp.Visibility
	}
	if pp.Order != nil {
		p.Order = *pp.Order
	}
}
