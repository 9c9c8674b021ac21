package entity

import "time"

// SiteConfig is the singleton configuration document. It is never deleted,
// only merged field by field.
type SiteConfig struct {
	HomePage       HomePage        `json:"homePage"`
	SocialNetworks []SocialNetwork `json:"socialNetworks"`
	PortfolioPage  PortfolioPage   `json:"portfolioPage"`
}

type HomePage struct {
	Greeting            string    `json:"greeting"`
	ShortDescription    string    `json:"shortDescription"`
	ContactEmail        string    `json:"contactEmail"`
	ContactPhone        string    `json:"contactPhone"`
	MarkdownContent     string    `json:"markdownContent"`
	HeroBackgroundImage AssetRef  `json:"heroBackgroundImage,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type PortfolioPage struct {
	HeroBackgroundImage AssetRef   `json:"heroBackgroundImage,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

type SocialNetwork struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

func (c *SiteConfig) MapAssets(fn AssetMapper) {
	c.HomePage.MapAssets(fn)
	c.PortfolioPage.MapAssets(fn)
}

func (h *HomePage) MapAssets(fn AssetMapper) {
	h.HeroBackgroundImage = fn(h.HeroBackgroundImage)
}

func (p *PortfolioPage) MapAssets(fn AssetMapper) {
	p.HeroBackgroundImage = fn(p.HeroBackgroundImage)
}

// Clone returns a deep copy so callers can normalize without touching the
// stored value.
func (c SiteConfig) Clone() SiteConfig {
	out := c
	out.SocialNetworks = append([]SocialNetwork(nil), c.SocialNetworks...)
	if c.PortfolioPage.UpdatedAt != nil {
		t := *c.PortfolioPage.UpdatedAt
		out.PortfolioPage.UpdatedAt = &t
	}
	return out
}

// DefaultSiteConfig is materialized the first time config.json is read.
func DefaultSiteConfig(now time.Time) SiteConfig {
	return SiteConfig{
		HomePage: HomePage{
			Greeting:         "Hello, welcome to my portfolio",
			ShortDescription: "",
			ContactEmail:     "contact@example.com",
			ContactPhone:     "+00 0 00 00 00 00",
			MarkdownContent:  "# About me\n\nDefault home page content in markdown.",
			UpdatedAt:        now,
		},
		SocialNetworks: []SocialNetwork{
			{ID: "1", Name: "LinkedIn", URL: "https://linkedin.com/", Icon: "linkedin", Order: 1},
		},
	}
}

type HomePagePatch struct {
	Greeting         *string
	ShortDescription *string
	ContactEmail     *string
	ContactPhone     *string
	MarkdownContent  *string
}

func (hp HomePagePatch) Apply(h *HomePage) {
	if hp.Greeting != nil {
		h.Greeting = *hp.Greeting
	}
	if hp.ShortDescription != nil {
		h.ShortDescription = *hp.ShortDescription
	}
	if hp.ContactEmail != nil {
		h.ContactEmail = *hp.ContactEmail
	}
	if hp.ContactPhone != nil {
		h.ContactPhone = *hp.ContactPhone
	}
	if hp.MarkdownContent != nil {
		h.MarkdownContent = *hp.MarkdownContent
	}
}

type SocialNetworkPatch struct {
	Name  *string
	URL   *string
	Icon  *string
	Order *int
}

func (sp SocialNetworkPatch) Apply(s *SocialNetwork) {
	if sp.Name != nil {
		s.Name = *sp.Name
	}
	if sp.URL != nil {
		s.URL = *sp.URL
	}
	if sp.Icon != nil {
		s.Icon = *sp.Icon
	}
	if sp.Order != nil {
		s.Order = *sp.Order
	}
}
