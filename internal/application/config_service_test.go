package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
)

func newConfigService(t *testing.T) *ConfigService {
	t.Helper()
	svc := NewConfigService(jsonstore.NewConfigRepository(newTestStore(t)), quietLogger())
	svc.Now = stepClock(t0.Add(24 * time.Hour))
	return svc
}

func TestConfigService_DefaultsOnFirstRead(t *testing.T) {
	svc := newConfigService(t)
	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Hello, welcome to my portfolio", cfg.HomePage.Greeting)
	require.Len(t, cfg.SocialNetworks, 1)
	assert.Equal(t, "LinkedIn", cfg.SocialNetworks[0].Name)
}

func TestConfigService_UpdateHomePageMerges(t *testing.T) {
	svc := newConfigService(t)
	before, err := svc.Get()
	require.NoError(t, err)

	home, err := svc.UpdateHomePage(entity.HomePagePatch{Greeting: ptr("Hi")})
	require.NoError(t, err)
	assert.Equal(t, "Hi", home.Greeting)
	assert.Equal(t, before.HomePage.ContactEmail, home.ContactEmail)
	assert.Equal(t, before.HomePage.MarkdownContent, home.MarkdownContent)
	assert.Equal(t, t0.Add(24*time.Hour), home.UpdatedAt)
}

func TestConfigService_SocialNetworkLifecycle(t *testing.T) {
	svc := newConfigService(t)

	gh, err := svc.AddSocialNetwork(SocialNetworkInput{Name: "GitHub", URL: "https://github.com/x", Icon: "github", Order: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, gh.ID)

	up, err := svc.UpdateSocialNetwork(gh.ID, entity.SocialNetworkPatch{URL: ptr("https://github.com/y")})
	require.NoError(t, err)
	assert.Equal(t, "GitHub", up.Name)
	assert.Equal(t, "https://github.com/y", up.URL)

	_, err = svc.UpdateSocialNetwork("nope", entity.SocialNetworkPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.DeleteSocialNetwork("1"))
	assert.ErrorIs(t, svc.DeleteSocialNetwork("1"), apperr.ErrNotFound)

	cfg, err := svc.Get()
	require.NoError(t, err)
	require.Len(t, cfg.SocialNetworks, 1)
	assert.Equal(t, gh.ID, cfg.SocialNetworks[0].ID)
}

func TestConfigService_ReplaceSocialNetworks(t *testing.T) {
	svc := newConfigService(t)

	list, err := svc.ReplaceSocialNetworks([]SocialNetworkInput{
		{ID: "keep", Name: "A", URL: "https://a", Order: 2},
		{Name: "B", URL: "https://b", Order: 1},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "keep", list[0].ID)
	assert.NotEmpty(t, list[1].ID)

	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "B", cfg.SocialNetworks[0].Name, "sorted by order on read")

	_, err = svc.ReplaceSocialNetworks([]SocialNetworkInput{{Name: "no url"}})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "socialNetworks[0].url", ve.Field)
}

func TestConfigService_HeroBackgrounds(t *testing.T) {
	svc := newConfigService(t)

	prev, err := svc.SetHomeHeroBackground("/uploads/hero-backgrounds/a.png")
	require.NoError(t, err)
	assert.True(t, prev.IsZero())

	prev, err = svc.SetHomeHeroBackground("/uploads/hero-backgrounds/b.png")
	require.NoError(t, err)
	assert.Equal(t, entity.AssetRef("/uploads/hero-backgrounds/a.png"), prev)

	_, err = svc.SetPortfolioHeroBackground("/uploads/hero-backgrounds/p.png")
	require.NoError(t, err)

	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, entity.AssetRef("/uploads/hero-backgrounds/b.png"), cfg.HomePage.HeroBackgroundImage)
	require.NotNil(t, cfg.PortfolioPage.UpdatedAt)

	prev, err = svc.ClearPortfolioHeroBackground()
	require.NoError(t, err)
	assert.Equal(t, entity.AssetRef("/uploads/hero-backgrounds/p.png"), prev)
	_, err = svc.ClearHomeHeroBackground()
	require.NoError(t, err)

	cfg, err = svc.Get()
	require.NoError(t, err)
	assert.True(t, cfg.HomePage.HeroBackgroundImage.IsZero())
	assert.True(t, cfg.PortfolioPage.HeroBackgroundImage.IsZero())
}
