package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-cms/config"
	"github.com/oksasatya/portfolio-cms/internal/container"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/storage"
	"github.com/oksasatya/portfolio-cms/internal/router"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
	"github.com/oksasatya/portfolio-cms/pkg/validation"
)

const (
	adminUser = "admin"
	adminPass = "correct-horse-battery"
)

type testServer struct {
	engine  *gin.Engine
	dataDir string
	upDir   string
	token   string
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	dataDir := filepath.Join(t.TempDir(), "data")
	upDir := filepath.Join(t.TempDir(), "uploads")
	cfg := &config.Config{
		AppName:         "portfolio-cms",
		Env:             "development",
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		AdminUsername:   adminUser,
		AdminPassword:   adminPass,
		LoginRateLimit:  100,
		LoginRateWindow: time.Minute,
		CVDownloadName:  "resume.pdf",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := helpers.NewDiscardLogger()
	store, err := jsonstore.Open(dataDir, logger)
	require.NoError(t, err)
	files, err := storage.NewLocal(upDir, "/uploads/")
	require.NoError(t, err)

	c := container.New(cfg, logger, store, nil, files)
	require.NoError(t, c.Bootstrap())

	engine := gin.New()
	reg := router.NewRegistry(engine)
	require.NoError(t, router.InitModules(reg, c))
	reg.RegisterAll()

	ts := &testServer{engine: engine, dataDir: dataDir, upDir: upDir}
	ts.token = ts.login(t)
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	req.Host = "localhost:3001"
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) json(t *testing.T, method, path string, body any, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	return ts.do(req)
}

type formFile struct {
	field, name string
	data        []byte
}

func (ts *testServer) multipart(t *testing.T, method, path string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token)
	return ts.do(req)
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	w := ts.json(t, http.MethodPost, "/api/auth/login", map[string]string{"username": adminUser, "password": adminPass}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &out)
	require.NotEmpty(t, out.Token)
	require.Equal(t, "admin", out.User.Role)
	return out.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type projectJSON struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Thumbnail  string   `json:"thumbnail"`
	Visibility string   `json:"visibility"`
	Order      int      `json:"order"`
}

func TestProjectLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title": "A", "shortDescription": "s", "longDescription": "l", "visibility": "public", "order": 0,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created projectJSON
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = ts.json(t, http.MethodGet, "/api/projects", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []projectJSON
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = ts.json(t, http.MethodGet, "/api/projects/"+created.ID, nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.json(t, http.MethodPut, "/api/admin/projects/"+created.ID, map[string]any{"visibility": "private"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated projectJSON
	decode(t, w, &updated)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "private", updated.Visibility)

	w = ts.json(t, http.MethodGet, "/api/projects", nil, false)
	decode(t, w, &list)
	assert.Empty(t, list)

	w = ts.json(t, http.MethodGet, "/api/projects/"+created.ID, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// admins still see private projects
	w = ts.json(t, http.MethodGet, "/api/admin/projects/"+created.ID, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.json(t, http.MethodDelete, "/api/admin/projects/"+created.ID, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.json(t, http.MethodDelete, "/api/admin/projects/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "only a title"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Success bool              `json:"success"`
		Details map[string]string `json:"details"`
	}
	decode(t, w, &body)
	assert.False(t, body.Success)
	assert.Contains(t, body.Details, "shortDescription")

	w = ts.json(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title": "A", "shortDescription": "s", "longDescription": "l", "tags": "not json",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRejectWithoutSideEffects(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title": "A", "shortDescription": "s", "longDescription": "l",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	path := filepath.Join(ts.dataDir, "projects.json")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("test-secret", time.Hour, "portfolio-cms")
	expired, _, err := jwt.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Generate("u1", adminUser, "admin")
	require.NoError(t, err)
	viewer, _, err := jwt.Generate("u2", "someone", "viewer")
	require.NoError(t, err)
	forged, _, err := helpers.NewJWTManager("other-secret", time.Hour, "portfolio-cms").Generate("u1", adminUser, "admin")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + forged, http.StatusUnauthorized},
		{"non-admin role", "Bearer " + viewer, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/projects",
				strings.NewReader(`{"title":"B","shortDescription":"s","longDescription":"l"}`))
			req.Header.Set("Content-Type", "application/json")
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := ts.do(req)
			assert.Equal(t, tc.want, w.Code)
		})
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodPost, "/api/auth/login", map[string]string{"username": adminUser, "password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ts.json(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.json(t, http.MethodGet, "/api/auth/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	decode(t, w, &me)
	assert.Equal(t, adminUser, me["username"])
}

func TestCorruptCollectionIsServerError(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, os.WriteFile(filepath.Join(ts.dataDir, "projects.json"), []byte("{not json"), 0o644))

	w := ts.json(t, http.MethodGet, "/api/projects", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// the broken file is left for an operator to inspect
	b, err := os.ReadFile(filepath.Join(ts.dataDir, "projects.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(b))
}

func TestMultipartProjectWithThumbnail(t *testing.T) {
	ts := newTestServer(t)

	w := ts.multipart(t, http.MethodPost, "/api/admin/projects", map[string]string{
		"title":            "Shot",
		"shortDescription": "s",
		"longDescription":  "l",
		"tags":             `["go"," web "]`,
		"order":            "3",
	}, formFile{field: "thumbnail", name: "thumb.png", data: pngBytes(t)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p projectJSON
	decode(t, w, &p)
	assert.Equal(t, []string{"go", "web"}, p.Tags)
	assert.Equal(t, 3, p.Order)
	assert.True(t, strings.HasPrefix(p.Thumbnail, "http://localhost:3001/uploads/thumbnail-"), p.Thumbnail)

	// stored relative, served absolute
	raw, err := os.ReadFile(filepath.Join(ts.dataDir, "projects.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"/uploads/thumbnail-`)

	name := strings.TrimPrefix(p.Thumbnail, "http://localhost:3001/uploads/")
	_, err = os.Stat(filepath.Join(ts.upDir, name))
	assert.NoError(t, err)
}

func TestMultipartRejectedUploadLeavesNoFile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.multipart(t, http.MethodPost, "/api/admin/projects", map[string]string{"title": "x"},
		formFile{field: "thumbnail", name: "thumb.png", data: pngBytes(t)})
	require.Equal(t, http.StatusBadRequest, w.Code)

	entries, err := os.ReadDir(ts.upDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBlogPublishedGate(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodPost, "/api/admin/blog", map[string]any{
		"title": "Draft", "content": "c", "published": false,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post struct {
		ID string `json:"id"`
	}
	decode(t, w, &post)

	w = ts.json(t, http.MethodGet, "/api/blog/"+post.ID, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.json(t, http.MethodPut, "/api/admin/blog/"+post.ID, map[string]any{"published": true}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.json(t, http.MethodGet, "/api/blog/"+post.ID, nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCVUploadDownloadDelete(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodGet, "/api/cv/download", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	w = ts.multipart(t, http.MethodPost, "/api/admin/cv/upload", nil, formFile{field: "file", name: "../me.pdf", data: pdf})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var up struct {
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
	}
	decode(t, w, &up)
	assert.Equal(t, "cv.pdf", up.Filename)
	assert.Equal(t, "me.pdf", up.OriginalName)

	w = ts.json(t, http.MethodGet, "/api/cv/download", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename=resume.pdf`)
	assert.Equal(t, pdf, w.Body.Bytes())

	w = ts.json(t, http.MethodGet, "/api/admin/dashboard/stats", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		ProjectsCount int  `json:"projectsCount"`
		HasCVFile     bool `json:"hasCVFile"`
	}
	decode(t, w, &stats)
	assert.True(t, stats.HasCVFile)

	w = ts.json(t, http.MethodDelete, "/api/admin/cv", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.json(t, http.MethodDelete, "/api/admin/cv", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCVRejectsNonPDF(t *testing.T) {
	ts := newTestServer(t)

	w := ts.multipart(t, http.MethodPost, "/api/admin/cv/upload", nil, formFile{field: "file", name: "me.pdf", data: pngBytes(t)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type socialJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

func TestSocialNetworks(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodPost, "/api/admin/config/social", map[string]any{
		"name": "GitHub", "url": "https://github.com/me", "icon": "github", "order": 5,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added socialJSON
	decode(t, w, &added)
	require.NotEmpty(t, added.ID)

	w = ts.json(t, http.MethodPut, "/api/admin/config/social/"+added.ID, map[string]any{"order": -1}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.json(t, http.MethodGet, "/api/config", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var cfg struct {
		SocialNetworks []socialJSON `json:"socialNetworks"`
	}
	decode(t, w, &cfg)
	require.NotEmpty(t, cfg.SocialNetworks)
	assert.Equal(t, added.ID, cfg.SocialNetworks[0].ID)

	w = ts.json(t, http.MethodDelete, "/api/admin/config/social/"+added.ID, nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.json(t, http.MethodDelete, "/api/admin/config/social/"+added.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHomeHeroBackground(t *testing.T) {
	ts := newTestServer(t)

	w := ts.multipart(t, http.MethodPost, "/api/admin/config/homepage/hero-background", nil,
		formFile{field: "heroBackground", name: "bg.png", data: pngBytes(t)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		URL string `json:"url"`
	}
	decode(t, w, &out)
	assert.Contains(t, out.URL, "/uploads/hero-backgrounds/hero-bg-")

	w = ts.json(t, http.MethodDelete, "/api/admin/config/homepage/hero-background", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.json(t, http.MethodGet, "/api/config", nil, false)
	var cfg struct {
		HomePage struct {
			HeroBackgroundImage string `json:"heroBackgroundImage"`
		} `json:"homePage"`
	}
	decode(t, w, &cfg)
	assert.Empty(t, cfg.HomePage.HeroBackgroundImage)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(t, http.MethodGet, "/api/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "development", body["env"])
}

func TestDebugVars(t *testing.T) {
	ts := newTestServer(t)
	w := ts.json(t, http.MethodGet, "/api/debug/vars", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts = newTestServer(t, func(c *config.Config) { c.DebugMetricsEnabled = true })
	ts.json(t, http.MethodGet, "/api/health", nil, false)
	w = ts.json(t, http.MethodGet, "/api/debug/vars", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestLoginLimitIgnoresForwardedFor(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) { c.LoginRateLimit = 3 })

	// newTestServer already spent one attempt
	blocked := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin","password":"wrong-password"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "198.51.100."+strconv.Itoa(i+1))
		if w := ts.do(req); w.Code == http.StatusTooManyRequests {
			blocked++
		}
	}
	assert.Equal(t, 18, blocked)
}

func TestThumbnailReplacementRemovesOldFile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.multipart(t, http.MethodPost, "/api/admin/projects", map[string]string{
		"title": "Shot", "shortDescription": "s", "longDescription": "l",
	}, formFile{field: "thumbnail", name: "a.png", data: pngBytes(t)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first projectJSON
	decode(t, w, &first)
	oldName := strings.TrimPrefix(first.Thumbnail, "http://localhost:3001/uploads/")

	w = ts.multipart(t, http.MethodPut, "/api/admin/projects/"+first.ID, nil,
		formFile{field: "thumbnail", name: "b.png", data: pngBytes(t)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var second projectJSON
	decode(t, w, &second)
	newName := strings.TrimPrefix(second.Thumbnail, "http://localhost:3001/uploads/")
	require.NotEqual(t, oldName, newName)

	_, err := os.Stat(filepath.Join(ts.upDir, oldName))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(ts.upDir, newName))
	assert.NoError(t, err)
}
