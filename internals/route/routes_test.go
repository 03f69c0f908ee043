package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"certihub_backend/internals/constants"
	database "certihub_backend/internals/databases"
	roleModel "certihub_backend/internals/features/users/roles/model"
	userModel "certihub_backend/internals/features/users/users/model"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"
	"certihub_backend/internals/helpers/blob"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Title      string          `json:"title"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type harness struct {
	t     *testing.T
	app   *fiber.App
	store *blob.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	role := roleModel.RoleModel{Name: "Administrator", Kind: constants.RoleAdministrator}
	require.NoError(t, db.Create(&role).Error)
	hash, err := helperAuth.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&userModel.UserModel{FullName: "Admin", Email: "admin@example.com", PasswordHash: hash, RoleID: role.ID}).Error)

	store := blob.NewMemoryStore("https://cdn.test")
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	SetupRoutes(app, Deps{
		DB:      db,
		Tokens:  helperAuth.NewTokenService("route-secret", time.Hour),
		Revoker: helperAuth.NewDBRevoker(db),
		Blob:    blob.NewGateway(store, ""),
	})
	return &harness{t: t, app: app, store: store}
}

func (h *harness) send(method, path, token string, body io.Reader, contentType string) (int, envelope) {
	h.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	var env envelope
	require.NoError(h.t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (h *harness) json(method, path, token string, payload any) (int, envelope) {
	h.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(h.t, err)
		body = bytes.NewReader(raw)
	}
	return h.send(method, path, token, body, fiber.MIMEApplicationJSON)
}

type filePart struct {
	field, name, contentType string
	data                     []byte
}

func (h *harness) multipart(method, path, token string, fields map[string]string, file *filePart) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(h.t, w.WriteField(k, v))
	}
	if file != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.name))
		hdr.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(hdr)
		require.NoError(h.t, err)
		_, err = part.Write(file.data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())
	return h.send(method, path, token, &buf, w.FormDataContentType())
}

func (h *harness) login(path, email, password string) string {
	h.t.Helper()
	status, env := h.json("POST", path, "", map[string]string{"email": email, "password": password})
	require.Equal(h.t, 200, status, env.Message)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(h.t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func decodeID(t *testing.T, env envelope) uint {
	t.Helper()
	var v struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotZero(t, v.ID)
	return v.ID
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	return squarePNG(t, 4)
}

func squarePNG(t *testing.T, side int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, side, side))))
	return buf.Bytes()
}

func TestHealthAndUnknownRoute(t *testing.T) {
	h := newHarness(t)

	status, env := h.send("GET", "/api/nowhere", "", nil, "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Route not found", env.Title)

	status, _ = h.send("GET", "/api/certifications", "", nil, "")
	assert.Equal(t, 200, status)

	status, env = h.send("GET", "/api/companies", "", nil, "")
	assert.Equal(t, 401, status)
	assert.Equal(t, constants.ErrNoTokenProvided, env.Message)
}

func TestCertificationJourney(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")

	// company
	status, env := h.json("POST", "/api/companies", admin, map[string]any{"name": "Acme", "type": "Manufacturing"})
	require.Equal(t, 201, status, env.Message)
	companyID := decodeID(t, env)

	status, _ = h.json("POST", "/api/companies", admin, map[string]any{"name": "ACME", "type": "Retail"})
	assert.Equal(t, 400, status)

	// certification with photo
	status, env = h.multipart("POST", "/api/certifications", admin,
		map[string]string{"name": "ISO 9001", "company_id": fmt.Sprint(companyID)},
		&filePart{field: "certification_photo", name: "cover.png", contentType: "image/png", data: tinyPNG(t)})
	require.Equal(t, 201, status, env.Message)
	certID := decodeID(t, env)
	photoKey := fmt.Sprintf("images/iso_9001_%d.jpg", certID)
	assert.Equal(t, []string{photoKey}, h.store.Keys())

	status, _ = h.multipart("POST", "/api/certifications", admin,
		map[string]string{"name": "Ghost", "company_id": "999"}, nil)
	assert.Equal(t, 400, status)

	// client and assignment
	status, env = h.json("POST", "/api/admin/clients", admin, map[string]any{
		"full_name": "Rina", "email": "rina@example.com", "password": "secret1",
	})
	require.Equal(t, 201, status, env.Message)
	clientID := decodeID(t, env)

	status, _ = h.json("POST", "/api/admin/clients", admin, map[string]any{
		"full_name": "Rina Two", "email": "rina@example.com", "password": "secret1",
	})
	assert.Equal(t, 400, status)

	assignPath := fmt.Sprintf("/api/certifications/%d/clients", certID)
	status, _ = h.json("POST", assignPath, admin, map[string]any{"client_id": clientID})
	assert.Equal(t, 201, status)
	status, _ = h.json("POST", assignPath, admin, map[string]any{"client_id": clientID})
	assert.Equal(t, 200, status)

	// video with a file
	status, env = h.multipart("POST", "/api/videos", admin,
		map[string]string{"name": "Intro", "certification_id": fmt.Sprint(certID)},
		&filePart{field: "video_file", name: "intro.mp4", contentType: "video/mp4", data: []byte("mp4")})
	require.Equal(t, 201, status, env.Message)
	videoID := decodeID(t, env)

	status, env = h.multipart("POST", "/api/documents", admin,
		map[string]string{"name": "Slides", "video_id": fmt.Sprint(videoID)},
		&filePart{field: "document", name: "slides.pdf", contentType: "application/pdf", data: []byte("%PDF")})
	require.Equal(t, 201, status, env.Message)

	// the client sees it
	client := h.login("/api/auth/login/client", "rina@example.com", "secret1")
	mediaPath := fmt.Sprintf("/api/clients/my-certification/%d/videos-documents", certID)
	status, env = h.send("GET", mediaPath, client, nil, "")
	require.Equal(t, 200, status, env.Message)
	var media struct {
		Total  int `json:"total"`
		Videos []struct {
			Name      string `json:"name"`
			Documents []struct {
				Name string `json:"name"`
			} `json:"documents"`
		} `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &media))
	require.Equal(t, 1, media.Total)
	require.Len(t, media.Videos[0].Documents, 1)
	assert.Equal(t, "Slides", media.Videos[0].Documents[0].Name)

	// staff-only surfaces stay closed to clients
	status, _ = h.send("GET", "/api/admin/clients", client, nil, "")
	assert.Equal(t, 403, status)
	status, _ = h.send("GET", "/api/clients/my-profile", admin, nil, "")
	assert.Equal(t, 403, status)

	// switching the assignment off hides the media
	status, _ = h.json("PATCH", fmt.Sprintf("%s/%d/toggle-active", assignPath, clientID), admin, nil)
	require.Equal(t, 200, status)
	status, env = h.send("GET", mediaPath, client, nil, "")
	assert.Equal(t, 403, status)
	assert.Equal(t, "Access inactive", env.Title)

	// certification cannot go while it has videos
	status, _ = h.send("DELETE", fmt.Sprintf("/api/certifications/%d", certID), admin, nil, "")
	assert.Equal(t, 400, status)

	status, _ = h.send("DELETE", fmt.Sprintf("/api/videos/%d", videoID), admin, nil, "")
	require.Equal(t, 200, status)
	assert.Equal(t, []string{photoKey}, h.store.Keys())

	status, _ = h.send("DELETE", fmt.Sprintf("/api/certifications/%d", certID), admin, nil, "")
	require.Equal(t, 200, status)
	assert.Empty(t, h.store.Keys())
}

func TestClientLoginInactiveAndLogout(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")

	status, env := h.json("POST", "/api/admin/clients", admin, map[string]any{
		"full_name": "Budi", "email": "budi@example.com", "password": "secret1",
	})
	require.Equal(t, 201, status, env.Message)
	clientID := decodeID(t, env)

	client := h.login("/api/auth/login/client", "budi@example.com", "secret1")
	status, _ = h.send("GET", "/api/auth/me", client, nil, "")
	assert.Equal(t, 200, status)

	// deactivating locks out the live token and new logins
	status, _ = h.send("DELETE", fmt.Sprintf("/api/admin/clients/%d", clientID), admin, nil, "")
	require.Equal(t, 200, status)

	status, env = h.send("GET", "/api/clients/my-profile", client, nil, "")
	assert.Equal(t, 401, status)
	assert.Equal(t, "Account inactive", env.Title)

	status, env = h.json("POST", "/api/auth/login/client", "", map[string]string{"email": "budi@example.com", "password": "secret1"})
	assert.Equal(t, 401, status)
	assert.Equal(t, constants.ErrAccountInactive, env.Message)

	// logout revokes the staff token
	status, _ = h.send("POST", "/api/auth/logout", admin, nil, "")
	require.Equal(t, 200, status)
	status, _ = h.send("GET", "/api/auth/me", admin, nil, "")
	assert.Equal(t, 401, status)
}

func TestValidationErrorsListFields(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")

	status, env := h.json("POST", "/api/companies", admin, map[string]any{"name": ""})
	assert.Equal(t, 400, status)
	assert.True(t, strings.Contains(env.Message, "name"), env.Message)
	assert.True(t, strings.Contains(env.Message, "type"), env.Message)
}

// seedVideo creates a company, a certification and a video with a stored
// file, returning the certification and video ids.
func (h *harness) seedVideo(admin string) (uint, uint) {
	h.t.Helper()
	status, env := h.json("POST", "/api/companies", admin, map[string]any{"name": "Acme", "type": "Manufacturing"})
	require.Equal(h.t, 201, status, env.Message)
	companyID := decodeID(h.t, env)

	status, env = h.multipart("POST", "/api/certifications", admin,
		map[string]string{"name": "ISO 9001", "company_id": fmt.Sprint(companyID)}, nil)
	require.Equal(h.t, 201, status, env.Message)
	certID := decodeID(h.t, env)

	status, env = h.multipart("POST", "/api/videos", admin,
		map[string]string{"name": "Intro", "certification_id": fmt.Sprint(certID)},
		&filePart{field: "video_file", name: "intro.mp4", contentType: "video/mp4", data: []byte("v1")})
	require.Equal(h.t, 201, status, env.Message)
	return certID, decodeID(h.t, env)
}

func TestVideoUpdateKeepsStoredFileForExternalPath(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")
	_, videoID := h.seedVideo(admin)
	key := fmt.Sprintf("videos/intro_%d.mp4", videoID)
	require.Equal(t, []string{key}, h.store.Keys())

	external := "https://youtube.example/watch?v=abc"
	status, env := h.multipart("PUT", fmt.Sprintf("/api/videos/%d", videoID), admin,
		map[string]string{"video_path": external}, nil)
	require.Equal(t, 200, status, env.Message)

	var v struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, external, v.URL)
	assert.Equal(t, []string{key}, h.store.Keys())
}

func TestVideoUpdateReplacesFile(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")
	_, videoID := h.seedVideo(admin)
	path := fmt.Sprintf("/api/videos/%d", videoID)
	oldKey := fmt.Sprintf("videos/intro_%d.mp4", videoID)

	// same name: the object is overwritten in place
	status, env := h.multipart("PUT", path, admin, nil,
		&filePart{field: "video_file", name: "intro.mp4", contentType: "video/mp4", data: []byte("v2")})
	require.Equal(t, 200, status, env.Message)
	assert.Equal(t, []string{oldKey}, h.store.Keys())
	data, _, ok := h.store.Get(oldKey)
	require.True(t, ok)
	assert.Equal(t, "v2", string(data))

	// new name: the file moves and the old object goes
	status, env = h.multipart("PUT", path, admin, map[string]string{"name": "Intro Advanced"},
		&filePart{field: "video_file", name: "intro.mp4", contentType: "video/mp4", data: []byte("v3")})
	require.Equal(t, 200, status, env.Message)
	assert.Equal(t, []string{fmt.Sprintf("videos/intro_advanced_%d.mp4", videoID)}, h.store.Keys())

	// a missing certification is rejected before anything is uploaded
	status, _ = h.multipart("PUT", path, admin, map[string]string{"name": "Other", "certification_id": "999"},
		&filePart{field: "video_file", name: "other.mp4", contentType: "video/mp4", data: []byte("v4")})
	assert.Equal(t, 400, status)
	assert.Equal(t, []string{fmt.Sprintf("videos/intro_advanced_%d.mp4", videoID)}, h.store.Keys())
}

func TestDocumentUpdateReplacesFile(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")
	certID, videoID := h.seedVideo(admin)

	status, env := h.multipart("POST", "/api/documents", admin,
		map[string]string{"name": "Slides", "video_id": fmt.Sprint(videoID)},
		&filePart{field: "document", name: "slides.pdf", contentType: "application/pdf", data: []byte("%PDF")})
	require.Equal(t, 201, status, env.Message)
	docID := decodeID(t, env)
	dir := fmt.Sprintf("documents/intro_%d/", videoID)
	videoKey := fmt.Sprintf("videos/intro_%d.mp4", videoID)
	assert.ElementsMatch(t, []string{fmt.Sprintf("%sslides_%d.pdf", dir, docID), videoKey}, h.store.Keys())

	status, env = h.multipart("PUT", fmt.Sprintf("/api/documents/%d", docID), admin, nil,
		&filePart{field: "document", name: "slides.txt", contentType: "text/plain", data: []byte("notes")})
	require.Equal(t, 200, status, env.Message)
	assert.ElementsMatch(t, []string{fmt.Sprintf("%sslides_%d.txt", dir, docID), videoKey}, h.store.Keys())

	status, env = h.send("GET", fmt.Sprintf("/api/videos/%d/documents", videoID), admin, nil, "")
	require.Equal(t, 200, status, env.Message)
	assert.Contains(t, string(env.Data), fmt.Sprintf("slides_%d.txt", docID))
	status, env = h.send("GET", fmt.Sprintf("/api/certifications/%d/videos", certID), admin, nil, "")
	require.Equal(t, 200, status, env.Message)
	assert.Contains(t, string(env.Data), `"name":"Intro"`)

	status, _ = h.multipart("PUT", fmt.Sprintf("/api/documents/%d", docID), admin,
		map[string]string{"video_id": "999"},
		&filePart{field: "document", name: "slides.pdf", contentType: "application/pdf", data: []byte("%PDF")})
	assert.Equal(t, 400, status)
	assert.ElementsMatch(t, []string{fmt.Sprintf("%sslides_%d.txt", dir, docID), videoKey}, h.store.Keys())
}

func TestCertificationUpdateWithUnknownCompanyKeepsPhoto(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")

	status, env := h.json("POST", "/api/companies", admin, map[string]any{"name": "Acme", "type": "Manufacturing"})
	require.Equal(t, 201, status, env.Message)
	companyID := decodeID(t, env)

	status, env = h.multipart("POST", "/api/certifications", admin,
		map[string]string{"name": "ISO 9001", "company_id": fmt.Sprint(companyID)},
		&filePart{field: "certification_photo", name: "cover.png", contentType: "image/png", data: tinyPNG(t)})
	require.Equal(t, 201, status, env.Message)
	certID := decodeID(t, env)
	key := fmt.Sprintf("images/iso_9001_%d.jpg", certID)
	before, _, ok := h.store.Get(key)
	require.True(t, ok)

	status, _ = h.multipart("PUT", fmt.Sprintf("/api/certifications/%d", certID), admin,
		map[string]string{"company_id": "999"},
		&filePart{field: "certification_photo", name: "other.png", contentType: "image/png", data: squarePNG(t, 32)})
	assert.Equal(t, 400, status)

	after, _, ok := h.store.Get(key)
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{key}, h.store.Keys())
}

func TestDeleteEndpointsToggleBack(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/login", "admin@example.com", "admin123")

	status, env := h.json("POST", "/api/companies", admin, map[string]any{"name": "Acme", "type": "Manufacturing"})
	require.Equal(t, 201, status, env.Message)
	companyID := decodeID(t, env)

	var company struct {
		Active bool `json:"active"`
	}
	for _, want := range []bool{false, true} {
		status, env = h.send("DELETE", fmt.Sprintf("/api/companies/%d", companyID), admin, nil, "")
		require.Equal(t, 200, status, env.Message)
		require.NoError(t, json.Unmarshal(env.Data, &company))
		assert.Equal(t, want, company.Active)
	}

	status, env = h.json("POST", "/api/admin/clients", admin, map[string]any{
		"full_name": "Rina", "email": "rina@example.com", "password": "secret1",
	})
	require.Equal(t, 201, status, env.Message)
	clientID := decodeID(t, env)

	var client struct {
		Status string `json:"status"`
	}
	for _, want := range []constants.ClientStatus{constants.ClientInactive, constants.ClientActive} {
		status, env = h.send("DELETE", fmt.Sprintf("/api/admin/clients/%d", clientID), admin, nil, "")
		require.Equal(t, 200, status, env.Message)
		require.NoError(t, json.Unmarshal(env.Data, &client))
		assert.Equal(t, string(want), client.Status)
	}
}
