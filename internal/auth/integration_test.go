package auth

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/hirehub/internal/config"
	"github.com/mrlokans/hirehub/internal/entities"
)

type recordedAudit struct {
	userID string
	action entities.AuditAction
	reason string
}

type fakeAudit struct {
	mu     sync.Mutex
	events []recordedAudit
}

func (a *fakeAudit) LogAuth(userID string, action entities.AuditAction, _, _ string, reason string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, recordedAudit{userID: userID, action: action, reason: reason})
}

type fakeUploads struct {
	profile  *string
	released int
}

func (u *fakeUploads) Refs(*gin.Context) (*string, *string) { return u.profile, nil }
func (u *fakeUploads) Release(*gin.Context)                 { u.released++ }

type authFixture struct {
	router  *gin.Engine
	store   *memStore
	audit   *fakeAudit
	uploads *fakeUploads
}

func setupAuthRouter(t *testing.T) *authFixture {
	t.Helper()

	store := newMemStore()
	tokens := newTestIssuer(t, 7*24*time.Hour)
	cookie := NewSessionCookie(config.Auth{CookieName: "token"}, tokens.TTL())
	guard := NewGuard(cookie, tokens, store)
	service := NewService(store, NewBcryptHasher(bcrypt.MinCost), tokens)
	audit := &fakeAudit{}
	uploads := &fakeUploads{}

	router := gin.New()
	NewAuthController(service, cookie, guard, uploads, audit).RegisterRoutes(router)

	return &authFixture{router: router, store: store, audit: audit, uploads: uploads}
}

func (f *authFixture) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestAuthFlow(t *testing.T) {
	f := setupAuthRouter(t)
	signup := map[string]string{
		"name": "A", "email": "a@x.com", "password": "p1",
		"city": "C", "state": "S", "country": "K",
	}

	rr := f.do(t, http.MethodPost, "/signup", signup)
	require.Equal(t, http.StatusCreated, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotContains(t, rr.Body.String(), "p1")

	rr = f.do(t, http.MethodPost, "/signup", signup)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, MsgDuplicateEmail, decode(t, rr)["message"])

	rr = f.do(t, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, MsgInvalidCredentials, decode(t, rr)["message"])
	assert.Nil(t, sessionCookie(rr))

	rr = f.do(t, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "p1"})
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "worker", body["userType"])
	assert.Contains(t, body, "profileImage")
	assert.NotContains(t, body, "passwordHash")
	session := sessionCookie(rr)
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)

	rr = f.do(t, http.MethodGet, "/user/me", nil, session)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "PasswordHash")
	assert.NotContains(t, rr.Body.String(), "$2a$")

	rr = f.do(t, http.MethodPost, "/logout", nil, session)
	require.Equal(t, http.StatusOK, rr.Code)
	cleared := sessionCookie(rr)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)

	rr = f.do(t, http.MethodGet, "/user/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, MsgUnauthenticated, decode(t, rr)["message"])
}

func TestLogin_EnumerationResistant(t *testing.T) {
	f := setupAuthRouter(t)
	rr := f.do(t, http.MethodPost, "/signup", map[string]string{
		"name": "A", "email": "a@x.com", "password": "p1",
		"city": "C", "state": "S", "country": "K",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	wrongPassword := f.do(t, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "nope"})
	unknownEmail := f.do(t, http.MethodPost, "/login", map[string]string{"email": "ghost@x.com", "password": "nope"})

	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_MissingCredentials(t *testing.T) {
	f := setupAuthRouter(t)

	for _, body := range []any{
		map[string]string{"email": "a@x.com"},
		map[string]string{"password": "p1"},
		nil,
	} {
		rr := f.do(t, http.MethodPost, "/login", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, MsgMissingCredentials, decode(t, rr)["message"])
	}
}

func TestSignup_MissingFieldsReleasesUploads(t *testing.T) {
	f := setupAuthRouter(t)

	rr := f.do(t, http.MethodPost, "/signup", map[string]string{"name": "A", "email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, MsgValidation, body["message"])
	assert.Equal(t, 1, f.uploads.released)
}

func TestSignup_StoreFaultHidesDetails(t *testing.T) {
	f := setupAuthRouter(t)
	f.store.setFault(ErrStorage)

	rr := f.do(t, http.MethodPost, "/signup", map[string]string{
		"name": "A", "email": "a@x.com", "password": "p1",
		"city": "C", "state": "S", "country": "K",
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error occurred during signup", decode(t, rr)["message"])
	assert.Equal(t, 1, f.uploads.released)
}

func TestSignup_Multipart(t *testing.T) {
	f := setupAuthRouter(t)
	profile := "/uploads/profile_images/me-1.png"
	f.uploads.profile = &profile

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name": "Ravi", "email": "ravi@x.com", "password": "secret",
		"city": "Pune", "state": "MH", "country": "IN",
		"userType": "client", "latitude": "18.52", "longitude": "73.85",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/signup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	stored := f.store.get("ravi@x.com")
	require.NotNil(t, stored)
	assert.Equal(t, entities.UserTypeClient, stored.UserType)
	require.NotNil(t, stored.ProfileImage)
	assert.Equal(t, profile, *stored.ProfileImage)
	require.NotNil(t, stored.Location.Coordinates.Longitude)
	assert.InDelta(t, 73.85, *stored.Location.Coordinates.Longitude, 1e-9)
	assert.Zero(t, f.uploads.released)
}

func TestSignup_JSONCoordinates(t *testing.T) {
	f := setupAuthRouter(t)

	rr := f.do(t, http.MethodPost, "/signup", map[string]any{
		"name": "A", "email": "a@x.com", "password": "p1",
		"city": "C", "state": "S", "country": "K",
		"coordinates": map[string]float64{"latitude": 1.5, "longitude": 2.5},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	stored := f.store.get("a@x.com")
	require.NotNil(t, stored.Location.Coordinates.Latitude)
	assert.InDelta(t, 1.5, *stored.Location.Coordinates.Latitude, 1e-9)
}

func TestLogout_WithoutSessionIsIdempotent(t *testing.T) {
	f := setupAuthRouter(t)

	for i := 0; i < 2; i++ {
		rr := f.do(t, http.MethodPost, "/logout", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Logged out successfully", decode(t, rr)["message"])
		require.NotNil(t, sessionCookie(rr))
	}
}

func TestAuthController_AuditTrail(t *testing.T) {
	f := setupAuthRouter(t)

	f.do(t, http.MethodPost, "/signup", map[string]string{
		"name": "A", "email": "a@x.com", "password": "p1",
		"city": "C", "state": "S", "country": "K",
	})
	f.do(t, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "bad"})
	login := f.do(t, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "p1"})
	f.do(t, http.MethodPost, "/logout", nil, sessionCookie(login))

	f.audit.mu.Lock()
	defer f.audit.mu.Unlock()
	require.Len(t, f.audit.events, 4)

	assert.Equal(t, entities.AuditActionSignup, f.audit.events[0].action)
	assert.NotEmpty(t, f.audit.events[0].userID)
	assert.Equal(t, MsgInvalidCredentials, f.audit.events[1].reason)
	assert.Equal(t, entities.AuditActionLogin, f.audit.events[2].action)
	assert.Empty(t, f.audit.events[2].reason)
	assert.Equal(t, entities.AuditActionLogout, f.audit.events[3].action)
	assert.Equal(t, f.audit.events[0].userID, f.audit.events[3].userID)

	for _, e := range f.audit.events {
		assert.False(t, strings.Contains(e.reason, "p1"))
	}
}
