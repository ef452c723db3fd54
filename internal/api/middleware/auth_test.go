package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-manager/internal/dto"
	"account-manager/internal/model"
	"account-manager/pkg/constants"
	"account-manager/pkg/responses"
)

type fakeAuthService struct {
	user *model.User
	err  error
}

func (f *fakeAuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, nil
}

func (f *fakeAuthService) ResolveUser(token string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func setupRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		user := CurrentUser(c)
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(constants.HeaderAuthorization, authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := &model.User{Username: "SKT1234567"}
	r := setupRouter(&fakeAuthService{user: user})

	w := doRequest(r, "Bearer some-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SKT1234567", w.Body.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupRouter(&fakeAuthService{user: &model.User{}})

	w := doRequest(r, "")
	assert.Equal(t, "Bearer", w.Header().Get(constants.HeaderWWWAuthenticate))

	var resp responses.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, responses.CodeUnauthorized, resp.Code)
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	r := setupRouter(&fakeAuthService{user: &model.User{}})

	w := doRequest(r, "Basic dXNlcjpwdw==")
	assert.Equal(t, "Bearer", w.Header().Get(constants.HeaderWWWAuthenticate))

	var resp responses.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, responses.CodeUnauthorized, resp.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := setupRouter(&fakeAuthService{err: responses.ErrInvalidToken})

	w := doRequest(r, "Bearer bad-token")
	assert.Equal(t, "Bearer", w.Header().Get(constants.HeaderWWWAuthenticate))

	var resp responses.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, responses.CodeUnauthorized, resp.Code)
}
