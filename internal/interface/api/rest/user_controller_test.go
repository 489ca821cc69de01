package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-resource-api/internal/application/ports"
	domain "user-resource-api/internal/domain/user"
	jwtSvc "user-resource-api/internal/infrastructure/jwt"
	"user-resource-api/internal/interface/api/rest/dto/user"
)

const testSecret = "test-secret"

type FakeUserService struct {
	CreateUserFunc      func(ctx context.Context, in domain.CreateInput) (*domain.User, error)
	FindActiveUsersFunc func(ctx context.Context) (domain.Users, error)
	SearchUsersFunc     func(ctx context.Context, p domain.SearchParams) (domain.Users, error)
	BulkCreateUsersFunc func(ctx context.Context, in []domain.CreateInput) domain.BulkResult
	FindUserByIDFunc    func(ctx context.Context, id domain.ID) (*domain.User, error)
	FindByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	UserExistsFunc      func(ctx context.Context, id domain.ID) (bool, error)
	UpdateUserFunc      func(ctx context.Context, id domain.ID, in domain.UpdateInput) error
	DeleteUserFunc      func(ctx context.Context, id domain.ID) error
}

var errNotUsed = errors.New("not used")

func (f *FakeUserService) CreateUser(ctx context.Context, in domain.CreateInput) (*domain.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateUserFunc(ctx, in)
}
func (f *FakeUserService) FindActiveUsers(ctx context.Context) (domain.Users, error) {
	if f.FindActiveUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.FindActiveUsersFunc(ctx)
}
func (f *FakeUserService) SearchUsers(ctx context.Context, p domain.SearchParams) (domain.Users, error) {
	if f.SearchUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.SearchUsersFunc(ctx, p)
}
func (f *FakeUserService) BulkCreateUsers(ctx context.Context, in []domain.CreateInput) domain.BulkResult {
	if f.BulkCreateUsersFunc == nil {
		return domain.BulkResult{FailedCount: len(in)}
	}
	return f.BulkCreateUsersFunc(ctx, in)
}
func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserService) UserExists(ctx context.Context, id domain.ID) (bool, error) {
	if f.UserExistsFunc == nil {
		return false, errNotUsed
	}
	return f.UserExistsFunc(ctx, id)
}
func (f *FakeUserService) UpdateUser(ctx context.Context, id domain.ID, in domain.UpdateInput) error {
	if f.UpdateUserFunc == nil {
		return errNotUsed
	}
	return f.UpdateUserFunc(ctx, id, in)
}
func (f *FakeUserService) DeleteUser(ctx context.Context, id domain.ID) error {
	if f.DeleteUserFunc == nil {
		return errNotUsed
	}
	return f.DeleteUserFunc(ctx, id)
}

func setupRouter(t *testing.T, us ports.UserService) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	j := jwtSvc.New(testSecret)
	NewUserController(r, us, zap.NewNop(), j)

	return r, j
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func bearer(t *testing.T, j *jwtSvc.Service, userID, role string) map[string]string {
	t.Helper()
	tok, err := j.GenerateJWT(userID, role, time.Minute)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func someDomainUser(id domain.ID) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           id,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		Cellphone:    "5551234",
		Status:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	return msg
}

func existing(ids ...domain.ID) func(ctx context.Context, id domain.ID) (bool, error) {
	return func(_ context.Context, id domain.ID) (bool, error) {
		for _, known := range ids {
			if known == id {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestUserController_CreateUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		createErr  error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "200 created",
			body:       user.CreateRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"},
			wantStatus: http.StatusOK,
			wantMsg:    "User created successfully with ID: 7",
		},
		{
			name:       "400 malformed json",
			body:       "{bad json",
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidBody,
		},
		{
			name:       "400 invalid name",
			body:       user.CreateRequest{Name: "Ana1", Email: "a@example.com", Password: "pw"},
			createErr:  domain.ErrInvalidName,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidName,
		},
		{
			name:       "400 email exists",
			body:       user.CreateRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"},
			createErr:  domain.ErrEmailAlreadyExists,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgEmailExists,
		},
		{
			name:       "500 storage error",
			body:       user.CreateRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"},
			createErr:  errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    msgInternalError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got domain.CreateInput
			us := &FakeUserService{
				CreateUserFunc: func(_ context.Context, in domain.CreateInput) (*domain.User, error) {
					got = in
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return someDomainUser(7), nil
				},
			}
			r, _ := setupRouter(t, us)

			rr := doReq(t, r, http.MethodPost, RouteUsers+RouteCreate, tt.body, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, rr))

			if req, ok := tt.body.(user.CreateRequest); ok {
				assert.Equal(t, req.Email, got.Email)
				assert.Equal(t, req.Password, got.Password)
			}
		})
	}
}

func TestUserController_GetAllUsersHandler(t *testing.T) {
	t.Run("200 lists active users without password hash", func(t *testing.T) {
		us := &FakeUserService{
			FindActiveUsersFunc: func(context.Context) (domain.Users, error) {
				return domain.Users{someDomainUser(1), someDomainUser(2)}, nil
			},
		}
		r, _ := setupRouter(t, us)

		rr := doReq(t, r, http.MethodGet, RouteUsers+RouteAllUsers, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "password")

		var resp user.Users
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, int64(1), resp[0].ID)
		assert.Equal(t, int64(2), resp[1].ID)
	})

	t.Run("200 empty list", func(t *testing.T) {
		us := &FakeUserService{
			FindActiveUsersFunc: func(context.Context) (domain.Users, error) { return domain.Users{}, nil },
		}
		r, _ := setupRouter(t, us)

		rr := doReq(t, r, http.MethodGet, RouteUsers+RouteAllUsers, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("500 storage error", func(t *testing.T) {
		us := &FakeUserService{}
		r, _ := setupRouter(t, us)

		rr := doReq(t, r, http.MethodGet, RouteUsers+RouteAllUsers, nil, nil)
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, msgInternalError, decodeMessage(t, rr))
	})
}

func TestUserController_FindUsersHandler(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name       string
		query      string
		searchErr  error
		wantParams domain.SearchParams
		wantStatus int
	}{
		{
			name:       "no params",
			query:      "",
			wantParams: domain.SearchParams{},
			wantStatus: http.StatusOK,
		},
		{
			name:  "all params passed through",
			query: "?eliminados=true&nombre=an&fechaInicioAntes=2024-01-01&fechaInicioDespues=2023-01-01&status=false",
			wantParams: domain.SearchParams{
				Eliminados:         strPtr("true"),
				Nombre:             "an",
				FechaInicioAntes:   "2024-01-01",
				FechaInicioDespues: "2023-01-01",
				Status:             strPtr("false"),
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty eliminados is present",
			query:      "?eliminados=",
			wantParams: domain.SearchParams{Eliminados: strPtr("")},
			wantStatus: http.StatusOK,
		},
		{
			name:       "500 on search failure",
			query:      "?fechaInicioAntes=yesterday",
			searchErr:  fmt.Errorf("%w: bad date", domain.ErrSearchFailed),
			wantParams: domain.SearchParams{FechaInicioAntes: "yesterday"},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got domain.SearchParams
			us := &FakeUserService{
				SearchUsersFunc: func(_ context.Context, p domain.SearchParams) (domain.Users, error) {
					got = p
					if tt.searchErr != nil {
						return nil, tt.searchErr
					}
					return domain.Users{someDomainUser(3)}, nil
				},
			}
			r, _ := setupRouter(t, us)

			rr := doReq(t, r, http.MethodGet, RouteUsers+RouteFindUsers+tt.query, nil, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantParams, got)
		})
	}
}

func TestUserController_BulkCreateHandler(t *testing.T) {
	t.Run("200 with tally", func(t *testing.T) {
		var n int
		us := &FakeUserService{
			BulkCreateUsersFunc: func(_ context.Context, in []domain.CreateInput) domain.BulkResult {
				n = len(in)
				return domain.BulkResult{SuccessfulCount: 2, FailedCount: 1}
			},
		}
		r, _ := setupRouter(t, us)

		body := map[string]any{"users": []user.CreateRequest{
			{Name: "Ana", Email: "a@example.com", Password: "pw"},
			{Name: "Bob", Email: "b@example.com", Password: "pw"},
			{Name: "Ana", Email: "a@example.com", Password: "pw"},
		}}
		rr := doReq(t, r, http.MethodPost, RouteUsers+RouteBulkCreate, body, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 3, n)
		assert.JSONEq(t, `{"successfulCount":2,"failedCount":1}`, rr.Body.String())
	})

	t.Run("mistyped item fails alone", func(t *testing.T) {
		var got []domain.CreateInput
		us := &FakeUserService{
			BulkCreateUsersFunc: func(_ context.Context, in []domain.CreateInput) domain.BulkResult {
				got = in
				return domain.BulkResult{SuccessfulCount: len(in)}
			},
		}
		r, _ := setupRouter(t, us)

		body := `{"users":[{"name":5,"email":"x@example.com"},{"name":"Bob","email":"b@example.com","password":"pw"},"oops"]}`
		rr := doReq(t, r, http.MethodPost, RouteUsers+RouteBulkCreate, body, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"successfulCount":1,"failedCount":2}`, rr.Body.String())
		require.Len(t, got, 1)
		assert.Equal(t, "Bob", got[0].Name)
	})

	t.Run("400 malformed json", func(t *testing.T) {
		r, _ := setupRouter(t, &FakeUserService{})

		rr := doReq(t, r, http.MethodPost, RouteUsers+RouteBulkCreate, "[1,2", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, msgInvalidBody, decodeMessage(t, rr))
	})
}

func TestUserController_GetUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		auth       func(j *jwtSvc.Service) map[string]string
		findUser   func(ctx context.Context, id domain.ID) (*domain.User, error)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "400 non numeric id",
			path:       "/abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"id must be a number"}`,
		},
		{
			name:       "404 unknown id before auth",
			path:       "/99",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"user not found"}`,
		},
		{
			name:       "401 missing token",
			path:       "/5",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"missing Authorization header"}`,
		},
		{
			name: "403 other user",
			path: "/5",
			auth: func(j *jwtSvc.Service) map[string]string {
				return bearer(t, j, "6", "user")
			},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"forbidden"}`,
		},
		{
			name: "200 own record",
			path: "/5",
			auth: func(j *jwtSvc.Service) map[string]string {
				return bearer(t, j, "5", "user")
			},
			findUser: func(_ context.Context, id domain.ID) (*domain.User, error) {
				return someDomainUser(id), nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "200 null for soft deleted user",
			path: "/5",
			auth: func(j *jwtSvc.Service) map[string]string {
				return bearer(t, j, "1", jwtSvc.RoleAdmin)
			},
			findUser: func(context.Context, domain.ID) (*domain.User, error) {
				return nil, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `null`,
		},
		{
			name: "500 storage error",
			path: "/5",
			auth: func(j *jwtSvc.Service) map[string]string {
				return bearer(t, j, "5", "user")
			},
			findUser: func(context.Context, domain.ID) (*domain.User, error) {
				return nil, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"` + msgInternalError + `"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{
				UserExistsFunc:   existing(5),
				FindUserByIDFunc: tt.findUser,
			}
			r, j := setupRouter(t, us)

			var headers map[string]string
			if tt.auth != nil {
				headers = tt.auth(j)
			}
			rr := doReq(t, r, http.MethodGet, RouteUsers+tt.path, nil, headers)
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestUserController_UpdateUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		updateErr  error
		wantStatus int
		wantMsg    string
		wantInput  domain.UpdateInput
	}{
		{
			name:       "200 partial update",
			body:       map[string]any{"name": "Bea"},
			wantStatus: http.StatusOK,
			wantMsg:    msgUserUpdated,
			wantInput:  domain.UpdateInput{Name: func() *string { s := "Bea"; return &s }()},
		},
		{
			name:       "200 empty body",
			body:       nil,
			wantStatus: http.StatusOK,
			wantMsg:    msgUserUpdated,
		},
		{
			name:       "400 malformed json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidBody,
		},
		{
			name:       "400 invalid name",
			body:       map[string]any{"name": "B3a"},
			updateErr:  domain.ErrInvalidName,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidName,
		},
		{
			name:       "404 deleted between check and update",
			body:       map[string]any{"cellphone": "1"},
			updateErr:  domain.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    msgUserNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotID    domain.ID
				gotInput domain.UpdateInput
			)
			us := &FakeUserService{
				UserExistsFunc: existing(5),
				UpdateUserFunc: func(_ context.Context, id domain.ID, in domain.UpdateInput) error {
					gotID, gotInput = id, in
					return tt.updateErr
				},
			}
			r, j := setupRouter(t, us)

			rr := doReq(t, r, http.MethodPut, RouteUsers+"/5", tt.body, bearer(t, j, "5", "user"))
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, rr))

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, domain.ID(5), gotID)
				assert.Equal(t, tt.wantInput, gotInput)
			}
		})
	}
}

func TestUserController_DeleteUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		deleteErr  error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "200 own account",
			userID:     "5",
			role:       "user",
			wantStatus: http.StatusOK,
			wantMsg:    msgUserDeleted,
		},
		{
			name:       "200 admin deletes other",
			userID:     "1",
			role:       jwtSvc.RoleAdmin,
			wantStatus: http.StatusOK,
			wantMsg:    msgUserDeleted,
		},
		{
			name:       "404 already deleted",
			userID:     "5",
			role:       "user",
			deleteErr:  domain.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    msgUserNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			us := &FakeUserService{
				UserExistsFunc: existing(5),
				DeleteUserFunc: func(_ context.Context, id domain.ID) error {
					called = true
					assert.Equal(t, domain.ID(5), id)
					return tt.deleteErr
				},
			}
			r, j := setupRouter(t, us)

			rr := doReq(t, r, http.MethodDelete, RouteUsers+"/5", nil, bearer(t, j, tt.userID, tt.role))
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, rr))
			assert.True(t, called)
		})
	}

	t.Run("403 other user never reaches the service", func(t *testing.T) {
		us := &FakeUserService{UserExistsFunc: existing(5)}
		r, j := setupRouter(t, us)

		rr := doReq(t, r, http.MethodDelete, RouteUsers+"/5", nil, bearer(t, j, "6", "user"))
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}
