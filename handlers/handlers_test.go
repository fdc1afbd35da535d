package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/admission"
	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/middleware"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/services"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: "u1", Username: in.Username, Email: in.Email, Role: models.RoleParticipant}, nil
}

func (s *stubAuthService) Login(context.Context, services.LoginInput) (*models.User, error) {
	return s.user, s.err
}

type stubRegistrationService struct {
	services.RegistrationService
	gotHackathon string
	gotUser      string
	outcome      admission.Outcome
	err          error
}

func (s *stubRegistrationService) Register(_ context.Context, hackathonID, userID string) (admission.Outcome, error) {
	s.gotHackathon, s.gotUser = hackathonID, userID
	return s.outcome, s.err
}

func (s *stubRegistrationService) Approve(_ context.Context, hackathonID, actorID, userID string) error {
	s.gotHackathon, s.gotUser = hackathonID, userID
	return s.err
}

func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, models.RoleParticipant)))
		})
	}
}

func TestAuthHandler_LoginIssuesToken(t *testing.T) {
	secret := "secret"
	h := NewAuthHandler(&stubAuthService{
		user: &models.User{ID: "u1", Username: "alice", Role: models.RoleOrganizer},
	}, secret, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"password1"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(body.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "organizer", claims["role"])
}

func TestAuthHandler_LoginRejectsBadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrInvalidCredentials}, "secret", time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_RegisterRequiresFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, "secret", time.Hour)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"a@b.co"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"alice","email":"a@b.co","password":"password1"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegistrationHandler(t *testing.T) {
	hackathonID := uuid.NewString()
	svc := &stubRegistrationService{outcome: admission.PendingApproval}
	h := NewRegistrationHandler(svc)

	router := chi.NewRouter()
	router.With(asUser("u1")).Post("/hackathons/{hackathonID}/registration", h.Register)
	router.With(asUser("org")).Post("/hackathons/{hackathonID}/pending/{userID}/approve", h.Approve)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hackathons/"+hackathonID+"/registration", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"outcome":"pending_approval"}`, rec.Body.String())
	assert.Equal(t, hackathonID, svc.gotHackathon)
	assert.Equal(t, "u1", svc.gotUser)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hackathons/not-an-id/registration", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = apperrors.ErrCapacityReached
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hackathons/"+hackathonID+"/registration", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "capacity_reached")

	svc.err = apperrors.ErrOrganizerOnly
	userID := uuid.NewString()
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hackathons/"+hackathonID+"/pending/"+userID+"/approve", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, userID, svc.gotUser)

	svc.err = nil
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hackathons/"+hackathonID+"/pending/"+userID+"/approve", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRegistrationHandler_RequiresUser(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{})
	router := chi.NewRouter()
	router.Post("/hackathons/{hackathonID}/registration", h.Register)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hackathons/"+uuid.NewString()+"/registration", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestParseHackathonFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/hackathons?status=judging&limit=500&offset=10", nil)
	f, err := parseHackathonFilter(req)
	require.NoError(t, err)
	assert.Equal(t, models.HackathonJudging, f.Status)
	assert.Equal(t, maxListLimit, f.Limit)
	assert.Equal(t, 10, f.Offset)
	assert.True(t, f.PublishedOnly)

	_, err = parseHackathonFilter(httptest.NewRequest(http.MethodGet, "/hackathons?status=bogus", nil))
	assert.Error(t, err)
	_, err = parseHackathonFilter(httptest.NewRequest(http.MethodGet, "/hackathons?limit=-1", nil))
	assert.Error(t, err)
}
