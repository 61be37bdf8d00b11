package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursetracker/internal/errs"
	"coursetracker/internal/model"
	"coursetracker/internal/service"
	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAuthSvc struct {
	registerUser *model.User
	registerErr  error
	tokens       model.Tokens
	loginUser    model.User
	loginErr     error
	resolveUser  *model.User
	resolveErr   error
	deleteErr    error
}

var _ service.AuthService = (*fakeAuthSvc)(nil)

func (f *fakeAuthSvc) Register(context.Context, string, string) (*model.User, error) {
	return f.registerUser, f.registerErr
}
func (f *fakeAuthSvc) LoginWithIP(context.Context, string, string, string) (model.Tokens, model.User, error) {
	return f.tokens, f.loginUser, f.loginErr
}
func (f *fakeAuthSvc) Resolve(context.Context, string) (*model.User, error) {
	return f.resolveUser, f.resolveErr
}
func (f *fakeAuthSvc) GetUser(context.Context, uuid.UUID) (*model.User, error) {
	return f.resolveUser, f.resolveErr
}
func (f *fakeAuthSvc) DeleteAccount(context.Context, uuid.UUID, uuid.UUID) error {
	return f.deleteErr
}

type fakeCourseSvc struct {
	course    *model.Course
	courses   []model.Course
	materials []model.Material
	user      *model.User
	err       error
}

var _ service.CourseService = (*fakeCourseSvc)(nil)

func (f *fakeCourseSvc) Create(context.Context, *model.User, string, *string) (*model.Course, error) {
	return f.course, f.err
}
func (f *fakeCourseSvc) List(context.Context) ([]model.Course, error) { return f.courses, f.err }
func (f *fakeCourseSvc) Get(context.Context, uuid.UUID) (*model.Course, []model.Material, error) {
	return f.course, f.materials, f.err
}
func (f *fakeCourseSvc) Update(context.Context, uuid.UUID, uuid.UUID, model.CourseUpdate) (*model.Course, error) {
	return f.course, f.err
}
func (f *fakeCourseSvc) Delete(context.Context, uuid.UUID, uuid.UUID) error { return f.err }
func (f *fakeCourseSvc) UserCourses(context.Context, uuid.UUID) (*model.User, []model.Course, error) {
	return f.user, f.courses, f.err
}

type fakeMaterialSvc struct {
	material *model.Material
	list     []model.Material
	schedule []model.ScheduleEntry
	err      error
}

var _ service.MaterialService = (*fakeMaterialSvc)(nil)

func (f *fakeMaterialSvc) Create(context.Context, uuid.UUID, uuid.UUID, string, string, time.Time) (*model.Material, error) {
	return f.material, f.err
}
func (f *fakeMaterialSvc) Get(context.Context, uuid.UUID, int) (*model.Material, error) {
	return f.material, f.err
}
func (f *fakeMaterialSvc) List(context.Context) ([]model.Material, error) { return f.list, f.err }
func (f *fakeMaterialSvc) Update(context.Context, uuid.UUID, uuid.UUID, int, model.MaterialUpdate) (*model.Material, error) {
	return f.material, f.err
}
func (f *fakeMaterialSvc) Delete(context.Context, uuid.UUID, uuid.UUID, int) error { return f.err }
func (f *fakeMaterialSvc) Schedule(context.Context, uuid.UUID) ([]model.ScheduleEntry, error) {
	return f.schedule, f.err
}

type fakeProgressSvc struct {
	progress *model.Progress
	cp       model.CourseProgress
	err      error
}

var _ service.ProgressService = (*fakeProgressSvc)(nil)

func (f *fakeProgressSvc) Mark(context.Context, uuid.UUID, uuid.UUID, int) (*model.Progress, error) {
	return f.progress, f.err
}
func (f *fakeProgressSvc) CourseProgress(context.Context, uuid.UUID, uuid.UUID) (model.CourseProgress, error) {
	return f.cp, f.err
}

func newTestServer(t *testing.T, auth service.AuthService, courses service.CourseService, materials service.MaterialService, progress service.ProgressService) *echo.Echo {
	t.Helper()
	e := echo.New()
	New(auth, courses, materials, progress, zaptest.NewLogger(t)).Routes(e)
	return e
}

func perform(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testUserModel(name string) *model.User {
	return &model.User{ID: uuid.Must(uuid.NewV4()), Name: name}
}

func TestRequireAuth_Uniform401(t *testing.T) {
	auth := &fakeAuthSvc{resolveErr: errs.ErrUnauthorized}
	e := newTestServer(t, auth, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})

	noHeader := perform(e, http.MethodGet, "/api/users/me", "", "")
	require.Equal(t, http.StatusUnauthorized, noHeader.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc")
	wrongScheme := httptest.NewRecorder()
	e.ServeHTTP(wrongScheme, req)
	require.Equal(t, http.StatusUnauthorized, wrongScheme.Code)

	badToken := perform(e, http.MethodGet, "/api/users/me", "", "garbage")
	require.Equal(t, http.StatusUnauthorized, badToken.Code)

	// all three failure modes return the same body
	require.Equal(t, noHeader.Body.String(), wrongScheme.Body.String())
	require.Equal(t, noHeader.Body.String(), badToken.Body.String())
}

func TestRequireAuth_PassesUserThrough(t *testing.T) {
	u := testUserModel("alice")
	auth := &fakeAuthSvc{resolveUser: u}
	e := newTestServer(t, auth, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})

	rec := perform(e, http.MethodGet, "/api/users/me", "", "sometoken")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"alice"`)
}

func TestErrorMapping(t *testing.T) {
	u := testUserModel("alice")
	courseID := uuid.Must(uuid.NewV4()).String()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"course not found", http.MethodGet, "/api/courses/" + courseID, "", errs.ErrNotFound, http.StatusNotFound},
		{"foreign course update", http.MethodPut, "/api/courses/" + courseID, `{"title":"x"}`, errs.ErrForbidden, http.StatusForbidden},
		{"foreign course delete", http.MethodDelete, "/api/courses/" + courseID, "", errs.ErrForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthSvc{resolveUser: u}
			e := newTestServer(t, auth, &fakeCourseSvc{err: tt.svcErr}, &fakeMaterialSvc{}, &fakeProgressSvc{})
			rec := perform(e, tt.method, tt.path, tt.body, "tok")
			require.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRegister_Statuses(t *testing.T) {
	u := testUserModel("alice")

	// created
	e := newTestServer(t, &fakeAuthSvc{registerUser: u}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})
	rec := perform(e, http.MethodPost, "/api/auth/register", `{"name":"alice","password":"secret-password"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// name already taken
	e = newTestServer(t, &fakeAuthSvc{registerErr: errs.ErrAlreadyExists}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})
	rec = perform(e, http.MethodPost, "/api/auth/register", `{"name":"alice","password":"secret-password"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	// structural validation failures
	for _, body := range []string{
		`{"name":"alice","password":"short"}`,
		`{"password":"secret-password"}`,
		`not json`,
	} {
		rec = perform(e, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestLogin_Statuses(t *testing.T) {
	u := testUserModel("alice")

	e := newTestServer(t, &fakeAuthSvc{tokens: model.Tokens{AccessToken: "tok"}, loginUser: *u},
		&fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})
	rec := perform(e, http.MethodPost, "/api/auth/login", `{"name":"alice","password":"secret-password"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"access_token":"tok"`)
	require.Contains(t, rec.Body.String(), `"token_type":"bearer"`)

	e = newTestServer(t, &fakeAuthSvc{loginErr: errs.ErrUnauthorized}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})
	rec = perform(e, http.MethodPost, "/api/auth/login", `{"name":"alice","password":"wrong-password"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	e = newTestServer(t, &fakeAuthSvc{loginErr: errs.ErrRateLimited}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})
	rec = perform(e, http.MethodPost, "/api/auth/login", `{"name":"alice","password":"wrong-password"}`, "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestMarkProgress_Statuses(t *testing.T) {
	u := testUserModel("alice")
	courseID := uuid.Must(uuid.NewV4()).String()
	path := "/api/courses/" + courseID + "/materials/1/complete"

	p := &model.Progress{ID: uuid.Must(uuid.NewV4()), UserID: u.ID, MaterialID: uuid.Must(uuid.NewV4()), Completed: true}
	e := newTestServer(t, &fakeAuthSvc{resolveUser: u}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{progress: p})
	rec := perform(e, http.MethodPost, path, "", "tok")
	require.Equal(t, http.StatusCreated, rec.Code)

	e = newTestServer(t, &fakeAuthSvc{resolveUser: u}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{err: errs.ErrAlreadyExists})
	rec = perform(e, http.MethodPost, path, "", "tok")
	require.Equal(t, http.StatusConflict, rec.Code)

	// counters are positive integers
	rec = perform(e, http.MethodPost, "/api/courses/"+courseID+"/materials/zero/complete", "", "tok")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseProgress_NoLessonsSentinel(t *testing.T) {
	u := testUserModel("alice")
	courseID := uuid.Must(uuid.NewV4()).String()
	path := "/api/courses/" + courseID + "/progress"

	e := newTestServer(t, &fakeAuthSvc{resolveUser: u}, &fakeCourseSvc{}, &fakeMaterialSvc{},
		&fakeProgressSvc{cp: model.CourseProgress{Completed: 2, Total: 5}})
	rec := perform(e, http.MethodGet, path, "", "tok")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"completed":2`)
	require.Contains(t, rec.Body.String(), `"total":5`)

	e = newTestServer(t, &fakeAuthSvc{resolveUser: u}, &fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{})
	rec = perform(e, http.MethodGet, path, "", "tok")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "no lessons yet")
}

func TestFail_RecordsUnexpectedError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	e := echo.New()
	New(&fakeAuthSvc{}, &fakeCourseSvc{err: errors.New("pool closed")},
		&fakeMaterialSvc{}, &fakeProgressSvc{}, log).Routes(e)

	rec := perform(e, http.MethodGet, "/api/courses", "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// the client gets a bare 500, the cause stays in the log
	require.NotContains(t, rec.Body.String(), "pool closed")

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.ErrorLevel, entries[0].Level)
	require.Equal(t, "pool closed", entries[0].ContextMap()["error"])
}

func TestFail_RecordsDomainOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	u := testUserModel("alice")
	e := echo.New()
	New(&fakeAuthSvc{resolveUser: u}, &fakeCourseSvc{err: errs.ErrForbidden},
		&fakeMaterialSvc{}, &fakeProgressSvc{}, log).Routes(e)

	courseID := uuid.Must(uuid.NewV4()).String()
	rec := perform(e, http.MethodDelete, "/api/courses/"+courseID, "", "tok")
	require.Equal(t, http.StatusForbidden, rec.Code)

	entries := logs.FilterMessage("request rejected").All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.InfoLevel, entries[0].Level)
	require.EqualValues(t, http.StatusForbidden, entries[0].ContextMap()["status"])
}

func TestRequireAuth_RecordsCause(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	e := echo.New()
	New(&fakeAuthSvc{resolveErr: errors.New("token expired: unauthorized")},
		&fakeCourseSvc{}, &fakeMaterialSvc{}, &fakeProgressSvc{}, log).Routes(e)

	rec := perform(e, http.MethodGet, "/api/users/me", "", "stale")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	entries := logs.FilterMessage("auth failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "token expired: unauthorized", entries[0].ContextMap()["error"])
}

func TestPublicReads_NoTokenNeeded(t *testing.T) {
	courses := &fakeCourseSvc{courses: []model.Course{}}
	e := newTestServer(t, &fakeAuthSvc{resolveErr: errs.ErrUnauthorized}, courses, &fakeMaterialSvc{}, &fakeProgressSvc{})

	for _, path := range []string{"/", "/api/courses", "/api/materials"} {
		rec := perform(e, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, rec.Code, "path=%s", path)
	}
}
