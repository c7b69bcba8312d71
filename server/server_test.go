package server_test

import (
	"bytes"
	"codepad-server/internal/conf"
	"codepad-server/internal/model"
	"codepad-server/internal/service/session"
	"codepad-server/internal/service/storage"
	"codepad-server/server"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type echoExecutor struct{}

func (echoExecutor) SubmitJob(ctx context.Context, req model.RunRequest) model.RunResult {
	if req.Language == "html" || req.Language == "css" {
		return model.RunResult{Outcome: model.OutcomeUnavailable, Output: model.OutputNotAvailable}
	}
	return model.RunResult{Outcome: model.OutcomeCompleted, Output: req.Stdin}
}

type fakeJudge struct{ err error }

func (f fakeJudge) Statuses(ctx context.Context) ([]model.Status, error) {
	return []model.Status{model.StatusAC.GetStatus()}, f.err
}

func (f fakeJudge) Languages(ctx context.Context) ([]model.JudgeLanguage, error) {
	return []model.JudgeLanguage{{ID: 71, Name: "Python"}}, f.err
}

type fakeJobs struct{}

func (fakeJobs) GetStatus() model.JobManagerStatus {
	return model.JobManagerStatus{JobPoolNum: 3}
}

func newTestRouter(t *testing.T, cfg conf.ServerConf) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	se, err := storage.NewStorageEngine(filepath.Join(dir, "files"), filepath.Join(dir, "meta.db"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { se.Close() })
	cfg.Default()
	return server.NewRouter(cfg, server.Deps{
		Sessions:  session.NewStore(echoExecutor{}, se),
		Artifacts: se,
		Jobs:      fakeJobs{},
		Judge:     fakeJudge{},
	})
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) model.Session {
	t.Helper()
	var sess model.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode session: %v (%s)", err, w.Body.String())
	}
	return sess
}

func TestEditorFlow(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{})

	w := do(t, r, http.MethodPost, "/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	id := decodeSession(t, w).ID
	base := "/sessions/" + id

	w = do(t, r, http.MethodPut, base+"/language", gin.H{"language": "javascript"})
	sess := decodeSession(t, w)
	if sess.Code != `console.log("Hello, World!");` || sess.Stdin != "" {
		t.Errorf("language switch: %+v", sess)
	}

	do(t, r, http.MethodPut, base+"/stdin", gin.H{"stdin": "from stdin"})
	w = do(t, r, http.MethodPost, base+"/run?wait=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("run: %d %s", w.Code, w.Body.String())
	}
	var res model.RunResult
	json.Unmarshal(w.Body.Bytes(), &res)
	if res.Output != "from stdin" {
		t.Errorf("run output = %q", res.Output)
	}
	if got := decodeSession(t, do(t, r, http.MethodGet, base, nil)); got.Output != "from stdin" {
		t.Errorf("session output = %q", got.Output)
	}

	w = do(t, r, http.MethodPost, base+"/theme", nil)
	if decodeSession(t, w).Theme != model.ThemeDark {
		t.Error("theme not toggled")
	}

	do(t, r, http.MethodPut, base+"/language", gin.H{"language": "css"})
	w = do(t, r, http.MethodPost, base+"/run?wait=true", nil)
	json.Unmarshal(w.Body.Bytes(), &res)
	if res.Output != "Output not available for HTML/CSS." {
		t.Errorf("css run output = %q", res.Output)
	}
}

func TestSaveAndDownload(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{})
	id := decodeSession(t, do(t, r, http.MethodPost, "/sessions", nil)).ID
	base := "/sessions/" + id
	do(t, r, http.MethodPut, base+"/code", gin.H{"code": "print(42)\n"})

	w := do(t, r, http.MethodPost, base+"/save", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}
	var saved struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	json.Unmarshal(w.Body.Bytes(), &saved)
	if saved.Filename != "code.txt" {
		t.Errorf("filename = %q", saved.Filename)
	}

	w = do(t, r, http.MethodGet, saved.URL, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download: %d %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "print(42)\n" {
		t.Errorf("downloaded %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=code.txt" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	// 下载一次后失效
	if w = do(t, r, http.MethodGet, saved.URL, nil); w.Code != http.StatusNotFound {
		t.Errorf("second download: %d", w.Code)
	}
}

func TestOpenMultipart(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{})
	id := decodeSession(t, do(t, r, http.MethodPost, "/sessions", nil)).ID

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "Main.java")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("class Main {}\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/open", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	sess := decodeSession(t, w)
	if sess.Code != "class Main {}\n" || sess.Filename != "Main.java" {
		t.Errorf("after open: %+v", sess)
	}
}

func TestOpenJSON(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{})
	id := decodeSession(t, do(t, r, http.MethodPost, "/sessions", nil)).ID
	sess := decodeSession(t, do(t, r, http.MethodPost, "/sessions/"+id+"/open", gin.H{"filename": "a.py", "content": "x = 1"}))
	if sess.Code != "x = 1" || sess.Filename != "a.py" {
		t.Errorf("after open: %+v", sess)
	}
}

func TestErrors(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{})
	if w := do(t, r, http.MethodGet, "/sessions/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing session: %d", w.Code)
	}
	id := decodeSession(t, do(t, r, http.MethodPost, "/sessions", nil)).ID
	if w := do(t, r, http.MethodPut, "/sessions/"+id+"/language", gin.H{"language": "rust"}); w.Code != http.StatusBadRequest {
		t.Errorf("unknown language: %d", w.Code)
	}
	if w := do(t, r, http.MethodPut, "/sessions/"+id+"/language", nil); w.Code != http.StatusBadRequest ||
		w.Body.String() != `{"error":"invalid request body"}` {
		t.Errorf("missing body: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPost, "/sessions/"+id+"/open", nil); w.Code != http.StatusBadRequest ||
		w.Body.String() != `{"error":"file is required"}` {
		t.Errorf("open without file: %d %s", w.Code, w.Body.String())
	}
}

func TestAuthAndRateLimit(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{Token: "s3cret", RateLimit: 0.001, RateBurst: 1})

	if w := do(t, r, http.MethodGet, "/ping", nil); w.Code != http.StatusOK {
		t.Errorf("ping must not require auth: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/sessions", nil); w.Code != http.StatusUnauthorized ||
		w.Body.String() != `{"error":"invalid token"}` {
		t.Errorf("unauthenticated create: %d %s", w.Code, w.Body.String())
	}

	authed := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	w := authed(http.MethodPost, "/sessions")
	if w.Code != http.StatusCreated {
		t.Fatalf("authed create: %d", w.Code)
	}
	id := decodeSession(t, w).ID

	if w := authed(http.MethodPost, "/sessions/"+id+"/run"); w.Code != http.StatusAccepted {
		t.Errorf("first run: %d", w.Code)
	}
	if w := authed(http.MethodPost, "/sessions/"+id+"/run"); w.Code != http.StatusTooManyRequests {
		t.Errorf("second run: %d, want 429", w.Code)
	}
}

func TestInfoEndpoints(t *testing.T) {
	r := newTestRouter(t, conf.ServerConf{})

	var langs []map[string]interface{}
	json.Unmarshal(do(t, r, http.MethodGet, "/languages", nil).Body.Bytes(), &langs)
	if len(langs) != 7 || langs[5]["name"] != "html" || langs[5]["executable"] != false {
		t.Errorf("languages = %v", langs)
	}

	if w := do(t, r, http.MethodGet, "/statuses", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Accepted") {
		t.Errorf("statuses: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/executor/status", nil); !strings.Contains(w.Body.String(), `"job_pool_num":3`) {
		t.Errorf("executor status: %s", w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Errorf("metrics: %d", w.Code)
	}
}

func TestJudgeUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	se, err := storage.NewStorageEngine(filepath.Join(dir, "files"), filepath.Join(dir, "meta.db"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer se.Close()
	cfg := conf.ServerConf{}
	cfg.Default()
	r := server.NewRouter(cfg, server.Deps{
		Sessions:  session.NewStore(echoExecutor{}, se),
		Artifacts: se,
		Jobs:      fakeJobs{},
		Judge:     fakeJudge{err: errors.New("boom")},
	})
	if w := do(t, r, http.MethodGet, "/statuses", nil); w.Code != http.StatusBadGateway {
		t.Errorf("statuses with failing judge: %d", w.Code)
	}
}
