package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amberlee2706/scribe/internal/blogservice"
	"github.com/amberlee2706/scribe/internal/commentservice"
	"github.com/amberlee2706/scribe/internal/common"
	"github.com/amberlee2706/scribe/internal/eventservice"
	"github.com/amberlee2706/scribe/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rabbitURI := common.TestRabbitMQ(t)
	broker, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)
	t.Cleanup(func() { broker.Close() })

	err = common.SetupEventExchange(broker)
	assert.NoError(t, err)

	cfg := &Config{
		Port:        ":0",
		Environment: "test",
		TokenSecret: "test-secret-key",
	}

	app := &application{
		config:         cfg,
		logger:         logger,
		userService:    userservice.NewUserService(db, broker, cfg.tokenConfig()),
		blogService:    blogservice.NewBlogService(db, broker, common.NewCache(5*time.Minute, 10*time.Minute)),
		commentService: commentservice.NewCommentService(db, broker),
		eventService:   eventservice.NewEventService(broker, logger),
		broker:         broker,
	}

	return app, db
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string, token *string) (int, http.Header, envelope) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, http.MethodPost, path, bytes.NewReader(jsonPayload), "application/json", token)
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil, "", token)
}

func (ts *testServer) put(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	jsonPayload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, http.MethodPut, path, bytes.NewReader(jsonPayload), "application/json", token)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, nil, "", token)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// signupAndLogin creates a user through the API and returns their id and a
// valid access token.
func (ts *testServer) signupAndLogin(t *testing.T, name, password string) (int, string) {
	status, _, body := ts.post(t, "/signup", map[string]string{"name": name, "password": password}, nil)
	assert.Equal(t, http.StatusOK, status)

	id := int(body["id"].(float64))

	status, _, body = ts.postForm(t, "/login", url.Values{"username": {name}, "password": {password}})
	assert.Equal(t, http.StatusOK, status)

	token, ok := body["access_token"].(string)
	assert.True(t, ok)

	return id, token
}
