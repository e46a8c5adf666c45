package replserv

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *mux.Router {
	return New(zerolog.Nop()).Routes()
}

func doRequest(t *testing.T, rtr *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rr := httptest.NewRecorder()
	rtr.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, rtr *mux.Router) sessionReply {
	t.Helper()
	rr := doRequest(t, rtr, http.MethodPost, "/api/session", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var reply sessionReply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	return reply
}

func feedLine(t *testing.T, rtr *mux.Router, id, line string) lineReply {
	t.Helper()
	body := fmt.Sprintf(`{"line": %q}`, line)
	rr := doRequest(t, rtr, http.MethodPost, "/api/session/"+id+"/line", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var reply lineReply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	return reply
}

func TestCreateSession(t *testing.T) {
	rtr := testRouter()

	reply := createSession(t, rtr)
	assert.Equal(t, "1", reply.ID)
	assert.Equal(t, []string{"DAW BASIC v0.1\n", "READY\n"}, reply.Output)

	// ids keep counting
	reply = createSession(t, rtr)
	assert.Equal(t, "2", reply.ID)
}

func TestFeedLine(t *testing.T) {
	rtr := testRouter()
	sess := createSession(t, rtr)

	reply := feedLine(t, rtr, sess.ID, "PRINT 1 + 2")
	assert.False(t, reply.Done)
	assert.Equal(t, []string{"3\n", "\n", "READY\n"}, reply.Output)
}

func TestFeedLineQuitEndsSession(t *testing.T) {
	rtr := testRouter()
	sess := createSession(t, rtr)

	reply := feedLine(t, rtr, sess.ID, "QUIT")
	assert.True(t, reply.Done)
	assert.Equal(t, []string{"Good bye\n\n"}, reply.Output)

	// the session is gone afterwards
	rr := doRequest(t, rtr, http.MethodPost, "/api/session/"+sess.ID+"/line", `{"line": "PRINT 1"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunOverHTTP(t *testing.T) {
	rtr := testRouter()
	sess := createSession(t, rtr)

	reply := feedLine(t, rtr, sess.ID, `10 PRINT "HI"`)
	assert.Empty(t, reply.Output, "storing a line prints nothing")

	reply = feedLine(t, rtr, sess.ID, "RUN")
	assert.Equal(t, []string{"HI\n", "\n", "READY\n"}, reply.Output)
}

func TestSendProgram(t *testing.T) {
	rtr := testRouter()
	sess := createSession(t, rtr)

	feedLine(t, rtr, sess.ID, "20 PRINT 2")
	feedLine(t, rtr, sess.ID, "10 PRINT 1")

	rr := doRequest(t, rtr, http.MethodGet, "/api/session/"+sess.ID+"/program", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var reply programReply
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	assert.Equal(t, []string{"10 PRINT 1", "20 PRINT 2"}, reply.Lines)
}

func TestDropSession(t *testing.T) {
	rtr := testRouter()
	sess := createSession(t, rtr)

	rr := doRequest(t, rtr, http.MethodDelete, "/api/session/"+sess.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, rtr, http.MethodDelete, "/api/session/"+sess.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownSession(t *testing.T) {
	rtr := testRouter()

	rr := doRequest(t, rtr, http.MethodPost, "/api/session/99/line", `{"line": "PRINT 1"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var reply map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
	assert.Equal(t, "unknown session", reply["error"])
}

func TestMalformedBody(t *testing.T) {
	rtr := testRouter()
	sess := createSession(t, rtr)

	rr := doRequest(t, rtr, http.MethodPost, "/api/session/"+sess.ID+"/line", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
