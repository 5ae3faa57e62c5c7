package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/testutil"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	return &webTestServer{
		t:       t,
		handler: newRouter(app),
		app:     app,
		cookies: newCookieJar(),
	}
}

func newRouter(app *factory.TestApp) http.Handler {
	return web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		SessionService: app.SessionService,
		HubManager:     app.HubManager,
		StaticDir:      "", // No static files in tests
	})
}

// withBrowser returns a second client sharing the same app but not its cookies
func (ts *webTestServer) withBrowser() *webTestServer {
	return &webTestServer{
		t:       ts.t,
		handler: ts.handler,
		app:     ts.app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// createGame starts a new game through the web form and returns its ID
func (ts *webTestServer) createGame() string {
	ts.t.Helper()
	rr := ts.post("/game", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after game creation")

	location := rr.Header().Get("Location")
	parts := strings.Split(location, "/game/")
	require.Len(ts.t, parts, 2, "Expected location to contain /game/{id}, got %q", location)
	return parts[1]
}

// move plays a cell with a plain form post
func (ts *webTestServer) move(gameID string, index int) *httptest.ResponseRecorder {
	return ts.post("/game/"+gameID+"/move", url.Values{"index": {strconv.Itoa(index)}})
}

// jump jumps to a history entry with a plain form post
func (ts *webTestServer) jump(gameID string, index int) *httptest.ResponseRecorder {
	return ts.post("/game/"+gameID+"/jump", url.Values{"index": {strconv.Itoa(index)}})
}

// play makes each move in turn, requiring every one to redirect back to the game
func (ts *webTestServer) play(gameID string, indexes ...int) {
	ts.t.Helper()
	for _, idx := range indexes {
		rr := ts.move(gameID, idx)
		require.Equal(ts.t, http.StatusSeeOther, rr.Code)
		require.Equal(ts.t, "/game/"+gameID, rr.Header().Get("Location"))
	}
}

// view loads the game page and parses it
func (ts *webTestServer) view(gameID string) *goquery.Document {
	ts.t.Helper()
	rr := ts.get("/game/" + gameID)
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

// followRedirect follows a redirect and returns the response
// Works with both traditional Location headers and HTMX HX-Redirect headers
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// Assertion helpers

// boardMarks returns the text of the nine cells in index order
func boardMarks(doc *goquery.Document) []string {
	var marks []string
	doc.Find("#board button.square").Each(func(_ int, s *goquery.Selection) {
		marks = append(marks, s.Text())
	})
	return marks
}

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
