package server_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/designmatch/web-client/server"
	"github.com/designmatch/web-client/session"
)

// testConfig satisfies config.Config against a fake marketplace backend.
type testConfig struct {
	apiBaseURL string
	rps        float64
	burst      int
}

func (c testConfig) GetPort() string         { return ":0" }
func (c testConfig) GetAppName() string      { return "DesignMatch Web" }
func (c testConfig) GetEnv() string          { return "TEST" }
func (c testConfig) GetSessionMaxAge() int   { return 3600 }
func (c testConfig) GetAPIBaseURL() string   { return c.apiBaseURL }
func (c testConfig) GetImageBaseURL() string { return "https://images.example.com" }
func (c testConfig) GetBackendTimeout() int  { return 5 }
func (c testConfig) GetRateLimitPerSecond() float64 {
	if c.rps == 0 {
		return 1000
	}
	return c.rps
}
func (c testConfig) GetRateLimitBurst() int {
	if c.burst == 0 {
		return 1000
	}
	return c.burst
}

// fakeBackend is a scripted marketplace API.
type fakeBackend struct {
	issuedToken string

	registerCalls int
	reviewBody    map[string]any
	onboardBody   map[string]any
	vendorToken   string
}

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func (b *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		switch r.URL.Path {
		case "/location/states":
			fmt.Fprint(w, `{"data":["Karnataka","Kerala"]}`)

		case "/location/cities":
			if r.URL.Query().Get("state") == "Kerala" {
				fmt.Fprint(w, `{"data":["Kochi"]}`)
				return
			}
			fmt.Fprint(w, `{"data":["Bengaluru","Mysuru"]}`)

		case "/user/register":
			b.registerCalls++
			fmt.Fprintf(w, `{"access_token":%q}`, b.issuedToken)

		case "/user/login":
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Email != "asha@example.com" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"debug_info":"Invalid credentials"}`)
				return
			}
			fmt.Fprintf(w, `{"access_token":%q}`, b.issuedToken)

		case "/user/details":
			if bearer != b.issuedToken && bearer != b.vendorToken {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"debug_info":"token invalid"}`)
				return
			}
			isVendor := bearer == b.vendorToken && b.vendorToken != ""
			fmt.Fprintf(w, `{"data":{"user_id":1,"first_name":"Asha","last_name":"Rao","email":"asha@example.com","is_vendor":%t}}`, isVendor)

		case "/user/logout":
			w.WriteHeader(http.StatusOK)

		case "/vendor/details":
			fmt.Fprint(w, `{"data":{"business_name":"Studio Verde","description":"Residential interiors","city":"Bengaluru","category":"INTERIOR_DESIGNER","sub_category_1":"MODERN,RUSTIC"}}`)

		case "/vendor/project/details":
			fmt.Fprint(w, `{"data":[{"title":"Loft","city":"Bengaluru","state":"Karnataka","images":{"Kitchen":["k1.jpg"]}}]}`)

		case "/vendor/auth/details":
			fmt.Fprint(w, `{"data":{"business_name":"Studio Verde","description":"Residential interiors","city":"Bengaluru","category":"INTERIOR_DESIGNER"}}`)

		case "/vendor/auth/project/details":
			fmt.Fprint(w, `{"data":[]}`)

		case "/vendor/review":
			b.reviewBody = map[string]any{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&b.reviewBody))
			w.WriteHeader(http.StatusOK)

		case "/vendor/onboard":
			b.onboardBody = map[string]any{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&b.onboardBody))
			fmt.Fprintf(w, `{"access_token":%q}`, b.vendorToken)

		case "/category/subcategory1/list":
			fmt.Fprint(w, `{"data":["MODERN","RUSTIC","MINIMAL"]}`)
		case "/category/subcategory2/list":
			fmt.Fprint(w, `{"data":["KITCHEN","BEDROOM"]}`)
		case "/category/subcategory3/list":
			fmt.Fprint(w, `{"data":["TURNKEY","DESIGN_ONLY"]}`)

		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"debug_info":"no such endpoint"}`)
		}
	}
}

type fixture struct {
	backend *fakeBackend
	client  *http.Client
	baseURL string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	b := &fakeBackend{}
	b.issuedToken = signedToken(t, jwtlib.MapClaims{"sub": "1", "email": "asha@example.com"})
	b.vendorToken = signedToken(t, jwtlib.MapClaims{"sub": "1", "is_vendor": true, "vendor_id": float64(12)})

	backendSrv := httptest.NewServer(b.handler(t))
	t.Cleanup(backendSrv.Close)

	srv := server.New(testConfig{apiBaseURL: backendSrv.URL}, session.NewInMemoryRepo())
	webSrv := httptest.NewServer(srv)
	t.Cleanup(webSrv.Close)

	return &fixture{
		backend: b,
		baseURL: webSrv.URL,
		client:  newBrowser(t),
	}
}

// newBrowser is a client with its own cookie jar, so tests can act as
// separate concurrent visitors.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (f *fixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := f.client.Get(f.baseURL + path)
	require.NoError(t, err)
	return resp
}

func (f *fixture) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := f.client.PostForm(f.baseURL+path, form)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(content)
}

// login registers an account through the signup flow so the cookie jar
// holds a logged-in session.
func (f *fixture) login(t *testing.T) {
	t.Helper()
	resp := f.postForm(t, "/signup", url.Values{
		"first_name":       {"Asha"},
		"last_name":        {"Rao"},
		"email":            {"asha@example.com"},
		"mobile":           {"9876543210"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestIndexPage(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	html := body(t, resp)
	require.Contains(t, html, "DesignMatch Web")
	require.Contains(t, html, "Karnataka")
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/no-such-page")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, body(t, resp), "does not exist")
}

func TestProfileRequiresLogin(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/profile")
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "/login")
}

func TestSignup(t *testing.T) {
	t.Run("mismatched passwords re-render the form with the message", func(t *testing.T) {
		f := newFixture(t)

		resp := f.postForm(t, "/signup", url.Values{
			"first_name":       {"Asha"},
			"last_name":        {"Rao"},
			"email":            {"asha@example.com"},
			"mobile":           {"9876543210"},
			"password":         {"secret123"},
			"confirm_password": {"different"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		html := body(t, resp)
		require.Contains(t, html, "Passwords do not match.")
		// Entered values are preserved.
		require.Contains(t, html, "asha@example.com")
		require.Zero(t, f.backend.registerCalls)
	})

	t.Run("valid form registers and logs the session in", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)
		require.Equal(t, 1, f.backend.registerCalls)

		resp := f.get(t, "/profile")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body(t, resp), "Asha")
	})

	t.Run("professional signup continues into onboarding", func(t *testing.T) {
		f := newFixture(t)

		resp := f.postForm(t, "/signup", url.Values{
			"first_name":       {"Asha"},
			"last_name":        {"Rao"},
			"email":            {"asha@example.com"},
			"mobile":           {"9876543210"},
			"password":         {"secret123"},
			"confirm_password": {"secret123"},
			"join_as_pro":      {"1"},
			"profession":       {"INTERIOR_DESIGNER"},
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/join-as-pro", resp.Header.Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	t.Run("bad credentials redirect back with the backend message", func(t *testing.T) {
		f := newFixture(t)

		resp := f.postForm(t, "/login", url.Values{
			"email":    {"wrong@example.com"},
			"password": {"secret123"},
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Location"), url.QueryEscape("Invalid credentials"))
	})

	t.Run("valid credentials log the session in", func(t *testing.T) {
		f := newFixture(t)

		resp := f.postForm(t, "/login", url.Values{
			"email":    {"asha@example.com"},
			"password": {"secret123"},
		})
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		profileResp := f.get(t, "/profile")
		require.Equal(t, http.StatusOK, profileResp.StatusCode)
		profileResp.Body.Close()
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	resp := f.get(t, "/logout")
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	profileResp := f.get(t, "/profile")
	defer profileResp.Body.Close()
	require.Equal(t, http.StatusSeeOther, profileResp.StatusCode)
	require.Contains(t, profileResp.Header.Get("Location"), "/login")
}

func TestProfessionalPage(t *testing.T) {
	f := newFixture(t)

	t.Run("about tab", func(t *testing.T) {
		resp := f.get(t, "/search-professionals/42")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		html := body(t, resp)
		require.Contains(t, html, "Studio Verde")
		require.Contains(t, html, "Residential interiors")
		// Comma-joined subcategories are split and humanised for display.
		require.Contains(t, html, "Modern")
		require.Contains(t, html, "Rustic")
	})

	t.Run("projects tab", func(t *testing.T) {
		resp := f.get(t, "/search-professionals/42?tab=projects")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body(t, resp), "Loft")
	})
}

func TestSubmitReview(t *testing.T) {
	form := url.Values{
		"rating_quality":   {"5"},
		"rating_execution": {"4"},
		"rating_behaviour": {"3"},
		"title":            {"Great work"},
		"body":             {"On time and on budget."},
	}

	t.Run("anonymous visitors are sent to login", func(t *testing.T) {
		f := newFixture(t)

		resp := f.postForm(t, "/search-professionals/42/review", form)
		defer resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Location"), "/login")
		require.Nil(t, f.backend.reviewBody)
	})

	t.Run("logged-in submission posts numeric ratings", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)

		resp := f.postForm(t, "/search-professionals/42/review", form)
		defer resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Location"), "review_success=1")

		require.Equal(t, float64(42), f.backend.reviewBody["vendor_id"])
		require.Equal(t, float64(5), f.backend.reviewBody["rating_quality"])
		require.Equal(t, float64(4), f.backend.reviewBody["rating_execution"])
		require.Equal(t, float64(3), f.backend.reviewBody["rating_behaviour"])
	})

	t.Run("missing rating bounces back to the composer", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)

		incomplete := url.Values{"rating_quality": {"5"}}
		resp := f.postForm(t, "/search-professionals/42/review", incomplete)
		defer resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Location"), "review_error=")
	})
}

func TestOnboardingWizard(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	// Step 1: business info.
	resp := f.get(t, "/join-as-pro")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body(t, resp), "business_name")

	resp = f.postForm(t, "/join-as-pro", url.Values{
		"action":                {"next"},
		"business_name":         {"Studio Verde"},
		"started_in":            {"2015"},
		"address":               {"12 Palm Street"},
		"number_of_employees":   {"8"},
		"average_project_value": {"150000"},
		"projects_completed":    {"40"},
		"description":           {"Residential interiors"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// Step 2: category axes with backend-provided options.
	resp = f.get(t, "/join-as-pro")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body(t, resp), "MINIMAL")

	resp = f.postForm(t, "/join-as-pro", url.Values{
		"action":        {"next"},
		"subcategory_1": {"MODERN", "RUSTIC"},
		"subcategory_2": {"KITCHEN"},
		"subcategory_3": {"TURNKEY"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// Step 3: location.
	resp = f.postForm(t, "/join-as-pro", url.Values{
		"action": {"next"},
		"state":  {"Karnataka"},
		"city":   {"Bengaluru"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// Step 4: submit.
	resp = f.postForm(t, "/join-as-pro", url.Values{
		"action":    {"submit"},
		"instagram": {"https://instagram.com/studioverde"},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "/profile")

	// The backend saw the coerced payload.
	require.Equal(t, "Studio Verde", f.backend.onboardBody["business_name"])
	require.Equal(t, "MODERN,RUSTIC", f.backend.onboardBody["sub_category_1"])
	require.Equal(t, float64(8), f.backend.onboardBody["number_of_employees"])

	// The replacement token flipped the session to vendor without a
	// re-login: the profile page now renders the business profile.
	profileResp := f.get(t, "/profile")
	require.Equal(t, http.StatusOK, profileResp.StatusCode)
	require.Contains(t, body(t, profileResp), "Edit profile")

	// The own-profile page carries the same three tabs as the public one.
	reviewsResp := f.get(t, "/profile?tab=reviews")
	require.Equal(t, http.StatusOK, reviewsResp.StatusCode)
	require.Contains(t, body(t, reviewsResp), "Reviews from homeowners appear here.")
}

// postWizard submits one wizard transition for the given browser.
func postWizard(t *testing.T, f *fixture, browser *http.Client, form url.Values) {
	t.Helper()
	resp, err := browser.PostForm(f.baseURL+"/join-as-pro", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

// walkToLocationStep advances a fresh wizard through steps 1 and 2.
func walkToLocationStep(t *testing.T, f *fixture, browser *http.Client) {
	t.Helper()
	postWizard(t, f, browser, url.Values{
		"action":                {"next"},
		"business_name":         {"Studio Verde"},
		"started_in":            {"2015"},
		"address":               {"12 Palm Street"},
		"number_of_employees":   {"8"},
		"average_project_value": {"150000"},
		"projects_completed":    {"40"},
		"description":           {"Residential interiors"},
	})
	postWizard(t, f, browser, url.Values{
		"action":        {"next"},
		"subcategory_1": {"MODERN"},
		"subcategory_2": {"KITCHEN"},
		"subcategory_3": {"TURNKEY"},
	})
}

func TestWizardCityOptionsArePerSession(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	browserA := f.client

	browserB := newBrowser(t)
	resp, err := browserB.PostForm(f.baseURL+"/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"secret123"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	walkToLocationStep(t, f, browserA)
	walkToLocationStep(t, f, browserB)

	// A picks Karnataka, then B picks Kerala.
	postWizard(t, f, browserA, url.Values{"action": {"state"}, "state": {"Karnataka"}})
	postWizard(t, f, browserB, url.Values{"action": {"state"}, "state": {"Kerala"}})

	// A's re-rendered step still offers Karnataka's cities.
	respA, err := browserA.Get(f.baseURL + "/join-as-pro")
	require.NoError(t, err)
	htmlA := body(t, respA)
	require.Contains(t, htmlA, "Bengaluru")
	require.NotContains(t, htmlA, "Kochi")

	// And B's offers Kerala's.
	respB, err := browserB.Get(f.baseURL + "/join-as-pro")
	require.NoError(t, err)
	htmlB := body(t, respB)
	require.Contains(t, htmlB, "Kochi")
	require.NotContains(t, htmlB, "Bengaluru")
}

func TestWizardValidationBlocksNext(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	resp := f.postForm(t, "/join-as-pro", url.Values{"action": {"next"}})
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), url.QueryEscape("Please enter your business name."))
}

func TestWizardCities(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	resp := f.get(t, "/join-as-pro/cities?state=Karnataka")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cities []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cities))
	resp.Body.Close()
	require.Equal(t, []string{"Bengaluru", "Mysuru"}, cities)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	// The counter vec only reports once a labelled request went through.
	f.get(t, "/").Body.Close()

	resp := f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body(t, resp), "http_requests_total")
}

func TestRateLimit(t *testing.T) {
	b := &fakeBackend{}
	backendSrv := httptest.NewServer(b.handler(t))
	t.Cleanup(backendSrv.Close)

	srv := server.New(testConfig{apiBaseURL: backendSrv.URL, rps: 0.001, burst: 1}, session.NewInMemoryRepo())
	webSrv := httptest.NewServer(srv)
	t.Cleanup(webSrv.Close)

	first, err := http.Get(webSrv.URL + "/")
	require.NoError(t, err)
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(webSrv.URL + "/")
	require.NoError(t, err)
	second.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, second.StatusCode)

	// Forwarded clients are bucketed by the first X-Forwarded-For hop,
	// so the same client through different proxy chains shares a bucket.
	reqA, err := http.NewRequest(http.MethodGet, webSrv.URL+"/", nil)
	require.NoError(t, err)
	reqA.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	forwardedFirst, err := http.DefaultClient.Do(reqA)
	require.NoError(t, err)
	forwardedFirst.Body.Close()
	require.Equal(t, http.StatusOK, forwardedFirst.StatusCode)

	reqB, err := http.NewRequest(http.MethodGet, webSrv.URL+"/", nil)
	require.NoError(t, err)
	reqB.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	forwardedSecond, err := http.DefaultClient.Do(reqB)
	require.NoError(t, err)
	forwardedSecond.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, forwardedSecond.StatusCode)
}
