package access

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	PathLogin    = "/login"
	PathRegister = "/register"
	PathHome     = "/"
)

type Route struct {
	Name      string
	Pattern   string
	Protected bool
	// Feature is set for routes that only exist for premium users.
	Feature Feature
}

// Routes is the navigable area of the application.
var Routes = []Route{
	{Name: "dashboard", Pattern: PathHome, Protected: true},
	{Name: "contacts", Pattern: "/contacts", Protected: true},
	{Name: "contact", Pattern: "/contacts/{id}", Protected: true},
	{Name: "tasks", Pattern: "/tasks", Protected: true},
	{Name: "pipelines", Pattern: "/pipelines", Protected: true},
	{Name: "team", Pattern: "/team", Protected: true, Feature: FeatureTeam},
	{Name: "profile", Pattern: "/profile", Protected: true},
	{Name: "login", Pattern: PathLogin},
	{Name: "register", Pattern: PathRegister},
}

// Target is a concrete path resolved against Routes.
type Target struct {
	Route  Route
	Path   string
	Params map[string]string
}

func (t Target) Param(name string) string {
	return t.Params[name]
}

var (
	router    = newRouter()
	byPattern = indexRoutes()
)

func newRouter() *chi.Mux {
	mux := chi.NewRouter()
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, r := range Routes {
		mux.Get(r.Pattern, noop)
	}
	return mux
}

func indexRoutes() map[string]Route {
	m := make(map[string]Route, len(Routes))
	for _, r := range Routes {
		m[r.Pattern] = r
	}
	return m
}

// Match resolves path to a route. A trailing slash is ignored.
func Match(path string) (Target, bool) {
	path = normalize(path)

	rctx := chi.NewRouteContext()
	if !router.Match(rctx, http.MethodGet, path) {
		return Target{}, false
	}
	route, ok := byPattern[rctx.RoutePattern()]
	if !ok {
		return Target{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Target{Route: route, Path: path, Params: params}, true
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = PathHome
		}
	}
	return path
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Label string
	Path  string
}

var navigation = []struct {
	NavItem
	feature Feature
}{
	{NavItem: NavItem{Label: "Dashboard", Path: PathHome}},
	{NavItem: NavItem{Label: "Contacts", Path: "/contacts"}},
	{NavItem: NavItem{Label: "Tasks", Path: "/tasks"}},
	{NavItem: NavItem{Label: "Pipelines", Path: "/pipelines"}},
	{NavItem: NavItem{Label: "Team", Path: "/team"}, feature: FeatureTeam},
}

// Navigation returns the entries visible to fs. Premium entries are omitted,
// never shown disabled.
func Navigation(fs Features) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	for _, n := range navigation {
		if n.feature != "" && !fs.Allowed(n.feature) {
			continue
		}
		items = append(items, n.NavItem)
	}
	return items
}
