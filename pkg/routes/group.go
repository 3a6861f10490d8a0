package routes

import "net/http"

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	Walk(func(path string, route Route) {
		mux.HandleFunc(route.Method+" "+path, route.Handler)
	}, groups...)
}

// Walk calls fn with the full path of every route in groups, depth first.
func Walk(fn func(path string, route Route), groups ...Group) {
	for _, group := range groups {
		walkGroup(fn, "", group)
	}
}

func walkGroup(fn func(string, Route), parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		fn(fullPrefix+route.Pattern, route)
	}
	for _, child := range group.Children {
		walkGroup(fn, fullPrefix, child)
	}
}
