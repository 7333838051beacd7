package server

import (
	"testing"

	"tango/middleware"
)

func echoImpl(args map[string]any, ctx *Context) (any, error) {
	return args, nil
}

func TestFlattenBuildsKebabRouteKeys(t *testing.T) {
	tree := NewTree().
		Set("users", NewTree().
			Set("getProfile", NewDescriptor(Query, echoImpl, nil))).
		Set("postsGetByID", NewDescriptor(Get, echoImpl, nil))

	table, err := Flatten(tree, NewMiddlewares())
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}

	if _, ok := table["users.get-profile"]; !ok {
		t.Fatalf("expected route key users.get-profile, got %v", keys(table))
	}
	if _, ok := table["posts-get-by-id"]; !ok {
		t.Fatalf("expected route key posts-get-by-id, got %v", keys(table))
	}
}

func TestFlattenRejectsDuplicateRouteKeys(t *testing.T) {
	d := NewDescriptor(Query, echoImpl, nil)
	tree := NewTree().
		Set("a", NewTree().
			Set("userID", d).
			Set("userId", NewDescriptor(Query, echoImpl, nil)))

	if _, err := Flatten(tree, NewMiddlewares()); err == nil {
		t.Fatalf("expected duplicate route key error, got nil")
	}
}

func TestFlattenOrdersMiddlewarePrefixOnionStyle(t *testing.T) {
	var order []string
	record := func(name string) middleware.Stage[*Context] {
		return func(ctx *Context, next middleware.Next) (any, error) {
			order = append(order, name+":before")
			v, err := next()
			order = append(order, name+":after")
			return v, err
		}
	}

	leaf := NewDescriptor(Query, echoImpl, nil)
	group := NewTree().Set("create", leaf)
	root := NewTree().Set("posts", group)

	mw := NewMiddlewares()
	mw.Attach([]middleware.Stage[*Context]{record("global")}, root)
	mw.Attach([]middleware.Stage[*Context]{record("group")}, group)
	mw.Attach([]middleware.Stage[*Context]{record("leaf")}, leaf)

	table, err := Flatten(root, mw)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}

	route, ok := table["posts.create"]
	if !ok {
		t.Fatalf("expected posts.create route, got %v", keys(table))
	}

	ctx := NewContext(map[string]any{}, Adapter{Request: newTestRequest()})
	if _, err := route.Handler(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	want := []string{"global:before", "group:before", "leaf:before", "leaf:after", "group:after", "global:after"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func keys(table RouteTable) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	return out
}
