package client_test

import (
	"context"

	"tango/client"
)

// This file shows the shape a real codegen step would produce on top of
// the core typed Caller: a generator would emit one such struct per API
// tree, one method per descriptor, with Args/Result types taken from a
// shared Go type instead of map[string]any/any.

type getProfileArgs struct {
	Page int `json:"page"`
}

type getProfileResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// usersAPI is the generated-style typed wrapper for the `users` branch of
// an API tree.
type usersAPI struct {
	caller *client.Caller
}

func newUsersAPI(caller *client.Caller) *usersAPI {
	return &usersAPI{caller: caller}
}

func (u *usersAPI) GetProfile(ctx context.Context, args getProfileArgs) (*getProfileResult, error) {
	raw, err := u.caller.Query(ctx, []string{"users", "getProfile"}, map[string]any{"page": args.Page})
	if err != nil {
		return nil, err
	}
	m, _ := raw.(map[string]any)
	result := &getProfileResult{ID: toInt64(m["id"])}
	if v, ok := m["name"].(string); ok {
		result.Name = v
	}
	return result, nil
}

// toInt64 tolerates whichever concrete integer kind the msgpack decoder
// picked for a given value's size — a real codegen step would route every
// field through the codec's own typed decode instead of interface{}.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int8:
		return int64(n)
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return 0
	}
}
