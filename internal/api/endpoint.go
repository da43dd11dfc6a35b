package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Resource names the collection and item routes of one entity.
type Resource struct {
	Name       string
	Collection string
	Item       string
}

var (
	Apartments = Resource{Name: "apartments", Collection: "apartamento", Item: "apartamento"}
	Residents  = Resource{Name: "residents", Collection: "moradores", Item: "morador"}
	Accounts   = Resource{Name: "accounts", Collection: "contas", Item: "conta"}
	Employees  = Resource{Name: "employees", Collection: "funcionarios", Item: "funcionarios"}
)

// ItemPath returns the escaped route addressing one item by natural key.
func (r Resource) ItemPath(key string) string {
	return r.Item + "/" + url.PathEscape(key)
}

// Endpoint is the typed REST surface of one resource.
type Endpoint[T any] struct {
	client   *Client
	resource Resource
}

func NewEndpoint[T any](client *Client, resource Resource) *Endpoint[T] {
	return &Endpoint[T]{client: client, resource: resource}
}

func (e *Endpoint[T]) Resource() Resource {
	return e.resource
}

// List fetches the full collection.
func (e *Endpoint[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := e.client.Do(ctx, http.MethodGet, e.resource.Collection, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create posts item. It returns the created object when the service echoes
// it back, or nil when the response only carries a status message.
func (e *Endpoint[T]) Create(ctx context.Context, item T) (*T, error) {
	var raw json.RawMessage
	if err := e.client.Do(ctx, http.MethodPost, e.resource.Collection, item, &raw); err != nil {
		return nil, err
	}
	if !carriesEntity(raw) {
		return nil, nil
	}
	var created T
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to decode created %s: %w", e.resource.Name, err)
	}
	return &created, nil
}

// Update replaces the item addressed by key with item.
func (e *Endpoint[T]) Update(ctx context.Context, key string, item T) error {
	return e.client.Do(ctx, http.MethodPut, e.resource.ItemPath(key), item, nil)
}

// Delete removes the item addressed by key.
func (e *Endpoint[T]) Delete(ctx context.Context, key string) error {
	return e.client.Do(ctx, http.MethodDelete, e.resource.ItemPath(key), nil, nil)
}

// carriesEntity reports whether raw is an object with fields other than a
// status message.
func carriesEntity(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for name := range fields {
		switch name {
		case "mensagem", "message":
		default:
			return true
		}
	}
	return false
}
