package api

import (
	"encoding/json"
	"fmt"
)

// GetPaginated fetches every page of a list endpoint and concatenates the
// results. resultKey is the JSON key holding the item array. Pages are
// fetched sequentially so ordering is preserved and the API is never burst.
func (c *Client) GetPaginated(path, resultKey string, params map[string]string) ([]json.RawMessage, error) {
	var all []json.RawMessage
	page := 1
	totalPages := 1

	for page <= totalPages {
		p := make(map[string]string, len(params)+2)
		for k, v := range params {
			p[k] = v
		}
		p["page"] = fmt.Sprintf("%d", page)
		p["per_page"] = "100"

		var body json.RawMessage
		if err := c.Get(path, p, &body); err != nil {
			return nil, err
		}

		items, pages := decodePage(body, resultKey)
		all = append(all, items...)
		if pages > 0 {
			totalPages = pages
		}
		page++
	}

	return all, nil
}

// The FreshBooks APIs answer list requests with one of two envelopes:
//
//	timetracking: { <key>: [...], meta: { pages: N } }
//	accounting:   { response: { result: { <key>: [...], pages: N } } }
//
// decodePage attempts the flat shape first and falls back to the nested one
// when the flat shape's result key is absent.
func decodePage(body json.RawMessage, key string) ([]json.RawMessage, int) {
	if items, pages, ok := decodeFlatPage(body, key); ok {
		return items, pages
	}
	if items, pages, ok := decodeNestedPage(body, key); ok {
		return items, pages
	}
	return nil, 1
}

func decodeFlatPage(body json.RawMessage, key string) ([]json.RawMessage, int, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, 0, false
	}
	itemsRaw, ok := fields[key]
	if !ok {
		return nil, 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, 0, false
	}

	var envelope struct {
		Meta struct {
			Pages int `json:"pages"`
		} `json:"meta"`
	}
	json.Unmarshal(body, &envelope)
	pages := envelope.Meta.Pages
	if pages == 0 {
		pages = 1
	}
	return items, pages, true
}

func decodeNestedPage(body json.RawMessage, key string) ([]json.RawMessage, int, bool) {
	var envelope struct {
		Response struct {
			Result json.RawMessage `json:"result"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Response.Result == nil {
		return nil, 0, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Response.Result, &fields); err != nil {
		return nil, 0, false
	}
	itemsRaw, ok := fields[key]
	if !ok {
		return nil, 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, 0, false
	}

	var result struct {
		Pages int `json:"pages"`
	}
	json.Unmarshal(envelope.Response.Result, &result)
	pages := result.Pages
	if pages == 0 {
		pages = 1
	}
	return items, pages, true
}
