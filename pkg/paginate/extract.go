package paginate

import "igclient/pkg/model"

// EdgePage reads a GraphQL edge container found at path inside root:
//
//	{"count": N, "page_info": {"end_cursor": "...", "has_next_page": true},
//	 "edges": [{"node": {...}}, ...]}
//
// A missing container or missing keys yield an exhausted page rather than
// an error.
func EdgePage(root model.Node, path ...any) *Page {
	container := root.Node(path...)
	if container == nil {
		return &Page{}
	}

	page := &Page{
		Cursor:  container.String("page_info", "end_cursor"),
		HasMore: container.Bool("page_info", "has_next_page"),
	}
	for _, edge := range container.Nodes("edges") {
		if node := edge.Node("node"); node != nil {
			page.Nodes = append(page.Nodes, node)
		}
	}
	if page.Cursor == "" {
		page.HasMore = false
	}
	return page
}

// EdgeCount returns the "count" of the edge container at path
func EdgeCount(root model.Node, path ...any) int64 {
	return root.Node(path...).Int("count")
}

// ItemsPage reads a private API listing: the items array under itemsKey,
// next_max_id as the cursor and more_available as the has-more flag.
func ItemsPage(root model.Node, itemsKey string) *Page {
	page := &Page{
		Nodes:   root.Nodes(itemsKey),
		Cursor:  root.String("next_max_id"),
		HasMore: root.Bool("more_available"),
	}
	if page.Cursor == "" {
		page.HasMore = false
	}
	return page
}
