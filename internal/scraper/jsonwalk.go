package scraper

// maxWalkDepth bounds the payload traversal so an adversarially nested
// response cannot blow the worklist up.
const maxWalkDepth = 32

// listKeys are the mapping keys commonly used for result arrays, checked in
// this order; only the first present list is descended into.
var listKeys = []string{"jobs", "results", "data", "items", "listings", "hits"}

// findJobObjects walks an arbitrary decoded JSON tree and collects every
// job-like mapping: one carrying a company-name key and a title key. A
// job-like node is captured whole and not descended into. The walk is an
// explicit FIFO worklist rather than recursion, so payload shape cannot
// influence stack depth.
func findJobObjects(root any) []RawJob {
	type node struct {
		v     any
		depth int
	}

	var out []RawJob
	queue := []node{{v: root}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.depth > maxWalkDepth {
			continue
		}

		switch t := n.v.(type) {
		case map[string]any:
			if isJobLike(t) {
				out = append(out, RawJob(t))
				continue
			}
			if key, ok := firstListKey(t); ok {
				for _, el := range t[key].([]any) {
					queue = append(queue, node{v: el, depth: n.depth + 1})
				}
				continue
			}
			for _, v := range t {
				switch v.(type) {
				case map[string]any, []any:
					queue = append(queue, node{v: v, depth: n.depth + 1})
				}
			}
		case []any:
			for _, el := range t {
				queue = append(queue, node{v: el, depth: n.depth + 1})
			}
		}
	}

	return out
}

func isJobLike(m map[string]any) bool {
	_, hasSnake := m["company_name"]
	_, hasCamel := m["companyName"]
	if !hasSnake && !hasCamel {
		return false
	}
	_, hasTitle := m["title"]
	_, hasName := m["name"]
	return hasTitle || hasName
}

func firstListKey(m map[string]any) (string, bool) {
	for _, k := range listKeys {
		if _, ok := m[k].([]any); ok {
			return k, true
		}
	}
	return "", false
}
