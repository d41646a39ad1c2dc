package hibid

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// EmbeddedState is the apollo cache hibid serializes into its server rendered pages.
//
// The cache is a graph: entities reference each other with {"__ref": "Type:id"}
// and nothing guarantees that a referenced key is present. Lookups therefore go
// through the tables below and a missing entry is skipped, never an error.
type EmbeddedState struct {
	// every top level key, in document order
	keys []string
	// top level key -> value
	byKey map[string]gjson.Result
	// auctioneer id -> entity, last write wins
	entities map[int64]gjson.Result
	// auctioneer ids in the order they were first seen
	entityOrder []int64
}

// ExtractState finds and decodes the embedded state. ok is false if the script
// is missing, is not valid json or does not contain the state object, this is
// expected on some pages and is not an error.
func ExtractState(doc *goquery.Document) (state *EmbeddedState, ok bool) {
	script := doc.Find("script#" + stateScriptId).First()
	if script.Length() == 0 {
		return nil, false
	}
	raw := strings.TrimSpace(script.Text())
	if raw == "" || !gjson.Valid(raw) {
		return nil, false
	}

	var apollo gjson.Result
	found := false
	gjson.Parse(raw).ForEach(func(key, value gjson.Result) bool {
		if key.String() == stateKey {
			apollo = value
			found = true
			return false
		}
		return true
	})
	if !found || !apollo.IsObject() {
		return nil, false
	}

	state = &EmbeddedState{
		byKey:    map[string]gjson.Result{},
		entities: map[int64]gjson.Result{},
	}
	apollo.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, seen := state.byKey[k]; !seen {
			state.keys = append(state.keys, k)
		}
		state.byKey[k] = value

		if !strings.HasPrefix(k, entityRefPrefix) || !value.IsObject() {
			return true
		}
		id, ok := entityId(value)
		if !ok {
			return true
		}
		if _, seen := state.entities[id]; !seen {
			state.entityOrder = append(state.entityOrder, id)
		}
		state.entities[id] = value
		return true
	})

	return state, true
}

// entityId accepts numeric ids and numeric strings. Any other id is left out
// of the entity table, refs and targets are always numeric so it could never
// be looked up.
func entityId(entity gjson.Result) (int64, bool) {
	id := entity.Get("id")
	switch id.Type {
	case gjson.Number:
		return id.Int(), true
	case gjson.String:
		parsed, err := strconv.ParseInt(strings.TrimSpace(id.Str), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// refId parses the id out of {"__ref": "Auctioneer:123"}.
func refId(ref gjson.Result) (int64, bool) {
	if !ref.IsObject() {
		return 0, false
	}
	key := ref.Get("__ref")
	if key.Type != gjson.String || !strings.HasPrefix(key.Str, entityRefPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(key.Str, entityRefPrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *EmbeddedState) EntityCount() int {
	return len(s.entities)
}

func (s *EmbeddedState) rootQuery() gjson.Result {
	root, ok := s.byKey[rootQueryKey]
	if !ok || !root.IsObject() {
		return gjson.Result{}
	}
	return root
}

// searchResults reads the ordered auctioneer ids and the total count from the
// first aggregate search found in the root query.
func (s *EmbeddedState) searchResults() (ids []int64, totalCount *int64) {
	s.rootQuery().ForEach(func(key, value gjson.Result) bool {
		if !strings.Contains(key.String(), searchMarker) || !value.IsObject() {
			return true
		}

		total := value.Get("totalCount")
		if total.Type == gjson.Number {
			n := total.Int()
			totalCount = &n
		}
		for _, ref := range value.Get("results").Array() {
			id, ok := refId(ref)
			if !ok {
				continue
			}
			ids = append(ids, id)
		}
		return false
	})
	return ids, totalCount
}

// Entities returns the raw entities to put in a list, ordered as the site's own
// search results when those are present.
//
// Ids in the search results that have no entity are dropped. When no search
// results are present every entity is returned in document order.
func (s *EmbeddedState) Entities() (entities []gjson.Result, totalCount *int64) {
	ids, totalCount := s.searchResults()
	if len(ids) == 0 {
		ids = s.entityOrder
	}
	for _, id := range ids {
		entity, ok := s.entities[id]
		if !ok {
			continue
		}
		entities = append(entities, entity)
	}
	return entities, totalCount
}

// Entity picks the auctioneer a profile page is about.
//
//  1. the entity whose id equals targetId (skipped when targetId <= 0)
//  2. the first entity that has a phone number or an email, sidebar
//     auctioneers only carry list level fields
//  3. a root query field named after the entity type that references an entity
func (s *EmbeddedState) Entity(targetId int64) (gjson.Result, bool) {
	if targetId > 0 {
		entity, ok := s.entities[targetId]
		if ok {
			return entity, true
		}
	}

	for _, id := range s.entityOrder {
		entity := s.entities[id]
		if entity.Get("phone").String() != "" || entity.Get("email").String() != "" {
			return entity, true
		}
	}

	var found gjson.Result
	ok := false
	s.rootQuery().ForEach(func(key, value gjson.Result) bool {
		if !strings.Contains(strings.ToLower(key.String()), entityTypeName) {
			return true
		}
		ref := value.Get("__ref")
		if !value.IsObject() || ref.Type != gjson.String || !strings.HasPrefix(ref.Str, entityRefPrefix) {
			return true
		}
		entity, exists := s.byKey[ref.Str]
		if !exists || !entity.IsObject() {
			return true
		}
		found, ok = entity, true
		return false
	})
	return found, ok
}
