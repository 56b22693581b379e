package draw

import (
	"sort"
)

// scene is the element bookkeeping shared by the concrete surfaces.
type scene struct {
	static []Element
	named  map[string]Element
	seq    int
}

func newScene() scene {
	return scene{named: map[string]Element{}}
}

func (s *scene) draw(layer Layer, shape Shape) Element {
	s.seq++
	elem := Element{Layer: layer, Shape: shape, seq: s.seq}
	s.static = append(s.static, elem)

	return elem
}

// upsert keeps the original stacking position of an element that is replaced in place.
func (s *scene) upsert(id string, layer Layer, shape Shape) Element {
	existing, found := s.named[id]
	if found && existing.Layer == layer {
		existing.Shape = shape
		s.named[id] = existing

		return existing
	}

	s.seq++
	elem := Element{ID: id, Layer: layer, Shape: shape, seq: s.seq}
	s.named[id] = elem

	return elem
}

func (s *scene) clear(id string) bool {
	if _, found := s.named[id]; !found {
		return false
	}

	delete(s.named, id)

	return true
}

func (s *scene) lookup(id string) (Element, bool) {
	elem, found := s.named[id]

	return elem, found
}

func (s *scene) ids() []string {
	ids := make([]string, 0, len(s.named))
	for id := range s.named {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// ordered returns every element in paint order: by layer, then by insertion.
func (s *scene) ordered() []Element {
	all := make([]Element, 0, len(s.static)+len(s.named))
	all = append(all, s.static...)
	for _, elem := range s.named {
		all = append(all, elem)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Layer != all[j].Layer {
			return all[i].Layer < all[j].Layer
		}

		return all[i].seq < all[j].seq
	})

	return all
}
