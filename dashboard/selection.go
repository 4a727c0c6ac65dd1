package dashboard

import "sort"

// Selection is the set of filenames marked for a bulk action.
// The zero value is an empty selection.
type Selection struct {
	set map[string]struct{}
}

// Toggle flips membership of filename. Whether filename is visible is the
// caller's concern.
func (s *Selection) Toggle(filename string) {
	if s.set == nil {
		s.set = make(map[string]struct{})
	}
	if _, ok := s.set[filename]; ok {
		delete(s.set, filename)
		return
	}
	s.set[filename] = struct{}{}
}

// ToggleSelectAll clears the selection when it already equals every filename
// in view, otherwise replaces it with exactly those filenames.
func (s *Selection) ToggleSelectAll(view []Video) {
	if s.AllSelected(view) {
		s.Clear()
		return
	}
	s.set = make(map[string]struct{}, len(view))
	for _, v := range view {
		s.set[v.Filename] = struct{}{}
	}
}

// AllSelected reports whether the selection is exactly the non-empty set of
// filenames in view. It backs the select-all checkbox.
func (s *Selection) AllSelected(view []Video) bool {
	if len(view) == 0 {
		return false
	}
	want := make(map[string]struct{}, len(view))
	for _, v := range view {
		want[v.Filename] = struct{}{}
	}
	if len(want) != len(s.set) {
		return false
	}
	for name := range want {
		if _, ok := s.set[name]; !ok {
			return false
		}
	}
	return true
}

// Retain drops every member that keep rejects.
func (s *Selection) Retain(keep func(filename string) bool) {
	for name := range s.set {
		if !keep(name) {
			delete(s.set, name)
		}
	}
}

func (s *Selection) Clear() {
	s.set = nil
}

func (s *Selection) Has(filename string) bool {
	_, ok := s.set[filename]
	return ok
}

func (s *Selection) Len() int {
	return len(s.set)
}

// Names returns the selected filenames sorted.
func (s *Selection) Names() []string {
	names := make([]string, 0, len(s.set))
	for name := range s.set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
