package shared

// FieldSet is a fixed allow-list of column names an entity accepts from
// client input. It is the only thing standing between arbitrary submitted
// records and SQL column lists, so every create and update path must run
// its payload through Filter with the entity's set.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from the given field names.
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether the field is in the set.
func (s FieldSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Filter returns a new record containing only the keys present in both
// submitted and the set. Values are carried verbatim, with no coercion.
// Unknown keys are silently dropped; the result is empty iff no submitted
// key is allowed, and callers must reject an empty result instead of
// issuing a no-op write.
func (s FieldSet) Filter(submitted map[string]any) map[string]any {
	out := make(map[string]any, len(submitted))
	for k, v := range submitted {
		if s.Contains(k) {
			out[k] = v
		}
	}
	return out
}
