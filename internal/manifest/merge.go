package manifest

// Merge returns a new Object with fragment deep-merged over base.
// Where both sides hold objects the merge recurses; everywhere else the
// fragment value replaces the base value. Keys only in base are kept in
// their original position; keys only in fragment are appended in fragment order.
// Neither input is modified.
func Merge(base *Object, fragment *Object) *Object {
	out := base.Clone()
	if out == nil {
		out = NewObject()
	}
	if fragment == nil {
		return out
	}
	for _, key := range fragment.keys {
		incoming := fragment.values[key]
		if existing, ok := out.values[key]; ok {
			existingObj, existingIsObj := existing.(*Object)
			incomingObj, incomingIsObj := incoming.(*Object)
			if existingIsObj && incomingIsObj && existingObj != nil && incomingObj != nil {
				out.Set(key, Merge(existingObj, incomingObj))
				continue
			}
		}
		out.Set(key, cloneValue(incoming))
	}
	return out
}
