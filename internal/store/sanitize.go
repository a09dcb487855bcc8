package store

// Sanitize recursively removes nil values from generic document values before
// they are written to the document store. Optional model fields marshal to nil
// when unset; the store must not persist them as explicit nulls, otherwise a
// later read cannot distinguish "never measured" from "measured as null".
// Zero values are kept: a zero budget or zero spend is real data.
func Sanitize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = Sanitize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			out = append(out, Sanitize(val))
		}
		return out
	default:
		return v
	}
}
