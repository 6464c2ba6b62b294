package adapter

import "encoding/json"

// StringList is a forgiving JSON representation for the images/features
// fields. Legacy rows stored them either as a native JSON array or as a
// JSON-encoded string containing an array; both decode into a clean
// []string. Absent and null decode to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	// Native array of strings (nulls tolerated and dropped).
	var raw []*string
	if err := json.Unmarshal(data, &raw); err == nil {
		items := make([]string, 0, len(raw))
		for _, p := range raw {
			if p != nil {
				items = append(items, *p)
			}
		}
		*l = CleanStringList(items)
		return nil
	}

	// JSON string, usually a JSON-encoded array ("[\"a.jpg\"]").
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(s), &nested); err == nil {
			*l = CleanStringList(nested)
			return nil
		}
		// A bare string that is not an encoded array is kept as a
		// single entry so no data is silently lost.
		*l = CleanStringList([]string{s})
		return nil
	}

	// null or anything else unusable defaults to empty.
	*l = StringList{}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(CleanStringList(l)))
}

// CleanStringList drops entries that carry no content: empty strings and
// the literal "null" left behind by sloppy legacy writers. Idempotent.
func CleanStringList(in []string) StringList {
	out := make(StringList, 0, len(in))
	for _, s := range in {
		if s == "" || s == "null" {
			continue
		}
		out = append(out, s)
	}
	return out
}
