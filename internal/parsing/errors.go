package parsing

// EmptyProfileError reports a raw payload with no extractable signal: no
// name, no headline, no summary, and no experience entries. A CV built from
// such a payload would provide no user value, so normalization refuses it.
type EmptyProfileError struct {
	Identifier string
}

func (e *EmptyProfileError) Error() string {
	if e.Identifier != "" {
		return "profile " + e.Identifier + " contains no extractable data"
	}
	return "profile contains no extractable data"
}
