package utils

// StrPtr returns a pointer to s, nil for the empty string
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
