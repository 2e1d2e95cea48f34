package helpers

// NullableString converts a string to the pointer form pgx writes as NULL
// when the string is empty.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences a nullable column, returning "" for NULL.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to a copy of s, keeping empty strings non-NULL.
func StringPtr(s string) *string {
	return &s
}
