package validation

// Validator defines the interface that needs to be implemented by all validation strategies.
type Validator interface {
	// ValidateStruct returns a message per invalid field, keyed by the field's
	// dotted configuration path, or nil when s is valid.
	ValidateStruct(s any) map[string]string
}
