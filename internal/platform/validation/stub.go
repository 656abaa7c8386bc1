package validation

// StubValidator is a Validator whose result is supplied by the test.
// A nil ValidateStructFunc reports no errors.
type StubValidator struct {
	ValidateStructFunc func(v any) map[string]string
}

var _ Validator = (*StubValidator)(nil)

func (s *StubValidator) ValidateStruct(v any) map[string]string {
	if s.ValidateStructFunc == nil {
		return nil
	}
	return s.ValidateStructFunc(v)
}
