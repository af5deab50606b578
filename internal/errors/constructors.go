package errors

// Convenience constructors for the error conditions the engine surfaces.

// ErrorCode identifies a specific well-known failure condition.
type ErrorCode string

const (
	CodeUnsupportedSectionKind  ErrorCode = "unsupported_section_kind"
	CodeSectionIndexOutOfRange  ErrorCode = "section_index_out_of_range"
	CodeInvalidDomainFormat     ErrorCode = "invalid_domain_format"
	CodeReservedDomain          ErrorCode = "reserved_domain"
	CodeDomainProvisioningFailed ErrorCode = "domain_provisioning_failed"
	CodePersistenceWriteFailed  ErrorCode = "persistence_write_failed"
	CodeNotFound                ErrorCode = "not_found"
)

// WithCode tags the error with a well-known code.
func (e *BuilderError) WithCode(code ErrorCode) *BuilderError {
	return e.WithContext("code", code)
}

// IsCode checks whether an error carries a specific well-known code.
func IsCode(err error, code ErrorCode) bool {
	be, ok := err.(*BuilderError)
	if !ok || be.Context == nil {
		return false
	}
	got, ok := be.Context["code"].(ErrorCode)
	return ok && got == code
}

// UnsupportedSectionKind reports an unknown section kind at a validation boundary.
func UnsupportedSectionKind(kind string) *BuilderError {
	return New(CategoryValidation, SeverityWarning, "unsupported section kind").
		WithCode(CodeUnsupportedSectionKind).
		WithContext("kind", kind)
}

// SectionIndexOutOfRange reports a structural operation addressing a section
// index that does not exist in the page's effective content.
func SectionIndexOutOfRange(index, length int) *BuilderError {
	return New(CategoryContent, SeverityWarning, "section index out of range").
		WithCode(CodeSectionIndexOutOfRange).
		WithContext("index", index).
		WithContext("length", length)
}

// InvalidDomainFormat reports a custom domain that does not parse as a hostname.
func InvalidDomainFormat(domain string, cause error) *BuilderError {
	return Wrap(cause, CategoryDomain, SeverityWarning, "invalid domain format").
		WithCode(CodeInvalidDomainFormat).
		WithContext("domain", domain)
}

// ReservedDomain reports a custom domain under a reserved or internal suffix.
func ReservedDomain(domain string) *BuilderError {
	return New(CategoryDomain, SeverityWarning, "domain suffix is reserved").
		WithCode(CodeReservedDomain).
		WithContext("domain", domain)
}

// DomainProvisioningFailed wraps a provisioning collaborator failure. The cause
// is preserved verbatim for the operator.
func DomainProvisioningFailed(domain string, cause error) *BuilderError {
	return Wrap(cause, CategoryDomain, SeverityError, "domain provisioning failed").
		WithCode(CodeDomainProvisioningFailed).
		WithContext("domain", domain)
}

// PersistenceWriteFailed wraps a rejected store write. These are retryable: the
// caller's in-memory state is left intact so the write can be attempted again.
func PersistenceWriteFailed(cause error) *BuilderError {
	return WrapRetryable(cause, CategoryStorage, SeverityError, "persistence write failed").
		WithCode(CodePersistenceWriteFailed)
}

// NotFound reports a missing website, page or template.
func NotFound(entity, id string) *BuilderError {
	return New(CategoryStorage, SeverityWarning, entity+" not found").
		WithCode(CodeNotFound).
		WithContext("id", id)
}
