package plots

import "fmt"

// UnsupportedTransformError is returned for an unknown value transform.
type UnsupportedTransformError struct {
	Transform string
}

func (e *UnsupportedTransformError) Error() string {
	return fmt.Sprintf("unsupported transform %q (use identity|log|log_exclude0|sqrt)", e.Transform)
}

// TransformDomainError reports values outside a transform's domain.
type TransformDomainError struct {
	Transform Transform
	Value     float64
}

func (e *TransformDomainError) Error() string {
	return fmt.Sprintf("%s transform is undefined for negative value %v", e.Transform, e.Value)
}
