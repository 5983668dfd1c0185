package core

// Capturer converts arbitrary Go values into property values.
type Capturer interface {
	// TryCapture converts value into a property value. When destructure is
	// true, structs are captured field by field instead of as scalars.
	// It returns false if the value could not be represented.
	TryCapture(value any, destructure bool) (LogEventPropertyValue, bool)
}

// LogValue is an optional interface that types can implement to provide
// custom log representations. When a type implements this interface,
// the capturer uses the returned value instead of reflecting over the type.
type LogValue interface {
	LogValue() any
}
