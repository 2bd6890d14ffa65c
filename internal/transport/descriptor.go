package transport

// RequestDescriptor describes one HTTP request to the vendor service.
// Descriptors are built per call and never mutated after construction,
// so a retry can safely rebuild the request from the same descriptor.
type RequestDescriptor struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}
