package stream

// Auditor is a callback type that receives transferred byte counts from source
// or sink operations. Auditor implementations should be fast and minimal to
// avoid any impact on performance.
type Auditor func(uint64)

// auditSource is a Source that implements read operation auditing.
type auditSource struct {
	// source is the underlying source.
	source Source
	// auditor is the auditing callback.
	auditor Auditor
}

// NewAuditSource creates a new Source that invokes an auditing callback with
// read byte counts. If auditor is nil, then this function will return source
// unmodified.
func NewAuditSource(source Source, auditor Auditor) Source {
	if auditor == nil {
		return source
	}
	return &auditSource{source, auditor}
}

// Read implements Source.Read.
func (s *auditSource) Read(buffer []byte) (int, error) {
	result, err := s.source.Read(buffer)
	if result > 0 {
		s.auditor(uint64(result))
	}
	return result, err
}

// auditSink is a Sink that implements write operation auditing.
type auditSink struct {
	// sink is the underlying sink.
	sink Sink
	// auditor is the auditing callback.
	auditor Auditor
}

// NewAuditSink creates a new Sink that invokes an auditing callback with
// written byte counts. If auditor is nil, then this function will return sink
// unmodified.
func NewAuditSink(sink Sink, auditor Auditor) Sink {
	if auditor == nil {
		return sink
	}
	return &auditSink{sink, auditor}
}

// Write implements Sink.Write.
func (s *auditSink) Write(buffer []byte) (int, error) {
	result, err := s.sink.Write(buffer)
	if result > 0 {
		s.auditor(uint64(result))
	}
	return result, err
}
