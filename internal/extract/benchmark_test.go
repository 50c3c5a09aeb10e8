package extract

import "testing"

// BenchmarkExtractStructured measures extraction when the marker precedes a single token.
func BenchmarkExtractStructured(b *testing.B) {
	e := New("")
	line := `time="2026-02-17T12:00:00Z" level=info msg="[TCP] 10.0.0.2:51234 --> api.example.com:443 match Match using DIRECT"`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Extract(line)
	}
}

// BenchmarkExtractSkipped measures the cost of lines without the marker.
func BenchmarkExtractSkipped(b *testing.B) {
	e := New("")
	line := `time="2026-02-17T12:00:00Z" level=info msg="[TCP] 10.0.0.2:51234 --> api.example.com:443 match DomainSuffix using Proxy"`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Extract(line)
	}
}
