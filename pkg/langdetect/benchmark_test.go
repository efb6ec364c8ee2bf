package langdetect

import (
	"testing"
)

func BenchmarkDetectByExtension(b *testing.B) {
	content := []byte("# Title\n\nSome text.\n")
	b.ResetTimer()
	for range b.N {
		Detect("README.md", content)
	}
}

func BenchmarkDetectByContentHTML(b *testing.B) {
	content := []byte(`<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><p>Hello, World!</p></body>
</html>`)
	b.ResetTimer()
	for range b.N {
		Detect("-", content)
	}
}

func BenchmarkDetectByContentProse(b *testing.B) {
	content := []byte("Some prose without any markers, long enough to reach the classifier.")
	b.ResetTimer()
	for range b.N {
		Detect("-", content)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	content := []byte("")
	b.ResetTimer()
	for range b.N {
		Detect("", content)
	}
}
