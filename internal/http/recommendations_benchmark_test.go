package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func BenchmarkHandleRecommend(b *testing.B) {
	srv := buildTestServer(b, &fakeRecommender{result: sampleResult()})
	payload := []byte(`{"memberIds": ["alice", "bob"], "moods": ["intense"], "page": 1}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/recommendations", bytes.NewReader(payload))
		req.Header.Set("Authorization", "Bearer secret")
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
