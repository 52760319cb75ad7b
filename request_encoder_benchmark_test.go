package gareporter

import (
	"net/url"
	"testing"
)

var benchmarkURLResult *url.URL

func BenchmarkEncodeEventHit(b *testing.B) {
	params := makeBenchmarkParameters(map[string]string{"ec": "video", "ea": "play", "el": "trailer"})
	e := requestEncoder{baseURI: DefaultBaseURI}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchmarkURLResult, _ = e.encode(params)
	}
}

func BenchmarkEncodeHitWithEscaping(b *testing.B) {
	params := makeBenchmarkParameters(map[string]string{
		"dt":  "Réglages & préférences",
		"dp":  "/Réglages&préférences",
		"cd1": "100% = all of it",
	})
	e := requestEncoder{baseURI: DefaultBaseURI}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		benchmarkURLResult, _ = e.encode(params)
	}
}

func BenchmarkMergeParameters(b *testing.B) {
	hc := basicHitContext()
	hc.anonymizeIP = true
	hc.customDimensions = map[string]string{"cd1": "premium", "cd2": "beta"}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		call := callParameters(nil, "ec", "video", "ea", "play", "el", "trailer")
		_ = mergeParameters(hc, EventHitType, call)
	}
}

func makeBenchmarkParameters(call map[string]string) *ParameterSet {
	hc := basicHitContext()
	hc.anonymizeIP = true
	p := NewParameterSet()
	p.Merge(call)
	return mergeParameters(hc, EventHitType, p)
}
