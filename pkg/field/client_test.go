package field

import (
	"encoding/json"
	"testing"
)

func mustEnvelope(t *testing.T, typ string, data any) Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return Envelope{Type: typ, Data: raw}
}

func TestClientHandleAcceptsValidSample(t *testing.T) {
	var got []Sample
	c := NewClient("ws://unused", func(s Sample) { got = append(got, s) })

	c.handle(mustEnvelope(t, "coherence_update", Sample{Coherence: 0.9, IntegratedInfo: 0.4, Phase: 2}))
	if len(got) != 1 {
		t.Fatalf("got %d samples; want 1", len(got))
	}
	if got[0].Coherence != 0.9 {
		t.Errorf("coherence = %v; want 0.9", got[0].Coherence)
	}
}

func TestClientHandleDropsInvalid(t *testing.T) {
	var got []Sample
	c := NewClient("ws://unused", func(s Sample) { got = append(got, s) })

	c.handle(mustEnvelope(t, "coherence_update", map[string]any{"coherence": 2.5, "integrated_info": 0.1, "phase": 0}))
	c.handle(Envelope{Type: "coherence_update", Data: json.RawMessage(`{"coherence": "not a number"}`)})
	c.handle(mustEnvelope(t, "narrative", map[string]any{"text": "soul compression at 88%"}))
	if len(got) != 0 {
		t.Fatalf("invalid or irrelevant frames reached the consumer: %d", len(got))
	}
}
