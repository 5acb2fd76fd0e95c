package publishers

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestGCPPubSubPublisherPublishes(t *testing.T) {
	// In-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()
	if _, err := client.CreateTopic(ctx, "topic-1"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newGCPPubSubPublisher(ctx, PublisherConfig{
		ID:   "gcp",
		Type: TypeGCPPubSub,
		GCP:  &GCPPubSubConfig{ProjectID: "test-project", Topic: "topic-1"},
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubPublisher: %v", err)
	}

	if err := pub.Publish(ctx, sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	closer, ok := pub.(interface{ Close() error })
	if !ok {
		t.Fatal("pubsub publisher should be closable")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Attributes["entry_id"] != "e1" {
		t.Fatalf("attributes = %v", msgs[0].Attributes)
	}
}
