package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amara-wedding/backend/pkg/queue"
)

// fakeJobSource hands out queued jobs and then blocks until the context is
// canceled, like BLPop does.
type fakeJobSource struct {
	jobs    []*queue.Job
	retried []*queue.Job
}

func (f *fakeJobSource) Dequeue(ctx context.Context) (*queue.Job, string, error) {
	if len(f.jobs) > 0 {
		job := f.jobs[0]
		f.jobs = f.jobs[1:]
		return job, queue.QueueEmails, nil
	}
	<-ctx.Done()
	return nil, "", ctx.Err()
}

func (f *fakeJobSource) Retry(_ context.Context, job *queue.Job) error {
	f.retried = append(f.retried, job)
	return nil
}

type fakeSender struct {
	sent []uuid.UUID
	err  error
}

func (s *fakeSender) SendConfirmation(_ context.Context, groupID uuid.UUID) error {
	s.sent = append(s.sent, groupID)
	return s.err
}

func confirmationJob(t *testing.T, groupID uuid.UUID) *queue.Job {
	t.Helper()
	payload, err := json.Marshal(queue.ConfirmationEmailPayload{GroupID: groupID})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &queue.Job{
		ID:        uuid.New().String(),
		Type:      queue.JobTypeConfirmationEmail,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

func TestProcessSendsConfirmation(t *testing.T) {
	groupID := uuid.New()
	sender := &fakeSender{}
	p := NewEmailProcessor(sender, &fakeJobSource{}, nil)

	if err := p.Process(context.Background(), confirmationJob(t, groupID)); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != groupID {
		t.Errorf("sent = %v, want [%s]", sender.sent, groupID)
	}
}

func TestProcessRejectsUnknownJobType(t *testing.T) {
	p := NewEmailProcessor(&fakeSender{}, &fakeJobSource{}, nil)
	job := &queue.Job{ID: uuid.New().String(), Type: "mystery", Payload: json.RawMessage(`{}`)}
	if err := p.Process(context.Background(), job); err == nil {
		t.Fatal("expected an error for an unknown job type")
	}
}

func TestRunStopsPromptlyOnCancel(t *testing.T) {
	groupID := uuid.New()
	source := &fakeJobSource{jobs: []*queue.Job{confirmationJob(t, groupID)}}
	sender := &fakeSender{}
	p := NewEmailProcessor(sender, source, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// Give the loop a moment to drain the queued job, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop promptly after cancel")
	}
	if len(sender.sent) != 1 {
		t.Errorf("queued job should have been processed before shutdown, sent = %v", sender.sent)
	}
}
