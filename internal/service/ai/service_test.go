package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/nightowl-labs/restwise/backend/internal/model/coach"
)

type fakeChatModel struct {
	response    *schema.Message
	err         error
	gotMessages []*schema.Message
	gotOptions  *model.Options
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.gotMessages = input
	f.gotOptions = model.GetCommonOptions(&model.Options{}, opts...)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in fake")
}

func emptyStore() coach.Store {
	return coach.NewMemoryStore(nil, nil, nil)
}

func TestGenerateResponseTrimsModelOutput(t *testing.T) {
	fake := &fakeChatModel{response: schema.AssistantMessage("  keep a regular bedtime.  \n", nil)}
	svc := NewService(fake, emptyStore())

	got := svc.GenerateResponse(context.Background(), "how do I sleep better?")
	if got != "keep a regular bedtime." {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestGenerateResponseUsesFixedParameters(t *testing.T) {
	fake := &fakeChatModel{response: schema.AssistantMessage("ok", nil)}
	svc := NewService(fake, emptyStore())

	svc.GenerateResponse(context.Background(), "hello")

	if fake.gotOptions.Temperature == nil || *fake.gotOptions.Temperature != 0.7 {
		t.Fatalf("unexpected temperature: %v", fake.gotOptions.Temperature)
	}
	if fake.gotOptions.MaxTokens == nil || *fake.gotOptions.MaxTokens != 400 {
		t.Fatalf("unexpected max tokens: %v", fake.gotOptions.MaxTokens)
	}
}

func TestGenerateResponseMessageAssembly(t *testing.T) {
	store := coach.NewMemoryStore(
		[]coach.DiaryEntry{{Date: "2024-01-01", Entry: "slept poorly"}},
		[]coach.MetricEntry{{Date: "2024-01-01", SleepScore: 62, Hours: 5.5}},
		nil,
	)
	fake := &fakeChatModel{response: schema.AssistantMessage("ok", nil)}
	svc := NewService(fake, store)

	svc.GenerateResponse(context.Background(), "I feel tired")

	if len(fake.gotMessages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(fake.gotMessages))
	}
	if fake.gotMessages[0].Role != schema.System {
		t.Fatalf("expected system persona message first, got %s", fake.gotMessages[0].Role)
	}
	contextMsg := fake.gotMessages[1]
	if contextMsg.Role != schema.System {
		t.Fatalf("expected system context message, got %s", contextMsg.Role)
	}
	if !strings.Contains(contextMsg.Content, "Last Diary (2024-01-01): slept poorly") {
		t.Fatalf("context message missing diary line: %s", contextMsg.Content)
	}
	if !strings.Contains(contextMsg.Content, "Wearable Data (2024-01-01): Sleep Score 62, Hours Slept 5.5") {
		t.Fatalf("context message missing wearable line: %s", contextMsg.Content)
	}
	if fake.gotMessages[2].Role != schema.User || fake.gotMessages[2].Content != "I feel tired" {
		t.Fatalf("unexpected user message: %+v", fake.gotMessages[2])
	}
}

func TestGenerateResponseOmitsEmptyContext(t *testing.T) {
	fake := &fakeChatModel{response: schema.AssistantMessage("ok", nil)}
	svc := NewService(fake, emptyStore())

	svc.GenerateResponse(context.Background(), "hello")

	if len(fake.gotMessages) != 2 {
		t.Fatalf("expected 2 messages without context, got %d", len(fake.gotMessages))
	}
}

func TestGenerateResponseFallsBackToExample(t *testing.T) {
	store := coach.NewMemoryStore(nil, nil, []coach.DialogueExample{
		{UserPattern: "rough night", CoachReply: "Let's talk about what happened."},
	})
	fake := &fakeChatModel{err: errors.New("model unavailable")}
	svc := NewService(fake, store)

	got := svc.GenerateResponse(context.Background(), "I had a rough night")
	if got != "Let's talk about what happened." {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestGenerateResponseFallsBackToDefault(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("model unavailable")}
	svc := NewService(fake, emptyStore())

	got := svc.GenerateResponse(context.Background(), "anything at all")
	if got != DefaultReply {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestGenerateResponseWithoutModelServesFallback(t *testing.T) {
	svc := NewService(nil, emptyStore())

	got := svc.GenerateResponse(context.Background(), "anything")
	if got != DefaultReply {
		t.Fatalf("unexpected response without model: %q", got)
	}
}
