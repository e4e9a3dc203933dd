package worker

import (
	"context"
	"testing"

	"github.com/sandro988/E-commerce/internal/provider"
	"github.com/sandro988/E-commerce/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleVerifyCodeEmailInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskVerifyCodeEmail, []byte("{not-json"))
	if err := consumer.handleVerifyCodeEmail(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestHandleVerifyCodeEmailSkipsBlankFields(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task, err := queue.NewVerifyCodeEmailTask(queue.VerifyCodeEmailPayload{Email: "  ", Code: "123456"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleVerifyCodeEmail(context.Background(), task); err != nil {
		t.Fatalf("blank email should be skipped, got %v", err)
	}
}

func TestHandleVerifyCodeEmailSkipsWithoutEmailService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task, err := queue.NewVerifyCodeEmailTask(queue.VerifyCodeEmailPayload{
		Email:   "shopper@example.com",
		Code:    "123456",
		Purpose: "register",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleVerifyCodeEmail(context.Background(), task); err != nil {
		t.Fatalf("missing email service should be skipped, got %v", err)
	}
}
