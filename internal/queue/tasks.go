package queue

import (
	"encoding/json"

	"github.com/sandro988/E-commerce/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerifyCodeEmail 邮箱验证码投递任务
	TaskVerifyCodeEmail = constants.TaskVerifyCodeEmail
)

// VerifyCodeEmailPayload 邮箱验证码任务载荷
type VerifyCodeEmailPayload struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// NewVerifyCodeEmailTask 创建邮箱验证码投递任务
func NewVerifyCodeEmailTask(payload VerifyCodeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerifyCodeEmail, body), nil
}
