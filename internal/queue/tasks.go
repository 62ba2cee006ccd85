package queue

import (
	"encoding/json"
	"time"

	"github.com/cashere-pos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReservationSweep 过期库存预占清理任务
	TaskReservationSweep = constants.TaskReservationSweep
)

// ReservationSweepPayload 预占清理任务载荷
type ReservationSweepPayload struct {
	RequestedAt int64 `json:"requested_at"`
}

// NewReservationSweepTask 创建预占清理任务
func NewReservationSweepTask(payload ReservationSweepPayload) (*asynq.Task, error) {
	if payload.RequestedAt == 0 {
		payload.RequestedAt = time.Now().Unix()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReservationSweep, body), nil
}
