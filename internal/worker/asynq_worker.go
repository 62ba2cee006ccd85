package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/provider"
	"github.com/cashere-pos/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReservationSweep, c.handleReservationSweep)
}

func (c *Consumer) handleReservationSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_reservation_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReservationSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_reservation_sweep_unmarshal_failed", "error", err)
		return err
	}
	if c.CartService == nil {
		logger.Warnw("worker_reservation_sweep_skip_cart_service_nil")
		return nil
	}
	removed, err := c.CartService.SweepExpiredReservations(time.Now())
	if err != nil {
		logger.Warnw("worker_reservation_sweep_failed", "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_reservation_sweep_done", "removed", removed)
	}
	return nil
}
