package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrpos/internal/events"
	payrollerrors "go-hrpos/internal/payroll/errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipRequestedConsumer renders payslip documents off the request path.
// Finalizing a month queues one event per payslip; this consumer picks them up
// and writes the PDFs.
type PayslipRequestedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewPayslipRequestedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *PayslipRequestedConsumer {
	l := zap.L().Named("payroll.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.consumer")
	}

	return &PayslipRequestedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.PayrollPayslipRequestedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *PayslipRequestedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume payslip request failed", zap.Error(err))
				continue
			}

			var event events.PayrollPayslipRequestedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode payslip request failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid payslip request failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.GeneratePayslip(ctx, event.CompanyID, event.PayslipID)
			if err != nil {
				// A deleted or unlocked payslip has nothing to render; retrying
				// would loop forever.
				if errors.Is(err, payrollerrors.ErrPayslipNotFound) ||
					errors.Is(err, payrollerrors.ErrPayslipNotFinalized) {
					c.logger.Warn("payslip request no longer applicable, skipping",
						zap.String("payslip_id", event.PayslipID),
						zap.Error(err),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit stale payslip request failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("render requested payslip failed",
					zap.String("payslip_id", event.PayslipID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit payslip request failed", zap.Error(err))
				continue
			}

			c.logger.Info("payslip rendered from request event",
				zap.String("payslip_id", event.PayslipID),
				zap.String("company_id", event.CompanyID),
			)
		}
	}()
}
